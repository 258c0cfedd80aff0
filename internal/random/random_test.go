package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/forecast/internal/random"
	"github.com/slok/forecast/internal/random/fake"
)

func TestPickFrom(t *testing.T) {
	seq := []string{"a", "b", "c", "d"}

	tests := map[string]struct {
		draw   float64
		expRes string
	}{
		"A zero draw should pick the first element":     {draw: 0, expRes: "a"},
		"A draw near one should pick the last element":  {draw: 0.99, expRes: "d"},
		"A draw of 0.33 should pick the second element": {draw: 0.33, expRes: "b"},
		"A draw of 0.5 should pick the third element":   {draw: 0.5, expRes: "c"},
		"The highest possible draw should not overflow": {draw: 0.9999999999999999, expRes: "d"},
		"A draw out of the range should not overflow":   {draw: 1, expRes: "d"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			p := random.NewPicker(fake.NewSequence(test.draw))

			assert.Equal(t, test.expRes, random.PickFrom(p, seq))
		})
	}
}

func TestPickerConsumesOneDrawPerPick(t *testing.T) {
	src := fake.NewSequence(0.1, 0.6)
	p := random.NewPicker(src)

	assert.Equal(t, 0, p.PickIndex(2))
	assert.Equal(t, 1, p.PickIndex(2))
	assert.Equal(t, 2, src.Calls())
}

func TestNewSourceIsDeterministicWithSeed(t *testing.T) {
	assert := assert.New(t)

	s1 := random.NewSource(42)
	s2 := random.NewSource(42)

	for range 100 {
		v := s1.Float64()
		assert.Equal(v, s2.Float64())
		assert.GreaterOrEqual(v, 0.0)
		assert.Less(v, 1.0)
	}
}

func TestPickIndexPanicsWithoutRange(t *testing.T) {
	p := random.NewPicker(fake.NewSequence(0.5))

	assert.PanicsWithValue(t, "random: pick index range must be positive, got: 0", func() { p.PickIndex(0) })
	assert.Panics(t, func() { p.PickIndex(-3) })
	assert.Equal(t, 0, p.PickIndex(1))
}
