// Package random has the randomness used to resample historical data.
package random

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Source returns uniform values in the [0, 1) range.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded PCG source. A zero seed uses the current time.
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Picker selects uniformly elements of sequences using a Source.
type Picker struct {
	src Source
}

// NewPicker returns a new picker.
func NewPicker(src Source) *Picker {
	return &Picker{src: src}
}

// PickIndex returns an index in the [0, n) range, it panics if n is not positive.
func (p *Picker) PickIndex(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("random: pick index range must be positive, got: %d", n))
	}
	i := int(p.src.Float64() * float64(n))
	// A source returning values out of its range can't make us overflow.
	if i >= n {
		i = n - 1
	}
	return i
}

// PickFrom returns one element of a non empty sequence.
func PickFrom[T any](p *Picker, seq []T) T {
	return seq[p.PickIndex(len(seq))]
}
