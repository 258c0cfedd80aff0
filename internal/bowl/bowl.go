// Package bowl implements resampling pools used to bootstrap historical data.
//
// A bowl is filled once and then drawn from as many times as needed, the values
// are never removed on a draw (sampling with replacement).
package bowl

import (
	"fmt"

	"github.com/slok/forecast/internal/model"
)

// IndexPicker selects an index in the [0, n) range.
type IndexPicker interface {
	PickIndex(n int) int
}

// Factory creates bowls that share the same picker (and its random source).
type Factory struct {
	picker IndexPicker
}

// NewFactory returns a new bowl factory.
func NewFactory(picker IndexPicker) Factory {
	return Factory{picker: picker}
}

// New returns an empty bowl created by the factory.
func New[T any](f Factory) *Bowl[T] {
	return &Bowl[T]{picker: f.picker}
}

// Bowl is a multiset of values that can be drawn with replacement.
type Bowl[T any] struct {
	values []T
	picker IndexPicker
}

// Add adds a value to the bowl, a value added twice is twice as likely to be picked.
func (b *Bowl[T]) Add(values ...T) {
	b.values = append(b.values, values...)
}

// Len returns the number of entries in the bowl.
func (b *Bowl[T]) Len() int { return len(b.values) }

// Values returns a copy of the bowl entries.
func (b *Bowl[T]) Values() []T {
	values := make([]T, len(b.values))
	copy(values, b.values)
	return values
}

// Pick draws one value from the bowl.
func (b *Bowl[T]) Pick() (T, error) {
	if len(b.values) == 0 {
		var zero T
		return zero, fmt.Errorf("could not pick from bowl: %w", model.ErrEmptyPool)
	}

	return b.values[b.picker.PickIndex(len(b.values))], nil
}

// PickMultiple draws n independent values from the bowl.
func (b *Bowl[T]) PickMultiple(n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("amount of values to pick can't be negative, got: %d: %w", n, model.ErrNotValid)
	}
	if len(b.values) == 0 {
		return nil, fmt.Errorf("could not pick %d values from bowl: %w", n, model.ErrEmptyPool)
	}

	picked := make([]T, 0, n)
	for range n {
		picked = append(picked, b.values[b.picker.PickIndex(len(b.values))])
	}

	return picked, nil
}
