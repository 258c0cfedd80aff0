// Package fake has deterministic random sources for tests.
package fake

import "sync"

// Sequence is a random source that replays fixed values in a loop.
type Sequence struct {
	values []float64
	next   int
	mu     sync.Mutex
}

// NewSequence returns a source that returns the values in order, starting again
// when all of them have been used.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next value of the sequence.
func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 {
		return 0
	}

	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Calls returns the number of values that have been returned.
func (s *Sequence) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
