package model

import "fmt"

// TaskRecord is a finished historical task.
// It was active from Start (inclusive) until End (exclusive).
type TaskRecord struct {
	ID    string
	Name  string
	Start WorkDay
	End   WorkDay
}

// NewTaskRecord returns a validated record from `YYYY-MM-DD` dates.
func NewTaskRecord(start, end string) (TaskRecord, error) {
	s, err := ParseWorkDay(start)
	if err != nil {
		return TaskRecord{}, fmt.Errorf("start date: %w", err)
	}
	e, err := ParseWorkDay(end)
	if err != nil {
		return TaskRecord{}, fmt.Errorf("end date: %w", err)
	}

	r := TaskRecord{Start: s, End: e}
	if err := r.Validate(); err != nil {
		return TaskRecord{}, err
	}

	return r, nil
}

// Validate checks the record dates.
func (r TaskRecord) Validate() error {
	if r.Start.IsZero() {
		return fmt.Errorf("start date is required: %w", ErrNotValid)
	}
	if r.End.IsZero() {
		return fmt.Errorf("end date is required: %w", ErrNotValid)
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("end date %s is before start date %s: %w", r.End, r.Start, ErrNotValid)
	}
	return nil
}

// WasActive returns true if the task was in progress on the day.
func (r TaskRecord) WasActive(day WorkDay) bool {
	return day.IsInBetween(r.Start, r.End)
}

// CycleTime returns the amount of days the task was active.
func (r TaskRecord) CycleTime() int {
	return DayDifference(r.End, r.Start)
}
