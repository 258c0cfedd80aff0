package history

import (
	"github.com/slok/forecast/internal/bowl"
	"github.com/slok/forecast/internal/model"
)

// WorkInProgressCalculator computes the historical amount of tasks worked at the same time.
type WorkInProgressCalculator struct {
	records []model.TaskRecord
}

// NewWorkInProgressCalculator returns a new calculator for the records.
func NewWorkInProgressCalculator(records []model.TaskRecord) WorkInProgressCalculator {
	return WorkInProgressCalculator{records: records}
}

// Range returns the first start day and the last end day of the records.
// ok is false when there are no records.
func (c WorkInProgressCalculator) Range() (first, last model.WorkDay, ok bool) {
	if len(c.records) == 0 {
		return model.WorkDay{}, model.WorkDay{}, false
	}

	first, last = c.records[0].Start, c.records[0].End
	for _, r := range c.records[1:] {
		if r.Start.Before(first) {
			first = r.Start
		}
		if r.End.After(last) {
			last = r.End
		}
	}

	return first, last, true
}

// Samples returns the WIP of every day in the [first, last) range, in day order.
// The last day is not sampled.
func (c WorkInProgressCalculator) Samples() []int {
	first, last, ok := c.Range()
	if !ok {
		return []int{}
	}

	samples := make([]int, 0, model.DayDifference(last, first))
	for day := first; day.Before(last); day = day.NextDay() {
		samples = append(samples, c.workInProgress(day))
	}

	return samples
}

// Fill adds one WIP sample per historical day into the bowl.
func (c WorkInProgressCalculator) Fill(b *bowl.Bowl[int]) {
	b.Add(c.Samples()...)
}

func (c WorkInProgressCalculator) workInProgress(day model.WorkDay) int {
	wip := 0
	for _, r := range c.records {
		if r.WasActive(day) {
			wip++
		}
	}
	return wip
}
