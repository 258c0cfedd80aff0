package lib

import (
	"context"
	"errors"
	"time"

	"github.com/slok/forecast/internal/model"
)

var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource with the same ID already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when the input is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrEmptyHistory is returned when a forecast has no historical records.
	ErrEmptyHistory = errors.New("empty history")
)

// Record is a finished historical task.
type Record struct {
	// ID is the unique identifier (ULID), assigned on import when empty.
	ID string
	// Name is optional.
	Name string
	// Start is the first day the task was in progress. Only the date is used.
	Start time.Time
	// End is the day the task was finished, it was not in progress that day.
	End time.Time
	// CycleTimeDays is the amount of days the task was in progress. Ignored on import.
	CycleTimeDays int
}

// ForecastOpts configures a forecast.
type ForecastOpts struct {
	// Days is the estimated amount of days to finish the backlog.
	Days int
	// Stories is the amount of stories in the backlog.
	Stories int
	// Simulations is the amount of trials. Default: 100.
	Simulations int
	// Seed makes the forecast reproducible. Default: a time based one.
	Seed uint64
	// Records are used as history instead of the stored records when set.
	Records []Record
	// NoSave doesn't store the forecast.
	NoSave bool
}

// ForecastResult is the outcome of a forecast.
type ForecastResult struct {
	ID string
	// Probability of finishing the backlog in time, in the [0, 1] range.
	Probability float64
	// Successful is the amount of trials that finished in time.
	Successful    int
	Simulations   int
	EstimatedDays int
	Stories       int
	// Records is the amount of historical records used.
	Records   int
	Seed      uint64
	CreatedAt time.Time
}

// ImportRecordsOpts configures a records import.
//
// Pass nil to [Client.ImportRecords] to append to the stored records.
type ImportRecordsOpts struct {
	// Replace deletes the stored records before importing.
	Replace bool
}

// ListForecastsOpts configures forecast listing.
type ListForecastsOpts struct {
	// Limit is the max amount of forecasts returned, newest first. 0 returns all.
	Limit int
}

type recordList []model.TaskRecord

func (r recordList) ListRecords(context.Context) ([]model.TaskRecord, error) { return r, nil }

func toWorkDay(t time.Time) model.WorkDay {
	if t.IsZero() {
		return model.WorkDay{}
	}
	y, m, d := t.Date()
	return model.NewWorkDay(y, m, d)
}

func toInternalRecords(rs []Record) recordList {
	result := make(recordList, len(rs))
	for i, r := range rs {
		result[i] = model.TaskRecord{
			ID:    r.ID,
			Name:  r.Name,
			Start: toWorkDay(r.Start),
			End:   toWorkDay(r.End),
		}
	}
	return result
}

func fromInternalRecords(rs []model.TaskRecord) []Record {
	result := make([]Record, len(rs))
	for i, r := range rs {
		result[i] = Record{
			ID:            r.ID,
			Name:          r.Name,
			Start:         r.Start.Time(),
			End:           r.End.Time(),
			CycleTimeDays: r.CycleTime(),
		}
	}
	return result
}

func fromInternalForecast(f model.ForecastResult) ForecastResult {
	return ForecastResult{
		ID:            f.ID,
		Probability:   f.Probability,
		Successful:    f.Successful,
		Simulations:   f.AmountOfSimulations,
		EstimatedDays: f.EstimatedDays,
		Stories:       f.AmountOfStories,
		Records:       f.Records,
		Seed:          f.Seed,
		CreatedAt:     f.CreatedAt,
	}
}

func fromInternalForecastList(fs []model.ForecastResult) []ForecastResult {
	result := make([]ForecastResult, len(fs))
	for i, f := range fs {
		result[i] = fromInternalForecast(f)
	}
	return result
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case errors.Is(err, model.ErrAlreadyExists):
		return joinErrors(err, ErrAlreadyExists)
	case errors.Is(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	case errors.Is(err, model.ErrEmptyPool):
		return joinErrors(err, ErrEmptyHistory)
	default:
		return err
	}
}

func joinErrors(err, sentinel error) error {
	return &mappedError{err: err, sentinel: sentinel}
}

type mappedError struct {
	err      error
	sentinel error
}

func (e *mappedError) Error() string { return e.err.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.err }
