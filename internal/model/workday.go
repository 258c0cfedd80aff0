package model

import (
	"fmt"
	"time"
)

// WorkDayLayout is the text layout of a work day.
const WorkDayLayout = "2006-01-02"

// WorkDay is a calendar date without time component.
// The zero value is not a valid day, use ParseWorkDay or NewWorkDay.
type WorkDay struct {
	date time.Time
}

// NewWorkDay returns the work day for the given date.
func NewWorkDay(year int, month time.Month, day int) WorkDay {
	return WorkDay{date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseWorkDay parses a `YYYY-MM-DD` date.
func ParseWorkDay(s string) (WorkDay, error) {
	t, err := time.Parse(WorkDayLayout, s)
	if err != nil {
		return WorkDay{}, fmt.Errorf("invalid work day %q: %w", s, ErrNotValid)
	}
	return NewWorkDay(t.Year(), t.Month(), t.Day()), nil
}

// MustParseWorkDay is like ParseWorkDay but panics on error.
func MustParseWorkDay(s string) WorkDay {
	d, err := ParseWorkDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero returns true when the work day has not been set.
func (w WorkDay) IsZero() bool { return w.date.IsZero() }

// Before reports whether w is an earlier day than other.
func (w WorkDay) Before(other WorkDay) bool { return w.date.Before(other.date) }

// After reports whether w is a later day than other.
func (w WorkDay) After(other WorkDay) bool { return w.date.After(other.date) }

// Equal reports whether both are the same day.
func (w WorkDay) Equal(other WorkDay) bool { return w.date.Equal(other.date) }

// IsInBetween reports whether w is in the [from, to) range.
func (w WorkDay) IsInBetween(from, to WorkDay) bool {
	return !w.Before(from) && w.Before(to)
}

// NextDay returns the following calendar day.
func (w WorkDay) NextDay() WorkDay {
	return WorkDay{date: w.date.AddDate(0, 0, 1)}
}

// Time returns the day as a UTC midnight time.
func (w WorkDay) Time() time.Time { return w.date }

func (w WorkDay) String() string {
	if w.IsZero() {
		return ""
	}
	return w.date.Format(WorkDayLayout)
}

// MarshalText satisfies encoding.TextMarshaler.
func (w WorkDay) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText satisfies encoding.TextUnmarshaler.
func (w *WorkDay) UnmarshalText(text []byte) error {
	d, err := ParseWorkDay(string(text))
	if err != nil {
		return err
	}
	*w = d
	return nil
}

// DayDifference returns the amount of whole days from b to a (a - b).
func DayDifference(a, b WorkDay) int {
	// Both dates are UTC midnights, no DST gaps.
	return int(a.date.Sub(b.date).Hours() / 24)
}
