package model

import (
	"fmt"
	"time"
)

// DefaultAmountOfSimulations is the number of trials when none is configured.
const DefaultAmountOfSimulations = 100

// ForecastConfig is the configuration of a forecast run.
type ForecastConfig struct {
	// AmountOfSimulations is the number of trials (>= 1).
	AmountOfSimulations int
	// EstimatedDays is the horizon every trial is simulated for (>= 0).
	EstimatedDays int
	// AmountOfStories is the backlog size (>= 0).
	AmountOfStories int
	// Seed of the random source, 0 means a time based seed.
	Seed uint64
}

// Validate checks the forecast configuration.
func (c ForecastConfig) Validate() error {
	if c.AmountOfSimulations < 1 {
		return fmt.Errorf("amount of simulations must be at least 1, got: %d: %w", c.AmountOfSimulations, ErrNotValid)
	}
	if c.EstimatedDays < 0 {
		return fmt.Errorf("estimated days can't be negative, got: %d: %w", c.EstimatedDays, ErrNotValid)
	}
	if c.AmountOfStories < 0 {
		return fmt.Errorf("amount of stories can't be negative, got: %d: %w", c.AmountOfStories, ErrNotValid)
	}
	return nil
}

// ForecastResult is the outcome of a forecast run.
type ForecastResult struct {
	ID string
	ForecastConfig
	// Probability of finishing the backlog within the estimated days, in [0, 1].
	Probability float64
	// Successful is the amount of trials that finished in time.
	Successful int
	// Records is the amount of historical records the run used.
	Records   int
	CreatedAt time.Time
}
