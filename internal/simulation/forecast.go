package simulation

import (
	"fmt"

	"github.com/slok/forecast/internal/log"
	"github.com/slok/forecast/internal/model"
)

// Trial is a single simulation with a success or failure outcome.
type Trial interface {
	RunTrial() (bool, error)
}

// ResultSink receives the forecast probability.
type ResultSink interface {
	ReportProbability(probability float64)
}

// ResultSinkFunc is a helper to create ResultSink from functions.
type ResultSinkFunc func(probability float64)

// ReportProbability satisfies ResultSink interface.
func (f ResultSinkFunc) ReportProbability(probability float64) { f(probability) }

// ForecastConfig is the configuration for the forecast.
type ForecastConfig struct {
	AmountOfSimulations int
	Trial               Trial
	// Sink is optional.
	Sink   ResultSink
	Logger log.Logger
}

func (c *ForecastConfig) defaults() error {
	if c.Trial == nil {
		return fmt.Errorf("trial is required")
	}

	if c.AmountOfSimulations < 1 {
		return fmt.Errorf("amount of simulations must be at least 1, got: %d: %w", c.AmountOfSimulations, model.ErrNotValid)
	}

	if c.Sink == nil {
		c.Sink = ResultSinkFunc(func(float64) {})
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "simulation.Forecast"})

	return nil
}

// Tally is the count of trials of a forecast.
type Tally struct {
	Completed  int
	Successful int
}

// Probability returns the success ratio.
func (t Tally) Probability() float64 {
	if t.Completed == 0 {
		return 0
	}
	return float64(t.Successful) / float64(t.Completed)
}

// Forecast repeats trials and aggregates their outcomes into a success probability.
// Trials are run one after the other.
type Forecast struct {
	amountOfSimulations int
	trial               Trial
	sink                ResultSink
	logger              log.Logger
	tally               Tally
}

// NewForecast returns a new forecast.
func NewForecast(cfg ForecastConfig) (*Forecast, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Forecast{
		amountOfSimulations: cfg.AmountOfSimulations,
		trial:               cfg.Trial,
		sink:                cfg.Sink,
		logger:              cfg.Logger,
	}, nil
}

// Calculate runs all the trials, reports the probability of success to the sink and returns it.
// On a trial error the forecast is aborted and the sink is not called.
func (f *Forecast) Calculate() (float64, error) {
	f.tally = Tally{}
	for i := range f.amountOfSimulations {
		ok, err := f.trial.RunTrial()
		if err != nil {
			return 0, fmt.Errorf("trial %d failed: %w", i, err)
		}

		f.tally.Completed++
		if ok {
			f.tally.Successful++
		}
	}

	probability := f.tally.Probability()
	f.logger.Debugf("%d of %d trials were successful", f.tally.Successful, f.tally.Completed)
	f.sink.ReportProbability(probability)

	return probability, nil
}

// Tally returns the trial counts of the last calculation.
func (f *Forecast) Tally() Tally { return f.tally }
