package forecast

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/forecast/internal/bowl"
	"github.com/slok/forecast/internal/history"
	"github.com/slok/forecast/internal/log"
	"github.com/slok/forecast/internal/model"
	"github.com/slok/forecast/internal/random"
	"github.com/slok/forecast/internal/simulation"
	"github.com/slok/forecast/internal/storage"
)

// SnapshotSource returns the historical records of a forecast.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*history.Snapshot, error)
}

// ServiceConfig is the configuration for the forecast service.
type ServiceConfig struct {
	Source SnapshotSource
	// Repository is optional, without it forecasts are not stored.
	Repository storage.ForecastRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Source == nil {
		return fmt.Errorf("snapshot source is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Forecast"})
	return nil
}

// Service forecasts the probability of finishing a backlog in time.
type Service struct {
	source SnapshotSource
	repo   storage.ForecastRepository
	logger log.Logger
}

// NewService creates a new forecast service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		source: cfg.Source,
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents a forecast request.
type Request struct {
	// Simulations is the amount of trials, 0 uses model.DefaultAmountOfSimulations.
	Simulations   int
	EstimatedDays int
	Stories       int
	// Seed makes the forecast reproducible, 0 picks one.
	Seed uint64
	// Save stores the result when the service has a repository.
	Save bool
}

// Run executes the forecast.
func (s *Service) Run(ctx context.Context, req Request) (*model.ForecastResult, error) {
	cfg := model.ForecastConfig{
		AmountOfSimulations: req.Simulations,
		EstimatedDays:       req.EstimatedDays,
		AmountOfStories:     req.Stories,
		Seed:                req.Seed,
	}
	if cfg.AmountOfSimulations == 0 {
		cfg.AmountOfSimulations = model.DefaultAmountOfSimulations
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid forecast request: %w", err)
	}

	// Store the used seed so every forecast can be replayed.
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	id := ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String()
	ctx = s.logger.SetValuesOnCtx(ctx, log.Kv{"forecast-id": id})
	logger := s.logger.WithCtxValues(ctx)

	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get historical records: %w", err)
	}
	logger.Debugf("forecasting %d stories in %d days with %d simulations over %d records",
		cfg.AmountOfStories, cfg.EstimatedDays, cfg.AmountOfSimulations, snapshot.Len())

	factory := bowl.NewFactory(random.NewPicker(random.NewSource(cfg.Seed)))
	generator, err := simulation.NewGenerator(simulation.GeneratorConfig{
		WorkInProgressPool: snapshot.WorkInProgressBowl(factory),
		CycleTimePool:      snapshot.CycleTimeBowl(factory),
		AmountOfStories:    cfg.AmountOfStories,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create scenario generator: %w", err)
	}

	simulator, err := simulation.NewSimulator(simulation.SimulatorConfig{
		Generator:     generator,
		EstimatedDays: cfg.EstimatedDays,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create simulator: %w", err)
	}

	fc, err := simulation.NewForecast(simulation.ForecastConfig{
		AmountOfSimulations: cfg.AmountOfSimulations,
		Trial:               simulator,
		Logger:              logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create forecast: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	probability, err := fc.Calculate()
	if err != nil {
		return nil, fmt.Errorf("could not calculate forecast: %w", err)
	}

	result := model.ForecastResult{
		ID:             id,
		ForecastConfig: cfg,
		Probability:    probability,
		Successful:     fc.Tally().Successful,
		Records:        snapshot.Len(),
		CreatedAt:      time.Now().UTC(),
	}

	if req.Save {
		if s.repo == nil {
			logger.Warningf("forecast not saved, no repository configured")
		} else if err := s.repo.SaveForecast(ctx, result); err != nil {
			return nil, fmt.Errorf("could not save forecast: %w", err)
		}
	}

	logger.Infof("forecast finished with %.2f probability", probability)

	return &result, nil
}
