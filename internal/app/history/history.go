package history

import (
	"context"
	"fmt"

	"github.com/slok/forecast/internal/log"
	"github.com/slok/forecast/internal/model"
	"github.com/slok/forecast/internal/storage"
)

// ServiceConfig is the configuration for the history service.
type ServiceConfig struct {
	Repository storage.ForecastRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service lists the stored forecasts.
type Service struct {
	repo   storage.ForecastRepository
	logger log.Logger
}

// NewService creates a new history service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the history request parameters.
type Request struct {
	// ID returns only the forecast with this ID.
	ID string
	// Limit is the max amount of forecasts returned, 0 returns all.
	Limit int
}

// Run lists the forecasts, newest first.
func (s *Service) Run(ctx context.Context, req Request) ([]model.ForecastResult, error) {
	if req.Limit < 0 {
		return nil, fmt.Errorf("limit can't be negative: %w", model.ErrNotValid)
	}

	if req.ID != "" {
		f, err := s.repo.GetForecast(ctx, req.ID)
		if err != nil {
			return nil, fmt.Errorf("could not get forecast: %w", err)
		}
		return []model.ForecastResult{*f}, nil
	}

	forecasts, err := s.repo.ListForecasts(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list forecasts: %w", err)
	}

	if req.Limit > 0 && len(forecasts) > req.Limit {
		forecasts = forecasts[:req.Limit]
	}

	s.logger.Debugf("found %d forecasts", len(forecasts))
	return forecasts, nil
}
