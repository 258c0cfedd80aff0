package records

import (
	"context"
	"fmt"

	"github.com/slok/forecast/internal/log"
	"github.com/slok/forecast/internal/model"
	"github.com/slok/forecast/internal/storage"
)

// ServiceConfig is the configuration for the records service.
type ServiceConfig struct {
	Repository storage.RecordReader
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

// Service lists the stored historical records.
type Service struct {
	repo   storage.RecordReader
	logger log.Logger
}

// NewService creates a new records service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the records request parameters.
type Request struct {
	// ActiveOn only returns the records in progress on that day.
	ActiveOn *model.WorkDay
}

// Run lists the records.
func (s *Service) Run(ctx context.Context, req Request) ([]model.TaskRecord, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list records: %w", err)
	}

	if req.ActiveOn != nil {
		filtered := make([]model.TaskRecord, 0, len(records))
		for _, r := range records {
			if r.WasActive(*req.ActiveOn) {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	s.logger.Debugf("found %d records", len(records))
	return records, nil
}
