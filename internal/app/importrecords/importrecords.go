package importrecords

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/forecast/internal/log"
	"github.com/slok/forecast/internal/model"
	"github.com/slok/forecast/internal/storage"
)

// ServiceConfig is the configuration for the import records service.
type ServiceConfig struct {
	Reader     storage.RecordReader
	Repository storage.RecordRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Reader == nil {
		return fmt.Errorf("record reader is required")
	}

	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ImportRecords"})
	return nil
}

// Service imports historical task records into the repository.
type Service struct {
	reader storage.RecordReader
	repo   storage.RecordRepository
	logger log.Logger
}

// NewService creates a new import records service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		reader: cfg.Reader,
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents an import request.
type Request struct {
	// Replace swaps the stored records with the imported ones, the stored
	// records are kept if the import fails.
	Replace bool
}

// Run reads, validates and stores the records, returning the stored ones.
// Nothing is stored if any record is invalid.
func (s *Service) Run(ctx context.Context, req Request) ([]model.TaskRecord, error) {
	read, err := s.reader.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not read records: %w", err)
	}
	records := make([]model.TaskRecord, len(read))
	copy(records, read)

	now := time.Now().UTC()
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid record %d: %w", i, err)
		}
		if records[i].ID == "" {
			records[i].ID = ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
		}
	}

	if req.Replace {
		if err := s.repo.ReplaceRecords(ctx, records); err != nil {
			return nil, fmt.Errorf("could not replace records: %w", err)
		}
		if len(records) == 0 {
			s.logger.Warningf("stored records deleted, no records to import")
			return records, nil
		}
		s.logger.Infof("%d records imported replacing the stored ones", len(records))
		return records, nil
	}

	if len(records) == 0 {
		s.logger.Warningf("no records to import")
		return records, nil
	}

	if err := s.repo.SaveRecords(ctx, records); err != nil {
		return nil, fmt.Errorf("could not save records: %w", err)
	}

	s.logger.Infof("%d records imported", len(records))
	return records, nil
}
