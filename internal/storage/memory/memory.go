package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/slok/forecast/internal/log"
	"github.com/slok/forecast/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.RecordRepository and storage.ForecastRepository.
type Repository struct {
	records   []model.TaskRecord
	forecasts map[string]model.ForecastResult
	mu        sync.RWMutex
	logger    log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		forecasts: make(map[string]model.ForecastResult),
		logger:    cfg.Logger,
	}, nil
}

// ListRecords returns all records in insertion order.
func (r *Repository) ListRecords(ctx context.Context) ([]model.TaskRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]model.TaskRecord, len(r.records))
	copy(records, r.records)

	return records, nil
}

// SaveRecords stores new records.
func (r *Repository) SaveRecords(ctx context.Context, records []model.TaskRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkRecords(r.records, records); err != nil {
		return err
	}

	r.records = append(r.records, records...)
	r.logger.Debugf("Saved %d records in repository", len(records))

	return nil
}

// ReplaceRecords swaps the stored records with the new ones, the stored
// records are kept if any new record can't be stored.
func (r *Repository) ReplaceRecords(ctx context.Context, records []model.TaskRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkRecords(nil, records); err != nil {
		return err
	}

	replaced := make([]model.TaskRecord, len(records))
	copy(replaced, records)
	r.records = replaced
	r.logger.Debugf("Replaced stored records with %d records", len(records))

	return nil
}

func checkRecords(stored, records []model.TaskRecord) error {
	ids := make(map[string]struct{}, len(stored)+len(records))
	for _, existing := range stored {
		ids[existing.ID] = struct{}{}
	}

	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("record id is required: %w", model.ErrNotValid)
		}
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("invalid record %s: %w", rec.ID, err)
		}
		if _, ok := ids[rec.ID]; ok {
			return fmt.Errorf("record with id %s: %w", rec.ID, model.ErrAlreadyExists)
		}
		ids[rec.ID] = struct{}{}
	}

	return nil
}

// SaveForecast stores a forecast result.
func (r *Repository) SaveForecast(ctx context.Context, f model.ForecastResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.ID == "" {
		return fmt.Errorf("forecast id is required: %w", model.ErrNotValid)
	}

	if _, ok := r.forecasts[f.ID]; ok {
		return fmt.Errorf("forecast with id %s: %w", f.ID, model.ErrAlreadyExists)
	}

	r.forecasts[f.ID] = f
	r.logger.Debugf("Saved forecast in repository: %s", f.ID)

	return nil
}

// GetForecast retrieves a forecast by ID.
func (r *Repository) GetForecast(ctx context.Context, id string) (*model.ForecastResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.forecasts[id]
	if !ok {
		return nil, fmt.Errorf("forecast %s: %w", id, model.ErrNotFound)
	}

	// Return a copy
	fCopy := f
	return &fCopy, nil
}

// ListForecasts returns all forecasts, newest first.
func (r *Repository) ListForecasts(ctx context.Context) ([]model.ForecastResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	forecasts := make([]model.ForecastResult, 0, len(r.forecasts))
	for _, f := range r.forecasts {
		forecasts = append(forecasts, f)
	}

	sort.Slice(forecasts, func(i, j int) bool {
		if forecasts[i].CreatedAt.Equal(forecasts[j].CreatedAt) {
			return forecasts[i].ID > forecasts[j].ID
		}
		return forecasts[i].CreatedAt.After(forecasts[j].CreatedAt)
	})

	return forecasts, nil
}
