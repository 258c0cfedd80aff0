// Package history turns historical task records into the resampling pools of a forecast.
package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/forecast/internal/bowl"
	"github.com/slok/forecast/internal/log"
	"github.com/slok/forecast/internal/model"
)

// RecordReader reads historical task records.
type RecordReader interface {
	ListRecords(ctx context.Context) ([]model.TaskRecord, error)
}

// CachedSourceConfig is the configuration for the cached source.
type CachedSourceConfig struct {
	Reader RecordReader
	Logger log.Logger
}

func (c *CachedSourceConfig) defaults() error {
	if c.Reader == nil {
		return fmt.Errorf("record reader is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "history.CachedSource"})

	return nil
}

// CachedSource reads the records once and returns the same snapshot afterwards.
type CachedSource struct {
	reader RecordReader
	logger log.Logger

	mu       sync.Mutex
	snapshot *Snapshot
}

// NewCachedSource returns a new cached source.
func NewCachedSource(cfg CachedSourceConfig) (*CachedSource, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &CachedSource{
		reader: cfg.Reader,
		logger: cfg.Logger,
	}, nil
}

// Snapshot returns the historical records, reading them on the first call.
// A failed read is not cached.
func (c *CachedSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil {
		return c.snapshot, nil
	}

	records, err := c.reader.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not read records: %w", err)
	}

	c.snapshot = NewSnapshot(records)
	c.logger.Debugf("loaded %d historical records", len(records))

	return c.snapshot, nil
}

// Snapshot is an immutable set of historical records.
type Snapshot struct {
	records []model.TaskRecord
}

// NewSnapshot returns a snapshot with a copy of the records.
func NewSnapshot(records []model.TaskRecord) *Snapshot {
	rs := make([]model.TaskRecord, len(records))
	copy(rs, records)
	return &Snapshot{records: rs}
}

// Records returns a copy of the snapshot records.
func (s *Snapshot) Records() []model.TaskRecord {
	rs := make([]model.TaskRecord, len(s.records))
	copy(rs, s.records)
	return rs
}

// Len returns the amount of records.
func (s *Snapshot) Len() int { return len(s.records) }

// WorkInProgressBowl returns a bowl with one WIP sample per historical day.
func (s *Snapshot) WorkInProgressBowl(f bowl.Factory) *bowl.Bowl[int] {
	b := bowl.New[int](f)
	NewWorkInProgressCalculator(s.records).Fill(b)
	return b
}

// CycleTimeBowl returns a bowl with the cycle time of every record.
func (s *Snapshot) CycleTimeBowl(f bowl.Factory) *bowl.Bowl[int] {
	b := bowl.New[int](f)
	for _, r := range s.records {
		b.Add(r.CycleTime())
	}
	return b
}
