package lib

import (
	"context"
	"fmt"
	"path/filepath"

	"k8s.io/client-go/util/homedir"

	"github.com/slok/forecast/internal/app/forecast"
	apphistory "github.com/slok/forecast/internal/app/history"
	"github.com/slok/forecast/internal/app/importrecords"
	"github.com/slok/forecast/internal/app/records"
	"github.com/slok/forecast/internal/history"
	"github.com/slok/forecast/internal/log"
	"github.com/slok/forecast/internal/storage"
	"github.com/slok/forecast/internal/storage/memory"
	"github.com/slok/forecast/internal/storage/sqlite"
)

const (
	defaultDataDir = ".forecast"
	defaultDBFile  = "forecast.db"
)

// Config configures the SDK client.
//
// All fields are optional. An empty Config{} uses ~/.forecast/forecast.db for storage.
type Config struct {
	// DBPath is the SQLite database path.
	// Default: ~/.forecast/forecast.db.
	DBPath string

	// InMemory keeps records and forecasts in memory, DBPath is ignored.
	InMemory bool

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.DBPath == "" && !c.InMemory {
		home := homedir.HomeDir()
		if home == "" {
			return fmt.Errorf("could not get user home dir")
		}
		c.DBPath = filepath.Join(home, defaultDataDir, defaultDBFile)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

type repository interface {
	storage.RecordRepository
	storage.ForecastRepository
}

// Client is the main SDK entry point.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	repo    repository
	logger  log.Logger
	closeFn func() error
}

// New creates a new SDK client.
//
// The caller must call [Client.Close] when done to release the database
// connection.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.InMemory {
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		return &Client{repo: repo, logger: cfg.Logger}, nil
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.DBPath,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	return &Client{
		repo:    repo,
		logger:  cfg.Logger,
		closeFn: repo.Close,
	}, nil
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}

// ImportRecords validates and stores historical records, returning them with their IDs.
// Nothing is stored when a record is not valid.
func (c *Client) ImportRecords(ctx context.Context, rs []Record, opts *ImportRecordsOpts) ([]Record, error) {
	if opts == nil {
		opts = &ImportRecordsOpts{}
	}

	svc, err := importrecords.NewService(importrecords.ServiceConfig{
		Reader:     toInternalRecords(rs),
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, mapError(err)
	}

	stored, err := svc.Run(ctx, importrecords.Request{Replace: opts.Replace})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalRecords(stored), nil
}

// ListRecords returns the stored historical records in import order.
func (c *Client) ListRecords(ctx context.Context) ([]Record, error) {
	svc, err := records.NewService(records.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, mapError(err)
	}

	rs, err := svc.Run(ctx, records.Request{})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalRecords(rs), nil
}

// Forecast returns the probability of finishing the stories in the days.
// It uses the stored records unless [ForecastOpts].Records is set.
func (c *Client) Forecast(ctx context.Context, opts ForecastOpts) (*ForecastResult, error) {
	var reader storage.RecordReader = c.repo
	if opts.Records != nil {
		rs := toInternalRecords(opts.Records)
		for i, r := range rs {
			if err := r.Validate(); err != nil {
				return nil, mapError(fmt.Errorf("invalid record %d: %w", i, err))
			}
		}
		reader = rs
	}

	source, err := history.NewCachedSource(history.CachedSourceConfig{
		Reader: reader,
		Logger: c.logger,
	})
	if err != nil {
		return nil, mapError(err)
	}

	svc, err := forecast.NewService(forecast.ServiceConfig{
		Source:     source,
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, mapError(err)
	}

	res, err := svc.Run(ctx, forecast.Request{
		Simulations:   opts.Simulations,
		EstimatedDays: opts.Days,
		Stories:       opts.Stories,
		Seed:          opts.Seed,
		Save:          !opts.NoSave,
	})
	if err != nil {
		return nil, mapError(err)
	}

	r := fromInternalForecast(*res)
	return &r, nil
}

// ListForecasts returns the stored forecasts, newest first.
//
// Pass nil opts to list all of them.
func (c *Client) ListForecasts(ctx context.Context, opts *ListForecastsOpts) ([]ForecastResult, error) {
	if opts == nil {
		opts = &ListForecastsOpts{}
	}

	svc, err := c.newHistoryService()
	if err != nil {
		return nil, err
	}

	fs, err := svc.Run(ctx, apphistory.Request{Limit: opts.Limit})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalForecastList(fs), nil
}

// GetForecast returns a stored forecast by ID.
func (c *Client) GetForecast(ctx context.Context, id string) (*ForecastResult, error) {
	if id == "" {
		return nil, fmt.Errorf("forecast id is required: %w", ErrNotValid)
	}

	svc, err := c.newHistoryService()
	if err != nil {
		return nil, err
	}

	fs, err := svc.Run(ctx, apphistory.Request{ID: id})
	if err != nil {
		return nil, mapError(err)
	}

	r := fromInternalForecast(fs[0])
	return &r, nil
}

func (c *Client) newHistoryService() (*apphistory.Service, error) {
	svc, err := apphistory.NewService(apphistory.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return svc, nil
}
