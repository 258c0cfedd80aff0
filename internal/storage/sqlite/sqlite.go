package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/forecast/internal/log"
	"github.com/slok/forecast/internal/model"
	"github.com/slok/forecast/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.RecordRepository and storage.ForecastRepository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(migrations.MigratorConfig{DB: db, Logger: cfg.Logger})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	version, err := migrator.Up(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s with schema version %d", cfg.DBPath, version)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// ListRecords returns all records in insertion order.
func (r *Repository) ListRecords(ctx context.Context) ([]model.TaskRecord, error) {
	query := `
		SELECT id, name, start_day, end_day
		FROM records
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query records: %w", err)
	}
	defer rows.Close()

	records := []model.TaskRecord{}
	for rows.Next() {
		var rec model.TaskRecord
		var start, end string
		if err := rows.Scan(&rec.ID, &rec.Name, &start, &end); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}

		if rec.Start, err = model.ParseWorkDay(start); err != nil {
			return nil, fmt.Errorf("record %s start: %w", rec.ID, err)
		}
		if rec.End, err = model.ParseWorkDay(end); err != nil {
			return nil, fmt.Errorf("record %s end: %w", rec.ID, err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// SaveRecords stores new records in a single transaction.
func (r *Repository) SaveRecords(ctx context.Context, records []model.TaskRecord) error {
	if len(records) == 0 {
		return nil
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		return insertRecords(ctx, tx, records)
	})
	if err != nil {
		return err
	}

	r.logger.Debugf("Saved %d records in repository", len(records))
	return nil
}

// ReplaceRecords deletes the stored records and stores the new ones in a
// single transaction, the stored records are kept if anything fails.
func (r *Repository) ReplaceRecords(ctx context.Context, records []model.TaskRecord) error {
	var deleted int64
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM records`)
		if err != nil {
			return fmt.Errorf("could not delete records: %w", err)
		}
		if deleted, err = result.RowsAffected(); err != nil {
			return fmt.Errorf("could not get rows affected: %w", err)
		}

		return insertRecords(ctx, tx, records)
	})
	if err != nil {
		return err
	}

	r.logger.Debugf("Replaced %d stored records with %d records", deleted, len(records))
	return nil
}

func (r *Repository) inTx(ctx context.Context, f func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // Rollback is safe to call after Commit

	if err := f(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, records []model.TaskRecord) error {
	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("record id is required: %w", model.ErrNotValid)
		}
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("invalid record %s: %w", rec.ID, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (id, name, start_day, end_day) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx, rec.ID, rec.Name, rec.Start.String(), rec.End.String())
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed: records.") {
				return fmt.Errorf("record %s: %w", rec.ID, model.ErrAlreadyExists)
			}
			return fmt.Errorf("could not insert record: %w", err)
		}
	}

	return nil
}

// SaveForecast stores a forecast result.
func (r *Repository) SaveForecast(ctx context.Context, f model.ForecastResult) error {
	if f.ID == "" {
		return fmt.Errorf("forecast id is required: %w", model.ErrNotValid)
	}

	query := `
		INSERT INTO forecasts (
			id, probability,
			simulations, successful,
			estimated_days, stories,
			seed, records, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		f.ID,
		f.Probability,
		f.AmountOfSimulations,
		f.Successful,
		f.EstimatedDays,
		f.AmountOfStories,
		strconv.FormatUint(f.Seed, 10),
		f.Records,
		f.CreatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: forecasts.") {
			return fmt.Errorf("forecast already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert forecast: %w", err)
	}

	r.logger.Debugf("Saved forecast in repository: %s", f.ID)
	return nil
}

const selectForecasts = `
	SELECT
		id, probability,
		simulations, successful,
		estimated_days, stories,
		seed, records, created_at
	FROM forecasts
`

// GetForecast retrieves a forecast by ID.
func (r *Repository) GetForecast(ctx context.Context, id string) (*model.ForecastResult, error) {
	row := r.db.QueryRowContext(ctx, selectForecasts+` WHERE id = ?`, id)
	f, err := scanForecast(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("forecast %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query forecast: %w", err)
	}

	return &f, nil
}

// ListForecasts returns all forecasts, newest first.
func (r *Repository) ListForecasts(ctx context.Context) ([]model.ForecastResult, error) {
	rows, err := r.db.QueryContext(ctx, selectForecasts+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("could not query forecasts: %w", err)
	}
	defer rows.Close()

	forecasts := []model.ForecastResult{}
	for rows.Next() {
		f, err := scanForecast(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		forecasts = append(forecasts, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return forecasts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanForecast(s scanner) (model.ForecastResult, error) {
	var f model.ForecastResult
	var seed string
	var createdAt int64

	err := s.Scan(
		&f.ID,
		&f.Probability,
		&f.AmountOfSimulations,
		&f.Successful,
		&f.EstimatedDays,
		&f.AmountOfStories,
		&seed,
		&f.Records,
		&createdAt,
	)
	if err != nil {
		return model.ForecastResult{}, err
	}

	f.Seed, err = strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return model.ForecastResult{}, fmt.Errorf("invalid seed %q: %w", seed, err)
	}
	f.CreatedAt = time.Unix(createdAt, 0).UTC()

	return f, nil
}
