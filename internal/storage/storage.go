package storage

import (
	"context"

	"github.com/slok/forecast/internal/model"
)

// RecordRepository is the interface for historical task record persistence.
type RecordRepository interface {
	ListRecords(ctx context.Context) ([]model.TaskRecord, error)
	SaveRecords(ctx context.Context, records []model.TaskRecord) error
	// ReplaceRecords swaps all the stored records with the new ones atomically.
	ReplaceRecords(ctx context.Context, records []model.TaskRecord) error
}

// ForecastRepository is the interface for forecast result persistence.
type ForecastRepository interface {
	SaveForecast(ctx context.Context, f model.ForecastResult) error
	GetForecast(ctx context.Context, id string) (*model.ForecastResult, error)
	// ListForecasts returns the forecasts, newest first.
	ListForecasts(ctx context.Context) ([]model.ForecastResult, error)
}

// RecordReader reads historical task records from a data source.
type RecordReader interface {
	ListRecords(ctx context.Context) ([]model.TaskRecord, error)
}
