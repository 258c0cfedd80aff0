// Package storagemock has testify mocks for the storage interfaces.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/slok/forecast/internal/model"
)

// MockRecordRepository is a mock of storage.RecordRepository.
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) ListRecords(ctx context.Context) ([]model.TaskRecord, error) {
	args := m.Called(ctx)
	var r0 []model.TaskRecord
	if v := args.Get(0); v != nil {
		r0 = v.([]model.TaskRecord)
	}
	return r0, args.Error(1)
}

func (m *MockRecordRepository) SaveRecords(ctx context.Context, records []model.TaskRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockRecordRepository) ReplaceRecords(ctx context.Context, records []model.TaskRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// MockForecastRepository is a mock of storage.ForecastRepository.
type MockForecastRepository struct {
	mock.Mock
}

func (m *MockForecastRepository) SaveForecast(ctx context.Context, f model.ForecastResult) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockForecastRepository) GetForecast(ctx context.Context, id string) (*model.ForecastResult, error) {
	args := m.Called(ctx, id)
	var r0 *model.ForecastResult
	if v := args.Get(0); v != nil {
		r0 = v.(*model.ForecastResult)
	}
	return r0, args.Error(1)
}

func (m *MockForecastRepository) ListForecasts(ctx context.Context) ([]model.ForecastResult, error) {
	args := m.Called(ctx)
	var r0 []model.ForecastResult
	if v := args.Get(0); v != nil {
		r0 = v.([]model.ForecastResult)
	}
	return r0, args.Error(1)
}

// MockRecordReader is a mock of storage.RecordReader.
type MockRecordReader struct {
	mock.Mock
}

func (m *MockRecordReader) ListRecords(ctx context.Context) ([]model.TaskRecord, error) {
	args := m.Called(ctx)
	var r0 []model.TaskRecord
	if v := args.Get(0); v != nil {
		r0 = v.([]model.TaskRecord)
	}
	return r0, args.Error(1)
}
