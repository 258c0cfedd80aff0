package printer

import "github.com/slok/forecast/internal/model"

// Printer knows how to print forecast information in different formats.
type Printer interface {
	PrintForecast(f model.ForecastResult) error
	PrintHistory(forecasts []model.ForecastResult) error
	PrintRecords(records []model.TaskRecord) error
	PrintMessage(msg string) error
}
