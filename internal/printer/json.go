package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/forecast/internal/model"
)

// JSONPrinter prints forecast information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type forecastOutput struct {
	ID            string    `json:"id"`
	Probability   float64   `json:"probability"`
	Successful    int       `json:"successful"`
	Simulations   int       `json:"simulations"`
	EstimatedDays int       `json:"estimated_days"`
	Stories       int       `json:"stories"`
	Records       int       `json:"records"`
	Seed          uint64    `json:"seed"`
	CreatedAt     time.Time `json:"created_at"`
}

type recordOutput struct {
	ID        string        `json:"id"`
	Name      string        `json:"name,omitempty"`
	Start     model.WorkDay `json:"start"`
	End       model.WorkDay `json:"end"`
	CycleTime int           `json:"cycle_time"`
}

type messageOutput struct {
	Message string `json:"message"`
}

func newForecastOutput(f model.ForecastResult) forecastOutput {
	return forecastOutput{
		ID:            f.ID,
		Probability:   f.Probability,
		Successful:    f.Successful,
		Simulations:   f.AmountOfSimulations,
		EstimatedDays: f.EstimatedDays,
		Stories:       f.AmountOfStories,
		Records:       f.Records,
		Seed:          f.Seed,
		CreatedAt:     f.CreatedAt.UTC(),
	}
}

// PrintForecast prints a forecast result in JSON format.
func (j *JSONPrinter) PrintForecast(f model.ForecastResult) error {
	return j.encode(newForecastOutput(f))
}

// PrintHistory prints forecasts in JSON format.
func (j *JSONPrinter) PrintHistory(forecasts []model.ForecastResult) error {
	items := make([]forecastOutput, len(forecasts))
	for i, f := range forecasts {
		items[i] = newForecastOutput(f)
	}
	return j.encode(items)
}

// PrintRecords prints historical records in JSON format.
func (j *JSONPrinter) PrintRecords(records []model.TaskRecord) error {
	items := make([]recordOutput, len(records))
	for i, r := range records {
		items[i] = recordOutput{
			ID:        r.ID,
			Name:      r.Name,
			Start:     r.Start,
			End:       r.End,
			CycleTime: r.CycleTime(),
		}
	}
	return j.encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
