package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/slok/forecast/internal/model"
)

// TablePrinter prints forecast information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintForecast prints a detailed forecast result.
func (t *TablePrinter) PrintForecast(f model.ForecastResult) error {
	fmt.Fprintf(t.writer, "ID:           %s\n", f.ID)
	fmt.Fprintf(t.writer, "Stories:      %d\n", f.AmountOfStories)
	fmt.Fprintf(t.writer, "Days:         %d\n", f.EstimatedDays)
	fmt.Fprintf(t.writer, "Simulations:  %d\n", f.AmountOfSimulations)
	fmt.Fprintf(t.writer, "Successful:   %d\n", f.Successful)
	fmt.Fprintf(t.writer, "Records:      %d\n", f.Records)
	fmt.Fprintf(t.writer, "Seed:         %d\n", f.Seed)
	fmt.Fprintf(t.writer, "Created:      %s\n", FormatTimestamp(f.CreatedAt))
	fmt.Fprintf(t.writer, "Probability:  %s\n", FormatProbability(f.Probability))

	return nil
}

// PrintHistory prints forecasts in a table format.
func (t *TablePrinter) PrintHistory(forecasts []model.ForecastResult) error {
	if len(forecasts) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tSTORIES\tDAYS\tSIMULATIONS\tPROBABILITY\tCREATED")
	for _, f := range forecasts {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\n",
			f.ID,
			f.AmountOfStories,
			f.EstimatedDays,
			f.AmountOfSimulations,
			FormatProbability(f.Probability),
			TimeAgo(f.CreatedAt),
		)
	}

	return nil
}

// PrintRecords prints historical records in a table format.
func (t *TablePrinter) PrintRecords(records []model.TaskRecord) error {
	if len(records) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tSTART\tEND\tCYCLE TIME")
	for _, r := range records {
		name := r.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, name, r.Start, r.End, FormatDays(r.CycleTime()))
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
