package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/forecast/internal/app/records"
	"github.com/slok/forecast/internal/model"
	"github.com/slok/forecast/internal/storage/sqlite"
)

type RecordsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	activeOn string
	format   string
}

// NewRecordsCommand returns the records command.
func NewRecordsCommand(rootCmd *RootCommand, app *kingpin.Application) *RecordsCommand {
	c := &RecordsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("records", "List the stored historical task records.")
	c.Cmd.Flag("active-on", "Only records in progress on this day (YYYY-MM-DD).").StringVar(&c.activeOn)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, outputFormats...)

	return c
}

func (c RecordsCommand) Name() string { return c.Cmd.FullCommand() }

func (c RecordsCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	var activeOn *model.WorkDay
	if c.activeOn != "" {
		day, err := model.ParseWorkDay(c.activeOn)
		if err != nil {
			return fmt.Errorf("invalid --active-on value: %w", err)
		}
		activeOn = &day
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer repo.Close()

	svc, err := records.NewService(records.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	rs, err := svc.Run(ctx, records.Request{ActiveOn: activeOn})
	if err != nil {
		return fmt.Errorf("could not list records: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintRecords(rs); err != nil {
		return fmt.Errorf("could not print records: %w", err)
	}

	return nil
}
