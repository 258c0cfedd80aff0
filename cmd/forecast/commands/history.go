package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/forecast/internal/app/history"
	"github.com/slok/forecast/internal/storage/sqlite"
)

type HistoryCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     string
	limit  int
	format string
}

// NewHistoryCommand returns the history command.
func NewHistoryCommand(rootCmd *RootCommand, app *kingpin.Application) *HistoryCommand {
	c := &HistoryCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("history", "List past forecasts, newest first.")
	c.Cmd.Arg("id", "Show only the forecast with this ID.").StringVar(&c.id)
	c.Cmd.Flag("limit", "Max amount of forecasts, 0 lists all.").Short('n').IntVar(&c.limit)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, outputFormats...)

	return c
}

func (c HistoryCommand) Name() string { return c.Cmd.FullCommand() }

func (c HistoryCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer repo.Close()

	svc, err := history.NewService(history.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	forecasts, err := svc.Run(ctx, history.Request{ID: c.id, Limit: c.limit})
	if err != nil {
		return fmt.Errorf("could not list forecasts: %w", err)
	}

	p := newPrinter(c.format, c.rootCmd.Stdout)
	if c.id != "" && len(forecasts) == 1 {
		err = p.PrintForecast(forecasts[0])
	} else {
		err = p.PrintHistory(forecasts)
	}
	if err != nil {
		return fmt.Errorf("could not print forecasts: %w", err)
	}

	return nil
}
