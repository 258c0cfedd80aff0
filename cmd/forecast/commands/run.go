package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/forecast/internal/app/forecast"
	"github.com/slok/forecast/internal/history"
	"github.com/slok/forecast/internal/model"
	"github.com/slok/forecast/internal/storage"
	storageio "github.com/slok/forecast/internal/storage/io"
	"github.com/slok/forecast/internal/storage/sqlite"
)

type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	days          int
	stories       int
	simulations   int
	seed          uint64
	configFile    string
	recordsFile   string
	recordsFormat string
	noSave        bool
	format        string

	daysSet        bool
	storiesSet     bool
	simulationsSet bool
	seedSet        bool
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("run", "Forecast the probability of finishing a backlog in time.")
	c.Cmd.Flag("days", "Estimated days to finish the backlog.").Short('d').IsSetByUser(&c.daysSet).IntVar(&c.days)
	c.Cmd.Flag("stories", "Amount of stories in the backlog.").Short('s').IsSetByUser(&c.storiesSet).IntVar(&c.stories)
	c.Cmd.Flag("simulations", "Amount of simulated trials.").Default(fmt.Sprint(model.DefaultAmountOfSimulations)).IsSetByUser(&c.simulationsSet).IntVar(&c.simulations)
	c.Cmd.Flag("seed", "Random seed to reproduce a forecast, 0 picks one.").IsSetByUser(&c.seedSet).Uint64Var(&c.seed)
	c.Cmd.Flag("config", "YAML forecast configuration file, flags set take precedence.").StringVar(&c.configFile)
	c.Cmd.Flag("records-file", "Read the historical records from a file instead of the database.").StringVar(&c.recordsFile)
	c.Cmd.Flag("records-format", "Format of the records file.").Default(recordsFormatCSV).EnumVar(&c.recordsFormat, recordsFormats...)
	c.Cmd.Flag("no-save", "Don't store the forecast in the history.").BoolVar(&c.noSave)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, outputFormats...)

	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.forecastConfig(ctx)
	if err != nil {
		return err
	}

	// The database is only required when records or forecasts live there.
	var repo *sqlite.Repository
	if c.recordsFile == "" || !c.noSave {
		repo, err = sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: c.rootCmd.DBPath,
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("could not create repository: %w", err)
		}
		defer repo.Close()
	}

	var reader storage.RecordReader
	if c.recordsFile != "" {
		reader, err = newRecordReader(c.recordsFile, c.recordsFormat)
		if err != nil {
			return err
		}
	} else {
		reader = repo
	}

	source, err := history.NewCachedSource(history.CachedSourceConfig{
		Reader: reader,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create history source: %w", err)
	}

	svcCfg := forecast.ServiceConfig{
		Source: source,
		Logger: logger,
	}
	if repo != nil {
		svcCfg.Repository = repo
	}
	svc, err := forecast.NewService(svcCfg)
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, forecast.Request{
		Simulations:   cfg.AmountOfSimulations,
		EstimatedDays: cfg.EstimatedDays,
		Stories:       cfg.AmountOfStories,
		Seed:          cfg.Seed,
		Save:          !c.noSave,
	})
	if err != nil {
		return fmt.Errorf("could not run forecast: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintForecast(*result); err != nil {
		return fmt.Errorf("could not print forecast: %w", err)
	}

	return nil
}

// forecastConfig merges the config file with the flags, flags set by the user win.
func (c RunCommand) forecastConfig(ctx context.Context) (model.ForecastConfig, error) {
	cfg, err := c.mergedConfig(ctx)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid forecast configuration: %w", err)
	}

	return cfg, nil
}

func (c RunCommand) mergedConfig(ctx context.Context) (model.ForecastConfig, error) {
	cfg := model.ForecastConfig{
		AmountOfSimulations: c.simulations,
		EstimatedDays:       c.days,
		AmountOfStories:     c.stories,
		Seed:                c.seed,
	}
	if c.configFile == "" {
		return cfg, nil
	}

	fsys, path, err := openFS(c.configFile)
	if err != nil {
		return cfg, err
	}
	fileCfg, err := storageio.NewForecastConfigYAMLRepository(fsys).GetConfig(ctx, path, cfg)
	if err != nil {
		return cfg, fmt.Errorf("could not load forecast config: %w", err)
	}

	if c.simulationsSet {
		fileCfg.AmountOfSimulations = c.simulations
	}
	if c.daysSet {
		fileCfg.EstimatedDays = c.days
	}
	if c.storiesSet {
		fileCfg.AmountOfStories = c.stories
	}
	if c.seedSet {
		fileCfg.Seed = c.seed
	}

	return fileCfg, nil
}
