package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/forecast/internal/app/importrecords"
	"github.com/slok/forecast/internal/storage/sqlite"
)

type ImportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	file          string
	recordsFormat string
	replace       bool
}

// NewImportCommand returns the import command.
func NewImportCommand(rootCmd *RootCommand, app *kingpin.Application) *ImportCommand {
	c := &ImportCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("import", "Import historical task records into the database.")
	c.Cmd.Flag("file", "Records file to import.").Short('f').Required().StringVar(&c.file)
	c.Cmd.Flag("records-format", "Format of the records file.").Default(recordsFormatCSV).EnumVar(&c.recordsFormat, recordsFormats...)
	c.Cmd.Flag("replace", "Replace the stored records instead of appending.").BoolVar(&c.replace)

	return c
}

func (c ImportCommand) Name() string { return c.Cmd.FullCommand() }

func (c ImportCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	reader, err := newRecordReader(c.file, c.recordsFormat)
	if err != nil {
		return err
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer repo.Close()

	svc, err := importrecords.NewService(importrecords.ServiceConfig{
		Reader:     reader,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	records, err := svc.Run(ctx, importrecords.Request{Replace: c.replace})
	if err != nil {
		return fmt.Errorf("could not import records: %w", err)
	}

	return newPrinter(formatTable, c.rootCmd.Stdout).PrintMessage(fmt.Sprintf("Imported %d records", len(records)))
}
