package commands

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/forecast/internal/log"
	"github.com/slok/forecast/internal/printer"
	"github.com/slok/forecast/internal/storage"
	storageio "github.com/slok/forecast/internal/storage/io"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

const (
	recordsFormatCSV   = "csv"
	recordsFormatYAML  = "yaml"
	recordsFormatCells = "cells"

	formatTable = "table"
	formatJSON  = "json"
)

var (
	recordsFormats = []string{recordsFormatCSV, recordsFormatYAML, recordsFormatCells}
	outputFormats  = []string{formatTable, formatJSON}
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	DBPath     string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	defaultDBPath := filepath.Join(homedir.HomeDir(), ".forecast", "forecast.db")
	app.Flag("db-path", "Path to the SQLite database file.").Envar("FORECAST_DB_PATH").Default(defaultDBPath).StringVar(&c.DBPath)

	return c
}

func newPrinter(format string, w io.Writer) printer.Printer {
	if format == formatJSON {
		return printer.NewJSONPrinter(w)
	}
	return printer.NewTablePrinter(w)
}

// openFS returns a filesystem rooted at the volume root and the path of the
// local file inside it.
func openFS(path string) (fs.FS, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not resolve path %q: %w", path, err)
	}

	root := filepath.VolumeName(abs) + string(filepath.Separator)
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return nil, "", fmt.Errorf("could not resolve path %q: %w", path, err)
	}

	return os.DirFS(root), filepath.ToSlash(rel), nil
}

func newRecordReader(path, format string) (storage.RecordReader, error) {
	fsys, p, err := openFS(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case recordsFormatCSV:
		return storageio.NewRecordsCSVRepository(fsys, p), nil
	case recordsFormatYAML:
		return storageio.NewRecordsYAMLRepository(fsys, p), nil
	case recordsFormatCells:
		return storageio.NewRecordsCellFeedRepository(fsys, p), nil
	}

	return nil, fmt.Errorf("unknown records format %q", format)
}
