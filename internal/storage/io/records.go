package io

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/slok/forecast/internal/model"
)

// RecordsCSVRepository reads task records from a CSV file.
//
// Every row is `start,end[,name]` with `YYYY-MM-DD` dates, a first row
// starting with a non date value is treated as a header.
type RecordsCSVRepository struct {
	fs   fs.FS
	path string
}

// NewRecordsCSVRepository creates a new CSV records repository.
func NewRecordsCSVRepository(filesystem fs.FS, path string) *RecordsCSVRepository {
	return &RecordsCSVRepository{fs: filesystem, path: path}
}

// ListRecords satisfies storage.RecordReader interface.
func (r *RecordsCSVRepository) ListRecords(ctx context.Context) ([]model.TaskRecord, error) {
	f, err := r.fs.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records := []model.TaskRecord{}
	for line := 1; ; line++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing CSV: %w", err)
		}

		if len(row) < 2 {
			return nil, fmt.Errorf("line %d: start and end columns are required: %w", line, model.ErrNotValid)
		}

		start, end := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		if line == 1 && isHeader(start) {
			continue
		}

		rec, err := model.NewTaskRecord(start, end)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) > 2 {
			rec.Name = strings.TrimSpace(row[2])
		}

		records = append(records, rec)
	}

	return records, nil
}

func isHeader(v string) bool {
	_, err := model.ParseWorkDay(v)
	return err != nil
}

// RecordsYAMLRepository reads task records from a YAML file.
type RecordsYAMLRepository struct {
	fs   fs.FS
	path string
}

// NewRecordsYAMLRepository creates a new YAML records repository.
func NewRecordsYAMLRepository(filesystem fs.FS, path string) *RecordsYAMLRepository {
	return &RecordsYAMLRepository{fs: filesystem, path: path}
}

// RecordsFile represents the YAML structure of a records file.
type RecordsFile struct {
	Records []RecordConfig `yaml:"records"`
}

// RecordConfig represents the YAML structure of a task record.
type RecordConfig struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// ListRecords satisfies storage.RecordReader interface.
func (r *RecordsYAMLRepository) ListRecords(ctx context.Context) ([]model.TaskRecord, error) {
	data, err := fs.ReadFile(r.fs, r.path)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var file RecordsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	records := make([]model.TaskRecord, 0, len(file.Records))
	for i, rc := range file.Records {
		rec, err := model.NewTaskRecord(rc.Start, rc.End)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rec.Name = rc.Name
		records = append(records, rec)
	}

	return records, nil
}
