package io

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strconv"

	"github.com/slok/forecast/internal/model"
)

const (
	cellsHeaderRow   = 1
	cellsNameColumn  = 1
	cellsStartColumn = 2
	cellsEndColumn   = 3
)

// RecordsCellFeedRepository reads task records from a spreadsheet cell feed JSON export.
//
// Cells are grouped by row, the second column has the start date and the third
// column the end date. The first row is the header.
type RecordsCellFeedRepository struct {
	fs   fs.FS
	path string
}

// NewRecordsCellFeedRepository creates a new cell feed records repository.
func NewRecordsCellFeedRepository(filesystem fs.FS, path string) *RecordsCellFeedRepository {
	return &RecordsCellFeedRepository{fs: filesystem, path: path}
}

// CellFeed represents the JSON structure of a spreadsheet cell feed.
type CellFeed struct {
	Feed struct {
		Entry []CellEntry `json:"entry"`
	} `json:"feed"`
}

// CellEntry represents a single cell of the feed.
type CellEntry struct {
	Cell struct {
		Row  string `json:"row"`
		Col  string `json:"col"`
		Text string `json:"$t"`
	} `json:"gs$cell"`
}

type cellRow struct {
	name, start, end string
}

// ListRecords satisfies storage.RecordReader interface.
func (r *RecordsCellFeedRepository) ListRecords(ctx context.Context) ([]model.TaskRecord, error) {
	data, err := fs.ReadFile(r.fs, r.path)
	if err != nil {
		return nil, fmt.Errorf("reading cell feed file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var feed CellFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	rows := map[int]*cellRow{}
	for _, e := range feed.Feed.Entry {
		row, err := strconv.Atoi(e.Cell.Row)
		if err != nil {
			return nil, fmt.Errorf("invalid cell row %q: %w", e.Cell.Row, model.ErrNotValid)
		}
		col, err := strconv.Atoi(e.Cell.Col)
		if err != nil {
			return nil, fmt.Errorf("invalid cell column %q: %w", e.Cell.Col, model.ErrNotValid)
		}

		if row == cellsHeaderRow {
			continue
		}

		cr, ok := rows[row]
		if !ok {
			cr = &cellRow{}
			rows[row] = cr
		}

		switch col {
		case cellsNameColumn:
			cr.name = e.Cell.Text
		case cellsStartColumn:
			cr.start = e.Cell.Text
		case cellsEndColumn:
			cr.end = e.Cell.Text
		}
	}

	rowIndexes := make([]int, 0, len(rows))
	for i := range rows {
		rowIndexes = append(rowIndexes, i)
	}
	sort.Ints(rowIndexes)

	records := make([]model.TaskRecord, 0, len(rows))
	for _, i := range rowIndexes {
		cr := rows[i]
		rec, err := model.NewTaskRecord(cr.start, cr.end)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rec.Name = cr.name
		records = append(records, rec)
	}

	return records, nil
}
