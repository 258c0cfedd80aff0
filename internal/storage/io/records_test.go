package io

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/forecast/internal/model"
)

type expRecord struct {
	name, start, end string
}

func toExp(records []model.TaskRecord) []expRecord {
	res := make([]expRecord, 0, len(records))
	for _, r := range records {
		res = append(res, expRecord{name: r.Name, start: r.Start.String(), end: r.End.String()})
	}
	return res
}

func TestRecordsCSVRepository_ListRecords(t *testing.T) {
	tests := map[string]struct {
		fs         fstest.MapFS
		path       string
		expRecords []expRecord
		expErr     bool
		errMsg     string
	}{
		"Records with header and names should load successfully": {
			fs: fstest.MapFS{
				"records.csv": &fstest.MapFile{
					Data: []byte(`start,end,name
2015-04-03,2015-04-06,login
2015-04-04, 2015-04-05
# Ignored comment.
2015-04-04,2015-04-06,signup
`),
				},
			},
			path: "records.csv",
			expRecords: []expRecord{
				{name: "login", start: "2015-04-03", end: "2015-04-06"},
				{name: "", start: "2015-04-04", end: "2015-04-05"},
				{name: "signup", start: "2015-04-04", end: "2015-04-06"},
			},
		},
		"An empty file should load without records": {
			fs:         fstest.MapFS{"records.csv": &fstest.MapFile{Data: []byte(``)}},
			path:       "records.csv",
			expRecords: []expRecord{},
		},
		"Missing file should return error": {
			fs:     fstest.MapFS{},
			path:   "records.csv",
			expErr: true,
			errMsg: "reading records file",
		},
		"A row with a single column should return error": {
			fs:     fstest.MapFS{"records.csv": &fstest.MapFile{Data: []byte("2015-04-03\n")}},
			path:   "records.csv",
			expErr: true,
			errMsg: "line 1",
		},
		"A record ending before starting should return error": {
			fs:     fstest.MapFS{"records.csv": &fstest.MapFile{Data: []byte("2015-04-03,2015-04-06\n2015-04-06,2015-04-03\n")}},
			path:   "records.csv",
			expErr: true,
			errMsg: "line 2",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			repo := NewRecordsCSVRepository(tc.fs, tc.path)
			records, err := repo.ListRecords(context.Background())

			if tc.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expRecords, toExp(records))
		})
	}
}

func TestRecordsYAMLRepository_ListRecords(t *testing.T) {
	tests := map[string]struct {
		fs         fstest.MapFS
		expRecords []expRecord
		expErr     bool
		errMsg     string
	}{
		"Valid records should load successfully": {
			fs: fstest.MapFS{
				"records.yaml": &fstest.MapFile{
					Data: []byte(`records:
  - name: login
    start: 2015-04-03
    end: 2015-04-06
  - start: 2015-12-31
    end: 2016-01-01
`),
				},
			},
			expRecords: []expRecord{
				{name: "login", start: "2015-04-03", end: "2015-04-06"},
				{name: "", start: "2015-12-31", end: "2016-01-01"},
			},
		},
		"Invalid YAML should return error": {
			fs: fstest.MapFS{
				"records.yaml": &fstest.MapFile{Data: []byte(`invalid: yaml: content: {}`)},
			},
			expErr: true,
			errMsg: "parsing YAML",
		},
		"A record without end should return error": {
			fs: fstest.MapFS{
				"records.yaml": &fstest.MapFile{Data: []byte("records:\n  - start: 2015-04-03\n")},
			},
			expErr: true,
			errMsg: "record 0",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			repo := NewRecordsYAMLRepository(tc.fs, "records.yaml")
			records, err := repo.ListRecords(context.Background())

			if tc.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expRecords, toExp(records))
		})
	}
}

func TestRecordsCellFeedRepository_ListRecords(t *testing.T) {
	tests := map[string]struct {
		data       string
		expRecords []expRecord
		expErr     error
	}{
		"Cells should be grouped by row skipping the header": {
			data: `{"feed":{"entry":[
				{"gs$cell":{"row":"1","col":"1","$t":"Story"}},
				{"gs$cell":{"row":"1","col":"2","$t":"Start"}},
				{"gs$cell":{"row":"1","col":"3","$t":"End"}},
				{"gs$cell":{"row":"3","col":"3","$t":"2015-04-05"}},
				{"gs$cell":{"row":"3","col":"2","$t":"2015-04-04"}},
				{"gs$cell":{"row":"2","col":"1","$t":"login"}},
				{"gs$cell":{"row":"2","col":"2","$t":"2015-04-03"}},
				{"gs$cell":{"row":"2","col":"3","$t":"2015-04-06"}},
				{"gs$cell":{"row":"2","col":"4","$t":"ignored"}}
			]}}`,
			expRecords: []expRecord{
				{name: "login", start: "2015-04-03", end: "2015-04-06"},
				{name: "", start: "2015-04-04", end: "2015-04-05"},
			},
		},
		"A feed without entries should not have records": {
			data:       `{"feed":{"entry":[]}}`,
			expRecords: []expRecord{},
		},
		"A row without end should fail": {
			data: `{"feed":{"entry":[
				{"gs$cell":{"row":"2","col":"2","$t":"2015-04-03"}}
			]}}`,
			expErr: model.ErrNotValid,
		},
		"An invalid row index should fail": {
			data: `{"feed":{"entry":[
				{"gs$cell":{"row":"x","col":"2","$t":"2015-04-03"}}
			]}}`,
			expErr: model.ErrNotValid,
		},
		"Invalid JSON should fail": {
			data:   `{"feed":`,
			expErr: errors.New("any"),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			fs := fstest.MapFS{"cells.json": &fstest.MapFile{Data: []byte(tc.data)}}
			repo := NewRecordsCellFeedRepository(fs, "cells.json")
			records, err := repo.ListRecords(context.Background())

			if tc.expErr != nil {
				require.Error(t, err)
				if errors.Is(tc.expErr, model.ErrNotValid) {
					assert.True(t, errors.Is(err, model.ErrNotValid))
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expRecords, toExp(records))
		})
	}
}

func TestRecordsReaders_ContextCancellation(t *testing.T) {
	fs := fstest.MapFS{
		"records.csv":  &fstest.MapFile{Data: []byte("2015-04-03,2015-04-06\n")},
		"records.yaml": &fstest.MapFile{Data: []byte("records: []\n")},
		"cells.json":   &fstest.MapFile{Data: []byte(`{"feed":{"entry":[]}}`)},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := NewRecordsCSVRepository(fs, "records.csv").ListRecords(ctx)
	assert.Equal(t, context.Canceled, err)
	_, err = NewRecordsYAMLRepository(fs, "records.yaml").ListRecords(ctx)
	assert.Equal(t, context.Canceled, err)
	_, err = NewRecordsCellFeedRepository(fs, "cells.json").ListRecords(ctx)
	assert.Equal(t, context.Canceled, err)
}
