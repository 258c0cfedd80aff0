package importrecords_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/forecast/internal/app/importrecords"
	"github.com/slok/forecast/internal/log"
	"github.com/slok/forecast/internal/model"
	"github.com/slok/forecast/internal/storage/memory"
	"github.com/slok/forecast/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config importrecords.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: importrecords.ServiceConfig{
				Reader:     &storagemock.MockRecordReader{},
				Repository: &storagemock.MockRecordRepository{},
				Logger:     log.Noop,
			},
		},
		"missing reader should fail": {
			config: importrecords.ServiceConfig{
				Repository: &storagemock.MockRecordRepository{},
			},
			expErr: true,
		},
		"missing repository should fail": {
			config: importrecords.ServiceConfig{
				Reader: &storagemock.MockRecordReader{},
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			svc, err := importrecords.NewService(test.config)

			if test.expErr {
				require.Error(err)
				require.Nil(svc)
			} else {
				require.NoError(err)
				require.NotNil(svc)
			}
		})
	}
}

func TestService_Run(t *testing.T) {
	r1 := model.TaskRecord{Name: "t1", Start: model.MustParseWorkDay("2015-04-03"), End: model.MustParseWorkDay("2015-04-06")}
	r2 := model.TaskRecord{ID: "fixed", Start: model.MustParseWorkDay("2015-04-04"), End: model.MustParseWorkDay("2015-04-05")}
	invalid := model.TaskRecord{Start: model.MustParseWorkDay("2015-04-04"), End: model.MustParseWorkDay("2015-04-01")}

	tests := map[string]struct {
		mock     func(mr *storagemock.MockRecordReader, mrepo *storagemock.MockRecordRepository)
		req      importrecords.Request
		expCount int
		expErr   bool
	}{
		"Importing records should store them with an ID.": {
			mock: func(mr *storagemock.MockRecordReader, mrepo *storagemock.MockRecordRepository) {
				mr.On("ListRecords", mock.Anything).Once().Return([]model.TaskRecord{r1, r2}, nil)
				mrepo.On("SaveRecords", mock.Anything, mock.MatchedBy(func(rs []model.TaskRecord) bool {
					return len(rs) == 2 && rs[0].ID != "" && rs[0].Name == "t1" && rs[1].ID == "fixed"
				})).Once().Return(nil)
			},
			expCount: 2,
		},
		"Replacing should swap the stored records in one step.": {
			mock: func(mr *storagemock.MockRecordReader, mrepo *storagemock.MockRecordRepository) {
				mr.On("ListRecords", mock.Anything).Once().Return([]model.TaskRecord{r1}, nil)
				mrepo.On("ReplaceRecords", mock.Anything, mock.MatchedBy(func(rs []model.TaskRecord) bool {
					return len(rs) == 1 && rs[0].ID != ""
				})).Once().Return(nil)
			},
			req:      importrecords.Request{Replace: true},
			expCount: 1,
		},
		"Replacing with no records should leave the store empty.": {
			mock: func(mr *storagemock.MockRecordReader, mrepo *storagemock.MockRecordRepository) {
				mr.On("ListRecords", mock.Anything).Once().Return([]model.TaskRecord{}, nil)
				mrepo.On("ReplaceRecords", mock.Anything, []model.TaskRecord{}).Once().Return(nil)
			},
			req:      importrecords.Request{Replace: true},
			expCount: 0,
		},
		"An invalid record should not store anything.": {
			mock: func(mr *storagemock.MockRecordReader, mrepo *storagemock.MockRecordRepository) {
				mr.On("ListRecords", mock.Anything).Once().Return([]model.TaskRecord{r1, invalid}, nil)
			},
			req:    importrecords.Request{Replace: true},
			expErr: true,
		},
		"A reader error should fail.": {
			mock: func(mr *storagemock.MockRecordReader, mrepo *storagemock.MockRecordRepository) {
				mr.On("ListRecords", mock.Anything).Once().Return(nil, fmt.Errorf("something"))
			},
			expErr: true,
		},
		"A replace error should fail.": {
			mock: func(mr *storagemock.MockRecordReader, mrepo *storagemock.MockRecordRepository) {
				mr.On("ListRecords", mock.Anything).Once().Return([]model.TaskRecord{r1}, nil)
				mrepo.On("ReplaceRecords", mock.Anything, mock.Anything).Once().Return(fmt.Errorf("something"))
			},
			req:    importrecords.Request{Replace: true},
			expErr: true,
		},
		"A save error should fail.": {
			mock: func(mr *storagemock.MockRecordReader, mrepo *storagemock.MockRecordRepository) {
				mr.On("ListRecords", mock.Anything).Once().Return([]model.TaskRecord{r1}, nil)
				mrepo.On("SaveRecords", mock.Anything, mock.Anything).Once().Return(fmt.Errorf("something"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mr := &storagemock.MockRecordReader{}
			mrepo := &storagemock.MockRecordRepository{}
			test.mock(mr, mrepo)

			svc, err := importrecords.NewService(importrecords.ServiceConfig{
				Reader:     mr,
				Repository: mrepo,
				Logger:     log.Noop,
			})
			require.NoError(err)

			records, err := svc.Run(context.Background(), test.req)

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
				assert.Len(records, test.expCount)
			}

			mr.AssertExpectations(t)
			mrepo.AssertExpectations(t)
		})
	}
}

func TestServiceRunWithMemoryRepository(t *testing.T) {
	require := require.New(t)

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(err)

	reader := &storagemock.MockRecordReader{}
	reader.On("ListRecords", mock.Anything).Return([]model.TaskRecord{
		{Start: model.MustParseWorkDay("2015-04-03"), End: model.MustParseWorkDay("2015-04-06")},
		{Start: model.MustParseWorkDay("2015-04-04"), End: model.MustParseWorkDay("2015-04-05")},
	}, nil)

	svc, err := importrecords.NewService(importrecords.ServiceConfig{Reader: reader, Repository: repo})
	require.NoError(err)

	// Importing twice without replacing keeps both imports.
	_, err = svc.Run(context.Background(), importrecords.Request{})
	require.NoError(err)
	_, err = svc.Run(context.Background(), importrecords.Request{})
	require.NoError(err)
	stored, err := repo.ListRecords(context.Background())
	require.NoError(err)
	require.Len(stored, 4)

	_, err = svc.Run(context.Background(), importrecords.Request{Replace: true})
	require.NoError(err)
	stored, err = repo.ListRecords(context.Background())
	require.NoError(err)
	require.Len(stored, 2)
	require.Equal(3, stored[0].CycleTime())
}

func TestServiceRunReplaceKeepsStoredRecordsOnFailure(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(err)
	require.NoError(repo.SaveRecords(ctx, []model.TaskRecord{
		{ID: "a", Start: model.MustParseWorkDay("2015-04-03"), End: model.MustParseWorkDay("2015-04-06")},
		{ID: "b", Start: model.MustParseWorkDay("2015-04-04"), End: model.MustParseWorkDay("2015-04-05")},
	}))

	reader := &storagemock.MockRecordReader{}
	reader.On("ListRecords", mock.Anything).Return([]model.TaskRecord{
		{ID: "dup", Start: model.MustParseWorkDay("2015-04-03"), End: model.MustParseWorkDay("2015-04-04")},
		{ID: "dup", Start: model.MustParseWorkDay("2015-04-04"), End: model.MustParseWorkDay("2015-04-05")},
	}, nil)

	svc, err := importrecords.NewService(importrecords.ServiceConfig{Reader: reader, Repository: repo})
	require.NoError(err)

	_, err = svc.Run(ctx, importrecords.Request{Replace: true})
	require.ErrorIs(err, model.ErrAlreadyExists)

	stored, err := repo.ListRecords(ctx)
	require.NoError(err)
	require.Len(stored, 2)
	require.Equal("a", stored[0].ID)
	require.Equal("b", stored[1].ID)
}
