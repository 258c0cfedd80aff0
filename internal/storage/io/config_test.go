package io

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/forecast/internal/model"
)

func TestForecastConfigYAMLRepository_GetConfig(t *testing.T) {
	base := model.ForecastConfig{AmountOfSimulations: 100, EstimatedDays: 10, AmountOfStories: 5}

	tests := map[string]struct {
		fs     fstest.MapFS
		path   string
		expCfg model.ForecastConfig
		expErr bool
		errMsg string
	}{
		"A full config should override the base": {
			fs: fstest.MapFS{
				"forecast.yaml": &fstest.MapFile{
					Data: []byte(`simulations: 500
estimated_days: 30
stories: 12
seed: 42
`),
				},
			},
			path:   "forecast.yaml",
			expCfg: model.ForecastConfig{AmountOfSimulations: 500, EstimatedDays: 30, AmountOfStories: 12, Seed: 42},
		},
		"A partial config should keep the base for the unset fields": {
			fs: fstest.MapFS{
				"forecast.yaml": &fstest.MapFile{Data: []byte("stories: 0\n")},
			},
			path:   "forecast.yaml",
			expCfg: model.ForecastConfig{AmountOfSimulations: 100, EstimatedDays: 10, AmountOfStories: 0},
		},
		"An empty config should keep the base": {
			fs: fstest.MapFS{
				"empty.yaml": &fstest.MapFile{Data: []byte("---\n")},
			},
			path:   "empty.yaml",
			expCfg: base,
		},
		"Missing file should return error": {
			fs:     fstest.MapFS{},
			path:   "nonexistent.yaml",
			expErr: true,
			errMsg: "reading config file",
		},
		"Invalid YAML should return error": {
			fs: fstest.MapFS{
				"invalid.yaml": &fstest.MapFile{Data: []byte(`invalid: yaml: content: {}`)},
			},
			path:   "invalid.yaml",
			expErr: true,
			errMsg: "parsing YAML",
		},
		"Zero simulations should return error": {
			fs: fstest.MapFS{
				"forecast.yaml": &fstest.MapFile{Data: []byte("simulations: 0\n")},
			},
			path:   "forecast.yaml",
			expErr: true,
			errMsg: "invalid configuration",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			repo := NewForecastConfigYAMLRepository(tc.fs)
			cfg, err := repo.GetConfig(context.Background(), tc.path, base)

			if tc.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expCfg, cfg)
		})
	}
}
