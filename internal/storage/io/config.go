package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/slok/forecast/internal/model"
)

// ForecastConfigYAMLRepository loads forecast configuration from YAML files.
type ForecastConfigYAMLRepository struct {
	fs fs.FS
}

// NewForecastConfigYAMLRepository creates a new YAML forecast config repository.
func NewForecastConfigYAMLRepository(filesystem fs.FS) *ForecastConfigYAMLRepository {
	return &ForecastConfigYAMLRepository{fs: filesystem}
}

// ForecastConfig represents the YAML structure of a forecast configuration.
// Unset fields are nil so they can be told apart from zero values.
type ForecastConfig struct {
	Simulations   *int    `yaml:"simulations"`
	EstimatedDays *int    `yaml:"estimated_days"`
	Stories       *int    `yaml:"stories"`
	Seed          *uint64 `yaml:"seed"`
}

// GetConfig loads a forecast configuration from a YAML file, the unset fields
// keep the values of base. The result is validated.
func (r *ForecastConfigYAMLRepository) GetConfig(ctx context.Context, path string, base model.ForecastConfig) (model.ForecastConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.ForecastConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.ForecastConfig{}, ctx.Err()
	}

	var cfg ForecastConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.ForecastConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	res := cfg.merge(base)
	if err := res.Validate(); err != nil {
		return model.ForecastConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return res, nil
}

func (c ForecastConfig) merge(base model.ForecastConfig) model.ForecastConfig {
	if c.Simulations != nil {
		base.AmountOfSimulations = *c.Simulations
	}
	if c.EstimatedDays != nil {
		base.EstimatedDays = *c.EstimatedDays
	}
	if c.Stories != nil {
		base.AmountOfStories = *c.Stories
	}
	if c.Seed != nil {
		base.Seed = *c.Seed
	}
	return base
}
