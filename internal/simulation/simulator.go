package simulation

import (
	"fmt"

	"github.com/slok/forecast/internal/model"
)

// ScenarioGenerator generates scenarios.
type ScenarioGenerator interface {
	Generate() (Progressor, error)
}

// SimulatorConfig is the configuration for the simulator.
type SimulatorConfig struct {
	Generator ScenarioGenerator
	// Runner defaults to DayByDayRunner.
	Runner        SimulationRunner
	EstimatedDays int
}

func (c *SimulatorConfig) defaults() error {
	if c.Generator == nil {
		return fmt.Errorf("scenario generator is required")
	}

	if c.Runner == nil {
		c.Runner = DayByDayRunner
	}

	if c.EstimatedDays < 0 {
		return fmt.Errorf("estimated days can't be negative, got: %d: %w", c.EstimatedDays, model.ErrNotValid)
	}

	return nil
}

// Simulator runs single trials: a new generated scenario simulated for the estimated days.
type Simulator struct {
	generator     ScenarioGenerator
	runner        SimulationRunner
	estimatedDays int
}

// NewSimulator returns a new simulator.
func NewSimulator(cfg SimulatorConfig) (*Simulator, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Simulator{
		generator:     cfg.Generator,
		runner:        cfg.Runner,
		estimatedDays: cfg.EstimatedDays,
	}, nil
}

// RunTrial satisfies Trial interface.
func (s *Simulator) RunTrial() (bool, error) {
	scenario, err := s.generator.Generate()
	if err != nil {
		return false, fmt.Errorf("could not generate scenario: %w", err)
	}

	ok, err := s.runner.RunSimulation(scenario, s.estimatedDays)
	if err != nil {
		return false, fmt.Errorf("could not run simulation: %w", err)
	}

	return ok, nil
}
