package simulation

import (
	"fmt"

	"github.com/slok/forecast/internal/model"
)

// IntPool is a resampling pool of integers.
type IntPool interface {
	Pick() (int, error)
	PickMultiple(n int) ([]int, error)
}

// GeneratorConfig is the configuration for the scenario generator.
type GeneratorConfig struct {
	// WorkInProgressPool has the historical WIP samples.
	WorkInProgressPool IntPool
	// CycleTimePool has the historical task cycle times.
	CycleTimePool IntPool
	// ScenarioFactory creates the scenarios, defaults to BoundedScenarioFactory.
	ScenarioFactory ScenarioFactory
	// AmountOfStories is the backlog size of every scenario.
	AmountOfStories int
}

func (c *GeneratorConfig) defaults() error {
	if c.WorkInProgressPool == nil {
		return fmt.Errorf("work in progress pool is required")
	}

	if c.CycleTimePool == nil {
		return fmt.Errorf("cycle time pool is required")
	}

	if c.ScenarioFactory == nil {
		c.ScenarioFactory = BoundedScenarioFactory
	}

	if c.AmountOfStories < 0 {
		return fmt.Errorf("amount of stories can't be negative, got: %d: %w", c.AmountOfStories, model.ErrNotValid)
	}

	return nil
}

// Generator creates random scenarios resampling historical data.
type Generator struct {
	wipPool         IntPool
	cycleTimePool   IntPool
	factory         ScenarioFactory
	amountOfStories int
}

// NewGenerator returns a new scenario generator.
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Generator{
		wipPool:         cfg.WorkInProgressPool,
		cycleTimePool:   cfg.CycleTimePool,
		factory:         cfg.ScenarioFactory,
		amountOfStories: cfg.AmountOfStories,
	}, nil
}

// Generate returns a new scenario with a resampled WIP limit and resampled task cycle times.
// Every call returns an independent scenario with fresh tasks.
func (g *Generator) Generate() (Progressor, error) {
	maxWIP, err := g.wipPool.Pick()
	if err != nil {
		return nil, fmt.Errorf("could not pick max work in progress: %w", err)
	}

	cycleTimes, err := g.cycleTimePool.PickMultiple(g.amountOfStories)
	if err != nil {
		return nil, fmt.Errorf("could not pick task cycle times: %w", err)
	}

	tasks := make([]*Task, 0, len(cycleTimes))
	for _, ct := range cycleTimes {
		tasks = append(tasks, NewTask(ct))
	}

	scenario, err := g.factory.NewScenario(maxWIP, tasks)
	if err != nil {
		return nil, fmt.Errorf("could not create scenario: %w", err)
	}

	return scenario, nil
}
