package simulation

import (
	"fmt"

	"github.com/slok/forecast/internal/model"
)

// Progressor is something that can be worked day by day until it's complete.
type Progressor interface {
	ProgressOneDay()
	IsComplete() bool
}

// ScenarioFactory creates scenarios.
type ScenarioFactory interface {
	NewScenario(maxWorkInProgress int, tasks []*Task) (Progressor, error)
}

// ScenarioFactoryFunc is a helper to create ScenarioFactory from functions.
type ScenarioFactoryFunc func(maxWorkInProgress int, tasks []*Task) (Progressor, error)

// NewScenario satisfies ScenarioFactory interface.
func (f ScenarioFactoryFunc) NewScenario(maxWorkInProgress int, tasks []*Task) (Progressor, error) {
	return f(maxWorkInProgress, tasks)
}

// BoundedScenarioFactory creates WIP bounded scenarios.
var BoundedScenarioFactory = ScenarioFactoryFunc(func(maxWorkInProgress int, tasks []*Task) (Progressor, error) {
	return NewScenario(maxWorkInProgress, tasks)
})

// Scenario is a set of tasks worked with a limit of tasks in progress at the same time.
// The order of the tasks is the priority used to decide what tasks are worked on each day.
type Scenario struct {
	maxWorkInProgress int
	tasks             []*Task
}

// NewScenario returns a new scenario.
func NewScenario(maxWorkInProgress int, tasks []*Task) (*Scenario, error) {
	if maxWorkInProgress < 0 {
		return nil, fmt.Errorf("max work in progress can't be negative, got: %d: %w", maxWorkInProgress, model.ErrNotValid)
	}

	return &Scenario{
		maxWorkInProgress: maxWorkInProgress,
		tasks:             tasks,
	}, nil
}

// ProgressOneDay works one day on the first incomplete tasks, up to the max work in progress.
func (s *Scenario) ProgressOneDay() {
	progressed := 0
	for _, t := range s.tasks {
		if progressed >= s.maxWorkInProgress {
			return
		}

		if t.IsComplete() {
			continue
		}

		t.ProgressOneDay()
		progressed++
	}
}

// IsComplete returns true when all the tasks are complete.
func (s *Scenario) IsComplete() bool {
	for _, t := range s.tasks {
		if !t.IsComplete() {
			return false
		}
	}
	return true
}

// MaxWorkInProgress returns the scenario WIP limit.
func (s *Scenario) MaxWorkInProgress() int { return s.maxWorkInProgress }

// Tasks returns the scenario tasks.
func (s *Scenario) Tasks() []*Task { return s.tasks }
