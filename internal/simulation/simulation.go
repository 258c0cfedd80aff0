package simulation

import (
	"fmt"

	"github.com/slok/forecast/internal/model"
)

// SimulationState is the state of a simulation.
type SimulationState string

const (
	SimulationStatePending SimulationState = "pending"
	SimulationStateRunning SimulationState = "running"
	SimulationStateSuccess SimulationState = "success"
	SimulationStateFailure SimulationState = "failure"
)

// Simulation plays a scenario for a fixed amount of days.
type Simulation struct {
	scenario      Progressor
	estimatedDays int
	state         SimulationState
}

// NewSimulation returns a pending simulation.
func NewSimulation(scenario Progressor, estimatedDays int) (*Simulation, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is required")
	}

	if estimatedDays < 0 {
		return nil, fmt.Errorf("estimated days can't be negative, got: %d: %w", estimatedDays, model.ErrNotValid)
	}

	return &Simulation{
		scenario:      scenario,
		estimatedDays: estimatedDays,
		state:         SimulationStatePending,
	}, nil
}

// Run progresses the scenario exactly the estimated days, even if it completes before,
// and returns true if the scenario is complete at the end.
// A finished simulation is not played again, its outcome is returned.
func (s *Simulation) Run() bool {
	if s.state == SimulationStatePending {
		s.state = SimulationStateRunning
		for range s.estimatedDays {
			s.scenario.ProgressOneDay()
		}

		s.state = SimulationStateFailure
		if s.scenario.IsComplete() {
			s.state = SimulationStateSuccess
		}
	}

	return s.state == SimulationStateSuccess
}

// State returns the current state of the simulation.
func (s *Simulation) State() SimulationState { return s.state }

// SimulationRunner runs a scenario simulation.
type SimulationRunner interface {
	RunSimulation(scenario Progressor, estimatedDays int) (bool, error)
}

// SimulationRunnerFunc is a helper to create SimulationRunner from functions.
type SimulationRunnerFunc func(scenario Progressor, estimatedDays int) (bool, error)

// RunSimulation satisfies SimulationRunner interface.
func (f SimulationRunnerFunc) RunSimulation(scenario Progressor, estimatedDays int) (bool, error) {
	return f(scenario, estimatedDays)
}

// DayByDayRunner runs a Simulation.
var DayByDayRunner = SimulationRunnerFunc(func(scenario Progressor, estimatedDays int) (bool, error) {
	sim, err := NewSimulation(scenario, estimatedDays)
	if err != nil {
		return false, err
	}
	return sim.Run(), nil
})
