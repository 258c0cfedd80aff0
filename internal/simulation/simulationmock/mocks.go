// Package simulationmock has testify mocks for the simulation interfaces.
package simulationmock

import (
	"github.com/stretchr/testify/mock"

	"github.com/slok/forecast/internal/simulation"
)

// MockProgressor is a mock of simulation.Progressor.
type MockProgressor struct {
	mock.Mock
}

func (m *MockProgressor) ProgressOneDay() {
	m.Called()
}

func (m *MockProgressor) IsComplete() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockIntPool is a mock of simulation.IntPool.
type MockIntPool struct {
	mock.Mock
}

func (m *MockIntPool) Pick() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockIntPool) PickMultiple(n int) ([]int, error) {
	args := m.Called(n)
	var r0 []int
	if v := args.Get(0); v != nil {
		r0 = v.([]int)
	}
	return r0, args.Error(1)
}

// MockScenarioFactory is a mock of simulation.ScenarioFactory.
type MockScenarioFactory struct {
	mock.Mock
}

func (m *MockScenarioFactory) NewScenario(maxWorkInProgress int, tasks []*simulation.Task) (simulation.Progressor, error) {
	args := m.Called(maxWorkInProgress, tasks)
	var r0 simulation.Progressor
	if v := args.Get(0); v != nil {
		r0 = v.(simulation.Progressor)
	}
	return r0, args.Error(1)
}

// MockScenarioGenerator is a mock of simulation.ScenarioGenerator.
type MockScenarioGenerator struct {
	mock.Mock
}

func (m *MockScenarioGenerator) Generate() (simulation.Progressor, error) {
	args := m.Called()
	var r0 simulation.Progressor
	if v := args.Get(0); v != nil {
		r0 = v.(simulation.Progressor)
	}
	return r0, args.Error(1)
}

// MockSimulationRunner is a mock of simulation.SimulationRunner.
type MockSimulationRunner struct {
	mock.Mock
}

func (m *MockSimulationRunner) RunSimulation(scenario simulation.Progressor, estimatedDays int) (bool, error) {
	args := m.Called(scenario, estimatedDays)
	return args.Bool(0), args.Error(1)
}

// MockTrial is a mock of simulation.Trial.
type MockTrial struct {
	mock.Mock
}

func (m *MockTrial) RunTrial() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

// MockResultSink is a mock of simulation.ResultSink.
type MockResultSink struct {
	mock.Mock
}

func (m *MockResultSink) ReportProbability(probability float64) {
	m.Called(probability)
}
