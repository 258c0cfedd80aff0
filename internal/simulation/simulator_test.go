package simulation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/forecast/internal/model"
	"github.com/slok/forecast/internal/simulation"
	"github.com/slok/forecast/internal/simulation/simulationmock"
)

func TestNewSimulator(t *testing.T) {
	tests := map[string]struct {
		config simulation.SimulatorConfig
		expErr bool
	}{
		"valid config should create simulator": {
			config: simulation.SimulatorConfig{
				Generator:     &simulationmock.MockScenarioGenerator{},
				EstimatedDays: 10,
			},
		},
		"missing generator should fail": {
			config: simulation.SimulatorConfig{
				EstimatedDays: 10,
			},
			expErr: true,
		},
		"negative days should fail": {
			config: simulation.SimulatorConfig{
				Generator:     &simulationmock.MockScenarioGenerator{},
				EstimatedDays: -1,
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			sim, err := simulation.NewSimulator(test.config)

			if test.expErr {
				assert.Error(t, err)
				assert.Nil(t, sim)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, sim)
			}
		})
	}
}

func TestSimulatorRunTrial(t *testing.T) {
	scenario := &simulationmock.MockProgressor{}

	tests := map[string]struct {
		mock      func(g *simulationmock.MockScenarioGenerator, r *simulationmock.MockSimulationRunner)
		expResult bool
		expErr    bool
	}{
		"A successful simulation should succeed the trial": {
			mock: func(g *simulationmock.MockScenarioGenerator, r *simulationmock.MockSimulationRunner) {
				g.On("Generate").Once().Return(scenario, nil)
				r.On("RunSimulation", scenario, 7).Once().Return(true, nil)
			},
			expResult: true,
		},
		"A failed simulation should fail the trial": {
			mock: func(g *simulationmock.MockScenarioGenerator, r *simulationmock.MockSimulationRunner) {
				g.On("Generate").Once().Return(scenario, nil)
				r.On("RunSimulation", scenario, 7).Once().Return(false, nil)
			},
			expResult: false,
		},
		"A generation error should end with error": {
			mock: func(g *simulationmock.MockScenarioGenerator, r *simulationmock.MockSimulationRunner) {
				g.On("Generate").Once().Return(nil, model.ErrEmptyPool)
			},
			expErr: true,
		},
		"A simulation error should end with error": {
			mock: func(g *simulationmock.MockScenarioGenerator, r *simulationmock.MockSimulationRunner) {
				g.On("Generate").Once().Return(scenario, nil)
				r.On("RunSimulation", scenario, 7).Once().Return(false, errors.New("something"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			g := &simulationmock.MockScenarioGenerator{}
			r := &simulationmock.MockSimulationRunner{}
			test.mock(g, r)

			sim, err := simulation.NewSimulator(simulation.SimulatorConfig{
				Generator:     g,
				Runner:        r,
				EstimatedDays: 7,
			})
			require.NoError(err)

			got, err := sim.RunTrial()

			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				assert.Equal(test.expResult, got)
			}

			g.AssertExpectations(t)
			r.AssertExpectations(t)
		})
	}
}

func TestSimulatorEmptyPoolErrorIsIdentifiable(t *testing.T) {
	g := &simulationmock.MockScenarioGenerator{}
	g.On("Generate").Return(nil, model.ErrEmptyPool)

	sim, err := simulation.NewSimulator(simulation.SimulatorConfig{Generator: g})
	require.NoError(t, err)

	_, err = sim.RunTrial()
	assert.True(t, errors.Is(err, model.ErrEmptyPool))
}
