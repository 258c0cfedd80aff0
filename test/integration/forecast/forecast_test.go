package forecast_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intforecast "github.com/slok/forecast/test/integration/forecast"
)

type forecastOutput struct {
	ID          string  `json:"id"`
	Probability float64 `json:"probability"`
	Simulations int     `json:"simulations"`
	Seed        uint64  `json:"seed"`
}

const cellFeed = `{"feed":{"entry":[
	{"gs$cell":{"row":"1","col":"2","$t":"Start"}},
	{"gs$cell":{"row":"1","col":"3","$t":"End"}},
	{"gs$cell":{"row":"2","col":"2","$t":"2015-04-01"}},
	{"gs$cell":{"row":"2","col":"3","$t":"2015-04-04"}},
	{"gs$cell":{"row":"3","col":"2","$t":"2015-04-02"}},
	{"gs$cell":{"row":"3","col":"3","$t":"2015-04-03"}},
	{"gs$cell":{"row":"4","col":"2","$t":"2015-04-02"}},
	{"gs$cell":{"row":"4","col":"3","$t":"2015-04-08"}},
	{"gs$cell":{"row":"5","col":"2","$t":"2015-04-05"}},
	{"gs$cell":{"row":"5","col":"3","$t":"2015-04-07"}}
]}}`

func TestForecastReproducibleRun(t *testing.T) {
	config := intforecast.NewConfig(t)
	require := require.New(t)
	assert := assert.New(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test-forecast.db")
	feedPath := filepath.Join(dir, "cells.json")
	require.NoError(os.WriteFile(feedPath, []byte(cellFeed), 0o644))

	_, stderr, err := intforecast.Run(ctx, config, dbPath, "import --records-format cells --file "+feedPath)
	require.NoError(err, string(stderr))

	runForecast := func() forecastOutput {
		stdout, stderr, err := intforecast.Run(ctx, config, dbPath, "run --days 8 --stories 4 --simulations 500 --seed 99 --format json")
		require.NoError(err, string(stderr))
		var out forecastOutput
		require.NoError(json.Unmarshal(stdout, &out))
		return out
	}

	f1 := runForecast()
	f2 := runForecast()
	assert.Equal(f1.Probability, f2.Probability)
	assert.Equal(uint64(99), f1.Seed)
	assert.Equal(500, f1.Simulations)

	stdout, stderr, err := intforecast.Run(ctx, config, dbPath, "history --format json")
	require.NoError(err, string(stderr))
	var history []forecastOutput
	require.NoError(json.Unmarshal(stdout, &history))
	assert.Len(history, 2)
}
