// Package lib provides a Go SDK to forecast backlog delivery programmatically.
//
// This package allows applications to store historical task records, run
// Monte Carlo forecasts over them and query past forecasts without shelling
// out to the forecast CLI binary.
//
// # Quick Start
//
// Create a client, import the finished tasks and forecast a backlog:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	_, err = client.ImportRecords(ctx, []lib.Record{
//	    {Name: "login", Start: day(2015, 4, 3), End: day(2015, 4, 6)},
//	    {Name: "logout", Start: day(2015, 4, 4), End: day(2015, 4, 5)},
//	}, nil)
//
//	res, err := client.Forecast(ctx, lib.ForecastOpts{Days: 10, Stories: 5})
//	fmt.Printf("%.2f\n", res.Probability)
//
// # Storage
//
// By default the client uses a SQLite database at ~/.forecast/forecast.db.
// Set [Config].InMemory to keep everything in memory, useful for one shot
// forecasts and tests.
//
// # Reproducibility
//
// Every forecast stores the random seed it used. Forecasting again with
// the same seed, options and records returns the same probability.
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrAlreadyExists]: Resource with the same ID already exists.
//   - [ErrNotValid]: Invalid input.
//   - [ErrEmptyHistory]: There are no historical records to forecast with.
package lib
