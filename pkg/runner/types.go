// Package runner drives periodic analytics maintenance.
//
// A runner ticks at a configurable interval: each tick folds newly
// completed sessions into the analytics records and, when the tick
// crosses a day or ISO-week boundary, zeroes the corresponding period
// totals first. A config watcher can be attached to retune the tick
// interval while the daemon runs.
//
// Example usage:
//
//	r, err := runner.New(runner.Config{RunInterval: time.Minute}, agg, nil, log)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := r.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Stop()
package runner

import (
	"time"
)

// Config holds the configuration for the runner.
type Config struct {
	// RunInterval is the time between aggregation passes.
	// Default: 1 minute.
	RunInterval time.Duration

	// Location resolves day and week boundaries.
	// Default: time.Local.
	Location *time.Location

	// Now supplies the current time. Defaults to time.Now.
	Now func() time.Time
}

// Runner periodically folds completed sessions and resets period
// totals at day and week boundaries.
type Runner interface {
	// Start begins the tick loop. Returns immediately.
	Start() error

	// Stop stops the runner gracefully.
	Stop() error
}
