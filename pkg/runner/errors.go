package runner

import "errors"

var (
	// ErrRunnerClosed is returned when operations are attempted on a closed runner.
	ErrRunnerClosed = errors.New("runner is closed")

	// ErrRunnerRunning is returned when trying to start an already running runner.
	ErrRunnerRunning = errors.New("runner is already running")

	// ErrRunnerNotRunning is returned when trying to stop a non-running runner.
	ErrRunnerNotRunning = errors.New("runner is not running")

	// ErrNilAggregator is returned when no aggregator is provided.
	ErrNilAggregator = errors.New("aggregator cannot be nil")
)
