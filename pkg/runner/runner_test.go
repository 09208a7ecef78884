package runner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusbuddy/focusd/pkg/analytics"
	"github.com/focusbuddy/focusd/pkg/config"
	"github.com/focusbuddy/focusd/pkg/logger"
)

// recordingAggregator counts calls for assertions.
type recordingAggregator struct {
	mu     sync.Mutex
	runs   int
	resets []string
}

func (a *recordingAggregator) RunIncremental() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runs++
	return nil
}

func (a *recordingAggregator) ResetPeriod(period string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resets = append(a.resets, period)
	return nil
}

func (a *recordingAggregator) snapshot() (int, []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.runs, append([]string(nil), a.resets...)
}

// fakeWatcher feeds configs through a channel without touching disk.
type fakeWatcher struct {
	configs chan *config.Config
	started bool
	stopped bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{configs: make(chan *config.Config, 1)}
}

func (w *fakeWatcher) Start(ctx context.Context) error { w.started = true; return nil }
func (w *fakeWatcher) Stop() error                     { w.stopped = true; return nil }
func (w *fakeWatcher) Configs() <-chan *config.Config  { return w.configs }
func (w *fakeWatcher) Errors() <-chan error            { return nil }
func (w *fakeWatcher) Close() error                    { return nil }

func TestNewRequiresAggregator(t *testing.T) {
	_, err := New(Config{}, nil, nil, logger.Noop())
	assert.ErrorIs(t, err, ErrNilAggregator)
}

func TestLifecycle(t *testing.T) {
	agg := &recordingAggregator{}
	r, err := New(Config{RunInterval: time.Hour}, agg, nil, logger.Noop())
	require.NoError(t, err)

	assert.ErrorIs(t, r.Stop(), ErrRunnerNotRunning)
	require.NoError(t, r.Start())
	assert.ErrorIs(t, r.Start(), ErrRunnerRunning)
	require.NoError(t, r.Stop())
	assert.ErrorIs(t, r.Stop(), ErrRunnerNotRunning)
}

func TestTicksRunAggregation(t *testing.T) {
	agg := &recordingAggregator{}
	r, err := New(Config{RunInterval: 10 * time.Millisecond}, agg, nil, logger.Noop())
	require.NoError(t, err)

	require.NoError(t, r.Start())
	t.Cleanup(func() { _ = r.Stop() })

	assert.Eventually(t, func() bool {
		runs, _ := agg.snapshot()
		return runs >= 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDailyRollover(t *testing.T) {
	agg := &recordingAggregator{}

	// The clock jumps one day forward between the tick loop start and
	// the first tick, within the same ISO week.
	var mu sync.Mutex
	now := time.Date(2026, 2, 17, 23, 59, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := now
		now = now.Add(24 * time.Hour)
		return t
	}

	r, err := New(Config{
		RunInterval: 10 * time.Millisecond,
		Location:    time.UTC,
		Now:         clock,
	}, agg, nil, logger.Noop())
	require.NoError(t, err)

	require.NoError(t, r.Start())
	t.Cleanup(func() { _ = r.Stop() })

	assert.Eventually(t, func() bool {
		_, resets := agg.snapshot()
		return len(resets) > 0 && resets[0] == analytics.PeriodDaily
	}, 2*time.Second, 5*time.Millisecond)
}

func TestWeeklyRollover(t *testing.T) {
	agg := &recordingAggregator{}

	// Sunday to Monday crosses both the day and the ISO-week boundary.
	var mu sync.Mutex
	now := time.Date(2026, 2, 22, 23, 59, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := now
		now = now.Add(24 * time.Hour)
		return t
	}

	r, err := New(Config{
		RunInterval: 10 * time.Millisecond,
		Location:    time.UTC,
		Now:         clock,
	}, agg, nil, logger.Noop())
	require.NoError(t, err)

	require.NoError(t, r.Start())
	t.Cleanup(func() { _ = r.Stop() })

	assert.Eventually(t, func() bool {
		_, resets := agg.snapshot()
		for _, p := range resets {
			if p == analytics.PeriodWeekly {
				return true
			}
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)
}

func TestConfigReloadRetunesInterval(t *testing.T) {
	agg := &recordingAggregator{}
	w := newFakeWatcher()

	r, err := New(Config{RunInterval: time.Hour}, agg, w, logger.Noop())
	require.NoError(t, err)

	require.NoError(t, r.Start())
	t.Cleanup(func() { _ = r.Stop() })
	assert.True(t, w.started)

	// At a one-hour interval no tick would land during the test; the
	// reload shrinks it so ticks start arriving.
	cfg := config.Default()
	cfg.Analytics.RunInterval = 10 * time.Millisecond
	w.configs <- cfg

	assert.Eventually(t, func() bool {
		runs, _ := agg.snapshot()
		return runs >= 1
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, r.Stop())
	assert.True(t, w.stopped)
}
