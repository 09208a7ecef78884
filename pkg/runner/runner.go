package runner

import (
	"context"
	"sync"
	"time"

	"github.com/focusbuddy/focusd/pkg/analytics"
	"github.com/focusbuddy/focusd/pkg/config"
	"github.com/focusbuddy/focusd/pkg/logger"
)

// runner implements the Runner interface.
type runner struct {
	cfg     Config
	agg     analytics.Aggregator
	watcher config.Watcher
	logger  logger.Logger

	mu       sync.Mutex
	running  bool
	closed   bool
	stopChan chan struct{}
	cancel   context.CancelFunc
}

// New creates a new runner.
//
// The config watcher is optional; pass nil to run with a fixed
// interval.
func New(cfg Config, agg analytics.Aggregator, w config.Watcher, log logger.Logger) (Runner, error) {
	if agg == nil {
		return nil, ErrNilAggregator
	}
	if log == nil {
		log = logger.Noop()
	}
	if cfg.RunInterval <= 0 {
		cfg.RunInterval = time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	r := &runner{
		cfg:      cfg,
		agg:      agg,
		watcher:  w,
		logger:   log,
		stopChan: make(chan struct{}),
	}

	log.Info("runner created", "run_interval", cfg.RunInterval)
	return r, nil
}

// Start implements Runner.Start.
func (r *runner) Start() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRunnerClosed
	}
	if r.running {
		r.mu.Unlock()
		return ErrRunnerRunning
	}
	r.running = true

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.mu.Unlock()

	var configs <-chan *config.Config
	if r.watcher != nil {
		if err := r.watcher.Start(ctx); err != nil {
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
			cancel()
			return err
		}
		configs = r.watcher.Configs()
	}

	go r.run(ctx, configs)

	r.logger.Info("runner started")
	return nil
}

// Stop implements Runner.Stop.
func (r *runner) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRunnerClosed
	}
	if !r.running {
		return ErrRunnerNotRunning
	}

	close(r.stopChan)
	r.running = false
	if r.cancel != nil {
		r.cancel()
	}

	if r.watcher != nil {
		if err := r.watcher.Stop(); err != nil {
			r.logger.Warn("failed to stop config watcher", "error", err)
		}
	}

	r.logger.Info("runner stopped")
	return nil
}

// run is the tick loop.
func (r *runner) run(ctx context.Context, configs <-chan *config.Config) {
	interval := r.cfg.RunInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := r.cfg.Now().In(r.cfg.Location)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return

		case <-ticker.C:
			now := r.cfg.Now().In(r.cfg.Location)
			r.rollover(last, now)
			last = now

			if err := r.agg.RunIncremental(); err != nil {
				r.logger.Error("aggregation pass failed", "error", err)
			}

		case cfg, ok := <-configs:
			if !ok {
				configs = nil
				continue
			}
			if cfg.Analytics.RunInterval > 0 && cfg.Analytics.RunInterval != interval {
				interval = cfg.Analytics.RunInterval
				ticker.Reset(interval)
				r.logger.Info("run interval updated", "run_interval", interval)
			}
		}
	}
}

// rollover resets period totals when the tick crossed a day or
// ISO-week boundary. The daily reset runs before the fold so a new
// day starts from zero.
func (r *runner) rollover(last, now time.Time) {
	ly, lm, ld := last.Date()
	ny, nm, nd := now.Date()
	if ly == ny && lm == nm && ld == nd {
		return
	}

	if err := r.agg.ResetPeriod(analytics.PeriodDaily); err != nil {
		r.logger.Error("daily reset failed", "error", err)
	} else {
		r.logger.Info("daily totals reset", "date", now.Format("01/02/2006"))
	}

	lwy, lw := last.ISOWeek()
	nwy, nw := now.ISOWeek()
	if lwy == nwy && lw == nw {
		return
	}

	if err := r.agg.ResetPeriod(analytics.PeriodWeekly); err != nil {
		r.logger.Error("weekly reset failed", "error", err)
	} else {
		r.logger.Info("weekly totals reset", "week", nw)
	}
}
