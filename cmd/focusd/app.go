package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/focusbuddy/focusd/pkg/analytics"
	"github.com/focusbuddy/focusd/pkg/blocklist"
	"github.com/focusbuddy/focusd/pkg/config"
	"github.com/focusbuddy/focusd/pkg/display"
	"github.com/focusbuddy/focusd/pkg/logger"
	"github.com/focusbuddy/focusd/pkg/schedule"
	"github.com/focusbuddy/focusd/pkg/session"
)

// app bundles the store stack every command needs. One Bolt handle is
// opened per process and passed down to each store.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	db       *bolt.DB
	location *time.Location

	sessions   session.Store
	scheduler  schedule.Scheduler
	records    analytics.Store
	aggregator analytics.Aggregator
	reporter   analytics.Reporter
	blocklist  blocklist.Manager
}

// newApp loads configuration and wires the full store stack.
func newApp(configPath string) (*app, error) {
	cfg, err := config.NewLoader(configPath).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := bolt.Open(cfg.Storage.DBPath, 0600, &bolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sessions, err := session.NewBoltStore(db, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	records, err := analytics.NewBoltStore(db, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize analytics store: %w", err)
	}

	blocked, err := blocklist.NewBoltManager(db, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize blocklist: %w", err)
	}

	return &app{
		cfg:        cfg,
		log:        log,
		db:         db,
		location:   loc,
		sessions:   sessions,
		scheduler:  schedule.New(sessions, log),
		records:    records,
		aggregator: analytics.NewAggregator(sessions, records, analytics.AggregatorConfig{Location: loc}, log),
		reporter:   analytics.NewReporter(sessions, records, analytics.ReporterConfig{Location: loc}, log),
		blocklist:  blocked,
	}, nil
}

// Close releases the database handle.
func (a *app) Close() error {
	return a.db.Close()
}

// formatter builds the output formatter, falling back to the configured
// default mode when the flag is empty.
func (a *app) formatter(format string, compact bool) display.Formatter {
	if format == "" {
		format = a.cfg.Display.DefaultMode
	}
	return display.New(display.Config{
		Format:  display.Format(format),
		Compact: compact,
	})
}
