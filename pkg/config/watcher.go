package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/focusbuddy/focusd/pkg/logger"
)

// Watcher lifecycle errors.
var (
	ErrWatcherClosed  = errors.New("watcher is closed")
	ErrAlreadyStarted = errors.New("watcher already started")
	ErrNotStarted     = errors.New("watcher not started")
)

// Watcher reloads the configuration file when it changes on disk.
//
// Editors commonly replace files via rename, so the watch is placed on
// the containing directory and filtered to the config path. Rapid write
// bursts are debounced; only configurations that pass validation are
// emitted.
type Watcher interface {
	// Start begins watching the config file. Returns immediately; the
	// watch loop runs until ctx is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the watcher.
	Stop() error

	// Configs returns the channel delivering reloaded configurations.
	Configs() <-chan *Config

	// Errors returns the channel for non-fatal reload errors.
	Errors() <-chan error

	// Close closes the watcher and releases resources.
	Close() error
}

// WatcherConfig contains watcher settings.
type WatcherConfig struct {
	// Path to the config file to watch. Required.
	Path string

	// DebounceInterval coalesces rapid successive writes.
	// Default: 250ms.
	DebounceInterval time.Duration
}

// watcher implements Watcher using fsnotify.
type watcher struct {
	fsw    *fsnotify.Watcher
	logger logger.Logger
	config WatcherConfig

	configs chan *Config
	errors  chan error

	mu       sync.Mutex
	running  bool
	closed   bool
	stopChan chan struct{}

	debounceMu    sync.Mutex
	debounceTimer *time.Timer
}

// NewWatcher creates a config file watcher.
func NewWatcher(cfg WatcherConfig, log logger.Logger) (Watcher, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}
	if cfg.DebounceInterval == 0 {
		cfg.DebounceInterval = 250 * time.Millisecond
	}
	if log == nil {
		log = logger.Noop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &watcher{
		fsw:      fsw,
		logger:   log,
		config:   cfg,
		configs:  make(chan *Config, 1),
		errors:   make(chan error, 10),
		stopChan: make(chan struct{}),
	}

	log.Debug("config watcher created",
		"path", cfg.Path,
		"debounce_interval", cfg.DebounceInterval)

	return w, nil
}

// Start implements Watcher.Start.
func (w *watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.config.Path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Info("config watcher started", "path", w.config.Path)

	go w.processEvents(ctx)
	return nil
}

// Stop implements Watcher.Stop.
func (w *watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if !w.running {
		return ErrNotStarted
	}

	close(w.stopChan)
	w.running = false

	w.logger.Info("config watcher stopped")
	return nil
}

// Configs implements Watcher.Configs.
func (w *watcher) Configs() <-chan *Config {
	return w.configs
}

// Errors implements Watcher.Errors.
func (w *watcher) Errors() <-chan error {
	return w.errors
}

// Close implements Watcher.Close.
func (w *watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.running {
		close(w.stopChan)
		w.running = false
	}

	return w.fsw.Close()
}

// processEvents runs the watch loop until shutdown. The emit channels
// stay open so a debounce timer firing during shutdown cannot send on a
// closed channel.
func (w *watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.debounce()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				w.logger.Warn("error channel full, dropping", "error", err)
			}
		}
	}
}

// relevant reports whether the event concerns the config file itself.
func (w *watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.config.Path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// debounce schedules a reload, restarting the timer on each new event.
func (w *watcher) debounce() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.config.DebounceInterval, w.reload)
}

// reload re-reads the config file and emits it if valid.
func (w *watcher) reload() {
	w.mu.Lock()
	stopped := w.closed || !w.running
	w.mu.Unlock()
	if stopped {
		return
	}

	cfg, err := LoadFromFile(w.config.Path)
	if err != nil {
		w.logger.Warn("config reload failed", "path", w.config.Path, "error", err)
		select {
		case w.errors <- err:
		default:
		}
		return
	}

	w.logger.Info("config reloaded", "path", w.config.Path)

	// Keep only the freshest config if the consumer lags.
	select {
	case w.configs <- cfg:
	default:
		select {
		case <-w.configs:
		default:
		}
		select {
		case w.configs <- cfg:
		default:
		}
	}
}
