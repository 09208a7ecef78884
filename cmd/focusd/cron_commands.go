package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/focusbuddy/focusd/pkg/analytics"
	"github.com/focusbuddy/focusd/pkg/config"
	"github.com/focusbuddy/focusd/pkg/runner"
)

// cronCommand handles aggregation maintenance subcommands.
type cronCommand struct {
	configPath string
}

// Execute runs the cron command.
func (c *cronCommand) Execute(args []string) error {
	if len(args) == 0 {
		return c.showHelp()
	}

	subcommand := args[0]
	subargs := args[1:]

	switch subcommand {
	case "run":
		return c.runDaemon(subargs)
	case "update":
		return c.runUpdate(subargs)
	case "reset":
		return c.runReset(subargs)
	case "help":
		return c.showHelp()
	default:
		return fmt.Errorf("unknown cron subcommand: %s", subcommand)
	}
}

// runDaemon runs the periodic aggregation loop until interrupted.
func (c *cronCommand) runDaemon(args []string) error {
	fs := flag.NewFlagSet("cron run", flag.ExitOnError)
	interval := fs.Duration("interval", 0, "aggregation interval (overrides config)")
	noReload := fs.Bool("no-reload", false, "disable config hot reload")

	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	runInterval := a.cfg.Analytics.RunInterval
	if *interval > 0 {
		runInterval = *interval
	}

	// Watch the config file that is actually in use so edits retune
	// the daemon without a restart.
	var watcher config.Watcher
	if !*noReload {
		watchPath := c.configPath
		if watchPath == "" {
			watchPath = config.DefaultConfigPath()
		}
		if _, statErr := os.Stat(watchPath); statErr == nil {
			watcher, err = config.NewWatcher(config.WatcherConfig{Path: watchPath}, a.log)
			if err != nil {
				return err
			}
			defer func() { _ = watcher.Close() }()
		}
	}

	r, err := runner.New(runner.Config{
		RunInterval: runInterval,
		Location:    a.location,
	}, a.aggregator, watcher, a.log)
	if err != nil {
		return err
	}

	if err := r.Start(); err != nil {
		return err
	}

	fmt.Printf("Aggregation daemon running every %s (Ctrl+C to stop)\n", runInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	return r.Stop()
}

// runUpdate performs a single aggregation pass.
func (c *cronCommand) runUpdate(args []string) error {
	fs := flag.NewFlagSet("cron update", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	start := time.Now()
	if err := a.aggregator.RunIncremental(); err != nil {
		return err
	}

	fmt.Printf("Aggregation pass completed in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// runReset zeroes daily or weekly totals for every user.
func (c *cronCommand) runReset(args []string) error {
	fs := flag.NewFlagSet("cron reset", flag.ExitOnError)
	period := fs.String("period", "", "period to reset (daily, weekly)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *period == "" {
		return fmt.Errorf("usage: focusd cron reset -period <daily|weekly>")
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.aggregator.ResetPeriod(*period); err != nil {
		if errors.Is(err, analytics.ErrInvalidPeriod) {
			return fmt.Errorf("invalid period %q: use daily or weekly", *period)
		}
		return err
	}

	fmt.Printf("Reset %s totals\n", *period)
	return nil
}

// showHelp displays cron command help.
func (c *cronCommand) showHelp() error {
	help := `Aggregation maintenance

Usage:
  focusd cron <subcommand> [flags]

Subcommands:
  run         Run the periodic aggregation daemon
  update      Perform a single aggregation pass
  reset       Zero daily or weekly totals for every user

Run Flags:
  -interval   Aggregation interval (overrides config)
  -no-reload  Disable config hot reload

Reset Flags:
  -period     daily or weekly (required)

Examples:
  focusd cron run -interval 30s
  focusd cron update
  focusd cron reset -period daily
`
	fmt.Print(help)
	return nil
}
