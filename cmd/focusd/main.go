// Package main provides the focusd CLI application.
//
// focusd schedules per-user focus sessions with conflict-aware
// midnight-wrap handling, folds completed sessions into running
// analytics totals, and manages per-user website blocklists.
package main

import (
	"flag"
	"fmt"
	"os"
)

// version is set during build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the main application logic.
func run() error {
	// Define global flags.
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "show version information")

	// Parse command.
	flag.Parse()

	// Handle version flag.
	if *showVersion {
		fmt.Printf("focusd %s\n", version)
		return nil
	}

	// Get command.
	args := flag.Args()
	if len(args) == 0 {
		return showUsage()
	}

	command := args[0]

	switch command {
	case "session":
		return runSessionCommand(*configPath, args[1:])
	case "analytics":
		return runAnalyticsCommand(*configPath, args[1:])
	case "blocklist":
		return runBlocklistCommand(*configPath, args[1:])
	case "cron":
		return runCronCommand(*configPath, args[1:])
	case "config":
		return runConfigCommand(*configPath, args[1:])
	case "help":
		return showUsage()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runSessionCommand runs the session command.
func runSessionCommand(configPath string, args []string) error {
	cmd := &sessionCommand{configPath: configPath}
	return cmd.Execute(args)
}

// runAnalyticsCommand runs the analytics command.
func runAnalyticsCommand(configPath string, args []string) error {
	cmd := &analyticsCommand{configPath: configPath}
	return cmd.Execute(args)
}

// runBlocklistCommand runs the blocklist command.
func runBlocklistCommand(configPath string, args []string) error {
	cmd := &blocklistCommand{configPath: configPath}
	return cmd.Execute(args)
}

// runCronCommand runs the cron command.
func runCronCommand(configPath string, args []string) error {
	cmd := &cronCommand{configPath: configPath}
	return cmd.Execute(args)
}

// runConfigCommand runs the config command.
func runConfigCommand(configPath string, args []string) error {
	cmd := &configCommand{configPath: configPath}
	return cmd.Execute(args)
}

// showUsage displays usage information.
func showUsage() error {
	usage := `focusd - focus session scheduling and analytics

Usage:
  focusd [flags] <command> [command flags]

Commands:
  session     Session management (add, list, next, modify, delete)
  analytics   Focus analytics (summary, daily, weekly)
  blocklist   Blocked domain management (add, list, delete)
  cron        Aggregation maintenance (run, update, reset)
  config      Configuration management (show, path, reset)
  help        Show this help message

Global Flags:
  -config     Path to configuration file
  -version    Show version information

Examples:
  # Schedule a 50-minute study session
  focusd session add -user alice -date 02/22/2026 -time 09:00:00 -duration 50 -break 10 -type study

  # List upcoming sessions
  focusd session list -user alice -status upcoming

  # Show the next upcoming session
  focusd session next -user alice

  # Mark a session completed
  focusd session modify -user alice -id <id> -status completed

  # Show running totals
  focusd analytics summary -user alice

  # Weekly breakdown by session type
  focusd analytics weekly -user alice

  # Block a domain during work sessions
  focusd blocklist add -user alice -list work reddit.com

  # Run the aggregation daemon
  focusd cron run

  # One-shot aggregation pass
  focusd cron update

Version: %s
`

	fmt.Printf(usage, version)
	return nil
}
