package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/focusbuddy/focusd/pkg/analytics"
)

// analyticsCommand handles analytics subcommands.
type analyticsCommand struct {
	configPath string
}

// Execute runs the analytics command.
func (c *analyticsCommand) Execute(args []string) error {
	if len(args) == 0 {
		return c.showHelp()
	}

	subcommand := args[0]
	subargs := args[1:]

	switch subcommand {
	case "summary":
		return c.runSummary(subargs)
	case "daily":
		return c.runDaily(subargs)
	case "weekly":
		return c.runWeekly(subargs)
	case "help":
		return c.showHelp()
	default:
		return fmt.Errorf("unknown analytics subcommand: %s", subcommand)
	}
}

// runSummary shows a user's running totals.
func (c *analyticsCommand) runSummary(args []string) error {
	fs := flag.NewFlagSet("analytics summary", flag.ExitOnError)
	user := fs.String("user", "", "user id (required)")
	format := fs.String("format", "", "output format (table, json, simple)")
	compact := fs.Bool("compact", false, "compact output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("usage: focusd analytics summary -user <id>")
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	summary, err := a.reporter.Summary(*user)
	if err != nil {
		return err
	}

	return a.formatter(*format, *compact).FormatSummary(os.Stdout, summary)
}

// runDaily shows completed hours on one date.
func (c *analyticsCommand) runDaily(args []string) error {
	fs := flag.NewFlagSet("analytics daily", flag.ExitOnError)
	user := fs.String("user", "", "user id (required)")
	date := fs.String("date", "", "date (MM/DD/YYYY, required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || *date == "" {
		return fmt.Errorf("usage: focusd analytics daily -user <id> -date <MM/DD/YYYY>")
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	hours, err := a.reporter.DailyTotal(*user, *date)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %.2fh\n", *date, hours)
	return nil
}

// runWeekly shows the per-type weekly breakdown.
func (c *analyticsCommand) runWeekly(args []string) error {
	fs := flag.NewFlagSet("analytics weekly", flag.ExitOnError)
	user := fs.String("user", "", "user id (required)")
	start := fs.String("start", "", "range start (MM/DD/YYYY, defaults to current week)")
	end := fs.String("end", "", "range end (MM/DD/YYYY, exclusive)")
	format := fs.String("format", "", "output format (table, json, simple)")
	compact := fs.Bool("compact", false, "compact output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("usage: focusd analytics weekly -user <id> [-start <date> -end <date>]")
	}
	if (*start == "") != (*end == "") {
		return fmt.Errorf("set both -start and -end, or neither")
	}

	var rng *analytics.Range
	if *start != "" {
		r, err := analytics.ParseRange(*start, *end)
		if err != nil {
			return err
		}
		rng = r
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	breakdown, err := a.reporter.WeeklyByType(*user, rng)
	if err != nil {
		return err
	}

	return a.formatter(*format, *compact).FormatWeekly(os.Stdout, breakdown)
}

// showHelp displays analytics command help.
func (c *analyticsCommand) showHelp() error {
	help := `Focus analytics

Usage:
  focusd analytics <subcommand> [flags]

Subcommands:
  summary     Running daily/weekly totals and completion count
  daily       Completed hours on one date (recomputed from history)
  weekly      Per-type breakdown for the current week or a range

Flags:
  -user       User id (required)
  -date       Date for daily (MM/DD/YYYY)
  -start/-end Explicit range for weekly (end exclusive, max 30 days)
  -format     Output format (table, json, simple)

Examples:
  focusd analytics summary -user alice
  focusd analytics daily -user alice -date 02/22/2026
  focusd analytics weekly -user alice -start 02/01/2026 -end 02/15/2026
`
	fmt.Print(help)
	return nil
}
