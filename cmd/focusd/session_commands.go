package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/focusbuddy/focusd/pkg/schedule"
	"github.com/focusbuddy/focusd/pkg/session"
)

// sessionCommand handles session management subcommands.
type sessionCommand struct {
	configPath string
}

// Execute runs the session command.
func (c *sessionCommand) Execute(args []string) error {
	if len(args) == 0 {
		return c.showHelp()
	}

	subcommand := args[0]
	subargs := args[1:]

	switch subcommand {
	case "add":
		return c.runAdd(subargs)
	case "list":
		return c.runList(subargs)
	case "next":
		return c.runNext(subargs)
	case "modify":
		return c.runModify(subargs)
	case "delete":
		return c.runDelete(subargs)
	case "help":
		return c.showHelp()
	default:
		return fmt.Errorf("unknown session subcommand: %s", subcommand)
	}
}

// runAdd schedules a new session.
func (c *sessionCommand) runAdd(args []string) error {
	fs := flag.NewFlagSet("session add", flag.ExitOnError)
	user := fs.String("user", "", "user id (required)")
	date := fs.String("date", "", "start date (MM/DD/YYYY)")
	start := fs.String("time", "", "start time (HH:MM:SS)")
	duration := fs.Int("duration", 25, "focus duration in minutes")
	breakMin := fs.Int("break", 5, "break duration in minutes")
	typeName := fs.String("type", "work", "session type (work, study, personal, other)")
	statusName := fs.String("status", "upcoming", "initial status")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("usage: focusd session add -user <id> -date <MM/DD/YYYY> -time <HH:MM:SS> [flags]")
	}

	sessType, err := session.ParseType(*typeName)
	if err != nil {
		return fmt.Errorf("invalid session type %q", *typeName)
	}
	status, err := session.ParseStatus(*statusName)
	if err != nil {
		return fmt.Errorf("invalid status %q", *statusName)
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	id, err := a.scheduler.Add(*user, schedule.Draft{
		Status:          status,
		StartDate:       *date,
		StartTime:       *start,
		DurationMinutes: *duration,
		BreakMinutes:    *breakMin,
		Type:            sessType,
	})
	if errors.Is(err, schedule.ErrConflict) {
		return fmt.Errorf("the slot overlaps an existing session")
	}
	if err != nil {
		return err
	}

	fmt.Printf("Scheduled session %s\n", id)
	return nil
}

// runList lists a user's sessions, optionally filtered by status.
func (c *sessionCommand) runList(args []string) error {
	fs := flag.NewFlagSet("session list", flag.ExitOnError)
	user := fs.String("user", "", "user id (required)")
	statusNames := fs.String("status", "", "comma-separated statuses (upcoming, ongoing, paused, completed)")
	format := fs.String("format", "", "output format (table, json, simple)")
	compact := fs.Bool("compact", false, "compact output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("usage: focusd session list -user <id> [flags]")
	}

	var statuses []session.Status
	if *statusNames != "" {
		for _, name := range strings.Split(*statusNames, ",") {
			status, err := session.ParseStatus(strings.TrimSpace(name))
			if err != nil {
				return fmt.Errorf("invalid status %q", name)
			}
			statuses = append(statuses, status)
		}
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	sessions, err := a.scheduler.ListByStatus(*user, statuses)
	if err != nil {
		return err
	}

	return a.formatter(*format, *compact).FormatSessions(os.Stdout, sessions)
}

// runNext shows the earliest upcoming session.
func (c *sessionCommand) runNext(args []string) error {
	fs := flag.NewFlagSet("session next", flag.ExitOnError)
	user := fs.String("user", "", "user id (required)")
	format := fs.String("format", "", "output format (table, json, simple)")
	compact := fs.Bool("compact", false, "compact output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("usage: focusd session next -user <id>")
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	next, err := a.scheduler.Next(*user)
	if err != nil {
		return err
	}
	if next == nil {
		fmt.Println("No upcoming sessions")
		return nil
	}

	return a.formatter(*format, *compact).FormatSessions(os.Stdout, []*session.FocusSession{next})
}

// runModify applies a partial update to a session.
func (c *sessionCommand) runModify(args []string) error {
	fs := flag.NewFlagSet("session modify", flag.ExitOnError)
	user := fs.String("user", "", "user id (required)")
	id := fs.String("id", "", "session id (required)")
	date := fs.String("date", "", "start date (MM/DD/YYYY)")
	start := fs.String("time", "", "start time (HH:MM:SS)")
	duration := fs.Int("duration", 0, "focus duration in minutes")
	breakMin := fs.Int("break", 0, "break duration in minutes")
	typeName := fs.String("type", "", "session type")
	statusName := fs.String("status", "", "status")
	remFocus := fs.Int("remaining-focus", 0, "remaining focus seconds")
	remBreak := fs.Int("remaining-break", 0, "remaining break seconds")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || *id == "" {
		return fmt.Errorf("usage: focusd session modify -user <id> -id <session> [flags]")
	}

	// Only flags the caller actually set become part of the patch, so
	// zero values remain expressible.
	var p session.Patch
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "date":
			p.StartDate = date
		case "time":
			p.StartTime = start
		case "duration":
			p.DurationMinutes = duration
		case "break":
			p.BreakMinutes = breakMin
		case "type":
			t, err := session.ParseType(*typeName)
			if err != nil {
				parseErr = fmt.Errorf("invalid session type %q", *typeName)
				return
			}
			p.Type = &t
		case "status":
			s, err := session.ParseStatus(*statusName)
			if err != nil {
				parseErr = fmt.Errorf("invalid status %q", *statusName)
				return
			}
			p.Status = &s
		case "remaining-focus":
			p.RemainingFocusSeconds = remFocus
		case "remaining-break":
			p.RemainingBreakSeconds = remBreak
		}
	})
	if parseErr != nil {
		return parseErr
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	err = a.scheduler.Modify(*user, *id, p)
	switch {
	case errors.Is(err, schedule.ErrEmptyPatch):
		return fmt.Errorf("nothing to modify: set at least one field flag")
	case errors.Is(err, schedule.ErrConflict):
		return fmt.Errorf("the modified slot overlaps an existing session")
	case errors.Is(err, session.ErrSessionNotFound):
		return fmt.Errorf("session %s not found", *id)
	case err != nil:
		return err
	}

	fmt.Printf("Modified session %s\n", *id)
	return nil
}

// runDelete removes a session.
func (c *sessionCommand) runDelete(args []string) error {
	fs := flag.NewFlagSet("session delete", flag.ExitOnError)
	user := fs.String("user", "", "user id (required)")
	id := fs.String("id", "", "session id (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || *id == "" {
		return fmt.Errorf("usage: focusd session delete -user <id> -id <session>")
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.scheduler.Delete(*user, *id); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return fmt.Errorf("session %s not found", *id)
		}
		return err
	}

	fmt.Printf("Deleted session %s\n", *id)
	return nil
}

// showHelp displays session command help.
func (c *sessionCommand) showHelp() error {
	help := `Session management

Usage:
  focusd session <subcommand> [flags]

Subcommands:
  add         Schedule a new session
  list        List sessions, optionally by status
  next        Show the earliest upcoming session
  modify      Apply a partial update to a session
  delete      Remove a session

Add Flags:
  -user       User id (required)
  -date       Start date (MM/DD/YYYY)
  -time       Start time (HH:MM:SS)
  -duration   Focus minutes (default: 25)
  -break      Break minutes (default: 5)
  -type       work, study, personal, other (default: work)
  -status     Initial status (default: upcoming)

Modify Flags:
  -user, -id  Target session (required)
  -date, -time, -duration, -break, -type, -status
              Fields to change; unset flags keep stored values
  -remaining-focus, -remaining-break
              Remaining seconds for pause/resume tracking

Examples:
  focusd session add -user alice -date 02/22/2026 -time 23:30:00 -duration 90
  focusd session list -user alice -status upcoming,ongoing
  focusd session modify -user alice -id <id> -status completed
`
	fmt.Print(help)
	return nil
}
