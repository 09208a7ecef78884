// Package display provides output formatting for sessions and
// analytics.
//
// It supports multiple output formats (table, JSON, simple text).
package display

import (
	"io"

	"github.com/focusbuddy/focusd/pkg/analytics"
	"github.com/focusbuddy/focusd/pkg/blocklist"
	"github.com/focusbuddy/focusd/pkg/session"
)

// Format represents an output format.
type Format string

const (
	// FormatTable displays results in a formatted table.
	FormatTable Format = "table"

	// FormatJSON displays results as JSON.
	FormatJSON Format = "json"

	// FormatSimple displays results in simple text format.
	FormatSimple Format = "simple"
)

// Formatter formats sessions and analytics for display.
type Formatter interface {
	// FormatSessions formats a list of focus sessions.
	FormatSessions(w io.Writer, sessions []*session.FocusSession) error

	// FormatSummary formats a user's analytics summary.
	FormatSummary(w io.Writer, summary *analytics.Summary) error

	// FormatWeekly formats a weekly per-type breakdown.
	FormatWeekly(w io.Writer, breakdown []analytics.TypeBreakdown) error

	// FormatBlocklist formats a list of blocked domains.
	FormatBlocklist(w io.Writer, entries []*blocklist.Entry) error
}

// Config contains formatter configuration.
type Config struct {
	// Format specifies the output format.
	// Default: FormatTable.
	Format Format

	// Compact enables compact output (less whitespace).
	// Default: false.
	Compact bool

	// MaxWidth caps table width in characters. Zero means detect the
	// terminal width, falling back to no cap for non-terminal output.
	MaxWidth int
}
