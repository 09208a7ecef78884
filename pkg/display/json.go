package display

import (
	"encoding/json"
	"io"

	"github.com/focusbuddy/focusd/pkg/analytics"
	"github.com/focusbuddy/focusd/pkg/blocklist"
	"github.com/focusbuddy/focusd/pkg/session"
)

// jsonFormatter formats output as JSON.
type jsonFormatter struct {
	config Config
}

func (f *jsonFormatter) encoder(w io.Writer) *json.Encoder {
	encoder := json.NewEncoder(w)
	if !f.config.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder
}

// FormatSessions implements Formatter.FormatSessions.
func (f *jsonFormatter) FormatSessions(w io.Writer, sessions []*session.FocusSession) error {
	return f.encoder(w).Encode(sessions)
}

// FormatSummary implements Formatter.FormatSummary.
func (f *jsonFormatter) FormatSummary(w io.Writer, summary *analytics.Summary) error {
	return f.encoder(w).Encode(summary)
}

// FormatWeekly implements Formatter.FormatWeekly.
func (f *jsonFormatter) FormatWeekly(w io.Writer, breakdown []analytics.TypeBreakdown) error {
	return f.encoder(w).Encode(breakdown)
}

// FormatBlocklist implements Formatter.FormatBlocklist.
func (f *jsonFormatter) FormatBlocklist(w io.Writer, entries []*blocklist.Entry) error {
	return f.encoder(w).Encode(entries)
}
