package display

import (
	"fmt"
	"io"

	"github.com/focusbuddy/focusd/pkg/analytics"
	"github.com/focusbuddy/focusd/pkg/blocklist"
	"github.com/focusbuddy/focusd/pkg/session"
)

// simpleFormatter formats output as simple text.
type simpleFormatter struct {
	config Config
}

// FormatSessions implements Formatter.FormatSessions.
func (f *simpleFormatter) FormatSessions(w io.Writer, sessions []*session.FocusSession) error {
	for _, s := range sessions {
		if _, err := fmt.Fprintf(w, "%s %s | %s | %dm focus / %dm break | %s | %s\n",
			s.StartDate,
			s.StartTime,
			s.Type.String(),
			s.DurationMinutes,
			s.BreakMinutes,
			s.Status.String(),
			s.ID); err != nil {
			return err
		}
	}
	return nil
}

// FormatSummary implements Formatter.FormatSummary.
func (f *simpleFormatter) FormatSummary(w io.Writer, summary *analytics.Summary) error {
	_, err := fmt.Fprintf(w, "User: %s | Today: %sh | Week: %sh | Completed: %d\n",
		summary.UserID,
		formatFloat(summary.DailyHours, 2),
		formatFloat(summary.WeeklyHours, 2),
		summary.CompletedSessions)
	return err
}

// FormatWeekly implements Formatter.FormatWeekly.
func (f *simpleFormatter) FormatWeekly(w io.Writer, breakdown []analytics.TypeBreakdown) error {
	for _, b := range breakdown {
		if _, err := fmt.Fprintf(w, "%s: %sh\n",
			b.Type.String(),
			formatFloat(b.Hours, 2)); err != nil {
			return err
		}
	}
	return nil
}

// FormatBlocklist implements Formatter.FormatBlocklist.
func (f *simpleFormatter) FormatBlocklist(w io.Writer, entries []*blocklist.Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s (%s) - %s\n",
			e.Domain,
			e.ListType.String(),
			e.ID); err != nil {
			return err
		}
	}
	return nil
}
