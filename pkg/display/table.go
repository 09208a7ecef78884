package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/focusbuddy/focusd/pkg/analytics"
	"github.com/focusbuddy/focusd/pkg/blocklist"
	"github.com/focusbuddy/focusd/pkg/session"
)

// tableFormatter formats output as tables.
type tableFormatter struct {
	config Config
}

// FormatSessions implements Formatter.FormatSessions.
func (f *tableFormatter) FormatSessions(w io.Writer, sessions []*session.FocusSession) error {
	if err := writeHeader(w, "Focus Sessions", f.config.Compact); err != nil {
		return err
	}

	header := []string{"Start", "Type", "Focus", "Break", "Status", "ID"}

	rows := make([][]string, len(sessions))
	for i, s := range sessions {
		rows[i] = []string{
			s.StartDate + " " + s.StartTime,
			s.Type.String(),
			fmt.Sprintf("%dm", s.DurationMinutes),
			fmt.Sprintf("%dm", s.BreakMinutes),
			s.Status.String(),
			s.ID,
		}
	}

	return f.writeTable(w, header, rows)
}

// FormatSummary implements Formatter.FormatSummary.
func (f *tableFormatter) FormatSummary(w io.Writer, summary *analytics.Summary) error {
	if err := writeHeader(w, "Focus Summary", f.config.Compact); err != nil {
		return err
	}

	rows := [][]string{
		{"User", summary.UserID},
		{"Today", formatFloat(summary.DailyHours, 2) + "h"},
		{"This Week", formatFloat(summary.WeeklyHours, 2) + "h"},
		{"Completed Sessions", fmt.Sprintf("%d", summary.CompletedSessions)},
	}

	return f.writeTable(w, []string{"Metric", "Value"}, rows)
}

// FormatWeekly implements Formatter.FormatWeekly.
func (f *tableFormatter) FormatWeekly(w io.Writer, breakdown []analytics.TypeBreakdown) error {
	if err := writeHeader(w, "Weekly Breakdown", f.config.Compact); err != nil {
		return err
	}

	header := []string{"Type", "Hours"}

	rows := make([][]string, len(breakdown))
	for i, b := range breakdown {
		rows[i] = []string{
			b.Type.String(),
			formatFloat(b.Hours, 2),
		}
	}

	return f.writeTable(w, header, rows)
}

// FormatBlocklist implements Formatter.FormatBlocklist.
func (f *tableFormatter) FormatBlocklist(w io.Writer, entries []*blocklist.Entry) error {
	if err := writeHeader(w, "Blocked Domains", f.config.Compact); err != nil {
		return err
	}

	header := []string{"Domain", "List", "ID"}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			e.Domain,
			e.ListType.String(),
			e.ID,
		}
	}

	return f.writeTable(w, header, rows)
}

// writeTable writes a formatted table, truncating the widest column
// when the table exceeds the resolved width cap.
func (f *tableFormatter) writeTable(w io.Writer, header []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No data")
		return err
	}

	// Calculate column widths.
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	f.capWidths(widths, maxWidth(f.config, w))

	// Write header.
	if err := f.writeRow(w, header, widths); err != nil {
		return err
	}

	// Write separator.
	if !f.config.Compact {
		separator := make([]string, len(header))
		for i, width := range widths {
			separator[i] = strings.Repeat("-", width)
		}
		if err := f.writeRow(w, separator, widths); err != nil {
			return err
		}
	}

	// Write rows.
	for _, row := range rows {
		if err := f.writeRow(w, row, widths); err != nil {
			return err
		}
	}

	// Add spacing.
	if !f.config.Compact {
		_, err := fmt.Fprintln(w)
		return err
	}

	return nil
}

// capWidths shrinks the widest column until the table fits the limit.
func (f *tableFormatter) capWidths(widths []int, limit int) {
	if limit <= 0 {
		return
	}

	gap := 2
	if f.config.Compact {
		gap = 1
	}

	total := gap * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}

	for total > limit {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 4 {
			return
		}
		widths[widest]--
		total--
	}
}

// writeRow writes a single table row.
func (f *tableFormatter) writeRow(w io.Writer, cells []string, widths []int) error {
	for i, cell := range cells {
		if i > 0 {
			if f.config.Compact {
				if _, err := fmt.Fprint(w, " "); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprint(w, "  "); err != nil {
					return err
				}
			}
		}

		format := fmt.Sprintf("%%-%ds", widths[i])
		if _, err := fmt.Fprintf(w, format, truncate(cell, widths[i])); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}
