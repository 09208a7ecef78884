package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/focusbuddy/focusd/pkg/analytics"
	"github.com/focusbuddy/focusd/pkg/blocklist"
	"github.com/focusbuddy/focusd/pkg/session"
)

func testSessions() []*session.FocusSession {
	return []*session.FocusSession{
		{
			ID:              "a1b2",
			UserID:          "u1",
			Status:          session.StatusUpcoming,
			StartDate:       "02/22/2026",
			StartTime:       "09:00:00",
			DurationMinutes: 25,
			BreakMinutes:    5,
			Type:            session.TypeWork,
		},
		{
			ID:              "c3d4",
			UserID:          "u1",
			Status:          session.StatusCompleted,
			StartDate:       "02/22/2026",
			StartTime:       "23:30:00",
			DurationMinutes: 90,
			BreakMinutes:    10,
			Type:            session.TypeStudy,
		},
	}
}

func testSummary() *analytics.Summary {
	return &analytics.Summary{
		UserID:            "u1",
		DailyHours:        1.5,
		WeeklyHours:       5.25,
		CompletedSessions: 7,
	}
}

func TestNewDefaultsToTable(t *testing.T) {
	f := New(Config{})
	if _, ok := f.(*tableFormatter); !ok {
		t.Errorf("New(Config{}) = %T, want *tableFormatter", f)
	}

	f = New(Config{Format: FormatJSON})
	if _, ok := f.(*jsonFormatter); !ok {
		t.Errorf("New(json) = %T, want *jsonFormatter", f)
	}

	f = New(Config{Format: FormatSimple})
	if _, ok := f.(*simpleFormatter); !ok {
		t.Errorf("New(simple) = %T, want *simpleFormatter", f)
	}
}

func TestTableFormatSessions(t *testing.T) {
	var buf bytes.Buffer
	f := New(Config{Format: FormatTable})

	if err := f.FormatSessions(&buf, testSessions()); err != nil {
		t.Fatalf("FormatSessions() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Focus Sessions", "02/22/2026 09:00:00", "work", "study", "completed", "a1b2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatSessionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := New(Config{Format: FormatTable, Compact: true})

	if err := f.FormatSessions(&buf, nil); err != nil {
		t.Fatalf("FormatSessions() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No data") {
		t.Errorf("output = %q, want No data", buf.String())
	}
}

func TestTableFormatSummary(t *testing.T) {
	var buf bytes.Buffer
	f := New(Config{Format: FormatTable})

	if err := f.FormatSummary(&buf, testSummary()); err != nil {
		t.Fatalf("FormatSummary() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Focus Summary", "1.50h", "5.25h", "7"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableWidthCap(t *testing.T) {
	var buf bytes.Buffer
	f := New(Config{Format: FormatTable, Compact: true, MaxWidth: 40})

	sessions := testSessions()
	sessions[0].ID = "an-extremely-long-identifier-that-cannot-fit"

	if err := f.FormatSessions(&buf, sessions); err != nil {
		t.Fatalf("FormatSessions() error = %v", err)
	}

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if len(line) > 40 {
			t.Errorf("line exceeds width cap (%d chars): %q", len(line), line)
		}
	}
}

func TestJSONFormatSessions(t *testing.T) {
	var buf bytes.Buffer
	f := New(Config{Format: FormatJSON})

	if err := f.FormatSessions(&buf, testSessions()); err != nil {
		t.Fatalf("FormatSessions() error = %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d sessions, want 2", len(decoded))
	}
	if decoded[0]["start_date"] != "02/22/2026" {
		t.Errorf("start_date = %v", decoded[0]["start_date"])
	}
}

func TestJSONFormatSummary(t *testing.T) {
	var buf bytes.Buffer
	f := New(Config{Format: FormatJSON, Compact: true})

	if err := f.FormatSummary(&buf, testSummary()); err != nil {
		t.Fatalf("FormatSummary() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["daily"] != 1.5 {
		t.Errorf("daily = %v, want 1.5", decoded["daily"])
	}
}

func TestSimpleFormatSessions(t *testing.T) {
	var buf bytes.Buffer
	f := New(Config{Format: FormatSimple})

	if err := f.FormatSessions(&buf, testSessions()); err != nil {
		t.Fatalf("FormatSessions() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "25m focus / 5m break") {
		t.Errorf("line = %q", lines[0])
	}
}

func TestSimpleFormatWeekly(t *testing.T) {
	var buf bytes.Buffer
	f := New(Config{Format: FormatSimple})

	breakdown := []analytics.TypeBreakdown{
		{UserID: "u1", Type: session.TypeWork, Hours: 2},
		{UserID: "u1", Type: session.TypeStudy, Hours: 1.5},
	}

	if err := f.FormatWeekly(&buf, breakdown); err != nil {
		t.Fatalf("FormatWeekly() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "work: 2.00h") || !strings.Contains(out, "study: 1.50h") {
		t.Errorf("output = %q", out)
	}
}

func TestFormatBlocklist(t *testing.T) {
	entries := []*blocklist.Entry{
		{ID: "e1", UserID: "u1", Domain: "reddit.com", ListType: blocklist.ListWork},
		{ID: "e2", UserID: "u1", Domain: "twitter.com", ListType: blocklist.ListPermanent},
	}

	for _, format := range []Format{FormatTable, FormatJSON, FormatSimple} {
		var buf bytes.Buffer
		if err := New(Config{Format: format}).FormatBlocklist(&buf, entries); err != nil {
			t.Fatalf("FormatBlocklist(%s) error = %v", format, err)
		}
		if !strings.Contains(buf.String(), "reddit.com") {
			t.Errorf("FormatBlocklist(%s) missing domain:\n%s", format, buf.String())
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 5); got != "ab..." {
		t.Errorf("truncate() = %q, want ab...", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate() = %q, want abc", got)
	}
	if got := truncate("abcdefgh", 0); got != "abcdefgh" {
		t.Errorf("truncate() = %q, want unchanged", got)
	}
}
