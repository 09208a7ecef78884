package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusbuddy/focusd/pkg/logger"
	"github.com/focusbuddy/focusd/pkg/session"
)

func newReporter(t *testing.T) (Reporter, session.Store, Store) {
	t.Helper()

	sessions := session.NewMemoryStore()
	records := NewMemoryStore()
	rep := NewReporter(sessions, records, ReporterConfig{
		Location: time.UTC,
		Now:      fixedNow,
	}, logger.Noop())
	return rep, sessions, records
}

// seedTyped inserts a completed session with an explicit type.
func seedTyped(t *testing.T, store session.Store, user, date, start string, minutes int, typ session.SessionType) {
	t.Helper()

	sess := &session.FocusSession{
		UserID:          user,
		Status:          session.StatusCompleted,
		StartDate:       date,
		StartTime:       start,
		DurationMinutes: minutes,
		BreakMinutes:    5,
		Type:            typ,
	}
	_, inserted, err := store.Insert(sess)
	require.NoError(t, err)
	require.True(t, inserted)
}

func TestWeeklyByTypeDefaultWindow(t *testing.T) {
	rep, sessions, _ := newReporter(t)

	// 02/22/2026 is a Sunday, so the current week runs 02/16 - 02/22.
	seedTyped(t, sessions, "u1", "02/16/2026", "08:00:00", 60, session.TypeWork)
	seedTyped(t, sessions, "u1", "02/22/2026", "09:00:00", 90, session.TypeStudy)
	seedTyped(t, sessions, "u1", "02/22/2026", "11:00:00", 30, session.TypeWork)
	// Previous week, excluded.
	seedTyped(t, sessions, "u1", "02/15/2026", "08:00:00", 500, session.TypeWork)
	// Other user, excluded.
	seedTyped(t, sessions, "u2", "02/22/2026", "08:00:00", 45, session.TypeWork)

	got, err := rep.WeeklyByType("u1", nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, session.TypeWork, got[0].Type)
	assert.Equal(t, 1.5, got[0].Hours)
	assert.Equal(t, session.TypeStudy, got[1].Type)
	assert.Equal(t, 1.5, got[1].Hours)
}

func TestWeeklyByTypeExplicitRange(t *testing.T) {
	rep, sessions, _ := newReporter(t)

	seedTyped(t, sessions, "u1", "02/10/2026", "08:00:00", 60, session.TypePersonal)
	seedTyped(t, sessions, "u1", "02/15/2026", "08:00:00", 30, session.TypePersonal)
	seedTyped(t, sessions, "u1", "02/16/2026", "08:00:00", 45, session.TypePersonal)

	rng, err := ParseRange("02/10/2026", "02/16/2026")
	require.NoError(t, err)

	got, err := rep.WeeklyByType("u1", rng)
	require.NoError(t, err)
	require.Len(t, got, 1)
	// 02/16 is outside the half-open window.
	assert.Equal(t, 1.5, got[0].Hours)
}

func TestWeeklyByTypeRangeValidation(t *testing.T) {
	rep, _, _ := newReporter(t)

	_, err := ParseRange("02/16/2026", "02/10/2026")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ParseRange("01/01/2026", "03/15/2026")
	assert.ErrorIs(t, err, ErrRangeTooWide)

	_, err = ParseRange("2026-01-01", "01/10/2026")
	assert.Error(t, err)

	bad := &Range{
		Start: time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC),
	}
	_, err = rep.WeeklyByType("u1", bad)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDailyTotal(t *testing.T) {
	rep, sessions, _ := newReporter(t)

	seedTyped(t, sessions, "u1", "02/22/2026", "08:00:00", 25, session.TypeWork)
	seedTyped(t, sessions, "u1", "02/22/2026", "10:00:00", 50, session.TypeStudy)
	seedTyped(t, sessions, "u1", "02/21/2026", "08:00:00", 120, session.TypeWork)

	got, err := rep.DailyTotal("u1", "02/22/2026")
	require.NoError(t, err)
	assert.Equal(t, 1.25, got)

	got, err = rep.DailyTotal("u1", "02/20/2026")
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = rep.DailyTotal("u1", "22/02/2026")
	assert.Error(t, err)
}

func TestWeeklyTotal(t *testing.T) {
	rep, sessions, _ := newReporter(t)

	seedTyped(t, sessions, "u1", "02/16/2026", "08:00:00", 100, session.TypeWork)
	seedTyped(t, sessions, "u1", "02/22/2026", "08:00:00", 25, session.TypeWork)
	seedTyped(t, sessions, "u1", "02/15/2026", "08:00:00", 60, session.TypeWork)

	got, err := rep.WeeklyTotal("u1")
	require.NoError(t, err)
	assert.Equal(t, 2.08, got)
}

func TestCompletedCount(t *testing.T) {
	rep, sessions, _ := newReporter(t)

	seedTyped(t, sessions, "u1", "02/01/2026", "08:00:00", 25, session.TypeWork)
	seedTyped(t, sessions, "u1", "02/22/2026", "08:00:00", 25, session.TypeWork)

	got, err := rep.CompletedCount("u1")
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	got, err = rep.CompletedCount("nobody")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestSummary(t *testing.T) {
	rep, _, records := newReporter(t)

	require.NoError(t, records.UpsertRecord(&Record{
		UserID:            "u1",
		DailyMinutes:      90,
		WeeklyMinutes:     330,
		CompletedSessions: 7,
	}))

	got, err := rep.Summary("u1")
	require.NoError(t, err)
	assert.Equal(t, 1.5, got.DailyHours)
	assert.Equal(t, 5.5, got.WeeklyHours)
	assert.Equal(t, 7, got.CompletedSessions)

	// Unknown users read as zero totals, not an error.
	got, err = rep.Summary("nobody")
	require.NoError(t, err)
	assert.Zero(t, got.DailyHours)
	assert.Zero(t, got.CompletedSessions)
}

func TestHours(t *testing.T) {
	cases := map[int]float64{
		0:   0,
		25:  0.42,
		60:  1,
		90:  1.5,
		125: 2.08,
	}
	for minutes, want := range cases {
		if got := Hours(minutes); got != want {
			t.Errorf("Hours(%d) = %v, want %v", minutes, got, want)
		}
	}
}
