package schedule

import (
	"testing"

	"github.com/focusbuddy/focusd/pkg/session"
)

// seedSession inserts a session and returns its id.
func seedSession(t *testing.T, store session.Store, user, date, clock string, durationMin, breakMin int) string {
	t.Helper()

	id, _, err := store.Insert(&session.FocusSession{
		UserID:          user,
		Status:          session.StatusUpcoming,
		StartDate:       date,
		StartTime:       clock,
		DurationMinutes: durationMin,
		BreakMinutes:    breakMin,
		Type:            session.TypeWork,
	})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return id
}

func TestHasConflictSameDate(t *testing.T) {
	tests := []struct {
		name      string
		stored    Interval
		candidate Interval
		want      bool
	}{
		{
			name:      "disjoint before",
			stored:    Interval{"02/22/2026", "10:00:00", 60, 0},
			candidate: Interval{"02/22/2026", "08:00:00", 60, 0},
			want:      false,
		},
		{
			name:      "disjoint after",
			stored:    Interval{"02/22/2026", "10:00:00", 60, 0},
			candidate: Interval{"02/22/2026", "12:00:00", 60, 0},
			want:      false,
		},
		{
			name:      "candidate ends exactly at stored start",
			stored:    Interval{"02/22/2026", "10:00:00", 60, 0},
			candidate: Interval{"02/22/2026", "09:00:00", 60, 0},
			want:      false,
		},
		{
			name:      "candidate starts exactly at stored end",
			stored:    Interval{"02/22/2026", "10:00:00", 50, 10},
			candidate: Interval{"02/22/2026", "11:00:00", 30, 0},
			want:      false,
		},
		{
			name:      "partial overlap at head",
			stored:    Interval{"02/22/2026", "10:00:00", 60, 0},
			candidate: Interval{"02/22/2026", "09:30:00", 60, 0},
			want:      true,
		},
		{
			name:      "partial overlap at tail",
			stored:    Interval{"02/22/2026", "10:00:00", 60, 0},
			candidate: Interval{"02/22/2026", "10:45:00", 60, 0},
			want:      true,
		},
		{
			name:      "candidate inside stored",
			stored:    Interval{"02/22/2026", "10:00:00", 120, 0},
			candidate: Interval{"02/22/2026", "10:30:00", 20, 5},
			want:      true,
		},
		{
			name:      "stored inside candidate",
			stored:    Interval{"02/22/2026", "10:30:00", 20, 0},
			candidate: Interval{"02/22/2026", "10:00:00", 120, 0},
			want:      true,
		},
		{
			name:      "break time counts toward the interval",
			stored:    Interval{"02/22/2026", "10:00:00", 30, 30},
			candidate: Interval{"02/22/2026", "10:45:00", 30, 0},
			want:      true,
		},
		{
			name:      "identical start one minute apart",
			stored:    Interval{"02/22/2026", "23:16:15", 1, 1},
			candidate: Interval{"02/22/2026", "23:15:15", 1, 1},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemoryStore()
			seedSession(t, store, "u1", tt.stored.StartDate, tt.stored.StartTime,
				tt.stored.DurationMinutes, tt.stored.BreakMinutes)

			checker := NewConflictChecker(store)
			got, err := checker.HasConflict("u1", tt.candidate, "")
			if err != nil {
				t.Fatalf("HasConflict() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("HasConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasConflictMidnightWrap(t *testing.T) {
	// Stored session 23:30 for 90 minutes total runs until 01:00 the
	// next day.
	tests := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{"next day inside spillover", Interval{"02/23/2026", "00:30:00", 15, 0}, true},
		{"next day just before spillover ends", Interval{"02/23/2026", "00:59:00", 30, 0}, true},
		{"next day at spillover end", Interval{"02/23/2026", "01:00:00", 30, 0}, false},
		{"next day after spillover", Interval{"02/23/2026", "02:00:00", 30, 0}, false},
		{"next day at midnight", Interval{"02/23/2026", "00:00:00", 10, 0}, true},
		{"two days later", Interval{"02/24/2026", "00:30:00", 15, 0}, false},
		{"previous day disjoint", Interval{"02/21/2026", "10:00:00", 60, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemoryStore()
			seedSession(t, store, "u1", "02/22/2026", "23:30:00", 60, 30)

			checker := NewConflictChecker(store)
			got, err := checker.HasConflict("u1", tt.candidate, "")
			if err != nil {
				t.Fatalf("HasConflict() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("HasConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasConflictCandidateWraps(t *testing.T) {
	// Mirror case: the candidate wraps past midnight into a stored
	// session on the following day.
	store := session.NewMemoryStore()
	seedSession(t, store, "u1", "02/23/2026", "00:30:00", 30, 0)

	checker := NewConflictChecker(store)

	wrapping := Interval{"02/22/2026", "23:30:00", 60, 30} // ends 01:00 next day
	got, err := checker.HasConflict("u1", wrapping, "")
	if err != nil {
		t.Fatalf("HasConflict() error = %v", err)
	}
	if !got {
		t.Error("HasConflict() = false, want true for wrapping candidate")
	}

	// Candidate that ends before the stored session starts.
	short := Interval{"02/22/2026", "23:30:00", 30, 0} // ends 00:00, no spillover
	got, err = checker.HasConflict("u1", short, "")
	if err != nil {
		t.Fatalf("HasConflict() error = %v", err)
	}
	if got {
		t.Error("HasConflict() = true, want false for non-wrapping candidate")
	}
}

func TestHasConflictScoping(t *testing.T) {
	store := session.NewMemoryStore()
	id := seedSession(t, store, "u1", "02/22/2026", "10:00:00", 60, 0)
	seedSession(t, store, "u2", "02/22/2026", "10:00:00", 60, 0)

	checker := NewConflictChecker(store)
	overlapping := Interval{"02/22/2026", "10:30:00", 60, 0}

	// Another user's identical schedule never conflicts.
	got, err := checker.HasConflict("u3", overlapping, "")
	if err != nil {
		t.Fatalf("HasConflict() error = %v", err)
	}
	if got {
		t.Error("HasConflict() = true for a user with no sessions")
	}

	// Excluding the overlapping session's own id clears the conflict.
	got, err = checker.HasConflict("u1", overlapping, id)
	if err != nil {
		t.Fatalf("HasConflict() error = %v", err)
	}
	if got {
		t.Error("HasConflict() = true with own id excluded")
	}

	got, err = checker.HasConflict("u1", overlapping, "")
	if err != nil {
		t.Fatalf("HasConflict() error = %v", err)
	}
	if !got {
		t.Error("HasConflict() = false without exclusion, want true")
	}
}

func TestHasConflictInvalidCandidate(t *testing.T) {
	checker := NewConflictChecker(session.NewMemoryStore())

	if _, err := checker.HasConflict("u1", Interval{"22/02/2026", "10:00:00", 30, 0}, ""); err == nil {
		t.Error("HasConflict() with bad date: error = nil, want error")
	}
	if _, err := checker.HasConflict("u1", Interval{"02/22/2026", "10am", 30, 0}, ""); err == nil {
		t.Error("HasConflict() with bad time: error = nil, want error")
	}
}
