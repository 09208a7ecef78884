// Package schedule provides conflict-aware focus-session scheduling.
//
// The conflict checker decides whether a proposed interval overlaps any
// existing session for the same user, including sessions that spill past
// midnight into the next calendar day. The scheduler orchestrates session
// CRUD, running the conflict check before every write.
//
// Example usage:
//
//	sched := schedule.New(store, logger.Default())
//
//	id, err := sched.Add("u1", schedule.Draft{
//	    Status:          session.StatusUpcoming,
//	    StartDate:       "02/22/2026",
//	    StartTime:       "09:00:00",
//	    DurationMinutes: 50,
//	    BreakMinutes:    10,
//	    Type:            session.TypeStudy,
//	})
//	if errors.Is(err, schedule.ErrConflict) {
//	    // slot already taken, pick another
//	}
package schedule

import (
	"github.com/focusbuddy/focusd/pkg/session"
)

// Draft holds the caller-supplied fields of a new session. The store
// assigns the id and sequence.
type Draft struct {
	// Status is the initial lifecycle state.
	Status session.Status

	// StartDate is the local calendar date (MM/DD/YYYY).
	StartDate string

	// StartTime is the local time of day (HH:MM:SS).
	StartTime string

	// DurationMinutes is the focus duration in minutes.
	DurationMinutes int

	// BreakMinutes is the break duration in minutes.
	BreakMinutes int

	// Type is the session category.
	Type session.SessionType

	// RemainingFocusSeconds tracks partial completion of the focus span.
	RemainingFocusSeconds int

	// RemainingBreakSeconds tracks partial completion of the break span.
	RemainingBreakSeconds int
}

// Scheduler orchestrates session CRUD with conflict checking.
type Scheduler interface {
	// Add validates and stores a new session after checking its
	// interval against every existing session of the user.
	//
	// Returns:
	//   - id of the stored session
	//   - ErrConflict if the interval overlaps an existing session
	//     (no write performed)
	//   - a session validation error for malformed input
	Add(userID string, d Draft) (string, error)

	// Modify merges a partial update onto the stored session, reruns
	// the conflict check on the merged interval excluding the session
	// itself, and only then writes.
	//
	// Returns:
	//   - ErrEmptyPatch if no fields are set (checked before any
	//     store access)
	//   - session.ErrSessionNotFound if absent or not owned
	//   - ErrConflict if the merged interval overlaps another session
	Modify(userID, sessionID string, p session.Patch) error

	// Delete removes a session owned by the user.
	//
	// Returns session.ErrSessionNotFound if absent or owned by another
	// user; the two cases are indistinguishable to the caller.
	Delete(userID, sessionID string) error

	// Next returns the upcoming session with the earliest
	// (start_date, start_time), or nil if the user has none.
	Next(userID string) (*session.FocusSession, error)

	// ListByStatus returns the user's sessions in the given states,
	// or all sessions when statuses is empty.
	ListByStatus(userID string, statuses []session.Status) ([]*session.FocusSession, error)
}
