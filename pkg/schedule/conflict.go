package schedule

import (
	"fmt"
	"time"

	"github.com/focusbuddy/focusd/pkg/session"
)

// daySeconds is the length of a calendar day in seconds. A session whose
// effective interval ends past this bound spills into the next day.
const daySeconds = 86400

// Interval is the effective wall-clock span of a session: start through
// start + duration + break, possibly crossing midnight.
type Interval struct {
	StartDate       string
	StartTime       string
	DurationMinutes int
	BreakMinutes    int
}

// bounds resolves the interval to its calendar day and its start/end in
// seconds since that day's midnight. End may exceed daySeconds when the
// interval wraps past midnight.
func (iv Interval) bounds() (day time.Time, start, end int, err error) {
	day, err = session.ParseDate(iv.StartDate)
	if err != nil {
		return time.Time{}, 0, 0, err
	}
	start, err = session.ClockSeconds(iv.StartTime)
	if err != nil {
		return time.Time{}, 0, 0, err
	}
	end = start + (iv.DurationMinutes+iv.BreakMinutes)*60
	return day, start, end, nil
}

// ConflictChecker decides interval overlap for a user's sessions.
// It is a pure read path: no writes, no side effects beyond the store
// read.
type ConflictChecker struct {
	store session.Store
}

// NewConflictChecker creates a conflict checker over the given store.
func NewConflictChecker(store session.Store) *ConflictChecker {
	return &ConflictChecker{store: store}
}

// HasConflict reports whether the candidate interval overlaps any other
// session of the user. excludeID skips one session, used when an edit is
// checked against itself.
//
// Sessions are calendar-date plus wall-clock based, not absolute
// timestamps, so a naive same-date overlap test misses sessions that
// spill past midnight. Three cases cover all overlaps:
//
//   - same date: half-open interval test
//   - stored session one day before the candidate: its spillover past
//     midnight lands on the candidate's date
//   - candidate one day before a stored session: the mirror case
//
// Any other date relationship cannot overlap.
func (c *ConflictChecker) HasConflict(userID string, cand Interval, excludeID string) (bool, error) {
	candDay, candStart, candEnd, err := cand.bounds()
	if err != nil {
		return false, err
	}

	others, err := c.store.FindByUser(userID, session.Filter{})
	if err != nil {
		return false, fmt.Errorf("failed to load sessions for conflict check: %w", err)
	}

	for _, stored := range others {
		if stored.ID == excludeID {
			continue
		}

		storedDay, storedStart, storedEnd, boundsErr := Interval{
			StartDate:       stored.StartDate,
			StartTime:       stored.StartTime,
			DurationMinutes: stored.DurationMinutes,
			BreakMinutes:    stored.BreakMinutes,
		}.bounds()
		if boundsErr != nil {
			// Stored sessions are validated at write time; an
			// unparseable record cannot participate in overlap.
			continue
		}

		switch daysApart(storedDay, candDay) {
		case 0:
			if candStart < storedEnd && candEnd > storedStart {
				return true, nil
			}
		case 1:
			// Stored session is one day before the candidate: only its
			// spillover past midnight can reach the candidate's date.
			if storedEnd > daySeconds && candStart < storedEnd%daySeconds {
				return true, nil
			}
		case -1:
			// Candidate is one day before the stored session.
			if candEnd > daySeconds && candEnd%daySeconds > storedStart {
				return true, nil
			}
		}
	}

	return false, nil
}

// daysApart returns the whole calendar days from a to b. Both values are
// midnight instants produced by session.ParseDate.
func daysApart(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
