// Package session provides the focus-session model and persistent storage.
//
// A focus session is a time-boxed work/study/personal interval with break
// time, keyed by user. Sessions are stored as documents in BoltDB with a
// per-user index and a monotonic sequence number assigned at insert time.
//
// Example usage:
//
//	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	store, err := session.NewBoltStore(db, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	id, inserted, err := store.Insert(&session.FocusSession{
//	    UserID:          "u1",
//	    Status:          session.StatusUpcoming,
//	    StartDate:       "02/22/2026",
//	    StartTime:       "14:30:00",
//	    DurationMinutes: 25,
//	    BreakMinutes:    5,
//	    Type:            session.TypeWork,
//	})
package session

import (
	"fmt"
	"strings"
	"time"
)

// Date and time layouts used throughout the system.
//
// Dates are the user's local calendar date, times are local wall-clock
// time of day. Sessions are not absolute timestamps.
const (
	// DateLayout is the calendar date format (MM/DD/YYYY).
	DateLayout = "01/02/2006"

	// TimeLayout is the time-of-day format (HH:MM:SS).
	TimeLayout = "15:04:05"
)

// Status represents the lifecycle state of a focus session.
type Status int

// Session lifecycle states. COMPLETED is terminal and is the only state
// consumed by analytics.
const (
	StatusUpcoming Status = iota
	StatusOngoing
	StatusPaused
	StatusCompleted
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	return s >= StatusUpcoming && s <= StatusCompleted
}

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusUpcoming:
		return "upcoming"
	case StatusOngoing:
		return "ongoing"
	case StatusPaused:
		return "paused"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseStatus converts a status name to a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upcoming":
		return StatusUpcoming, nil
	case "ongoing":
		return StatusOngoing, nil
	case "paused":
		return StatusPaused, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// SessionType categorizes a focus session.
type SessionType int

// Session categories.
const (
	TypeWork SessionType = iota
	TypeStudy
	TypePersonal
	TypeOther
)

// Valid reports whether the type is a known value.
func (t SessionType) Valid() bool {
	return t >= TypeWork && t <= TypeOther
}

// String returns a human-readable type name.
func (t SessionType) String() string {
	switch t {
	case TypeWork:
		return "work"
	case TypeStudy:
		return "study"
	case TypePersonal:
		return "personal"
	case TypeOther:
		return "other"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// ParseType converts a type name to a SessionType.
func ParseType(s string) (SessionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "work":
		return TypeWork, nil
	case "study":
		return TypeStudy, nil
	case "personal":
		return TypePersonal, nil
	case "other":
		return TypeOther, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// FocusSession represents a stored focus session.
type FocusSession struct {
	// ID is the opaque unique identifier assigned by the store.
	ID string `json:"id"`

	// UserID is the owning user. Immutable after creation.
	UserID string `json:"user_id"`

	// Status is the lifecycle state.
	Status Status `json:"status"`

	// StartDate is the local calendar date (MM/DD/YYYY).
	StartDate string `json:"start_date"`

	// StartTime is the local time of day (HH:MM:SS).
	StartTime string `json:"start_time"`

	// DurationMinutes is the focus duration in minutes.
	DurationMinutes int `json:"duration_minutes"`

	// BreakMinutes is the break duration in minutes.
	BreakMinutes int `json:"break_duration_minutes"`

	// Type is the session category.
	Type SessionType `json:"session_type"`

	// RemainingFocusSeconds tracks partial completion of the focus span.
	RemainingFocusSeconds int `json:"remaining_focus_seconds"`

	// RemainingBreakSeconds tracks partial completion of the break span.
	RemainingBreakSeconds int `json:"remaining_break_seconds"`

	// Sequence is assigned once by the store at insert time, in
	// insertion order. Consumed only by the analytics aggregator.
	Sequence uint64 `json:"sequence"`
}

// Validate checks that all fields hold representable values.
func (s *FocusSession) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return ErrEmptyUserID
	}
	if !s.Status.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, int(s.Status))
	}
	if !s.Type.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidType, int(s.Type))
	}
	if _, err := ParseDate(s.StartDate); err != nil {
		return err
	}
	if _, err := ClockSeconds(s.StartTime); err != nil {
		return err
	}
	if s.DurationMinutes < 0 || s.BreakMinutes < 0 {
		return ErrNegativeDuration
	}
	if s.RemainingFocusSeconds < 0 || s.RemainingBreakSeconds < 0 {
		return ErrNegativeDuration
	}
	return nil
}

// sameFields reports whether two sessions carry the same field tuple,
// ignoring the store-assigned ID and Sequence. Used for insert-if-absent
// duplicate suppression.
func sameFields(a, b *FocusSession) bool {
	return a.UserID == b.UserID &&
		a.Status == b.Status &&
		a.StartDate == b.StartDate &&
		a.StartTime == b.StartTime &&
		a.DurationMinutes == b.DurationMinutes &&
		a.BreakMinutes == b.BreakMinutes &&
		a.Type == b.Type &&
		a.RemainingFocusSeconds == b.RemainingFocusSeconds &&
		a.RemainingBreakSeconds == b.RemainingBreakSeconds
}

// Patch is a typed partial update. Nil fields are left untouched; set
// fields replace the stored value.
type Patch struct {
	Status                *Status
	StartDate             *string
	StartTime             *string
	DurationMinutes       *int
	BreakMinutes          *int
	Type                  *SessionType
	RemainingFocusSeconds *int
	RemainingBreakSeconds *int
}

// IsEmpty reports whether the patch sets no fields.
func (p Patch) IsEmpty() bool {
	return p.Status == nil &&
		p.StartDate == nil &&
		p.StartTime == nil &&
		p.DurationMinutes == nil &&
		p.BreakMinutes == nil &&
		p.Type == nil &&
		p.RemainingFocusSeconds == nil &&
		p.RemainingBreakSeconds == nil
}

// Validate checks every set field for representable values.
func (p Patch) Validate() error {
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, int(*p.Status))
	}
	if p.Type != nil && !p.Type.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidType, int(*p.Type))
	}
	if p.StartDate != nil {
		if _, err := ParseDate(*p.StartDate); err != nil {
			return err
		}
	}
	if p.StartTime != nil {
		if _, err := ClockSeconds(*p.StartTime); err != nil {
			return err
		}
	}
	if p.DurationMinutes != nil && *p.DurationMinutes < 0 {
		return ErrNegativeDuration
	}
	if p.BreakMinutes != nil && *p.BreakMinutes < 0 {
		return ErrNegativeDuration
	}
	if p.RemainingFocusSeconds != nil && *p.RemainingFocusSeconds < 0 {
		return ErrNegativeDuration
	}
	if p.RemainingBreakSeconds != nil && *p.RemainingBreakSeconds < 0 {
		return ErrNegativeDuration
	}
	return nil
}

// Apply merges the set fields onto s.
func (p Patch) Apply(s *FocusSession) {
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.DurationMinutes != nil {
		s.DurationMinutes = *p.DurationMinutes
	}
	if p.BreakMinutes != nil {
		s.BreakMinutes = *p.BreakMinutes
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.RemainingFocusSeconds != nil {
		s.RemainingFocusSeconds = *p.RemainingFocusSeconds
	}
	if p.RemainingBreakSeconds != nil {
		s.RemainingBreakSeconds = *p.RemainingBreakSeconds
	}
}

// Filter narrows FindByUser results.
type Filter struct {
	// Statuses restricts results to the given states. Empty means all.
	Statuses []Status

	// StartDate restricts results to an exact calendar date when set.
	StartDate string

	// SortByStart orders results by (start_date, start_time) ascending.
	SortByStart bool
}

// matches reports whether a session passes the filter.
func (f Filter) matches(s *FocusSession) bool {
	if f.StartDate != "" && s.StartDate != f.StartDate {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, st := range f.Statuses {
		if s.Status == st {
			return true
		}
	}
	return false
}

// Store provides durable focus-session storage.
//
// Implementations must assign Sequence atomically at insert time and in
// insertion order.
type Store interface {
	// Insert stores a session with insert-if-absent semantics keyed by
	// the full field tuple: a literal duplicate submission returns the
	// existing session's id with inserted=false and performs no write.
	//
	// Returns:
	//   - id of the stored (or pre-existing) session
	//   - inserted=true if a new document was created
	//   - error for validation or storage failures
	Insert(s *FocusSession) (id string, inserted bool, err error)

	// Get retrieves a session by id, scoped to the owning user.
	//
	// Returns ErrSessionNotFound if the session does not exist or
	// belongs to another user.
	Get(id, userID string) (*FocusSession, error)

	// FindByUser returns the user's sessions passing the filter.
	FindByUser(userID string, f Filter) ([]*FocusSession, error)

	// FindCompletedOn returns completed sessions across all users with
	// the given start date and sequence strictly greater than afterSeq,
	// ordered by sequence ascending. This is the aggregator's scan.
	FindCompletedOn(date string, afterSeq uint64) ([]*FocusSession, error)

	// Update applies a patch to a session scoped to the owning user.
	//
	// Returns the number of modified documents (0 if the session is
	// absent, not owned, or the patch changes nothing).
	Update(id, userID string, p Patch) (int, error)

	// Delete removes a session scoped to the owning user.
	//
	// Returns the number of deleted documents (0 if absent or not
	// owned; cross-user deletes are indistinguishable from not found).
	Delete(id, userID string) (int, error)
}

// ParseDate parses a calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ClockSeconds converts a TimeLayout string to seconds since local
// midnight.
func ClockSeconds(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

// byStart orders sessions by (start_date, start_time) ascending.
// Assumes validated date/time strings; unparseable values sort last.
func byStart(a, b *FocusSession) bool {
	da, errA := ParseDate(a.StartDate)
	db, errB := ParseDate(b.StartDate)
	if errA != nil || errB != nil {
		return errB != nil && errA == nil
	}
	if !da.Equal(db) {
		return da.Before(db)
	}
	sa, _ := ClockSeconds(a.StartTime)
	sb, _ := ClockSeconds(b.StartTime)
	return sa < sb
}
