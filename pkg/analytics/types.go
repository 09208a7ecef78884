// Package analytics converts completed focus sessions into per-user
// running totals and time-bucketed breakdowns.
//
// Two independent read/write paths coexist:
//
//   - An incremental aggregator folds newly completed sessions into
//     durable per-user records exactly once, gated by a global sequence
//     watermark instead of per-event deduplication.
//   - A stateless reporter recomputes daily/weekly totals and per-type
//     weekly breakdowns directly from session history on every call, so
//     its reads never lag behind the aggregator.
//
// Example usage:
//
//	agg := analytics.NewAggregator(sessions, store, analytics.AggregatorConfig{}, log)
//	if err := agg.RunIncremental(); err != nil {
//	    log.Error("aggregation failed", "error", err)
//	}
package analytics

import (
	"math"
	"time"

	"github.com/focusbuddy/focusd/pkg/session"
)

// Record is a user's durable running totals. Totals are stored in
// minutes, the unit the fold accumulates; read surfaces convert to
// hours.
type Record struct {
	// UserID is the owning user.
	UserID string `json:"user_id"`

	// DailyMinutes accumulates completed focus minutes since the last
	// daily reset.
	DailyMinutes int `json:"daily_minutes"`

	// WeeklyMinutes accumulates completed focus minutes since the last
	// weekly reset.
	WeeklyMinutes int `json:"weekly_minutes"`

	// CompletedSessions counts completed sessions ever folded. Never
	// reset.
	CompletedSessions int `json:"completed_sessions"`
}

// Summary is the read-side view of a Record, totals in hours.
type Summary struct {
	UserID            string  `json:"user_id"`
	DailyHours        float64 `json:"daily"`
	WeeklyHours       float64 `json:"weekly"`
	CompletedSessions int     `json:"completed_sessions"`
}

// TypeBreakdown is one session type's total inside a reporting window.
type TypeBreakdown struct {
	UserID string              `json:"user_id"`
	Type   session.SessionType `json:"session_type"`
	Hours  float64             `json:"duration_hours"`
}

// Range is a half-open [Start, End) calendar-date window.
type Range struct {
	Start time.Time
	End   time.Time
}

// Store provides durable analytics records and the aggregation
// watermark.
type Store interface {
	// Record retrieves a user's running totals.
	//
	// Returns ErrRecordNotFound if the user has no record yet.
	Record(userID string) (*Record, error)

	// UpsertRecord stores a user's running totals, creating the record
	// if absent.
	UpsertRecord(rec *Record) error

	// Users returns every user id with an analytics record.
	Users() ([]string, error)

	// Watermark returns the highest session sequence already folded,
	// or 0 if aggregation has never run.
	Watermark() (uint64, error)

	// SetWatermark advances the watermark. The watermark only ever
	// moves forward; a regression returns ErrWatermarkRegression.
	// Setting the current value is a no-op.
	SetWatermark(seq uint64) error
}

// Aggregator folds completed sessions into running totals.
type Aggregator interface {
	// RunIncremental folds every completed session dated today with a
	// sequence above the watermark into its user's record, advancing
	// the watermark as each record write succeeds. Safe to invoke
	// repeatedly; concurrent invocations are serialized internally.
	//
	// On failure the watermark is never past the last successfully
	// folded session, so a retry reprocesses only unfolded sessions.
	RunIncremental() error

	// ResetPeriod zeroes the daily ("daily") or weekly ("weekly")
	// totals of every known user. Completed-session counts and the
	// watermark are untouched.
	//
	// Returns ErrInvalidPeriod for any other period name.
	ResetPeriod(period string) error
}

// Reporter computes analytics directly from session history. All
// methods recompute on every call and never consult the watermark.
type Reporter interface {
	// WeeklyByType groups the user's completed sessions inside the
	// window by session type, totals in hours. A nil window defaults
	// to the current ISO week (Monday 00:00 through next Monday).
	// Explicit windows longer than MaxRangeDays are rejected.
	WeeklyByType(userID string, rng *Range) ([]TypeBreakdown, error)

	// DailyTotal sums the user's completed sessions on one date, in
	// hours.
	DailyTotal(userID, date string) (float64, error)

	// WeeklyTotal sums the user's completed sessions in the current
	// ISO week, in hours.
	WeeklyTotal(userID string) (float64, error)

	// CompletedCount counts the user's completed sessions.
	CompletedCount(userID string) (int, error)

	// Summary returns the user's stored running totals converted to
	// hours, zero-valued if aggregation has not seen the user yet.
	Summary(userID string) (*Summary, error)
}

// MaxRangeDays caps explicit reporting windows.
const MaxRangeDays = 30

// Reset period names accepted by Aggregator.ResetPeriod.
const (
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"
)

// Hours converts minutes to hours rounded to two decimals for
// presentation.
func Hours(minutes int) float64 {
	return math.Round(float64(minutes)/60.0*100) / 100
}

// ParseRange builds a reporting window from two DateLayout strings.
// The window is half-open: [start, end).
func ParseRange(start, end string) (*Range, error) {
	s, err := session.ParseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := session.ParseDate(end)
	if err != nil {
		return nil, err
	}
	r := &Range{Start: s, End: e}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// validate checks window ordering and width.
func (r *Range) validate() error {
	if !r.End.After(r.Start) {
		return ErrInvalidRange
	}
	if r.End.Sub(r.Start) > MaxRangeDays*24*time.Hour {
		return ErrRangeTooWide
	}
	return nil
}

// contains reports whether a calendar date falls inside the window.
func (r *Range) contains(day time.Time) bool {
	return !day.Before(r.Start) && day.Before(r.End)
}
