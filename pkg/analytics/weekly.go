package analytics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/focusbuddy/focusd/pkg/logger"
	"github.com/focusbuddy/focusd/pkg/session"
)

// ReporterConfig holds reporter settings.
type ReporterConfig struct {
	// Location resolves the current week and day. Defaults to
	// time.Local.
	Location *time.Location

	// Now supplies the current time. Defaults to time.Now.
	Now func() time.Time
}

// reporter implements Reporter by scanning session history.
type reporter struct {
	sessions  session.Store
	analytics Store
	location  *time.Location
	now       func() time.Time
	logger    logger.Logger
}

// NewReporter creates a history-backed reporter.
func NewReporter(sessions session.Store, analytics Store, cfg ReporterConfig, log logger.Logger) Reporter {
	if log == nil {
		log = logger.Noop()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &reporter{
		sessions:  sessions,
		analytics: analytics,
		location:  loc,
		now:       now,
		logger:    log,
	}
}

// currentWeek returns the ISO week containing now: Monday 00:00 through
// the following Monday, as naive UTC dates comparable to parsed session
// dates.
func (r *reporter) currentWeek() Range {
	nowLoc := r.now().In(r.location)
	y, m, d := nowLoc.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(nowLoc.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -offset)
	return Range{Start: monday, End: monday.AddDate(0, 0, 7)}
}

// completedIn returns the user's completed sessions whose start date
// falls inside the window.
func (r *reporter) completedIn(userID string, rng Range) ([]*session.FocusSession, error) {
	all, err := r.sessions.FindByUser(userID, session.Filter{
		Statuses: []session.Status{session.StatusCompleted},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list completed sessions: %w", err)
	}

	var out []*session.FocusSession
	for _, sess := range all {
		day, err := session.ParseDate(sess.StartDate)
		if err != nil {
			continue
		}
		if rng.contains(day) {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (r *reporter) WeeklyByType(userID string, rng *Range) ([]TypeBreakdown, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	var window Range
	if rng == nil {
		window = r.currentWeek()
	} else {
		if err := rng.validate(); err != nil {
			return nil, err
		}
		window = *rng
	}

	batch, err := r.completedIn(userID, window)
	if err != nil {
		return nil, err
	}

	minutes := make(map[session.SessionType]int)
	for _, sess := range batch {
		minutes[sess.Type] += sess.DurationMinutes
	}

	types := make([]session.SessionType, 0, len(minutes))
	for t := range minutes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	out := make([]TypeBreakdown, 0, len(types))
	for _, t := range types {
		out = append(out, TypeBreakdown{
			UserID: userID,
			Type:   t,
			Hours:  Hours(minutes[t]),
		})
	}
	return out, nil
}

func (r *reporter) DailyTotal(userID, date string) (float64, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}
	if _, err := session.ParseDate(date); err != nil {
		return 0, err
	}

	batch, err := r.sessions.FindByUser(userID, session.Filter{
		Statuses:  []session.Status{session.StatusCompleted},
		StartDate: date,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list completed sessions: %w", err)
	}

	total := 0
	for _, sess := range batch {
		total += sess.DurationMinutes
	}
	return Hours(total), nil
}

func (r *reporter) WeeklyTotal(userID string) (float64, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}

	batch, err := r.completedIn(userID, r.currentWeek())
	if err != nil {
		return 0, err
	}

	total := 0
	for _, sess := range batch {
		total += sess.DurationMinutes
	}
	return Hours(total), nil
}

func (r *reporter) CompletedCount(userID string) (int, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}

	batch, err := r.sessions.FindByUser(userID, session.Filter{
		Statuses: []session.Status{session.StatusCompleted},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list completed sessions: %w", err)
	}
	return len(batch), nil
}

func (r *reporter) Summary(userID string) (*Summary, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	rec, err := r.analytics.Record(userID)
	if errors.Is(err, ErrRecordNotFound) {
		return &Summary{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}

	return &Summary{
		UserID:            rec.UserID,
		DailyHours:        Hours(rec.DailyMinutes),
		WeeklyHours:       Hours(rec.WeeklyMinutes),
		CompletedSessions: rec.CompletedSessions,
	}, nil
}
