package analytics

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/focusbuddy/focusd/pkg/logger"
	"github.com/focusbuddy/focusd/pkg/session"
)

// AggregatorConfig holds aggregator settings.
type AggregatorConfig struct {
	// Location resolves "today" for the fold. Defaults to time.Local.
	Location *time.Location

	// Now supplies the current time. Defaults to time.Now.
	Now func() time.Time
}

// aggregator implements Aggregator over a session store and an
// analytics store.
type aggregator struct {
	mu        sync.Mutex
	sessions  session.Store
	analytics Store
	location  *time.Location
	now       func() time.Time
	logger    logger.Logger
}

// NewAggregator creates an incremental aggregator.
func NewAggregator(sessions session.Store, analytics Store, cfg AggregatorConfig, log logger.Logger) Aggregator {
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
	return &aggregator{
		sessions:  sessions,
		analytics: analytics,
		location:  loc,
		now:       now,
		logger:    log,
	}
}

func (a *aggregator) RunIncremental() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	wm, err := a.analytics.Watermark()
	if err != nil {
		return fmt.Errorf("failed to read watermark: %w", err)
	}

	today := a.now().In(a.location).Format(session.DateLayout)
	batch, err := a.sessions.FindCompletedOn(today, wm)
	if err != nil {
		return fmt.Errorf("failed to find completed sessions: %w", err)
	}
	if len(batch) == 0 {
		a.logger.Debug("no new completed sessions", "date", today, "watermark", wm)
		return nil
	}

	for _, sess := range batch {
		if err := a.fold(sess); err != nil {
			return err
		}
		// Advance only after the record write landed, so a failed run
		// replays the unfolded tail on retry.
		if err := a.analytics.SetWatermark(sess.Sequence); err != nil {
			return fmt.Errorf("failed to advance watermark: %w", err)
		}
	}

	a.logger.Info("folded completed sessions",
		"date", today,
		"count", len(batch),
		"watermark", batch[len(batch)-1].Sequence)
	return nil
}

// fold adds one completed session to its user's running totals.
func (a *aggregator) fold(sess *session.FocusSession) error {
	rec, err := a.analytics.Record(sess.UserID)
	if errors.Is(err, ErrRecordNotFound) {
		rec = &Record{UserID: sess.UserID}
	} else if err != nil {
		return fmt.Errorf("failed to load record for %s: %w", sess.UserID, err)
	}

	rec.DailyMinutes += sess.DurationMinutes
	rec.WeeklyMinutes += sess.DurationMinutes
	rec.CompletedSessions++

	if err := a.analytics.UpsertRecord(rec); err != nil {
		return fmt.Errorf("failed to store record for %s: %w", sess.UserID, err)
	}
	return nil
}

func (a *aggregator) ResetPeriod(period string) error {
	if period != PeriodDaily && period != PeriodWeekly {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.analytics.Users()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, userID := range users {
		rec, err := a.analytics.Record(userID)
		if err != nil {
			return fmt.Errorf("failed to load record for %s: %w", userID, err)
		}
		switch period {
		case PeriodDaily:
			rec.DailyMinutes = 0
		case PeriodWeekly:
			rec.WeeklyMinutes = 0
		}
		if err := a.analytics.UpsertRecord(rec); err != nil {
			return fmt.Errorf("failed to store record for %s: %w", userID, err)
		}
	}

	a.logger.Info("reset period totals", "period", period, "users", len(users))
	return nil
}
