package schedule

import (
	"fmt"
	"sync"

	"github.com/focusbuddy/focusd/pkg/logger"
	"github.com/focusbuddy/focusd/pkg/session"
)

// scheduler implements the Scheduler interface.
//
// The conflict check followed by the write is a check-then-act sequence;
// a per-user mutex is held across both so concurrent requests for the
// same user cannot both pass the check against the pre-write state.
// Requests for different users never contend.
type scheduler struct {
	store   session.Store
	checker *ConflictChecker
	logger  logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a scheduler over the given store.
//
// Parameters:
//   - store: session store
//   - log: Logger instance
//
// Returns a configured Scheduler.
func New(store session.Store, log logger.Logger) Scheduler {
	return &scheduler{
		store:   store,
		checker: NewConflictChecker(store),
		logger:  log,
		locks:   make(map[string]*sync.Mutex),
	}
}

// lockUser acquires the user's write lock, creating it on first use.
// Returns the unlock function.
func (s *scheduler) lockUser(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Add implements Scheduler.Add.
func (s *scheduler) Add(userID string, d Draft) (string, error) {
	sess := &session.FocusSession{
		UserID:                userID,
		Status:                d.Status,
		StartDate:             d.StartDate,
		StartTime:             d.StartTime,
		DurationMinutes:       d.DurationMinutes,
		BreakMinutes:          d.BreakMinutes,
		Type:                  d.Type,
		RemainingFocusSeconds: d.RemainingFocusSeconds,
		RemainingBreakSeconds: d.RemainingBreakSeconds,
	}
	if err := sess.Validate(); err != nil {
		return "", err
	}

	defer s.lockUser(userID)()

	conflict, err := s.checker.HasConflict(userID, Interval{
		StartDate:       d.StartDate,
		StartTime:       d.StartTime,
		DurationMinutes: d.DurationMinutes,
		BreakMinutes:    d.BreakMinutes,
	}, "")
	if err != nil {
		return "", fmt.Errorf("conflict check failed: %w", err)
	}
	if conflict {
		s.logger.Info("session add rejected",
			"user", userID,
			"start", d.StartDate+" "+d.StartTime,
			"reason", "conflict")
		return "", ErrConflict
	}

	id, inserted, err := s.store.Insert(sess)
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}
	if !inserted {
		s.logger.Debug("session add was a duplicate submission",
			"user", userID,
			"id", id)
	}

	return id, nil
}

// Modify implements Scheduler.Modify.
func (s *scheduler) Modify(userID, sessionID string, p session.Patch) error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	if err := p.Validate(); err != nil {
		return err
	}

	defer s.lockUser(userID)()

	existing, err := s.store.Get(sessionID, userID)
	if err != nil {
		return err
	}

	// Merge onto the stored record so a partial patch keeps the current
	// date/time/duration values in the conflict check.
	merged := *existing
	p.Apply(&merged)

	conflict, err := s.checker.HasConflict(userID, Interval{
		StartDate:       merged.StartDate,
		StartTime:       merged.StartTime,
		DurationMinutes: merged.DurationMinutes,
		BreakMinutes:    merged.BreakMinutes,
	}, sessionID)
	if err != nil {
		return fmt.Errorf("conflict check failed: %w", err)
	}
	if conflict {
		s.logger.Info("session modify rejected",
			"user", userID,
			"id", sessionID,
			"reason", "conflict")
		return ErrConflict
	}

	if _, err := s.store.Update(sessionID, userID, p); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// Delete implements Scheduler.Delete.
func (s *scheduler) Delete(userID, sessionID string) error {
	defer s.lockUser(userID)()

	n, err := s.store.Delete(sessionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return session.ErrSessionNotFound
	}

	return nil
}

// Next implements Scheduler.Next.
func (s *scheduler) Next(userID string) (*session.FocusSession, error) {
	upcoming, err := s.store.FindByUser(userID, session.Filter{
		Statuses:    []session.Status{session.StatusUpcoming},
		SortByStart: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming sessions: %w", err)
	}

	if len(upcoming) == 0 {
		return nil, nil
	}
	return upcoming[0], nil
}

// ListByStatus implements Scheduler.ListByStatus.
func (s *scheduler) ListByStatus(userID string, statuses []session.Status) ([]*session.FocusSession, error) {
	for _, st := range statuses {
		if !st.Valid() {
			return nil, fmt.Errorf("%w: %d", session.ErrInvalidStatus, int(st))
		}
	}

	return s.store.FindByUser(userID, session.Filter{
		Statuses:    statuses,
		SortByStart: true,
	})
}
