package session

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// memoryStore implements Store using an in-memory map.
// Useful for testing.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*FocusSession
	nextSeq  uint64
}

// NewMemoryStore creates an in-memory session store.
//
// Returns a configured Store. Useful for testing or when persistence is
// not needed.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]*FocusSession),
	}
}

// Insert implements Store.Insert.
func (s *memoryStore) Insert(sess *FocusSession) (string, bool, error) {
	if sess == nil {
		return "", false, ErrNilSession
	}
	if err := sess.Validate(); err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stored := range s.sessions {
		if sameFields(stored, sess) {
			return stored.ID, false, nil
		}
	}

	s.nextSeq++
	sess.ID = uuid.NewString()
	sess.Sequence = s.nextSeq

	stored := *sess
	s.sessions[sess.ID] = &stored

	return sess.ID, true, nil
}

// Get implements Store.Get.
func (s *memoryStore) Get(id, userID string) (*FocusSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.sessions[id]
	if !ok || stored.UserID != userID {
		return nil, ErrSessionNotFound
	}

	copied := *stored
	return &copied, nil
}

// FindByUser implements Store.FindByUser.
func (s *memoryStore) FindByUser(userID string, f Filter) ([]*FocusSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*FocusSession, 0)
	for _, stored := range s.sessions {
		if stored.UserID != userID || !f.matches(stored) {
			continue
		}
		copied := *stored
		results = append(results, &copied)
	}

	if f.SortByStart {
		sort.SliceStable(results, func(i, j int) bool {
			return byStart(results[i], results[j])
		})
	} else {
		// Map iteration order is random; keep results deterministic.
		sort.Slice(results, func(i, j int) bool {
			return results[i].Sequence < results[j].Sequence
		})
	}

	return results, nil
}

// FindCompletedOn implements Store.FindCompletedOn.
func (s *memoryStore) FindCompletedOn(date string, afterSeq uint64) ([]*FocusSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*FocusSession, 0)
	for _, stored := range s.sessions {
		if stored.Status == StatusCompleted && stored.StartDate == date && stored.Sequence > afterSeq {
			copied := *stored
			results = append(results, &copied)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Sequence < results[j].Sequence
	})

	return results, nil
}

// Update implements Store.Update.
func (s *memoryStore) Update(id, userID string, p Patch) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[id]
	if !ok || stored.UserID != userID {
		return 0, nil
	}

	updated := *stored
	p.Apply(&updated)

	if updated == *stored {
		return 0, nil
	}

	s.sessions[id] = &updated
	return 1, nil
}

// Delete implements Store.Delete.
func (s *memoryStore) Delete(id, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[id]
	if !ok || stored.UserID != userID {
		return 0, nil
	}

	delete(s.sessions, id)
	return 1, nil
}
