package analytics

import (
	"fmt"
	"sync"
)

// memoryStore is an in-memory Store for tests.
type memoryStore struct {
	mu        sync.RWMutex
	records   map[string]Record
	watermark uint64
}

// NewMemoryStore creates an in-memory analytics store.
func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string]Record)}
}

func (s *memoryStore) Record(userID string) (*Record, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	out := rec
	return &out, nil
}

func (s *memoryStore) UpsertRecord(rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}
	if rec.UserID == "" {
		return ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.UserID] = *rec
	return nil
}

func (s *memoryStore) Users() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.records))
	for id := range s.records {
		users = append(users, id)
	}
	return users, nil
}

func (s *memoryStore) Watermark() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watermark, nil
}

func (s *memoryStore) SetWatermark(seq uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.watermark {
		return fmt.Errorf("%w: %d < %d", ErrWatermarkRegression, seq, s.watermark)
	}
	s.watermark = seq
	return nil
}
