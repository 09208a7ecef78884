package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/focusbuddy/focusd/pkg/logger"
)

// Bucket names.
var (
	bucketSessions = []byte("sessions")         // ID -> FocusSession
	bucketUserIdx  = []byte("session_user_idx") // UserID \x00 ID -> ID
)

// boltStore implements Store using BoltDB.
//
// The *bolt.DB handle is owned by the caller; the store never closes it.
// Sequence numbers come from the sessions bucket's internal counter via
// NextSequence inside the insert transaction, so they are monotonic and
// assigned atomically with the write.
type boltStore struct {
	db     *bolt.DB
	logger logger.Logger
}

// NewBoltStore creates a BoltDB-backed session store.
//
// Parameters:
//   - db: BoltDB database instance (caller-owned)
//   - log: Logger instance
//
// Returns:
//   - Configured Store
//   - Error if bucket initialization fails
func NewBoltStore(db *bolt.DB, log logger.Logger) (Store, error) {
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, createErr := tx.CreateBucketIfNotExists(bucketSessions); createErr != nil {
			return fmt.Errorf("failed to create sessions bucket: %w", createErr)
		}
		if _, createErr := tx.CreateBucketIfNotExists(bucketUserIdx); createErr != nil {
			return fmt.Errorf("failed to create user index bucket: %w", createErr)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return &boltStore{
		db:     db,
		logger: log,
	}, nil
}

// userKey builds an index key scoping an id to a user. The NUL separator
// cannot appear in user ids or session ids.
func userKey(userID, id string) []byte {
	key := make([]byte, 0, len(userID)+1+len(id))
	key = append(key, userID...)
	key = append(key, 0)
	key = append(key, id...)
	return key
}

// userPrefix is the index prefix covering every session of a user.
func userPrefix(userID string) []byte {
	prefix := make([]byte, 0, len(userID)+1)
	prefix = append(prefix, userID...)
	prefix = append(prefix, 0)
	return prefix
}

// Insert implements Store.Insert.
func (s *boltStore) Insert(sess *FocusSession) (string, bool, error) {
	if sess == nil {
		return "", false, ErrNilSession
	}
	if err := sess.Validate(); err != nil {
		return "", false, err
	}

	var (
		id       string
		inserted bool
	)

	err := s.db.Update(func(tx *bolt.Tx) error {
		sessions := tx.Bucket(bucketSessions)
		index := tx.Bucket(bucketUserIdx)

		// Insert-if-absent on the full field tuple: a resubmission of
		// an identical session returns the existing document.
		existing, scanErr := s.scanUser(tx, sess.UserID, func(stored *FocusSession) bool {
			return sameFields(stored, sess)
		})
		if scanErr != nil {
			return scanErr
		}
		if existing != nil {
			id = existing.ID
			inserted = false
			return nil
		}

		seq, seqErr := sessions.NextSequence()
		if seqErr != nil {
			return fmt.Errorf("failed to assign sequence: %w", seqErr)
		}

		sess.ID = uuid.NewString()
		sess.Sequence = seq

		data, marshalErr := json.Marshal(sess)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal session: %w", marshalErr)
		}

		if putErr := sessions.Put([]byte(sess.ID), data); putErr != nil {
			return fmt.Errorf("failed to store session: %w", putErr)
		}
		if putErr := index.Put(userKey(sess.UserID, sess.ID), []byte(sess.ID)); putErr != nil {
			return fmt.Errorf("failed to store user index: %w", putErr)
		}

		id = sess.ID
		inserted = true
		return nil
	})
	if err != nil {
		return "", false, err
	}

	if inserted {
		s.logger.Info("session created",
			"id", id,
			"user", sess.UserID,
			"start", sess.StartDate+" "+sess.StartTime,
			"sequence", sess.Sequence)
	} else {
		s.logger.Debug("duplicate session submission suppressed",
			"id", id,
			"user", sess.UserID)
	}

	return id, inserted, nil
}

// Get implements Store.Get.
func (s *boltStore) Get(id, userID string) (*FocusSession, error) {
	var found *FocusSession

	err := s.db.View(func(tx *bolt.Tx) error {
		sess, getErr := getOwned(tx, id, userID)
		if getErr != nil {
			return getErr
		}
		found = sess
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// FindByUser implements Store.FindByUser.
func (s *boltStore) FindByUser(userID string, f Filter) ([]*FocusSession, error) {
	results := make([]*FocusSession, 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		_, scanErr := s.scanUser(tx, userID, func(sess *FocusSession) bool {
			if f.matches(sess) {
				results = append(results, sess)
			}
			return false // keep scanning
		})
		return scanErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	if f.SortByStart {
		sort.SliceStable(results, func(i, j int) bool {
			return byStart(results[i], results[j])
		})
	}

	return results, nil
}

// FindCompletedOn implements Store.FindCompletedOn.
func (s *boltStore) FindCompletedOn(date string, afterSeq uint64) ([]*FocusSession, error) {
	results := make([]*FocusSession, 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)

		return b.ForEach(func(k, v []byte) error {
			var sess FocusSession
			if unmarshalErr := json.Unmarshal(v, &sess); unmarshalErr != nil {
				s.logger.Warn("failed to unmarshal session",
					"id", string(k),
					"error", unmarshalErr)
				return nil // Skip invalid entries.
			}

			if sess.Status == StatusCompleted && sess.StartDate == date && sess.Sequence > afterSeq {
				results = append(results, &sess)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan completed sessions: %w", err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Sequence < results[j].Sequence
	})

	return results, nil
}

// Update implements Store.Update.
func (s *boltStore) Update(id, userID string, p Patch) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	modified := 0

	err := s.db.Update(func(tx *bolt.Tx) error {
		sess, getErr := getOwned(tx, id, userID)
		if getErr == ErrSessionNotFound {
			return nil
		}
		if getErr != nil {
			return getErr
		}

		before, marshalErr := json.Marshal(sess)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal session: %w", marshalErr)
		}

		p.Apply(sess)

		after, marshalErr := json.Marshal(sess)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal session: %w", marshalErr)
		}

		// A patch that changes nothing modifies no documents.
		if bytes.Equal(before, after) {
			return nil
		}

		if putErr := tx.Bucket(bucketSessions).Put([]byte(id), after); putErr != nil {
			return fmt.Errorf("failed to update session: %w", putErr)
		}

		modified = 1
		return nil
	})
	if err != nil {
		return 0, err
	}

	if modified > 0 {
		s.logger.Info("session updated", "id", id, "user", userID)
	}

	return modified, nil
}

// Delete implements Store.Delete.
func (s *boltStore) Delete(id, userID string) (int, error) {
	deleted := 0

	err := s.db.Update(func(tx *bolt.Tx) error {
		_, getErr := getOwned(tx, id, userID)
		if getErr == ErrSessionNotFound {
			return nil
		}
		if getErr != nil {
			return getErr
		}

		if delErr := tx.Bucket(bucketSessions).Delete([]byte(id)); delErr != nil {
			return fmt.Errorf("failed to delete session: %w", delErr)
		}
		if delErr := tx.Bucket(bucketUserIdx).Delete(userKey(userID, id)); delErr != nil {
			return fmt.Errorf("failed to delete user index: %w", delErr)
		}

		deleted = 1
		return nil
	})
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.logger.Info("session deleted", "id", id, "user", userID)
	}

	return deleted, nil
}

// getOwned loads a session by id and verifies ownership. A session owned
// by a different user is reported as not found, never as forbidden.
func getOwned(tx *bolt.Tx, id, userID string) (*FocusSession, error) {
	data := tx.Bucket(bucketSessions).Get([]byte(id))
	if data == nil {
		return nil, ErrSessionNotFound
	}

	var sess FocusSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if sess.UserID != userID {
		return nil, ErrSessionNotFound
	}

	return &sess, nil
}

// scanUser walks a user's sessions via the index bucket, invoking visit
// for each. If visit returns true the scan stops and that session is
// returned.
func (s *boltStore) scanUser(tx *bolt.Tx, userID string, visit func(*FocusSession) bool) (*FocusSession, error) {
	sessions := tx.Bucket(bucketSessions)
	index := tx.Bucket(bucketUserIdx)

	prefix := userPrefix(userID)
	c := index.Cursor()

	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		data := sessions.Get(v)
		if data == nil {
			s.logger.Warn("dangling user index entry", "user", userID, "id", string(v))
			continue
		}

		var sess FocusSession
		if err := json.Unmarshal(data, &sess); err != nil {
			s.logger.Warn("failed to unmarshal session",
				"id", string(v),
				"error", err)
			continue
		}

		if visit(&sess) {
			return &sess, nil
		}
	}

	return nil, nil
}
