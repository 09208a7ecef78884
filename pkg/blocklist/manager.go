package blocklist

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
	bucketEntries = []byte("blocklist")          // ID -> Entry
	bucketUserIdx = []byte("blocklist_user_idx") // UserID \x00 ID -> ID
)

// boltManager implements Manager using BoltDB. The *bolt.DB handle is
// owned by the caller; the manager never closes it.
type boltManager struct {
	db     *bolt.DB
	logger logger.Logger
}

// NewBoltManager creates a BoltDB-backed blocklist manager.
func NewBoltManager(db *bolt.DB, log logger.Logger) (Manager, error) {
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, createErr := tx.CreateBucketIfNotExists(bucketEntries); createErr != nil {
			return fmt.Errorf("failed to create blocklist bucket: %w", createErr)
		}
		if _, createErr := tx.CreateBucketIfNotExists(bucketUserIdx); createErr != nil {
			return fmt.Errorf("failed to create user index bucket: %w", createErr)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return &boltManager{
		db:     db,
		logger: log,
	}, nil
}

// userKey builds an index key scoping an id to a user.
func userKey(userID, id string) []byte {
	key := make([]byte, 0, len(userID)+1+len(id))
	key = append(key, userID...)
	key = append(key, 0)
	key = append(key, id...)
	return key
}

// userPrefix is the index prefix covering every entry of a user.
func userPrefix(userID string) []byte {
	prefix := make([]byte, 0, len(userID)+1)
	prefix = append(prefix, userID...)
	prefix = append(prefix, 0)
	return prefix
}

// Add implements Manager.Add.
func (m *boltManager) Add(userID, domain string, listType ListType) (*Entry, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if !ValidDomain(domain) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}
	if !listType.Valid() {
		return nil, ErrInvalidListType
	}

	entry := &Entry{
		UserID:   userID,
		Domain:   domain,
		ListType: listType,
	}

	err := m.db.Update(func(tx *bolt.Tx) error {
		entries := tx.Bucket(bucketEntries)
		index := tx.Bucket(bucketUserIdx)

		dup, scanErr := m.scanUser(tx, userID, func(stored *Entry) bool {
			return stored.Domain == domain
		})
		if scanErr != nil {
			return scanErr
		}
		if dup != nil {
			return fmt.Errorf("%w: %q", ErrDuplicateDomain, domain)
		}

		entry.ID = uuid.NewString()

		data, marshalErr := json.Marshal(entry)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal entry: %w", marshalErr)
		}

		if putErr := entries.Put([]byte(entry.ID), data); putErr != nil {
			return fmt.Errorf("failed to store entry: %w", putErr)
		}
		if putErr := index.Put(userKey(userID, entry.ID), []byte(entry.ID)); putErr != nil {
			return fmt.Errorf("failed to store user index: %w", putErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("domain blocked",
		"id", entry.ID,
		"user", userID,
		"domain", domain,
		"list", listType.String())
	return entry, nil
}

// List implements Manager.List.
func (m *boltManager) List(userID string) ([]*Entry, error) {
	return m.list(userID, func(*Entry) bool { return true })
}

// ListByType implements Manager.ListByType.
func (m *boltManager) ListByType(userID string, listType ListType) ([]*Entry, error) {
	if !listType.Valid() {
		return nil, ErrInvalidListType
	}
	return m.list(userID, func(e *Entry) bool { return e.ListType == listType })
}

func (m *boltManager) list(userID string, keep func(*Entry) bool) ([]*Entry, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	results := make([]*Entry, 0)
	err := m.db.View(func(tx *bolt.Tx) error {
		_, scanErr := m.scanUser(tx, userID, func(entry *Entry) bool {
			if keep(entry) {
				results = append(results, entry)
			}
			return false // keep scanning
		})
		return scanErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Domain < results[j].Domain
	})
	return results, nil
}

// Delete implements Manager.Delete.
func (m *boltManager) Delete(id, userID string) error {
	err := m.db.Update(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketEntries).Get([]byte(id))
		if data == nil {
			return ErrEntryNotFound
		}

		var entry Entry
		if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
			return fmt.Errorf("failed to unmarshal entry: %w", unmarshalErr)
		}

		// Another user's entry reads as not found, never as forbidden.
		if entry.UserID != userID {
			return ErrEntryNotFound
		}

		if delErr := tx.Bucket(bucketEntries).Delete([]byte(id)); delErr != nil {
			return fmt.Errorf("failed to delete entry: %w", delErr)
		}
		if delErr := tx.Bucket(bucketUserIdx).Delete(userKey(userID, id)); delErr != nil {
			return fmt.Errorf("failed to delete user index: %w", delErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info("domain unblocked", "id", id, "user", userID)
	return nil
}

// scanUser walks a user's entries via the index bucket, invoking visit
// for each. If visit returns true the scan stops and that entry is
// returned.
func (m *boltManager) scanUser(tx *bolt.Tx, userID string, visit func(*Entry) bool) (*Entry, error) {
	entries := tx.Bucket(bucketEntries)
	index := tx.Bucket(bucketUserIdx)

	prefix := userPrefix(userID)
	c := index.Cursor()

	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		data := entries.Get(v)
		if data == nil {
			m.logger.Warn("dangling user index entry", "user", userID, "id", string(v))
			continue
		}

		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			m.logger.Warn("failed to unmarshal entry",
				"id", string(v),
				"error", err)
			continue
		}

		if visit(&entry) {
			return &entry, nil
		}
	}

	return nil, nil
}
