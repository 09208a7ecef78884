package analytics

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/focusbuddy/focusd/pkg/logger"
)

var (
	recordsBucket   = []byte("analytics")
	watermarkBucket = []byte("analytics_watermark")
	watermarkKey    = []byte("max_sequence")
)

// boltStore persists analytics records and the watermark in BoltDB.
type boltStore struct {
	db     *bolt.DB
	logger logger.Logger
}

// NewBoltStore creates a BoltDB-backed analytics store on a shared
// database handle. The caller owns the handle's lifecycle.
func NewBoltStore(db *bolt.DB, log logger.Logger) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle cannot be nil")
	}
	if log == nil {
		log = logger.Noop()
	}

	err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(recordsBucket); err != nil {
			return fmt.Errorf("failed to create records bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists(watermarkBucket); err != nil {
			return fmt.Errorf("failed to create watermark bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &boltStore{db: db, logger: log}, nil
}

func (s *boltStore) Record(userID string) (*Record, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	var rec *Record
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(recordsBucket).Get([]byte(userID))
		if data == nil {
			return ErrRecordNotFound
		}
		rec = &Record{}
		if err := json.Unmarshal(data, rec); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *boltStore) UpsertRecord(rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}
	if rec.UserID == "" {
		return ErrEmptyUserID
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).Put([]byte(rec.UserID), data)
	})
}

func (s *boltStore) Users() ([]string, error) {
	var users []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).ForEach(func(k, _ []byte) error {
			users = append(users, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *boltStore) Watermark() (uint64, error) {
	var wm uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(watermarkBucket).Get(watermarkKey)
		if data == nil {
			return nil
		}
		if len(data) != 8 {
			return fmt.Errorf("corrupt watermark value: %d bytes", len(data))
		}
		wm = binary.BigEndian.Uint64(data)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return wm, nil
}

func (s *boltStore) SetWatermark(seq uint64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(watermarkBucket)
		if data := b.Get(watermarkKey); data != nil && len(data) == 8 {
			cur := binary.BigEndian.Uint64(data)
			if seq < cur {
				return fmt.Errorf("%w: %d < %d", ErrWatermarkRegression, seq, cur)
			}
			if seq == cur {
				return nil
			}
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, seq)
		return b.Put(watermarkKey, buf)
	})
}
