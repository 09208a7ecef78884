package analytics

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/focusbuddy/focusd/pkg/logger"
)

// storeImpls returns both store implementations so every test runs
// against BoltDB and the memory store.
func storeImpls(t *testing.T) map[string]Store {
	t.Helper()

	db, err := bolt.Open(filepath.Join(t.TempDir(), "analytics.db"), 0600, &bolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		t.Fatalf("bolt.Open() error = %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("db.Close() error = %v", closeErr)
		}
	})

	boltStore, err := NewBoltStore(db, logger.Noop())
	if err != nil {
		t.Fatalf("NewBoltStore() error = %v", err)
	}

	return map[string]Store{
		"bolt":   boltStore,
		"memory": NewMemoryStore(),
	}
}

func TestRecordRoundTrip(t *testing.T) {
	for name, store := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Record("u1"); !errors.Is(err, ErrRecordNotFound) {
				t.Errorf("Record() error = %v, want ErrRecordNotFound", err)
			}

			rec := &Record{UserID: "u1", DailyMinutes: 25, WeeklyMinutes: 120, CompletedSessions: 3}
			if err := store.UpsertRecord(rec); err != nil {
				t.Fatalf("UpsertRecord() error = %v", err)
			}

			got, err := store.Record("u1")
			if err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			if *got != *rec {
				t.Errorf("Record() = %+v, want %+v", got, rec)
			}

			// Overwrite replaces the full record.
			rec.DailyMinutes = 0
			if err := store.UpsertRecord(rec); err != nil {
				t.Fatalf("UpsertRecord() error = %v", err)
			}
			got, err = store.Record("u1")
			if err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			if got.DailyMinutes != 0 {
				t.Errorf("DailyMinutes = %d, want 0", got.DailyMinutes)
			}
		})
	}
}

func TestStoreValidation(t *testing.T) {
	for name, store := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Record(""); !errors.Is(err, ErrEmptyUserID) {
				t.Errorf("Record(\"\") error = %v, want ErrEmptyUserID", err)
			}
			if err := store.UpsertRecord(nil); !errors.Is(err, ErrNilRecord) {
				t.Errorf("UpsertRecord(nil) error = %v, want ErrNilRecord", err)
			}
			if err := store.UpsertRecord(&Record{}); !errors.Is(err, ErrEmptyUserID) {
				t.Errorf("UpsertRecord(no user) error = %v, want ErrEmptyUserID", err)
			}
		})
	}
}

func TestUsers(t *testing.T) {
	for name, store := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			users, err := store.Users()
			if err != nil {
				t.Fatalf("Users() error = %v", err)
			}
			if len(users) != 0 {
				t.Errorf("Users() = %v, want empty", users)
			}

			for _, id := range []string{"u2", "u1", "u3"} {
				if err := store.UpsertRecord(&Record{UserID: id}); err != nil {
					t.Fatalf("UpsertRecord() error = %v", err)
				}
			}

			users, err = store.Users()
			if err != nil {
				t.Fatalf("Users() error = %v", err)
			}
			sort.Strings(users)
			want := []string{"u1", "u2", "u3"}
			if len(users) != len(want) {
				t.Fatalf("Users() = %v, want %v", users, want)
			}
			for i := range want {
				if users[i] != want[i] {
					t.Errorf("Users()[%d] = %q, want %q", i, users[i], want[i])
				}
			}
		})
	}
}

func TestWatermarkForwardOnly(t *testing.T) {
	for name, store := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			wm, err := store.Watermark()
			if err != nil {
				t.Fatalf("Watermark() error = %v", err)
			}
			if wm != 0 {
				t.Errorf("initial Watermark() = %d, want 0", wm)
			}

			if err := store.SetWatermark(5); err != nil {
				t.Fatalf("SetWatermark(5) error = %v", err)
			}
			// Same value is an accepted no-op.
			if err := store.SetWatermark(5); err != nil {
				t.Errorf("SetWatermark(5) again error = %v", err)
			}
			if err := store.SetWatermark(3); !errors.Is(err, ErrWatermarkRegression) {
				t.Errorf("SetWatermark(3) error = %v, want ErrWatermarkRegression", err)
			}

			wm, err = store.Watermark()
			if err != nil {
				t.Fatalf("Watermark() error = %v", err)
			}
			if wm != 5 {
				t.Errorf("Watermark() = %d, want 5", wm)
			}
		})
	}
}
