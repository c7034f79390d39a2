// Package cache persists the admin console's local state in a bbolt file:
// the session token slot and the last fetched snapshot of each collection.
// The backend stays the source of truth; snapshots only let screens render
// something while a fresh load is in flight or the backend is offline.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketSession   = []byte("session")
	bucketSnapshots = []byte("snapshots")

	keyToken = []byte("token")
)

// Store wraps the bbolt database. A nil db means memory-only mode, used in
// tests and when no cache directory is configured.
type Store struct {
	db *bolt.DB

	mu  sync.RWMutex
	mem map[string][]byte
}

// NewStore opens (or creates) the cache database under dir. An empty dir
// selects memory-only mode.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return &Store{mem: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dir, "admin.db"), 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("cache open: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSession); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache init: %w", err)
	}

	return &Store{db: db, mem: make(map[string][]byte)}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) put(bucket, key, value []byte) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.mem[string(bucket)+"/"+string(key)] = append([]byte(nil), value...)
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put(key, value)
	})
}

func (s *Store) get(bucket, key []byte) ([]byte, error) {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		v, ok := s.mem[string(bucket)+"/"+string(key)]
		if !ok {
			return nil, nil
		}
		return append([]byte(nil), v...), nil
	}

	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucket).Get(key)
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, err
}

func (s *Store) delete(bucket, key []byte) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.mem, string(bucket)+"/"+string(key))
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete(key)
	})
}

// SaveToken persists the session token.
func (s *Store) SaveToken(token string) error {
	return s.put(bucketSession, keyToken, []byte(token))
}

// LoadToken returns the persisted token, or "" when none is stored.
func (s *Store) LoadToken() (string, error) {
	v, err := s.get(bucketSession, keyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// ClearToken removes the persisted token. Safe to call when none is stored.
func (s *Store) ClearToken() error {
	return s.delete(bucketSession, keyToken)
}

// SaveSnapshot stores the raw JSON of the last successful fetch of a
// collection.
func (s *Store) SaveSnapshot(collection string, data []byte) error {
	return s.put(bucketSnapshots, []byte(collection), data)
}

// LoadSnapshot returns the stored snapshot for a collection, or nil when
// none exists.
func (s *Store) LoadSnapshot(collection string) ([]byte, error) {
	return s.get(bucketSnapshots, []byte(collection))
}
