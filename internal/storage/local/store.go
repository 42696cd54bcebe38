// Package local is the on-device key-value store backing offline use.
//
// Values are JSON documents addressed by namespaced keys. A Store that is
// nil, closed, or never initialized behaves as empty storage: reads return
// nothing and writes fail with ErrUnavailable.
package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/calmind/internal/logger"
	"github.com/julianstephens/calmind/internal/migration"
	"github.com/julianstephens/calmind/migrations"
)

var (
	ErrUnavailable    = errors.New("local storage unavailable")
	ErrNotInitialized = errors.New("local storage not initialized, run 'calmind init' first")
)

type Store struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init creates the database file and applies pending migrations.
func (s *Store) Init(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// modernc sqlite serializes writers; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	s.mu.Lock()
	s.db = db
	s.mu.Unlock()
	return nil
}

// Load opens an existing database without migrating it.
func (s *Store) Load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.db != nil
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return ErrNotInitialized
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	if err := migration.NewRunner(db, sub, migration.SQLite).Validate(ctx); err != nil {
		db.Close()
		return err
	}

	s.mu.Lock()
	s.db = db
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Available reports whether the store can serve reads and writes.
func (s *Store) Available() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	_, err = migration.NewRunner(db, sub, migration.SQLite).Apply(ctx, func(msg string) {
		logger.Debug(msg)
	})
	return err
}

func (s *Store) conn() *sql.DB {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// GetItem returns the raw value for key. A missing key or an unavailable
// store both report ok=false.
func (s *Store) GetItem(key string) (string, bool) {
	db := s.conn()
	if db == nil {
		return "", false
	}
	var value string
	err := db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warn("Local read failed", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

func (s *Store) SetItem(key, value string) error {
	db := s.conn()
	if db == nil {
		return ErrUnavailable
	}
	_, err := db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (s *Store) RemoveItem(key string) error {
	db := s.conn()
	if db == nil {
		return ErrUnavailable
	}
	if _, err := db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Keys lists stored keys beginning with prefix, sorted.
func (s *Store) Keys(prefix string) []string {
	db := s.conn()
	if db == nil {
		return nil
	}
	rows, err := db.Query("SELECT key FROM kv WHERE substr(key, 1, ?) = ? ORDER BY key", len(prefix), prefix)
	if err != nil {
		logger.Warn("Local key scan failed", "prefix", prefix, "error", err)
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			logger.Warn("Local key scan failed", "prefix", prefix, "error", err)
			return keys
		}
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	if err := rows.Err(); err != nil {
		logger.Warn("Local key scan failed", "prefix", prefix, "error", err)
	}
	return keys
}
