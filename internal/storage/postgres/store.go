// Package postgres is the hosted remote store: a PostgreSQL database reached
// with an endpoint URL plus an access key supplied separately from the URL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"sync"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/calmind/internal/constants"
	"github.com/julianstephens/calmind/internal/logger"
	"github.com/julianstephens/calmind/internal/migration"
	"github.com/julianstephens/calmind/migrations"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

type Store struct {
	endpoint  string
	accessKey string

	mu sync.Mutex
	db *sql.DB
}

// New returns a remote store, or nil when either the endpoint or the access
// key is missing. No connection is made until the first call.
func New(endpoint, accessKey string) *Store {
	endpoint = strings.TrimSpace(endpoint)
	accessKey = strings.TrimSpace(accessKey)
	if endpoint == "" || accessKey == "" {
		return nil
	}
	return &Store{endpoint: endpoint, accessKey: accessKey}
}

// ValidateEndpoint checks that endpoint is a PostgreSQL URL or DSN without
// an embedded password.
func ValidateEndpoint(endpoint string) error {
	if strings.TrimSpace(endpoint) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(endpoint); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if isURL(endpoint) {
		u, err := url.Parse(endpoint)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := u.User.Password(); isSet {
			return ErrEmbeddedCredentials
		}
		if u.Host == "" {
			return fmt.Errorf("%w: connection URL has no host", ErrInvalidConnectionString)
		}
		return nil
	}

	for _, pair := range strings.Fields(endpoint) {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "password") {
			return ErrEmbeddedCredentials
		}
	}
	return nil
}

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// connString injects the access key as the password and pins search_path.
func connString(endpoint, accessKey string) (string, error) {
	if err := ValidateEndpoint(endpoint); err != nil {
		return "", err
	}

	if isURL(endpoint) {
		u, err := url.Parse(endpoint)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		username := ""
		if u.User != nil {
			username = u.User.Username()
		}
		u.User = url.UserPassword(username, accessKey)
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.RemoteSchema)
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	out := strings.TrimSpace(endpoint) + " password=" + quoteDSN(accessKey)
	if !hasParam(endpoint, "search_path") {
		out += " search_path=" + constants.RemoteSchema
	}
	return out, nil
}

func quoteDSN(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func hasParam(dsn, name string) bool {
	for _, part := range strings.Fields(dsn) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], name) {
			return true
		}
	}
	return false
}

// Endpoint returns a redacted description of the remote for display.
func (s *Store) Endpoint() string {
	if s == nil {
		return ""
	}
	if isURL(s.endpoint) {
		if u, err := url.Parse(s.endpoint); err == nil {
			return u.Redacted()
		}
	}
	return "postgresql"
}

func (s *Store) conn() (*sql.DB, error) {
	if s == nil {
		return nil, ErrUnreachable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}

	connStr, err := connString(s.endpoint, s.accessKey)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	s.db = db
	return db, nil
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

// Ping probes connectivity and schema presence with a cheap count query.
func (s *Store) Ping(ctx context.Context) error {
	db, err := s.conn()
	if err != nil {
		return Classify(err)
	}
	var n int
	if err := db.QueryRowContext(ctx, "SELECT count(*) FROM profiles").Scan(&n); err != nil {
		return Classify(err)
	}
	return nil
}

// Provision creates the calmind schema and applies pending migrations.
func (s *Store) Provision(ctx context.Context) (int, error) {
	db, err := s.conn()
	if err != nil {
		return 0, Classify(err)
	}
	if _, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+constants.RemoteSchema); err != nil {
		return 0, fmt.Errorf("failed to create schema: %w", Classify(err))
	}

	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return 0, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	applied, err := migration.NewRunner(db, sub, migration.Postgres).Apply(ctx, func(msg string) {
		logger.Info(msg)
	})
	if err != nil {
		return applied, fmt.Errorf("failed to run migrations: %w", err)
	}
	return applied, nil
}
