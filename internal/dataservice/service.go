// Package dataservice is the single persistence entry point for the
// application. Every operation goes to the remote store when one is
// configured and reachable, and otherwise to the local store, returning the
// same entity shape either way.
package dataservice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/calmind/internal/constants"
	"github.com/julianstephens/calmind/internal/logger"
	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/storage/local"
	"github.com/julianstephens/calmind/internal/storage/postgres"
)

var (
	// ErrPersistFailed is returned when neither store accepted a write.
	ErrPersistFailed       = errors.New("failed to persist")
	ErrRemoteNotConfigured = errors.New("remote store not configured")
	ErrRemoteDisabled      = errors.New("remote store disabled for this session")
	ErrNotFound            = errors.New("record not found")
)

// Remote is the hosted store. Errors are expected to be classified with the
// postgres package sentinels.
type Remote interface {
	Ping(ctx context.Context) error

	GetProfile(ctx context.Context, userID string) (models.UserProfile, error)
	UpsertProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error)

	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
	CreateTask(ctx context.Context, t models.Task) (models.Task, error)
	UpdateTask(ctx context.Context, t models.Task) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error

	ListGoals(ctx context.Context, userID string) ([]models.Goal, error)
	CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error)
	UpdateGoal(ctx context.Context, g models.Goal) (models.Goal, error)
	DeleteGoal(ctx context.Context, id string) error

	ListSessions(ctx context.Context, userID string, limit int) ([]models.PomodoroSession, error)
	CreateSession(ctx context.Context, s models.PomodoroSession) (models.PomodoroSession, error)

	GetQuizResult(ctx context.Context, userID string) (models.QuizResult, error)
	SaveQuizResult(ctx context.Context, r models.QuizResult) (models.QuizResult, error)
}

var _ Remote = (*postgres.Store)(nil)

// Backuper snapshots the local store before destructive operations.
type Backuper interface {
	CreateBackup() (string, error)
}

// SyncStatus reports which store served the most recent operation.
type SyncStatus string

const (
	StatusLocal   SyncStatus = "local"
	StatusSynced  SyncStatus = "synced"
	StatusOffline SyncStatus = "offline"
	StatusError   SyncStatus = "error"
)

// Service routes every read and write to the remote or local store.
type Service struct {
	local   *local.Store
	remote  Remote
	backup  Backuper
	now     func() time.Time
	newID   func() string
	timeout time.Duration

	// mu serializes local read-modify-write cycles.
	mu sync.Mutex

	stateMu        sync.Mutex
	status         SyncStatus
	remoteDisabled bool
	lastStamp      time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRemote enables the remote store. A nil remote leaves it unconfigured.
// Callers holding a concrete pointer must not pass it when it is nil.
func WithRemote(r Remote) Option {
	return func(s *Service) {
		if r != nil {
			s.remote = r
		}
	}
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the UUID generator for locally created records.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithRemoteTimeout bounds each remote call. Non-positive values are ignored.
func WithRemoteTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithBackup sets the snapshotter used before migrating local data.
func WithBackup(b Backuper) Option {
	return func(s *Service) {
		if b != nil {
			s.backup = b
		}
	}
}

func New(store *local.Store, opts ...Option) *Service {
	s := &Service{
		local:   store,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
		timeout: constants.DefaultRemoteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.remote == nil {
		s.status = StatusLocal
		logger.Debug("Remote store not configured, using local storage")
	} else {
		s.status = StatusSynced
	}
	return s
}

// RemoteConfigured reports whether a remote store was supplied.
func (s *Service) RemoteConfigured() bool {
	return s.remote != nil
}

func (s *Service) Status() SyncStatus {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.status
}

// Probe checks remote connectivity and updates the sync status.
func (s *Service) Probe(ctx context.Context) error {
	r, err := s.activeRemote()
	if err != nil {
		return err
	}
	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := r.Ping(rctx); err != nil {
		s.remoteFailed("probe", err)
		return err
	}
	s.remoteSucceeded()
	return nil
}

func (s *Service) activeRemote() (Remote, error) {
	if s.remote == nil {
		return nil, ErrRemoteNotConfigured
	}
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.remoteDisabled {
		return nil, ErrRemoteDisabled
	}
	return s.remote, nil
}

func (s *Service) remoteSucceeded() {
	s.stateMu.Lock()
	s.status = StatusSynced
	s.stateMu.Unlock()
}

func (s *Service) remoteFailed(op string, err error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	switch {
	case errors.Is(err, postgres.ErrSchemaMissing):
		if !s.remoteDisabled {
			logger.Warn("Remote schema missing, using local storage for this session", "op", op, "error", err)
		}
		s.remoteDisabled = true
		s.status = StatusError
	case errors.Is(err, postgres.ErrNotFound):
		// the remote answered; only the record is absent
		logger.Debug("Remote record not found, using local storage", "op", op)
		s.status = StatusSynced
	default:
		logger.Warn("Remote call failed, using local storage", "op", op, "error", err)
		s.status = StatusOffline
	}
}

// stamp returns a timestamp strictly after both the previous stamp issued
// by this service and after.
func (s *Service) stamp(after string) string {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	t := s.now().UTC().Truncate(time.Microsecond)
	floor := s.lastStamp
	if prev := models.ParseTimestamp(after); prev.After(floor) {
		floor = prev
	}
	if !t.After(floor) {
		t = floor.Add(time.Microsecond)
	}
	s.lastStamp = t
	return models.FormatTimestamp(t)
}

// attempt runs remoteOp when the remote is usable and falls back to localOp
// on any remote failure.
func attempt[T any](ctx context.Context, s *Service, op string,
	remoteOp func(context.Context, Remote) (T, error),
	localOp func() (T, error),
) (T, error) {
	if r, err := s.activeRemote(); err == nil {
		rctx, cancel := context.WithTimeout(ctx, s.timeout)
		v, err := remoteOp(rctx, r)
		cancel()
		if err == nil {
			s.remoteSucceeded()
			return v, nil
		}
		s.remoteFailed(op, err)
	}
	return localOp()
}

// read is attempt for operations whose local side cannot fail.
func read[T any](ctx context.Context, s *Service, op string,
	remoteOp func(context.Context, Remote) (T, error),
	localOp func() T,
) T {
	v, _ := attempt(ctx, s, op, remoteOp, func() (T, error) { return localOp(), nil })
	return v
}
