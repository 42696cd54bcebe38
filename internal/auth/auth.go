// Package auth tracks the signed-in user and moves offline data to the
// remote store on sign-in.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/calmind/internal/constants"
	"github.com/julianstephens/calmind/internal/dataservice"
	"github.com/julianstephens/calmind/internal/logger"
	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/storage/local"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrNotSignedIn  = errors.New("not signed in")
)

var timeNow = time.Now

type Event string

const (
	EventSignedIn  Event = "signed_in"
	EventSignedOut Event = "signed_out"
)

type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	SignedInAt string `json:"signed_in_at"`
}

// Listener receives session changes. user is nil on sign-out.
type Listener func(event Event, user *User)

type Manager struct {
	store *local.Store
	data  *dataservice.Service
	now   func() string

	mu        sync.Mutex
	listeners []Listener
}

func NewManager(store *local.Store, data *dataservice.Service) *Manager {
	return &Manager{
		store: store,
		data:  data,
		now:   func() string { return models.FormatTimestamp(timeNow()) },
	}
}

// UserIDForEmail derives a stable user id so that every device signing in
// with the same address shares one namespace.
func UserIDForEmail(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(strings.TrimSpace(email)))).String()
}

// NewUser validates email and builds the user it identifies.
func NewUser(email string) (User, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return User{}, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return User{ID: UserIDForEmail(addr.Address), Email: strings.ToLower(addr.Address)}, nil
}

func (m *Manager) OnChange(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) emit(event Event, user *User) {
	m.mu.Lock()
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(event, user)
	}
}

// Current returns the signed-in user, if any.
func (m *Manager) Current() (User, bool) {
	return local.ReadObject[User](m.store, constants.SessionKey)
}

// UserID returns the namespace data should be read from and written to.
func (m *Manager) UserID() string {
	if u, ok := m.Current(); ok && u.ID != "" {
		return u.ID
	}
	return constants.AnonymousUserID
}

// SignIn records user as signed in and migrates data written while signed
// out. Migration failures are logged and reported but do not fail sign-in.
func (m *Manager) SignIn(ctx context.Context, user User) (dataservice.MigrationReport, error) {
	if !m.data.RemoteConfigured() {
		return dataservice.MigrationReport{}, dataservice.ErrRemoteNotConfigured
	}
	if user.ID == "" {
		return dataservice.MigrationReport{}, fmt.Errorf("%w: missing user id", ErrInvalidEmail)
	}
	user.SignedInAt = m.now()
	if err := local.WriteObject(m.store, constants.SessionKey, user); err != nil {
		return dataservice.MigrationReport{}, fmt.Errorf("failed to save session: %w", err)
	}
	logger.Info("Signed in", "user", user.ID)

	report, err := m.data.MigrateLocalData(ctx, constants.AnonymousUserID, user.ID)
	if err != nil {
		logger.Warn("Local data migration failed", "user", user.ID, "error", err)
	} else if report.Err() != nil {
		logger.Warn("Local data partially migrated", "user", user.ID, "error", report.Err())
	}

	m.emit(EventSignedIn, &user)
	return report, err
}

func (m *Manager) SignOut(ctx context.Context) error {
	u, ok := m.Current()
	if !ok {
		return ErrNotSignedIn
	}
	if err := m.store.RemoveItem(constants.SessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	logger.Info("Signed out", "user", u.ID)
	m.emit(EventSignedOut, nil)
	return nil
}
