package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/calmind/internal/auth"
	"github.com/julianstephens/calmind/internal/backup"
	"github.com/julianstephens/calmind/internal/config"
	"github.com/julianstephens/calmind/internal/dataservice"
	"github.com/julianstephens/calmind/internal/logger"
	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/narration"
	"github.com/julianstephens/calmind/internal/scheduler"
	"github.com/julianstephens/calmind/internal/storage/local"
	"github.com/julianstephens/calmind/internal/storage/postgres"
)

// Context carries the components every command runs against.
type Context struct {
	Ctx         context.Context
	Config      config.Config
	Store       *local.Store
	Remote      *postgres.Store
	Data        *dataservice.Service
	Auth        *auth.Manager
	Narrator    *narration.Client
	Backups     *backup.Manager
	Out         io.Writer
	Interactive bool
	Now         func() time.Time
}

// New wires the components for cfg. Nothing is opened until the store is
// loaded or initialized.
func New(ctx context.Context, cfg config.Config) *Context {
	store := local.NewStore(cfg.DBPath())
	remote := postgres.New(cfg.Remote.URL, cfg.Remote.AccessKey)
	backups := backup.NewManager(cfg.DBPath())

	opts := []dataservice.Option{
		dataservice.WithRemoteTimeout(cfg.Remote.Timeout),
		dataservice.WithBackup(backups),
	}
	if remote != nil {
		opts = append(opts, dataservice.WithRemote(remote))
	}
	data := dataservice.New(store, opts...)

	ttsKey := cfg.Narration.APIKey
	if cfg.Narration.Disabled {
		ttsKey = ""
	}
	narrator := narration.New(narration.Config{
		APIKey:          ttsKey,
		BaseURL:         cfg.Narration.BaseURL,
		VoiceID:         cfg.Narration.VoiceID,
		ModelID:         cfg.Narration.ModelID,
		Stability:       cfg.Narration.Stability,
		SimilarityBoost: cfg.Narration.SimilarityBoost,
	})

	return &Context{
		Ctx:      ctx,
		Config:   cfg,
		Store:    store,
		Remote:   remote,
		Data:     data,
		Auth:     auth.NewManager(store, data),
		Narrator: narrator,
		Backups:  backups,
		Out:      os.Stdout,
		Now:      time.Now,
	}
}

func (c *Context) Close() {
	if err := c.Store.Close(); err != nil {
		logger.Warn("Failed to close local store", "error", err)
	}
	if c.Remote != nil {
		if err := c.Remote.Close(); err != nil {
			logger.Warn("Failed to close remote store", "error", err)
		}
	}
}

// UserID is the namespace for the current user, or the anonymous one.
func (c *Context) UserID() string {
	return c.Auth.UserID()
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// PomodoroSettings starts from the configured lengths and applies any the
// user saved in their profile.
func (c *Context) PomodoroSettings() scheduler.Settings {
	s := scheduler.Settings{
		WorkMin:                c.Config.Pomodoro.WorkMin,
		ShortBreakMin:          c.Config.Pomodoro.ShortBreakMin,
		LongBreakMin:           c.Config.Pomodoro.LongBreakMin,
		SessionsUntilLongBreak: c.Config.Pomodoro.SessionsUntilLongBreak,
	}
	if p, ok := c.Data.GetUserProfile(c.Ctx, c.UserID()); ok {
		s = applyPreferences(s, p.Preferences)
	}
	if err := s.Validate(); err != nil {
		logger.Warn("Invalid pomodoro settings, using defaults", "error", err)
		return scheduler.DefaultSettings()
	}
	return s
}

func applyPreferences(s scheduler.Settings, p models.Preferences) scheduler.Settings {
	if p.PomodoroLength > 0 {
		s.WorkMin = p.PomodoroLength
	}
	if p.ShortBreakLength > 0 {
		s.ShortBreakMin = p.ShortBreakLength
	}
	if p.LongBreakLength > 0 {
		s.LongBreakMin = p.LongBreakLength
	}
	return s
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.Backups.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FormatWhen renders a stored timestamp relative to now.
func FormatWhen(ts string, now time.Time) string {
	t := models.ParseTimestamp(ts)
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// ShortID abbreviates an id for tables. Prefixes are accepted wherever an id is.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Truncate shortens s to n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
