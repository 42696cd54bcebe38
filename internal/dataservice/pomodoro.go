package dataservice

import (
	"context"

	"github.com/julianstephens/calmind/internal/constants"
	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/storage/local"
)

func sessionCreated(p models.PomodoroSession) string { return p.CreatedAt }

// GetPomodoroSessions returns at most limit sessions, newest first. A limit
// <= 0 uses the default of 50.
func (s *Service) GetPomodoroSessions(ctx context.Context, userID string, limit int) []models.PomodoroSession {
	if limit <= 0 {
		limit = constants.DefaultSessionLimit
	}
	sessions := read(ctx, s, "get pomodoro sessions",
		func(ctx context.Context, r Remote) ([]models.PomodoroSession, error) {
			return r.ListSessions(ctx, userID, limit)
		},
		func() []models.PomodoroSession {
			return local.ReadCollection[models.PomodoroSession](s.local, local.Key(local.EntityPomodoro, userID))
		},
	)
	sessions = newestFirst(sessions, sessionCreated)
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions
}

// GetPomodoroStats aggregates the most recent sessions.
func (s *Service) GetPomodoroStats(ctx context.Context, userID string) models.PomodoroStats {
	return models.ComputePomodoroStats(s.GetPomodoroSessions(ctx, userID, constants.DefaultSessionLimit))
}

func (s *Service) CreatePomodoroSession(ctx context.Context, n models.NewPomodoroSession) (models.PomodoroSession, error) {
	if err := n.Validate(); err != nil {
		return models.PomodoroSession{}, err
	}
	session := n.Session()
	session.CreatedAt = s.stamp("")

	return attempt(ctx, s, "create pomodoro session",
		func(ctx context.Context, r Remote) (models.PomodoroSession, error) {
			return r.CreateSession(ctx, session)
		},
		func() (models.PomodoroSession, error) {
			s.mu.Lock()
			defer s.mu.Unlock()

			session.ID = s.newID()
			key := local.Key(local.EntityPomodoro, session.UserID)
			sessions := append([]models.PomodoroSession{session}, local.ReadCollection[models.PomodoroSession](s.local, key)...)
			if err := local.WriteCollection(s.local, key, sessions); err != nil {
				return models.PomodoroSession{}, persistErr("create pomodoro session", err)
			}
			return session, nil
		},
	)
}
