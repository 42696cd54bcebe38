package postgres

import (
	"context"

	"github.com/julianstephens/calmind/internal/models"
)

const sessionColumns = `id, user_id, duration, completed, session_type, created_at`

func scanSession(row interface{ Scan(...interface{}) error }) (models.PomodoroSession, error) {
	var p models.PomodoroSession
	var sessionType string
	err := row.Scan(&p.ID, &p.UserID, &p.Duration, &p.Completed, &sessionType, &p.CreatedAt)
	p.SessionType = models.SessionType(sessionType)
	return p, err
}

// ListSessions returns the newest sessions first. A limit <= 0 returns all.
func (s *Store) ListSessions(ctx context.Context, userID string, limit int) ([]models.PomodoroSession, error) {
	db, err := s.conn()
	if err != nil {
		return nil, Classify(err)
	}

	query := `SELECT ` + sessionColumns + ` FROM pomodoro_sessions WHERE user_id = $1 ORDER BY created_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, Classify(err)
	}
	defer rows.Close()

	var sessions []models.PomodoroSession
	for rows.Next() {
		p, err := scanSession(rows)
		if err != nil {
			return nil, Classify(err)
		}
		sessions = append(sessions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, Classify(err)
	}
	return sessions, nil
}

func (s *Store) CreateSession(ctx context.Context, p models.PomodoroSession) (models.PomodoroSession, error) {
	db, err := s.conn()
	if err != nil {
		return models.PomodoroSession{}, Classify(err)
	}
	row := db.QueryRowContext(ctx, `
INSERT INTO pomodoro_sessions (user_id, duration, completed, session_type, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+sessionColumns,
		p.UserID, p.Duration, p.Completed, string(p.SessionType), p.CreatedAt)
	created, err := scanSession(row)
	if err != nil {
		return models.PomodoroSession{}, Classify(err)
	}
	return created, nil
}
