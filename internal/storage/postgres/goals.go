package postgres

import (
	"context"

	"github.com/julianstephens/calmind/internal/models"
)

const goalColumns = `id, user_id, title, description, date, type, completed, created_at, updated_at`

func scanGoal(row interface{ Scan(...interface{}) error }) (models.Goal, error) {
	var g models.Goal
	var goalType string
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Date, &goalType,
		&g.Completed, &g.CreatedAt, &g.UpdatedAt)
	g.Type = models.GoalType(goalType)
	return g, err
}

func (s *Store) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	db, err := s.conn()
	if err != nil {
		return nil, Classify(err)
	}
	rows, err := db.QueryContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, Classify(err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, Classify(err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, Classify(err)
	}
	return goals, nil
}

func (s *Store) CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	db, err := s.conn()
	if err != nil {
		return models.Goal{}, Classify(err)
	}
	row := db.QueryRowContext(ctx, `
INSERT INTO goals (user_id, title, description, date, type, completed, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+goalColumns,
		g.UserID, g.Title, g.Description, g.Date, string(g.Type), g.Completed, g.CreatedAt, g.UpdatedAt)
	created, err := scanGoal(row)
	if err != nil {
		return models.Goal{}, Classify(err)
	}
	return created, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	db, err := s.conn()
	if err != nil {
		return models.Goal{}, Classify(err)
	}
	row := db.QueryRowContext(ctx, `
UPDATE goals SET title = $2, description = $3, date = $4, type = $5, completed = $6, updated_at = $7
WHERE id = $1
RETURNING `+goalColumns,
		g.ID, g.Title, g.Description, g.Date, string(g.Type), g.Completed, g.UpdatedAt)
	updated, err := scanGoal(row)
	if err != nil {
		return models.Goal{}, Classify(err)
	}
	return updated, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	db, err := s.conn()
	if err != nil {
		return Classify(err)
	}
	res, err := db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	return rowsAffected(res, err)
}
