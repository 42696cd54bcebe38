package postgres

import (
	"context"
	"database/sql"

	"github.com/julianstephens/calmind/internal/models"
)

const taskColumns = `id, user_id, title, description, completed, priority, due_date, category, created_at, updated_at`

func scanTask(row interface{ Scan(...interface{}) error }) (models.Task, error) {
	var t models.Task
	var priority string
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &priority,
		&t.DueDate, &t.Category, &t.CreatedAt, &t.UpdatedAt)
	t.Priority = models.Priority(priority)
	return t, err
}

func (s *Store) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	db, err := s.conn()
	if err != nil {
		return nil, Classify(err)
	}
	rows, err := db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, Classify(err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, Classify(err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, Classify(err)
	}
	return tasks, nil
}

// CreateTask inserts t and returns it with its database-assigned id.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	db, err := s.conn()
	if err != nil {
		return models.Task{}, Classify(err)
	}
	row := db.QueryRowContext(ctx, `
INSERT INTO tasks (user_id, title, description, completed, priority, due_date, category, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+taskColumns,
		t.UserID, t.Title, t.Description, t.Completed, string(t.Priority), t.DueDate, t.Category, t.CreatedAt, t.UpdatedAt)
	created, err := scanTask(row)
	if err != nil {
		return models.Task{}, Classify(err)
	}
	return created, nil
}

func (s *Store) UpdateTask(ctx context.Context, t models.Task) (models.Task, error) {
	db, err := s.conn()
	if err != nil {
		return models.Task{}, Classify(err)
	}
	row := db.QueryRowContext(ctx, `
UPDATE tasks SET title = $2, description = $3, completed = $4, priority = $5, due_date = $6,
	category = $7, updated_at = $8
WHERE id = $1
RETURNING `+taskColumns,
		t.ID, t.Title, t.Description, t.Completed, string(t.Priority), t.DueDate, t.Category, t.UpdatedAt)
	updated, err := scanTask(row)
	if err != nil {
		return models.Task{}, Classify(err)
	}
	return updated, nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	db, err := s.conn()
	if err != nil {
		return Classify(err)
	}
	res, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return rowsAffected(res, err)
}

func rowsAffected(res sql.Result, err error) error {
	if err != nil {
		return Classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Classify(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
