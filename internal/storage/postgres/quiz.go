package postgres

import (
	"context"

	"github.com/julianstephens/calmind/internal/models"
)

func (s *Store) GetQuizResult(ctx context.Context, userID string) (models.QuizResult, error) {
	db, err := s.conn()
	if err != nil {
		return models.QuizResult{}, Classify(err)
	}
	row := db.QueryRowContext(ctx, `
SELECT user_id, visual, auditory, kinesthetic, primary_style, secondary_style, completed_at
FROM quiz_results WHERE user_id = $1`, userID)

	var r models.QuizResult
	var primary, secondary string
	if err := row.Scan(&r.UserID, &r.Visual, &r.Auditory, &r.Kinesthetic, &primary, &secondary, &r.CompletedAt); err != nil {
		return models.QuizResult{}, Classify(err)
	}
	r.Primary = models.LearningStyle(primary)
	r.Secondary = models.LearningStyle(secondary)
	return r, nil
}

// SaveQuizResult replaces the user's previous result.
func (s *Store) SaveQuizResult(ctx context.Context, r models.QuizResult) (models.QuizResult, error) {
	db, err := s.conn()
	if err != nil {
		return models.QuizResult{}, Classify(err)
	}
	_, err = db.ExecContext(ctx, `
INSERT INTO quiz_results (user_id, visual, auditory, kinesthetic, primary_style, secondary_style, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id) DO UPDATE SET
	visual = EXCLUDED.visual,
	auditory = EXCLUDED.auditory,
	kinesthetic = EXCLUDED.kinesthetic,
	primary_style = EXCLUDED.primary_style,
	secondary_style = EXCLUDED.secondary_style,
	completed_at = EXCLUDED.completed_at`,
		r.UserID, r.Visual, r.Auditory, r.Kinesthetic, string(r.Primary), string(r.Secondary), r.CompletedAt)
	if err != nil {
		return models.QuizResult{}, Classify(err)
	}
	return r, nil
}
