package dataservice

import (
	"context"

	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/storage/local"
)

func (s *Service) GetQuizResult(ctx context.Context, userID string) (models.QuizResult, bool) {
	type result struct {
		quiz models.QuizResult
		ok   bool
	}
	r := read(ctx, s, "get quiz result",
		func(ctx context.Context, r Remote) (result, error) {
			q, err := r.GetQuizResult(ctx, userID)
			if err != nil {
				return result{}, err
			}
			return result{q, true}, nil
		},
		func() result {
			q, ok := local.ReadObject[models.QuizResult](s.local, local.Key(local.EntityQuiz, userID))
			return result{q, ok}
		},
	)
	return r.quiz, r.ok
}

// SaveQuizResult stores result as the user's latest, replacing any earlier one.
func (s *Service) SaveQuizResult(ctx context.Context, result models.QuizResult) (models.QuizResult, error) {
	if err := result.Validate(); err != nil {
		return models.QuizResult{}, err
	}
	result.CompletedAt = s.stamp("")

	return attempt(ctx, s, "save quiz result",
		func(ctx context.Context, r Remote) (models.QuizResult, error) {
			return r.SaveQuizResult(ctx, result)
		},
		func() (models.QuizResult, error) {
			s.mu.Lock()
			defer s.mu.Unlock()

			if err := local.WriteObject(s.local, local.Key(local.EntityQuiz, result.UserID), result); err != nil {
				return models.QuizResult{}, persistErr("save quiz result", err)
			}
			return result, nil
		},
	)
}
