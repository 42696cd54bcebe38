package auth

import (
	"context"

	"github.com/julianstephens/calmind/internal/dataservice"
	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/storage/postgres"
)

// memRemote implements the parts of dataservice.Remote exercised by sign-in.
type memRemote struct {
	dataservice.Remote
	tasks []models.Task
}

func newMemRemote() *memRemote { return &memRemote{} }

func (m *memRemote) CreateTask(_ context.Context, t models.Task) (models.Task, error) {
	t.ID = "r" + t.CreatedAt
	m.tasks = append(m.tasks, t)
	return t, nil
}

func (m *memRemote) GetProfile(context.Context, string) (models.UserProfile, error) {
	return models.UserProfile{}, postgres.ErrNotFound
}

func (m *memRemote) GetQuizResult(context.Context, string) (models.QuizResult, error) {
	return models.QuizResult{}, postgres.ErrNotFound
}
