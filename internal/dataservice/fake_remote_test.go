package dataservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/storage/postgres"
)

// fakeRemote is an in-memory Remote. err, when set, is returned by every
// call; failIDs fails creates of specific records.
type fakeRemote struct {
	mu       sync.Mutex
	err      error
	block    bool
	failIDs  map[string]error
	calls    int
	nextID   int
	profiles map[string]models.UserProfile
	tasks    []models.Task
	goals    []models.Goal
	sessions []models.PomodoroSession
	quiz     map[string]models.QuizResult
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		failIDs:  map[string]error{},
		profiles: map[string]models.UserProfile{},
		quiz:     map[string]models.QuizResult{},
	}
}

func (f *fakeRemote) begin(ctx context.Context) error {
	f.calls++
	if f.block {
		f.mu.Unlock()
		<-ctx.Done()
		f.mu.Lock()
		return fmt.Errorf("%w: %v", postgres.ErrUnreachable, ctx.Err())
	}
	return f.err
}

func (f *fakeRemote) id() string {
	f.nextID++
	return fmt.Sprintf("remote-%d", f.nextID)
}

func (f *fakeRemote) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeRemote) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.begin(ctx)
}

func (f *fakeRemote) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return models.UserProfile{}, err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return models.UserProfile{}, postgres.ErrNotFound
	}
	return p, nil
}

func (f *fakeRemote) UpsertProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return models.UserProfile{}, err
	}
	f.profiles[p.ID] = p
	return p, nil
}

func (f *fakeRemote) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return nil, err
	}
	var out []models.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRemote) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return models.Task{}, err
	}
	if err, ok := f.failIDs[t.Title]; ok {
		return models.Task{}, err
	}
	t.ID = f.id()
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeRemote) UpdateTask(ctx context.Context, t models.Task) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return models.Task{}, err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == t.ID {
			t.CreatedAt = f.tasks[i].CreatedAt
			f.tasks[i] = t
			return t, nil
		}
	}
	return models.Task{}, postgres.ErrNotFound
}

func (f *fakeRemote) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (f *fakeRemote) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return nil, err
	}
	var out []models.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRemote) CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return models.Goal{}, err
	}
	if err, ok := f.failIDs[g.Title]; ok {
		return models.Goal{}, err
	}
	g.ID = f.id()
	f.goals = append(f.goals, g)
	return g, nil
}

func (f *fakeRemote) UpdateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return models.Goal{}, err
	}
	for i := range f.goals {
		if f.goals[i].ID == g.ID {
			g.CreatedAt = f.goals[i].CreatedAt
			f.goals[i] = g
			return g, nil
		}
	}
	return models.Goal{}, postgres.ErrNotFound
}

func (f *fakeRemote) DeleteGoal(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return err
	}
	for i := range f.goals {
		if f.goals[i].ID == id {
			f.goals = append(f.goals[:i], f.goals[i+1:]...)
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (f *fakeRemote) ListSessions(ctx context.Context, userID string, limit int) ([]models.PomodoroSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return nil, err
	}
	var out []models.PomodoroSession
	for i := len(f.sessions) - 1; i >= 0; i-- {
		if f.sessions[i].UserID == userID && (limit <= 0 || len(out) < limit) {
			out = append(out, f.sessions[i])
		}
	}
	return out, nil
}

func (f *fakeRemote) CreateSession(ctx context.Context, p models.PomodoroSession) (models.PomodoroSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return models.PomodoroSession{}, err
	}
	p.ID = f.id()
	f.sessions = append(f.sessions, p)
	return p, nil
}

func (f *fakeRemote) GetQuizResult(ctx context.Context, userID string) (models.QuizResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return models.QuizResult{}, err
	}
	r, ok := f.quiz[userID]
	if !ok {
		return models.QuizResult{}, postgres.ErrNotFound
	}
	return r, nil
}

func (f *fakeRemote) SaveQuizResult(ctx context.Context, r models.QuizResult) (models.QuizResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx); err != nil {
		return models.QuizResult{}, err
	}
	f.quiz[r.UserID] = r
	return r, nil
}

type fakeBackup struct {
	calls int
	err   error
}

func (b *fakeBackup) CreateBackup() (string, error) {
	b.calls++
	if b.err != nil {
		return "", b.err
	}
	return "/tmp/calmind-backup.db", nil
}
