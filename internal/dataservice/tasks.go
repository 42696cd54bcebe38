package dataservice

import (
	"context"
	"fmt"

	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/storage/local"
)

func taskID(t models.Task) string      { return t.ID }
func taskCreated(t models.Task) string { return t.CreatedAt }

// GetTasks returns the user's tasks newest first. It never fails; an
// unreadable store yields an empty list.
func (s *Service) GetTasks(ctx context.Context, userID string, filters ...models.TaskFilter) []models.Task {
	tasks := read(ctx, s, "get tasks",
		func(ctx context.Context, r Remote) ([]models.Task, error) {
			return r.ListTasks(ctx, userID)
		},
		func() []models.Task {
			return local.ReadCollection[models.Task](s.local, local.Key(local.EntityTasks, userID))
		},
	)
	return newestFirst(filter(tasks, filters), taskCreated)
}

// GetTask finds a single task owned by userID.
func (s *Service) GetTask(ctx context.Context, userID, id string) (models.Task, bool) {
	for _, t := range s.GetTasks(ctx, userID) {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (s *Service) CreateTask(ctx context.Context, n models.NewTask) (models.Task, error) {
	if err := n.Validate(); err != nil {
		return models.Task{}, err
	}
	task := n.Task()
	task.CreatedAt = s.stamp("")
	task.UpdatedAt = task.CreatedAt

	return attempt(ctx, s, "create task",
		func(ctx context.Context, r Remote) (models.Task, error) {
			return r.CreateTask(ctx, task)
		},
		func() (models.Task, error) {
			return s.createLocalTask(task)
		},
	)
}

func (s *Service) createLocalTask(task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.newID()
	key := local.Key(local.EntityTasks, task.UserID)
	tasks := local.ReadCollection[models.Task](s.local, key)
	tasks = append([]models.Task{task}, tasks...)
	if err := local.WriteCollection(s.local, key, tasks); err != nil {
		return models.Task{}, persistErr("create task", err)
	}
	return task, nil
}

// UpdateTask replaces the caller-writable fields of an existing task.
func (s *Service) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}
	task.UpdatedAt = s.stamp(task.UpdatedAt)

	return attempt(ctx, s, "update task",
		func(ctx context.Context, r Remote) (models.Task, error) {
			return r.UpdateTask(ctx, task)
		},
		func() (models.Task, error) {
			return s.updateLocalTask(task)
		},
	)
}

func (s *Service) updateLocalTask(task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, tasks, i := locate(s.local, local.EntityTasks, task.UserID, task.ID, taskID)
	if i < 0 {
		return models.Task{}, fmt.Errorf("%w: task %s: %w", ErrPersistFailed, task.ID, ErrNotFound)
	}
	task.CreatedAt = tasks[i].CreatedAt
	task.UserID = tasks[i].UserID
	tasks[i] = task
	if err := local.WriteCollection(s.local, key, tasks); err != nil {
		return models.Task{}, persistErr("update task", err)
	}
	return task, nil
}

// ToggleTask flips the completed flag of task. Only completed and
// updated_at change.
func (s *Service) ToggleTask(ctx context.Context, task models.Task) (models.Task, error) {
	task.Completed = !task.Completed
	return s.UpdateTask(ctx, task)
}

// DeleteTask removes the task with id from whichever store holds it. It
// reports false with a nil error when nothing matched.
func (s *Service) DeleteTask(ctx context.Context, id string) (bool, error) {
	return attempt(ctx, s, "delete task",
		func(ctx context.Context, r Remote) (bool, error) {
			if err := r.DeleteTask(ctx, id); err != nil {
				return false, err
			}
			return true, nil
		},
		func() (bool, error) {
			return deleteLocal[models.Task](s, local.EntityTasks, id, taskID)
		},
	)
}

func deleteLocal[T any](s *Service, entity local.Entity, id string, idOf func(T) string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, items, i := locate(s.local, entity, "", id, idOf)
	if i < 0 {
		return false, nil
	}
	items = append(items[:i], items[i+1:]...)
	if err := local.WriteCollection(s.local, key, items); err != nil {
		return false, persistErr("delete "+string(entity), err)
	}
	return true, nil
}
