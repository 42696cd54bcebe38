package dataservice

import (
	"context"
	"fmt"

	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/storage/local"
)

func goalID(g models.Goal) string      { return g.ID }
func goalCreated(g models.Goal) string { return g.CreatedAt }

// GetGoals returns the user's goals newest first, or an empty list when no
// store can be read.
func (s *Service) GetGoals(ctx context.Context, userID string, filters ...models.GoalFilter) []models.Goal {
	goals := read(ctx, s, "get goals",
		func(ctx context.Context, r Remote) ([]models.Goal, error) {
			return r.ListGoals(ctx, userID)
		},
		func() []models.Goal {
			return local.ReadCollection[models.Goal](s.local, local.Key(local.EntityGoals, userID))
		},
	)
	return newestFirst(filter(goals, filters), goalCreated)
}

func (s *Service) GetGoal(ctx context.Context, userID, id string) (models.Goal, bool) {
	for _, g := range s.GetGoals(ctx, userID) {
		if g.ID == id {
			return g, true
		}
	}
	return models.Goal{}, false
}

func (s *Service) CreateGoal(ctx context.Context, n models.NewGoal) (models.Goal, error) {
	if err := n.Validate(); err != nil {
		return models.Goal{}, err
	}
	goal := n.Goal()
	goal.CreatedAt = s.stamp("")
	goal.UpdatedAt = goal.CreatedAt

	return attempt(ctx, s, "create goal",
		func(ctx context.Context, r Remote) (models.Goal, error) {
			return r.CreateGoal(ctx, goal)
		},
		func() (models.Goal, error) {
			s.mu.Lock()
			defer s.mu.Unlock()

			goal.ID = s.newID()
			key := local.Key(local.EntityGoals, goal.UserID)
			goals := append([]models.Goal{goal}, local.ReadCollection[models.Goal](s.local, key)...)
			if err := local.WriteCollection(s.local, key, goals); err != nil {
				return models.Goal{}, persistErr("create goal", err)
			}
			return goal, nil
		},
	)
}

func (s *Service) UpdateGoal(ctx context.Context, goal models.Goal) (models.Goal, error) {
	if err := goal.Validate(); err != nil {
		return models.Goal{}, err
	}
	goal.UpdatedAt = s.stamp(goal.UpdatedAt)

	return attempt(ctx, s, "update goal",
		func(ctx context.Context, r Remote) (models.Goal, error) {
			return r.UpdateGoal(ctx, goal)
		},
		func() (models.Goal, error) {
			s.mu.Lock()
			defer s.mu.Unlock()

			key, goals, i := locate(s.local, local.EntityGoals, goal.UserID, goal.ID, goalID)
			if i < 0 {
				return models.Goal{}, fmt.Errorf("%w: goal %s: %w", ErrPersistFailed, goal.ID, ErrNotFound)
			}
			goal.CreatedAt = goals[i].CreatedAt
			goal.UserID = goals[i].UserID
			goals[i] = goal
			if err := local.WriteCollection(s.local, key, goals); err != nil {
				return models.Goal{}, persistErr("update goal", err)
			}
			return goal, nil
		},
	)
}

func (s *Service) ToggleGoal(ctx context.Context, goal models.Goal) (models.Goal, error) {
	goal.Completed = !goal.Completed
	return s.UpdateGoal(ctx, goal)
}

func (s *Service) DeleteGoal(ctx context.Context, id string) (bool, error) {
	return attempt(ctx, s, "delete goal",
		func(ctx context.Context, r Remote) (bool, error) {
			if err := r.DeleteGoal(ctx, id); err != nil {
				return false, err
			}
			return true, nil
		},
		func() (bool, error) {
			return deleteLocal[models.Goal](s, local.EntityGoals, id, goalID)
		},
	)
}
