package dataservice

import (
	"context"
	"errors"

	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/storage/local"
	"github.com/julianstephens/calmind/internal/storage/postgres"
)

// GetUserProfile reports ok=false when neither store has a profile.
func (s *Service) GetUserProfile(ctx context.Context, userID string) (models.UserProfile, bool) {
	type result struct {
		profile models.UserProfile
		ok      bool
	}
	r := read(ctx, s, "get profile",
		func(ctx context.Context, r Remote) (result, error) {
			p, err := r.GetProfile(ctx, userID)
			if err != nil {
				return result{}, err
			}
			return result{p, true}, nil
		},
		func() result {
			p, ok := local.ReadObject[models.UserProfile](s.local, local.Key(local.EntityProfile, userID))
			return result{p, ok}
		},
	)
	return r.profile, r.ok
}

// UpdateUserProfile merges update onto the stored profile, creating it
// when absent.
func (s *Service) UpdateUserProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.UserProfile, error) {
	return attempt(ctx, s, "update profile",
		func(ctx context.Context, r Remote) (models.UserProfile, error) {
			existing, err := r.GetProfile(ctx, userID)
			if err != nil && !errors.Is(err, postgres.ErrNotFound) {
				return models.UserProfile{}, err
			}
			return r.UpsertProfile(ctx, s.mergeProfile(userID, existing, err == nil, update))
		},
		func() (models.UserProfile, error) {
			s.mu.Lock()
			defer s.mu.Unlock()

			key := local.Key(local.EntityProfile, userID)
			existing, ok := local.ReadObject[models.UserProfile](s.local, key)
			p := s.mergeProfile(userID, existing, ok, update)
			if err := local.WriteObject(s.local, key, p); err != nil {
				return models.UserProfile{}, persistErr("update profile", err)
			}
			return p, nil
		},
	)
}

func (s *Service) mergeProfile(userID string, existing models.UserProfile, found bool, update models.ProfileUpdate) models.UserProfile {
	if !found {
		existing = models.UserProfile{ID: userID}
	}
	p := update.Apply(existing)
	p.ID = userID
	p.UpdatedAt = s.stamp(existing.UpdatedAt)
	if p.CreatedAt == "" {
		p.CreatedAt = p.UpdatedAt
	}
	return p
}
