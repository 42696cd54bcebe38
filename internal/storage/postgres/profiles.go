package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/calmind/internal/models"
)

func (s *Store) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	db, err := s.conn()
	if err != nil {
		return models.UserProfile{}, Classify(err)
	}

	row := db.QueryRowContext(ctx, `
SELECT id, email, full_name, avatar_url, bio, study_goals, preferences, stats, created_at, updated_at
FROM profiles WHERE id = $1`, userID)

	var p models.UserProfile
	var goals, prefs, stats []byte
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.Bio, &goals, &prefs, &stats, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.UserProfile{}, Classify(err)
	}
	if err := decodeJSON(goals, &p.StudyGoals); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to decode study_goals: %w", err)
	}
	if err := decodeJSON(prefs, &p.Preferences); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to decode preferences: %w", err)
	}
	if err := decodeJSON(stats, &p.Stats); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to decode stats: %w", err)
	}
	return p, nil
}

// UpsertProfile writes the whole profile keyed by its id.
func (s *Store) UpsertProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	db, err := s.conn()
	if err != nil {
		return models.UserProfile{}, Classify(err)
	}

	goals, err := json.Marshal(nonNil(p.StudyGoals))
	if err != nil {
		return models.UserProfile{}, err
	}
	prefs, err := json.Marshal(p.Preferences)
	if err != nil {
		return models.UserProfile{}, err
	}
	stats, err := json.Marshal(p.Stats)
	if err != nil {
		return models.UserProfile{}, err
	}

	_, err = db.ExecContext(ctx, `
INSERT INTO profiles (id, email, full_name, avatar_url, bio, study_goals, preferences, stats, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	email = EXCLUDED.email,
	full_name = EXCLUDED.full_name,
	avatar_url = EXCLUDED.avatar_url,
	bio = EXCLUDED.bio,
	study_goals = EXCLUDED.study_goals,
	preferences = EXCLUDED.preferences,
	stats = EXCLUDED.stats,
	updated_at = EXCLUDED.updated_at`,
		p.ID, p.Email, p.FullName, p.AvatarURL, p.Bio, string(goals), string(prefs), string(stats), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return models.UserProfile{}, Classify(err)
	}
	return s.GetProfile(ctx, p.ID)
}

func decodeJSON(raw []byte, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
