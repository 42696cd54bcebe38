package local

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/calmind/internal/logger"
)

// ReadCollection decodes the list stored under key. Missing or corrupt
// values yield an empty list.
func ReadCollection[T any](s *Store, key string) []T {
	raw, ok := s.GetItem(key)
	if !ok || raw == "" {
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("Discarding unreadable local data", "key", key, "error", err)
		return nil
	}
	return items
}

// WriteCollection replaces the list stored under key. An empty list
// removes the key.
func WriteCollection[T any](s *Store, key string, items []T) error {
	if len(items) == 0 {
		return s.RemoveItem(key)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.SetItem(key, string(data))
}

// ReadObject decodes the single value stored under key.
func ReadObject[T any](s *Store, key string) (T, bool) {
	var v T
	raw, ok := s.GetItem(key)
	if !ok || raw == "" {
		return v, false
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		logger.Warn("Discarding unreadable local data", "key", key, "error", err)
		var zero T
		return zero, false
	}
	return v, true
}

func WriteObject[T any](s *Store, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.SetItem(key, string(data))
}
