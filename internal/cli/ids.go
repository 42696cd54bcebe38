package cli

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoMatch   = errors.New("no record matches")
	ErrAmbiguous = errors.New("id prefix is ambiguous")
)

// MatchID finds the single item whose id equals ref or starts with it.
func MatchID[T any](items []T, idOf func(T) string, ref string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, fmt.Errorf("%w: empty id", ErrNoMatch)
	}

	var found []T
	for _, it := range items {
		id := idOf(it)
		if id == ref {
			return it, nil
		}
		if strings.HasPrefix(id, ref) {
			found = append(found, it)
		}
	}
	switch len(found) {
	case 0:
		return zero, fmt.Errorf("%w %q", ErrNoMatch, ref)
	case 1:
		return found[0], nil
	default:
		return zero, fmt.Errorf("%w: %q matches %d records", ErrAmbiguous, ref, len(found))
	}
}
