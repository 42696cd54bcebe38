package dataservice

import (
	"fmt"
	"sort"

	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/storage/local"
)

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistFailed, op, err)
}

// newestFirst orders items by creation time, keeping storage order for ties.
func newestFirst[T any](items []T, createdAt func(T) string) []T {
	sort.SliceStable(items, func(i, j int) bool {
		return models.ParseTimestamp(createdAt(items[i])).After(models.ParseTimestamp(createdAt(items[j])))
	})
	return items
}

type matcher[T any] interface {
	Matches(T) bool
}

// filter keeps the items every filter matches.
func filter[T any, F matcher[T]](items []T, filters []F) []T {
	if len(filters) == 0 {
		return items
	}
	out := items[:0:0]
	for _, item := range items {
		keep := true
		for _, f := range filters {
			if !f.Matches(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// locate finds the local collection holding the record with id. When owner
// is empty every collection of entity is scanned.
func locate[T any](store *local.Store, entity local.Entity, owner, id string, idOf func(T) string) (key string, items []T, index int) {
	keys := []string{}
	if owner != "" {
		keys = append(keys, local.Key(entity, owner))
	} else {
		keys = store.Keys(local.Prefix(entity))
	}
	for _, k := range keys {
		list := local.ReadCollection[T](store, k)
		for i, item := range list {
			if idOf(item) == id {
				return k, list, i
			}
		}
	}
	return "", nil, -1
}
