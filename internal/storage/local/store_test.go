package local

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "calmind.db"))
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGetRemoveItem(t *testing.T) {
	s := setupTestStore(t)

	if _, ok := s.GetItem("missing"); ok {
		t.Error("expected missing key to report ok=false")
	}
	if err := s.SetItem("k", "v1"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if err := s.SetItem("k", "v2"); err != nil {
		t.Fatalf("SetItem overwrite failed: %v", err)
	}
	if got, ok := s.GetItem("k"); !ok || got != "v2" {
		t.Errorf("GetItem = %q, %v; want v2, true", got, ok)
	}
	if err := s.RemoveItem("k"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if _, ok := s.GetItem("k"); ok {
		t.Error("expected key to be removed")
	}
	if err := s.RemoveItem("k"); err != nil {
		t.Errorf("removing a missing key should succeed: %v", err)
	}
}

func TestKeysByPrefix(t *testing.T) {
	s := setupTestStore(t)
	for _, k := range []string{Key(EntityTasks, "b"), Key(EntityTasks, "a"), Key(EntityGoals, "a"), "other"} {
		if err := s.SetItem(k, "[]"); err != nil {
			t.Fatal(err)
		}
	}

	got := s.Keys(Prefix(EntityTasks))
	want := []string{"calmind_tasks_a", "calmind_tasks_b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
}

func TestUnavailableStore(t *testing.T) {
	tests := []struct {
		name  string
		store func(t *testing.T) *Store
	}{
		{name: "nil store", store: func(t *testing.T) *Store { return nil }},
		{name: "never initialized", store: func(t *testing.T) *Store { return NewStore(filepath.Join(t.TempDir(), "x.db")) }},
		{
			name: "closed",
			store: func(t *testing.T) *Store {
				s := setupTestStore(t)
				s.Close()
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.store(t)
			if s.Available() {
				t.Error("expected store to be unavailable")
			}
			if _, ok := s.GetItem("k"); ok {
				t.Error("expected empty read")
			}
			if keys := s.Keys("calmind_"); len(keys) != 0 {
				t.Errorf("expected no keys, got %v", keys)
			}
			if err := s.SetItem("k", "v"); !errors.Is(err, ErrUnavailable) {
				t.Errorf("SetItem error = %v, want ErrUnavailable", err)
			}
			if err := s.RemoveItem("k"); !errors.Is(err, ErrUnavailable) {
				t.Errorf("RemoveItem error = %v, want ErrUnavailable", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calmind.db")
	ctx := context.Background()

	if err := NewStore(path).Load(ctx); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Load before Init = %v, want ErrNotInitialized", err)
	}

	s := NewStore(path)
	if err := s.Init(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.SetItem("k", "persisted"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	reopened := NewStore(path)
	if err := reopened.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()
	if got, _ := reopened.GetItem("k"); got != "persisted" {
		t.Errorf("GetItem after reload = %q", got)
	}
}

func TestUserFromKey(t *testing.T) {
	tests := []struct {
		key    string
		entity Entity
		want   string
		ok     bool
	}{
		{key: "calmind_tasks_user-1", entity: EntityTasks, want: "user-1", ok: true},
		{key: "calmind_tasks_", entity: EntityTasks, ok: false},
		{key: "calmind_goals_user-1", entity: EntityTasks, ok: false},
		{key: "calmind_quiz_local", entity: EntityQuiz, want: "local", ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := UserFromKey(tt.entity, tt.key)
			if got != tt.want || ok != tt.ok {
				t.Errorf("UserFromKey(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}
