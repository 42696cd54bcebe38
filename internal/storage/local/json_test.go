package local

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestCollectionRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	key := Key(EntityTasks, "u1")

	if got := ReadCollection[item](s, key); len(got) != 0 {
		t.Fatalf("expected empty collection, got %v", got)
	}

	want := []item{{ID: "2", Title: "second"}, {ID: "1", Title: "first"}}
	if err := WriteCollection(s, key, want); err != nil {
		t.Fatalf("WriteCollection failed: %v", err)
	}
	if diff := cmp.Diff(want, ReadCollection[item](s, key)); diff != "" {
		t.Errorf("collection mismatch (-want +got):\n%s", diff)
	}

	if err := WriteCollection(s, key, []item{}); err != nil {
		t.Fatalf("WriteCollection empty failed: %v", err)
	}
	if _, ok := s.GetItem(key); ok {
		t.Error("expected empty collection to remove the key")
	}
}

func TestCorruptValuesReadAsEmpty(t *testing.T) {
	s := setupTestStore(t)
	key := Key(EntityGoals, "u1")
	if err := s.SetItem(key, "{not json"); err != nil {
		t.Fatal(err)
	}

	if got := ReadCollection[item](s, key); got != nil {
		t.Errorf("expected nil for corrupt collection, got %v", got)
	}
	if _, ok := ReadObject[item](s, key); ok {
		t.Error("expected ok=false for corrupt object")
	}
}

func TestObjectRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	key := Key(EntityProfile, "u1")

	if _, ok := ReadObject[item](s, key); ok {
		t.Fatal("expected missing object")
	}
	if err := WriteObject(s, key, item{ID: "u1", Title: "me"}); err != nil {
		t.Fatal(err)
	}
	got, ok := ReadObject[item](s, key)
	if !ok || got.Title != "me" {
		t.Errorf("ReadObject = %+v, %v", got, ok)
	}
}
