package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProfileUpdate_Apply(t *testing.T) {
	base := UserProfile{
		ID:         "u1",
		Email:      "old@example.com",
		FullName:   "Old Name",
		StudyGoals: []string{"math"},
		CreatedAt:  "2026-01-01T00:00:00.000000Z",
	}
	name := "New Name"
	prefs := Preferences{PomodoroLength: 30, DarkMode: true}

	got := ProfileUpdate{FullName: &name, Preferences: &prefs, StudyGoals: []string{"physics", "art"}}.Apply(base)

	want := base
	want.FullName = "New Name"
	want.Preferences = prefs
	want.StudyGoals = []string{"physics", "art"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
	if base.FullName != "Old Name" {
		t.Error("Apply must not mutate its input")
	}
}

func TestProfileUpdate_Empty(t *testing.T) {
	if !(ProfileUpdate{}).Empty() {
		t.Error("zero update should be empty")
	}
	bio := ""
	if (ProfileUpdate{Bio: &bio}).Empty() {
		t.Error("update clearing bio is not empty")
	}
}
