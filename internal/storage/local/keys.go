package local

import "strings"

// Entity names a per-user collection in local storage.
type Entity string

const (
	EntityProfile  Entity = "profile"
	EntityTasks    Entity = "tasks"
	EntityGoals    Entity = "goals"
	EntityPomodoro Entity = "pomodoro"
	EntityQuiz     Entity = "quiz"
)

const keyPrefix = "calmind_"

// Entities lists every per-user collection.
var Entities = []Entity{EntityProfile, EntityTasks, EntityGoals, EntityPomodoro, EntityQuiz}

// Key builds the storage key for one user's collection of entity.
func Key(entity Entity, userID string) string {
	return Prefix(entity) + userID
}

// Prefix is the key prefix shared by every user's collection of entity.
func Prefix(entity Entity) string {
	return keyPrefix + string(entity) + "_"
}

// UserFromKey extracts the owner id from a key built by Key.
func UserFromKey(entity Entity, key string) (string, bool) {
	p := Prefix(entity)
	if !strings.HasPrefix(key, p) || len(key) == len(p) {
		return "", false
	}
	return key[len(p):], true
}
