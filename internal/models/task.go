package models

import (
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Categories offered by the task list. Other labels are accepted as-is.
var Categories = []string{"Personal", "Work", "Study", "Health", "Shopping", "Other"}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"due_date,omitempty"` // YYYY-MM-DD
	Category    string   `json:"category"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// NewTask holds the caller-writable fields of a Task.
type NewTask struct {
	UserID      string
	Title       string
	Description string
	Priority    Priority
	DueDate     string
	Category    string
}

func (n NewTask) Validate() error {
	if strings.TrimSpace(n.UserID) == "" {
		return invalidf("task user_id cannot be empty")
	}
	if strings.TrimSpace(n.Title) == "" {
		return invalidf("task title cannot be empty")
	}
	if n.Priority != "" && !n.Priority.Valid() {
		return invalidf("unknown priority %q", n.Priority)
	}
	return validateDate("due_date", n.DueDate)
}

// Task builds an unsaved task; id and timestamps are assigned on write.
func (n NewTask) Task() Task {
	priority := n.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	category := n.Category
	if category == "" {
		category = "Personal"
	}
	return Task{
		UserID:      n.UserID,
		Title:       strings.TrimSpace(n.Title),
		Description: n.Description,
		Priority:    priority,
		DueDate:     n.DueDate,
		Category:    category,
	}
}

func (t Task) Validate() error {
	if err := (NewTask{
		UserID:   t.UserID,
		Title:    t.Title,
		Priority: t.Priority,
		DueDate:  t.DueDate,
	}).Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		return invalidf("task id cannot be empty")
	}
	return nil
}

type TaskStatus string

const (
	TaskStatusAll       TaskStatus = "all"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusPending   TaskStatus = "pending"
)

// TaskFilter narrows a task read. The zero value matches everything.
type TaskFilter struct {
	Status   TaskStatus
	Category string
	Query    string
}

func (f TaskFilter) Matches(t Task) bool {
	switch f.Status {
	case TaskStatusCompleted:
		if !t.Completed {
			return false
		}
	case TaskStatusPending:
		if t.Completed {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(f.Category, "all") && !strings.EqualFold(f.Category, t.Category) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) && !strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	return true
}
