package models

import (
	"strings"
	"time"

	"github.com/julianstephens/calmind/internal/constants"
)

type GoalType string

const (
	GoalTypeGoal      GoalType = "goal"
	GoalTypeMilestone GoalType = "milestone"
	GoalTypeReminder  GoalType = "reminder"
)

func (g GoalType) Valid() bool {
	switch g {
	case GoalTypeGoal, GoalTypeMilestone, GoalTypeReminder:
		return true
	}
	return false
}

// Goal is a calendar entry.
type Goal struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Type        GoalType `json:"type"`
	Completed   bool     `json:"completed"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

type NewGoal struct {
	UserID      string
	Title       string
	Description string
	Date        string
	Type        GoalType
}

func (n NewGoal) Validate() error {
	if strings.TrimSpace(n.UserID) == "" {
		return invalidf("goal user_id cannot be empty")
	}
	if strings.TrimSpace(n.Title) == "" {
		return invalidf("goal title cannot be empty")
	}
	if n.Date == "" {
		return invalidf("goal date cannot be empty")
	}
	if n.Type != "" && !n.Type.Valid() {
		return invalidf("unknown goal type %q", n.Type)
	}
	return validateDate("date", n.Date)
}

func (n NewGoal) Goal() Goal {
	goalType := n.Type
	if goalType == "" {
		goalType = GoalTypeGoal
	}
	return Goal{
		UserID:      n.UserID,
		Title:       strings.TrimSpace(n.Title),
		Description: n.Description,
		Date:        n.Date,
		Type:        goalType,
	}
}

func (g Goal) Validate() error {
	if g.ID == "" {
		return invalidf("goal id cannot be empty")
	}
	return NewGoal{UserID: g.UserID, Title: g.Title, Date: g.Date, Type: g.Type}.Validate()
}

// GoalFilter narrows a goal read. Date takes precedence over Month.
type GoalFilter struct {
	Date  string // YYYY-MM-DD
	Month string // YYYY-MM
	Type  GoalType
}

func (f GoalFilter) Validate() error {
	if err := validateDate("date", f.Date); err != nil {
		return err
	}
	if f.Month != "" {
		if _, err := time.Parse(constants.MonthFormat, f.Month); err != nil {
			return invalidf("month must be YYYY-MM, got %q", f.Month)
		}
	}
	return nil
}

func (f GoalFilter) Matches(g Goal) bool {
	if f.Date != "" && g.Date != f.Date {
		return false
	}
	if f.Date == "" && f.Month != "" && !strings.HasPrefix(g.Date, f.Month+"-") {
		return false
	}
	if f.Type != "" && g.Type != f.Type {
		return false
	}
	return true
}
