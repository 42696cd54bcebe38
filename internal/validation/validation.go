// Package validation checks stored tasks and goals for problems a user would
// want to fix: duplicates, unreadable dates and work that slipped past its date.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/calmind/internal/constants"
	"github.com/julianstephens/calmind/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateTask    ConflictType = "duplicate_task"
	ConflictInvalidDate      ConflictType = "invalid_date"
	ConflictOverdueTask      ConflictType = "overdue_task"
	ConflictMissedGoal       ConflictType = "missed_goal"
	ConflictOvercommittedDay ConflictType = "overcommitted_day"
)

// Conflict represents a detected problem in tasks or goals
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD, if applicable
	Items       []string // titles involved
	IDs         []string
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Count returns how many conflicts have type t.
func (r *Result) Count(t ConflictType) int {
	n := 0
	for _, c := range r.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}
	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks tasks and goals relative to a given day.
type Validator struct {
	// MaxGoalsPerDay flags days with more open goals than this. Zero disables the check.
	MaxGoalsPerDay int
}

func New() *Validator {
	return &Validator{MaxGoalsPerDay: 5}
}

func day(t time.Time) string {
	return t.Format(constants.DateFormat)
}

func validDate(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}

// ValidateTasks reports duplicate open tasks, bad due dates and overdue tasks.
func (v *Validator) ValidateTasks(tasks []models.Task, today time.Time) Result {
	result := Result{Conflicts: []Conflict{}}
	todayStr := day(today)

	type group struct {
		title string
		ids   []string
	}
	dupes := map[string]*group{}
	var order []string
	for _, t := range tasks {
		if t.Completed || t.Title == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(t.Title)) + "\x00" + strings.ToLower(t.Category)
		g, ok := dupes[key]
		if !ok {
			g = &group{title: t.Title}
			dupes[key] = g
			order = append(order, key)
		}
		g.ids = append(g.ids, t.ID)
	}
	for _, key := range order {
		g := dupes[key]
		if len(g.ids) < 2 {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateTask,
			Description: fmt.Sprintf("Duplicate open task: %q (%d copies)", g.title, len(g.ids)),
			Items:       []string{g.title},
			IDs:         g.ids,
		})
	}

	for _, t := range tasks {
		if t.DueDate == "" {
			continue
		}
		if !validDate(t.DueDate) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Task %q has invalid due date: %s", t.Title, t.DueDate),
				Items:       []string{t.Title},
				IDs:         []string{t.ID},
			})
			continue
		}
		// YYYY-MM-DD strings order chronologically
		if !t.Completed && t.DueDate < todayStr {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOverdueTask,
				Description: fmt.Sprintf("Task %q was due %s", t.Title, t.DueDate),
				Date:        t.DueDate,
				Items:       []string{t.Title},
				IDs:         []string{t.ID},
			})
		}
	}
	return result
}

// ValidateGoals reports bad dates, open goals whose date has passed and days
// holding more open goals than MaxGoalsPerDay.
func (v *Validator) ValidateGoals(goals []models.Goal, today time.Time) Result {
	result := Result{Conflicts: []Conflict{}}
	todayStr := day(today)

	perDay := map[string][]models.Goal{}
	for _, g := range goals {
		if !validDate(g.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("%s %q has invalid date: %s", g.Type, g.Title, g.Date),
				Items:       []string{g.Title},
				IDs:         []string{g.ID},
			})
			continue
		}
		if g.Completed {
			continue
		}
		if g.Date < todayStr {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissedGoal,
				Description: fmt.Sprintf("%s %q passed on %s without being completed", g.Type, g.Title, g.Date),
				Date:        g.Date,
				Items:       []string{g.Title},
				IDs:         []string{g.ID},
			})
			continue
		}
		perDay[g.Date] = append(perDay[g.Date], g)
	}

	if v.MaxGoalsPerDay > 0 {
		dates := make([]string, 0, len(perDay))
		for d := range perDay {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		for _, d := range dates {
			list := perDay[d]
			if len(list) <= v.MaxGoalsPerDay {
				continue
			}
			c := Conflict{
				Type:        ConflictOvercommittedDay,
				Description: fmt.Sprintf("%s has %d open goals (limit %d)", d, len(list), v.MaxGoalsPerDay),
				Date:        d,
			}
			for _, g := range list {
				c.Items = append(c.Items, g.Title)
				c.IDs = append(c.IDs, g.ID)
			}
			result.Conflicts = append(result.Conflicts, c)
		}
	}
	return result
}

// Validate runs every check and merges the results.
func (v *Validator) Validate(tasks []models.Task, goals []models.Goal, today time.Time) Result {
	r := v.ValidateTasks(tasks, today)
	r.Conflicts = append(r.Conflicts, v.ValidateGoals(goals, today).Conflicts...)
	return r
}
