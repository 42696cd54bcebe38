// Package scheduler plans pomodoro cycles and guided breathing sessions.
package scheduler

import (
	"fmt"
	"time"

	"github.com/julianstephens/calmind/internal/constants"
	"github.com/julianstephens/calmind/internal/models"
)

// Settings are the pomodoro lengths in minutes.
type Settings struct {
	WorkMin                int
	ShortBreakMin          int
	LongBreakMin           int
	SessionsUntilLongBreak int
}

func DefaultSettings() Settings {
	return Settings{
		WorkMin:                constants.DefaultWorkMin,
		ShortBreakMin:          constants.DefaultShortBreakMin,
		LongBreakMin:           constants.DefaultLongBreakMin,
		SessionsUntilLongBreak: constants.DefaultSessionsUntilLongBreak,
	}
}

func (s Settings) Validate() error {
	if s.WorkMin <= 0 || s.ShortBreakMin <= 0 || s.LongBreakMin <= 0 {
		return fmt.Errorf("pomodoro lengths must be positive (work %d, short %d, long %d)", s.WorkMin, s.ShortBreakMin, s.LongBreakMin)
	}
	if s.SessionsUntilLongBreak < 1 {
		return fmt.Errorf("sessions until long break must be at least 1, got %d", s.SessionsUntilLongBreak)
	}
	return nil
}

// Duration returns the configured length of a session type.
func (s Settings) Duration(t models.SessionType) time.Duration {
	switch t {
	case models.SessionShortBreak:
		return time.Duration(s.ShortBreakMin) * time.Minute
	case models.SessionLongBreak:
		return time.Duration(s.LongBreakMin) * time.Minute
	default:
		return time.Duration(s.WorkMin) * time.Minute
	}
}

// Phase is one timed block of a pomodoro plan.
type Phase struct {
	Type     models.SessionType
	Duration time.Duration
	// Round counts completed work blocks, starting at 1.
	Round int
}

type Scheduler struct {
	settings Settings
}

func New(settings Settings) (*Scheduler, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{settings: settings}, nil
}

func (s *Scheduler) Settings() Settings {
	return s.settings
}

// NextBreak returns the break that follows the given number of completed
// work sessions: every Nth one earns a long break.
func (s *Scheduler) NextBreak(completedWork int) models.SessionType {
	if completedWork > 0 && completedWork%s.settings.SessionsUntilLongBreak == 0 {
		return models.SessionLongBreak
	}
	return models.SessionShortBreak
}

// CompletedWorkToday counts completed work sessions created on day, which
// positions the next break in the cycle.
func CompletedWorkToday(sessions []models.PomodoroSession, day time.Time) int {
	y, m, d := day.Date()
	n := 0
	for _, p := range sessions {
		if !p.Completed || p.SessionType != models.SessionWork {
			continue
		}
		created := models.ParseTimestamp(p.CreatedAt).In(day.Location())
		if cy, cm, cd := created.Date(); cy == y && cm == m && cd == d {
			n++
		}
	}
	return n
}

// Plan lays out rounds work blocks, each followed by its break, continuing
// a cycle that already has completedWork sessions.
func (s *Scheduler) Plan(rounds, completedWork int) []Phase {
	var phases []Phase
	for i := 1; i <= rounds; i++ {
		done := completedWork + i
		phases = append(phases, Phase{
			Type:     models.SessionWork,
			Duration: s.settings.Duration(models.SessionWork),
			Round:    done,
		})
		brk := s.NextBreak(done)
		phases = append(phases, Phase{
			Type:     brk,
			Duration: s.settings.Duration(brk),
			Round:    done,
		})
	}
	return phases
}

// TotalDuration sums the phases.
func TotalDuration(phases []Phase) time.Duration {
	var total time.Duration
	for _, p := range phases {
		total += p.Duration
	}
	return total
}
