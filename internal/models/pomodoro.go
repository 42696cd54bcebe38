package models

import "strings"

type SessionType string

const (
	SessionWork       SessionType = "work"
	SessionShortBreak SessionType = "short_break"
	SessionLongBreak  SessionType = "long_break"
)

func (s SessionType) Valid() bool {
	switch s {
	case SessionWork, SessionShortBreak, SessionLongBreak:
		return true
	}
	return false
}

// PomodoroSession is append-only: created and read, never updated.
type PomodoroSession struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Duration    int         `json:"duration"` // minutes
	Completed   bool        `json:"completed"`
	SessionType SessionType `json:"session_type"`
	CreatedAt   string      `json:"created_at"`
}

type NewPomodoroSession struct {
	UserID      string
	Duration    int
	Completed   bool
	SessionType SessionType
}

func (n NewPomodoroSession) Validate() error {
	if strings.TrimSpace(n.UserID) == "" {
		return invalidf("session user_id cannot be empty")
	}
	if n.Duration <= 0 {
		return invalidf("session duration must be greater than zero")
	}
	if !n.SessionType.Valid() {
		return invalidf("unknown session type %q", n.SessionType)
	}
	return nil
}

func (n NewPomodoroSession) Session() PomodoroSession {
	return PomodoroSession{
		UserID:      n.UserID,
		Duration:    n.Duration,
		Completed:   n.Completed,
		SessionType: n.SessionType,
	}
}

type PomodoroStats struct {
	TotalSessions        int `json:"total_sessions"`
	CompletedSessions    int `json:"completed_sessions"`
	TotalFocusTime       int `json:"total_focus_time"`       // minutes, completed work sessions only
	AverageSessionLength int `json:"average_session_length"` // minutes, over completed sessions
}

// ComputePomodoroStats aggregates a session history.
func ComputePomodoroStats(sessions []PomodoroSession) PomodoroStats {
	stats := PomodoroStats{TotalSessions: len(sessions)}
	completedMinutes := 0
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		stats.CompletedSessions++
		completedMinutes += s.Duration
		if s.SessionType == SessionWork {
			stats.TotalFocusTime += s.Duration
		}
	}
	if stats.CompletedSessions > 0 {
		// round half up, matching the dashboard
		stats.AverageSessionLength = (2*completedMinutes + stats.CompletedSessions) / (2 * stats.CompletedSessions)
	}
	return stats
}
