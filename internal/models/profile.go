package models

type Preferences struct {
	StudyReminders     bool `json:"study_reminders"`
	EmailNotifications bool `json:"email_notifications"`
	SoundEffects       bool `json:"sound_effects"`
	DarkMode           bool `json:"dark_mode"`

	// Lengths in minutes.
	PomodoroLength   int `json:"pomodoro_length"`
	ShortBreakLength int `json:"short_break_length"`
	LongBreakLength  int `json:"long_break_length"`
}

type Stats struct {
	TotalStudyTime       int `json:"total_study_time"` // minutes
	CompletedSessions    int `json:"completed_sessions"`
	CurrentStreak        int `json:"current_streak"`
	LongestStreak        int `json:"longest_streak"`
	TasksCompleted       int `json:"tasks_completed"`
	AverageSessionLength int `json:"average_session_length"`
}

type UserProfile struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	FullName    string      `json:"full_name,omitempty"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	Bio         string      `json:"bio,omitempty"`
	StudyGoals  []string    `json:"study_goals,omitempty"`
	Preferences Preferences `json:"preferences"`
	Stats       Stats       `json:"stats"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

// ProfileUpdate is a partial profile; nil fields are left unchanged.
type ProfileUpdate struct {
	Email       *string
	FullName    *string
	AvatarURL   *string
	Bio         *string
	StudyGoals  []string
	Preferences *Preferences
	Stats       *Stats
}

// Apply merges u onto p. Timestamps are the writer's responsibility.
func (u ProfileUpdate) Apply(p UserProfile) UserProfile {
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.AvatarURL != nil {
		p.AvatarURL = *u.AvatarURL
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.StudyGoals != nil {
		p.StudyGoals = append([]string(nil), u.StudyGoals...)
	}
	if u.Preferences != nil {
		p.Preferences = *u.Preferences
	}
	if u.Stats != nil {
		p.Stats = *u.Stats
	}
	return p
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.Email == nil && u.FullName == nil && u.AvatarURL == nil && u.Bio == nil &&
		u.StudyGoals == nil && u.Preferences == nil && u.Stats == nil
}
