package constants

const (
	// Narration defaults
	DefaultTTSBaseURL         = "https://api.elevenlabs.io/v1"
	DefaultTTSVoiceID         = "pNInz6obpgDQGcFmaJgB"
	DefaultTTSModelID         = "eleven_monolingual_v1"
	DefaultTTSStability       = 0.5
	DefaultTTSSimilarityBoost = 0.75

	// Pomodoro defaults (minutes)
	DefaultWorkMin                = 25
	DefaultShortBreakMin          = 5
	DefaultLongBreakMin           = 15
	DefaultSessionsUntilLongBreak = 4

	// Breathing defaults
	DefaultUnwindMin     = 5
	DefaultUnwindPattern = "calm"
)
