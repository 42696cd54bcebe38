package constants

import "time"

const (
	AppName           = "calmind"
	Version           = "v0.3.0"
	DefaultConfigDir  = "~/.config/calmind"
	DefaultConfigFile = "config.yaml"
	DefaultDBName     = "calmind.db"

	// AnonymousUserID is the provisional namespace used before sign-in.
	AnonymousUserID = "local"

	// SessionKey holds the signed-in user in the local store.
	SessionKey = "calmind_session"

	// DateFormat is the calendar date format for goals and due dates (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat selects a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// TimestampFormat is used for every writer-assigned timestamp. It is
	// fixed width so that string order matches time order.
	TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"

	// Remote store
	RemoteSchema         = "calmind"
	DefaultRemoteTimeout = 5 * time.Second

	// Keyring entries
	KeyringRemoteAccessKey = "remote-access-key"
	KeyringTTSAPIKey       = "tts-api-key"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "calmind-"
	BackupFileSuffix = ".db"

	// Pomodoro
	DefaultSessionLimit = 50
)
