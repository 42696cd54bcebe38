package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/calmind/internal/constants"
	"github.com/julianstephens/calmind/internal/keyring"
	"github.com/julianstephens/calmind/internal/logger"
)

// Environment variables read by Load.
const (
	EnvDataDir       = "CALMIND_DATA_DIR"
	EnvDebug         = "CALMIND_DEBUG"
	EnvRemoteURL     = "CALMIND_REMOTE_URL"
	EnvRemoteKey     = "CALMIND_REMOTE_KEY"
	EnvRemoteTimeout = "CALMIND_REMOTE_TIMEOUT"
	EnvTTSAPIKey     = "CALMIND_TTS_API_KEY"
	EnvElevenLabsKey = "ELEVENLABS_API_KEY"
	EnvTTSVoice      = "CALMIND_TTS_VOICE"
)

var (
	userHomeDirFunc = os.UserHomeDir
	keyringGetFunc  = keyring.Get
)

// Config is resolved once at startup and handed to each component.
type Config struct {
	DataDir   string          `yaml:"data_dir"`
	Debug     bool            `yaml:"debug"`
	Remote    RemoteConfig    `yaml:"remote"`
	Narration NarrationConfig `yaml:"narration"`
	Pomodoro  PomodoroConfig  `yaml:"pomodoro"`
}

// RemoteConfig describes the hosted PostgreSQL store. The access key is
// never read from the config file.
type RemoteConfig struct {
	URL       string        `yaml:"url"`
	AccessKey string        `yaml:"-"`
	Timeout   time.Duration `yaml:"timeout"`
}

// NarrationConfig describes the remote text-to-speech provider.
type NarrationConfig struct {
	APIKey          string  `yaml:"-"`
	BaseURL         string  `yaml:"base_url"`
	VoiceID         string  `yaml:"voice_id"`
	ModelID         string  `yaml:"model_id"`
	Stability       float64 `yaml:"stability"`
	SimilarityBoost float64 `yaml:"similarity_boost"`
	Disabled        bool    `yaml:"disabled"`
}

// PomodoroConfig holds timer defaults used when a profile has none.
type PomodoroConfig struct {
	WorkMin                int `yaml:"work_min"`
	ShortBreakMin          int `yaml:"short_break_min"`
	LongBreakMin           int `yaml:"long_break_min"`
	SessionsUntilLongBreak int `yaml:"sessions_until_long_break"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir: constants.DefaultConfigDir,
		Remote: RemoteConfig{
			Timeout: constants.DefaultRemoteTimeout,
		},
		Narration: NarrationConfig{
			BaseURL:         constants.DefaultTTSBaseURL,
			VoiceID:         constants.DefaultTTSVoiceID,
			ModelID:         constants.DefaultTTSModelID,
			Stability:       constants.DefaultTTSStability,
			SimilarityBoost: constants.DefaultTTSSimilarityBoost,
		},
		Pomodoro: PomodoroConfig{
			WorkMin:                constants.DefaultWorkMin,
			ShortBreakMin:          constants.DefaultShortBreakMin,
			LongBreakMin:           constants.DefaultLongBreakMin,
			SessionsUntilLongBreak: constants.DefaultSessionsUntilLongBreak,
		},
	}
}

// DefaultPath returns the config file location under the default config dir.
func DefaultPath() string {
	return filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile)
}

// Load resolves configuration from defaults, the YAML file at path (optional),
// the environment and finally the OS keyring for secrets that are still unset.
// A missing file or missing secrets are not errors.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return Config{}, err
		}
		data, err := os.ReadFile(expanded)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", expanded, err)
			}
		case errors.Is(err, os.ErrNotExist):
			logger.Debug("No config file, using defaults", "path", expanded)
		default:
			return Config{}, fmt.Errorf("failed to read config file %s: %w", expanded, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.applyKeyring()
	cfg.fillDefaults()

	dataDir, err := ExpandPath(cfg.DataDir)
	if err != nil {
		return Config{}, err
	}
	cfg.DataDir = dataDir

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDebug, err)
		}
		c.Debug = debug
	}
	if v := os.Getenv(EnvRemoteURL); v != "" {
		c.Remote.URL = v
	}
	if v := os.Getenv(EnvRemoteKey); v != "" {
		c.Remote.AccessKey = v
	}
	if v := os.Getenv(EnvRemoteTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRemoteTimeout, err)
		}
		c.Remote.Timeout = d
	}
	if v := os.Getenv(EnvTTSAPIKey); v != "" {
		c.Narration.APIKey = v
	} else if v := os.Getenv(EnvElevenLabsKey); v != "" {
		c.Narration.APIKey = v
	}
	if v := os.Getenv(EnvTTSVoice); v != "" {
		c.Narration.VoiceID = v
	}
	return nil
}

func (c *Config) applyKeyring() {
	lookup := func(secret keyring.Secret) string {
		v, err := keyringGetFunc(secret)
		if err != nil {
			if !errors.Is(err, keyring.ErrNotFound) {
				logger.Debug("Keyring lookup failed", "secret", secret, "error", err)
			}
			return ""
		}
		return v
	}

	// Only consult the keyring for the remote key when a URL is configured.
	if c.Remote.URL != "" && c.Remote.AccessKey == "" {
		c.Remote.AccessKey = lookup(keyring.RemoteAccessKey)
	}
	if c.Narration.APIKey == "" && !c.Narration.Disabled {
		c.Narration.APIKey = lookup(keyring.TTSAPIKey)
	}
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.Remote.Timeout <= 0 {
		c.Remote.Timeout = def.Remote.Timeout
	}
	if c.Narration.BaseURL == "" {
		c.Narration.BaseURL = def.Narration.BaseURL
	}
	if c.Narration.VoiceID == "" {
		c.Narration.VoiceID = def.Narration.VoiceID
	}
	if c.Narration.ModelID == "" {
		c.Narration.ModelID = def.Narration.ModelID
	}
	if c.Pomodoro.WorkMin <= 0 {
		c.Pomodoro.WorkMin = def.Pomodoro.WorkMin
	}
	if c.Pomodoro.ShortBreakMin <= 0 {
		c.Pomodoro.ShortBreakMin = def.Pomodoro.ShortBreakMin
	}
	if c.Pomodoro.LongBreakMin <= 0 {
		c.Pomodoro.LongBreakMin = def.Pomodoro.LongBreakMin
	}
	if c.Pomodoro.SessionsUntilLongBreak <= 0 {
		c.Pomodoro.SessionsUntilLongBreak = def.Pomodoro.SessionsUntilLongBreak
	}
}

// RemoteConfigured reports whether both the endpoint URL and access key are set.
func (c Config) RemoteConfigured() bool {
	return strings.TrimSpace(c.Remote.URL) != "" && strings.TrimSpace(c.Remote.AccessKey) != ""
}

// NarrationConfigured reports whether remote text-to-speech can be attempted.
func (c Config) NarrationConfigured() bool {
	return !c.Narration.Disabled && strings.TrimSpace(c.Narration.APIKey) != ""
}

// DBPath is the local store location.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, constants.DefaultDBName)
}

// ExpandPath expands a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := userHomeDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
