// Package narration turns text into speech, preferring a hosted voice and
// falling back to the platform's own synthesizer.
package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/julianstephens/calmind/internal/constants"
)

var (
	ErrNotConfigured = errors.New("text-to-speech not configured")
	ErrEmptyText     = errors.New("text is empty")
)

// maxAudioBytes bounds a single synthesized clip.
const maxAudioBytes = 32 << 20

type Config struct {
	APIKey          string
	BaseURL         string
	VoiceID         string
	ModelID         string
	Stability       float64
	SimilarityBoost float64
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = constants.DefaultTTSBaseURL
	}
	if c.VoiceID == "" {
		c.VoiceID = constants.DefaultTTSVoiceID
	}
	if c.ModelID == "" {
		c.ModelID = constants.DefaultTTSModelID
	}
	if c.Stability == 0 {
		c.Stability = constants.DefaultTTSStability
	}
	if c.SimilarityBoost == 0 {
		c.SimilarityBoost = constants.DefaultTTSSimilarityBoost
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

type Client struct {
	cfg    Config
	http   *http.Client
	player Player
	synth  Synthesizer
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithPlayer(p Player) Option {
	return func(c *Client) { c.player = p }
}

func WithSynthesizer(s Synthesizer) Option {
	return func(c *Client) { c.synth = s }
}

func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg.withDefaults(),
		http:   &http.Client{Timeout: 30 * time.Second},
		player: CommandPlayer{},
		synth:  SystemSynthesizer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether hosted speech can be attempted.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type speechRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Generate returns MPEG audio of text spoken by the configured voice.
func (c *Client) Generate(ctx context.Context, text string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	body, err := json.Marshal(speechRequest{
		Text:    text,
		ModelID: c.cfg.ModelID,
		VoiceSettings: voiceSettings{
			Stability:       c.cfg.Stability,
			SimilarityBoost: c.cfg.SimilarityBoost,
		},
	})
	if err != nil {
		return nil, err
	}

	endpoint := c.cfg.BaseURL + "/text-to-speech/" + url.PathEscape(c.cfg.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.cfg.APIKey)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("text-to-speech request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("text-to-speech failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	audio, err := io.ReadAll(io.LimitReader(res.Body, maxAudioBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("text-to-speech returned no audio")
	}
	return audio, nil
}

type Voice struct {
	VoiceID  string `json:"voice_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Voices lists the voices available to the account.
func (c *Client) Voices(ctx context.Context) ([]Voice, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/voices", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.cfg.APIKey)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voices request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("voices request failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var payload struct {
		Voices []Voice `json:"voices"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode voices: %w", err)
	}
	return payload.Voices, nil
}
