package narration

import (
	"context"

	"github.com/julianstephens/calmind/internal/logger"
)

// Outcome reports which path produced speech.
type Outcome string

const (
	OutcomeRemote Outcome = "remote"
	OutcomeLocal  Outcome = "local"
	OutcomeNone   Outcome = "none"
)

// Player plays MPEG audio.
type Player interface {
	Play(ctx context.Context, audio []byte) error
}

// Synthesizer speaks text with an on-device voice.
type Synthesizer interface {
	Say(ctx context.Context, text string) error
}

// Speak tries hosted speech, then the on-device synthesizer. Failures are
// logged, never returned.
func (c *Client) Speak(ctx context.Context, text string) Outcome {
	if c.Configured() {
		audio, err := c.Generate(ctx, text)
		if err == nil {
			if err = c.player.Play(ctx, audio); err == nil {
				return OutcomeRemote
			}
		}
		logger.Warn("Hosted speech failed, using on-device voice", "error", err)
	} else {
		logger.Debug("Hosted speech not configured, using on-device voice")
	}

	if c.synth == nil {
		return OutcomeNone
	}
	if err := c.synth.Say(ctx, text); err != nil {
		logger.Warn("On-device speech failed", "error", err)
		return OutcomeNone
	}
	return OutcomeLocal
}
