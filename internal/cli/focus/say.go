package focus

import (
	"errors"
	"strings"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/narration"
)

// SayCmd reads text aloud, trying the hosted voice first.
type SayCmd struct {
	Text   []string `arg:"" optional:"" help:"Text to speak."`
	Voices bool     `help:"List hosted voices instead of speaking."`
}

func (c *SayCmd) Run(ctx *cli.Context) error {
	if c.Voices {
		voices, err := ctx.Narrator.Voices(ctx.Ctx)
		if err != nil {
			return err
		}
		for _, v := range voices {
			ctx.Printf("  %s  %s (%s)\n", v.VoiceID, v.Name, v.Category)
		}
		return nil
	}

	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		return narration.ErrEmptyText
	}
	switch ctx.Narrator.Speak(ctx.Ctx, text) {
	case narration.OutcomeRemote:
		ctx.Println("Spoke with hosted voice.")
	case narration.OutcomeLocal:
		ctx.Println("Spoke with on-device voice.")
	default:
		return errors.New("no voice available; configure a TTS key or install espeak-ng")
	}
	return nil
}
