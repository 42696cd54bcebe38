package focus

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/scheduler"
	"github.com/julianstephens/calmind/internal/tui"
)

// UnwindCmd runs a guided breathing exercise.
type UnwindCmd struct {
	Pattern string `short:"p" default:"calm" help:"Breathing pattern (calm|energize|focus|sleep)."`
	Minutes int    `short:"m" default:"5" help:"Exercise length in minutes."`
	Voice   bool   `negatable:"" default:"true" help:"Speak breathing cues."`
	List    bool   `short:"l" help:"List breathing patterns and exit."`
}

func (c *UnwindCmd) Run(ctx *cli.Context) error {
	if c.List {
		for _, name := range scheduler.PatternNames() {
			p := scheduler.Patterns[name]
			ctx.Printf("  %-9s inhale %d, hold %d, exhale %d, rest %d (%s per breath)\n",
				name, p.Inhale, p.Hold, p.Exhale, p.HoldAfter, p.Cycle())
		}
		return nil
	}
	if c.Minutes < 1 {
		return errors.New("minutes must be at least 1")
	}

	pattern, err := scheduler.LookupPattern(c.Pattern)
	if err != nil {
		return err
	}

	steps := pattern.Steps(time.Duration(c.Minutes) * time.Minute)
	segments := make([]tui.Segment, len(steps))
	for i, s := range steps {
		seg := tui.Segment{
			Label:    s.Phase.Instruction(),
			Detail:   fmt.Sprintf("Breath %d", s.Cycle),
			Duration: s.Duration,
		}
		if s.Speak && c.Voice {
			cue := s.Phase.Guidance()
			seg.OnStart = func() { ctx.Narrator.Speak(ctx.Ctx, cue) }
		}
		segments[i] = seg
	}

	q := scheduler.QuoteOfTheDay(ctx.Now())
	ctx.Printf("“%s” (%s)\n\n", q.Text, q.Author)

	res, err := runner(ctx.Ctx, strings.ToUpper(pattern.Name[:1])+pattern.Name[1:]+" breathing", segments)
	if err != nil {
		return err
	}
	breaths := 0
	if len(steps) > 0 {
		breaths = steps[len(steps)-1].Cycle
	}
	if res.Finished() {
		ctx.Printf("Well done. %d breaths in %s.\n", breaths, res.Elapsed.Round(time.Second))
	} else {
		ctx.Printf("Stopped after %s.\n", res.Elapsed.Round(time.Second))
	}
	return nil
}
