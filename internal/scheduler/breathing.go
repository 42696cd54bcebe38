package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type BreathPhase string

const (
	Inhale    BreathPhase = "inhale"
	Hold      BreathPhase = "hold"
	Exhale    BreathPhase = "exhale"
	HoldAfter BreathPhase = "rest"
)

// Instruction is the short on-screen label for a phase.
func (p BreathPhase) Instruction() string {
	switch p {
	case Inhale:
		return "Breathe In"
	case Hold:
		return "Hold"
	case Exhale:
		return "Breathe Out"
	default:
		return "Rest"
	}
}

// Guidance is the spoken cue for a phase.
func (p BreathPhase) Guidance() string {
	switch p {
	case Inhale:
		return "Breathe in slowly and deeply"
	case Hold:
		return "Hold your breath gently"
	case Exhale:
		return "Breathe out slowly and completely"
	default:
		return "Rest and prepare for the next breath"
	}
}

// Pattern holds phase lengths in seconds. Zero-length phases are skipped.
type Pattern struct {
	Name      string
	Inhale    int
	Hold      int
	Exhale    int
	HoldAfter int
}

var Patterns = map[string]Pattern{
	"calm":     {Name: "calm", Inhale: 4, Hold: 4, Exhale: 4, HoldAfter: 2},
	"energize": {Name: "energize", Inhale: 4, Hold: 7, Exhale: 8},
	"focus":    {Name: "focus", Inhale: 6, Hold: 2, Exhale: 6, HoldAfter: 2},
	"sleep":    {Name: "sleep", Inhale: 4, Hold: 7, Exhale: 8},
}

func PatternNames() []string {
	names := make([]string, 0, len(Patterns))
	for n := range Patterns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func LookupPattern(name string) (Pattern, error) {
	p, ok := Patterns[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Pattern{}, fmt.Errorf("unknown breathing pattern %q (choose from %s)", name, strings.Join(PatternNames(), ", "))
	}
	return p, nil
}

// Cycle is one full breath.
func (p Pattern) Cycle() time.Duration {
	return time.Duration(p.Inhale+p.Hold+p.Exhale+p.HoldAfter) * time.Second
}

type BreathStep struct {
	Phase    BreathPhase
	Duration time.Duration
	Cycle    int
	// Speak marks the steps that get a spoken cue.
	Speak bool
}

// spokenEvery voices the inhale cue on every third breath.
const spokenEvery = 3

// Steps expands the pattern into whole breaths filling at most total.
// At least one breath is always returned.
func (p Pattern) Steps(total time.Duration) []BreathStep {
	cycle := p.Cycle()
	if cycle <= 0 {
		return nil
	}
	cycles := int(total / cycle)
	if cycles < 1 {
		cycles = 1
	}

	var steps []BreathStep
	for c := 0; c < cycles; c++ {
		for _, ph := range []struct {
			phase BreathPhase
			secs  int
		}{{Inhale, p.Inhale}, {Hold, p.Hold}, {Exhale, p.Exhale}, {HoldAfter, p.HoldAfter}} {
			if ph.secs <= 0 {
				continue
			}
			steps = append(steps, BreathStep{
				Phase:    ph.phase,
				Duration: time.Duration(ph.secs) * time.Second,
				Cycle:    c + 1,
				Speak:    ph.phase == Inhale && c%spokenEvery == 0,
			})
		}
	}
	return steps
}
