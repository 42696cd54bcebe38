package system

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/keyring"
	"github.com/julianstephens/calmind/internal/narration"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(ctx *cli.Context) (string, error)
	// optional checks report problems as warnings.
	optional bool
}

var checks = []check{
	{name: "Local store", run: checkLocal},
	{name: "Backups", run: checkBackups, optional: true},
	{name: "Remote store", run: checkRemote, optional: true},
	{name: "Keyring", run: checkKeyring, optional: true},
	{name: "Narration", run: checkNarration, optional: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	failed := 0
	for _, c := range checks {
		detail, err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: %s\n", c.name, detail)
		case c.optional:
			ctx.Printf("⚠ %s: %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed++
		}
	}

	ctx.Println()
	if failed > 0 {
		return fmt.Errorf("%d diagnostic check(s) failed", failed)
	}
	ctx.Println("All required checks passed.")
	return nil
}

func checkLocal(ctx *cli.Context) (string, error) {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%d keys)", ctx.Store.Path(), len(ctx.Store.Keys(""))), nil
}

func checkBackups(ctx *cli.Context) (string, error) {
	list, err := ctx.Backups.List()
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", errors.New("no backups yet, run 'calmind backup create'")
	}
	return fmt.Sprintf("%d available, latest %s", len(list), humanize.RelTime(list[0].Timestamp, ctx.Now(), "ago", "from now")), nil
}

func checkRemote(ctx *cli.Context) (string, error) {
	if !ctx.Data.RemoteConfigured() {
		return "not configured (local-only mode)", nil
	}
	if err := ctx.Data.Probe(ctx.Ctx); err != nil {
		return "", fmt.Errorf("%s: %w", ctx.Remote.Endpoint(), err)
	}
	return fmt.Sprintf("%s (%s)", ctx.Remote.Endpoint(), ctx.Data.Status()), nil
}

func checkKeyring(ctx *cli.Context) (string, error) {
	if !keyring.IsAvailable() {
		return "", keyring.ErrKeyringUnavailable
	}
	return "available", nil
}

func checkNarration(ctx *cli.Context) (string, error) {
	if ctx.Narrator.Configured() {
		return "hosted voice configured", nil
	}
	if _, err := narration.LocalVoice(); err != nil {
		return "", fmt.Errorf("no hosted voice and %w", err)
	}
	return "on-device voice only", nil
}
