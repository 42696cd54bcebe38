package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/calmind/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing local database (after backing it up) before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dbPath := ctx.Store.Path()
	if c.Force {
		if _, err := os.Stat(dbPath); err == nil {
			path, err := ctx.Backups.CreateBackup()
			if err != nil {
				return fmt.Errorf("refusing to reset without a backup: %w", err)
			}
			ctx.Printf("Backed up existing database to: %s\n", path)
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(ctx.Ctx); err != nil {
		return err
	}
	ctx.Printf("Initialized calmind storage at: %s\n", dbPath)

	if ctx.Data.RemoteConfigured() {
		ctx.Println("Remote sync is configured. Run 'calmind doctor' to check it.")
	} else {
		ctx.Println("Running in local-only mode. Set CALMIND_REMOTE_URL and a remote access key to enable sync.")
	}
	return nil
}
