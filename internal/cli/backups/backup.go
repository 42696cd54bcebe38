package backups

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/constants"
	"github.com/julianstephens/calmind/internal/logger"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a backup of the local database."`
	List    BackupListCmd    `cmd:"" help:"List backups." default:"1"`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the local database from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	path, err := ctx.Backups.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Backups.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(list) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", ctx.Backups.Dir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(list), constants.MaxBackups)
	now := ctx.Now()
	for _, b := range list {
		ctx.Printf("  %s  %-32s %8s  %s\n",
			b.Timestamp.Local().Format("2006-01-02 15:04:05"), b.Name,
			humanize.Bytes(uint64(b.Size)), humanize.RelTime(b.Timestamp, now, "ago", "from now"))
	}
	ctx.Printf("\nBackup directory: %s\n", ctx.Backups.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or file name of the backup to restore."`
	Yes        bool   `short:"y" help:"Restore without asking."`
}

// confirm is swapped in tests.
var confirm = func(title, description string) (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Restore").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	path, err := ctx.Backups.Resolve(c.BackupFile)
	if err != nil {
		return err
	}

	if !c.Yes {
		if !ctx.Interactive {
			return errors.New("restore replaces the current database; pass --yes to confirm")
		}
		ok, err := confirm(
			"Restore "+filepath.Base(path)+"?",
			"This replaces your current database. A backup of it is made first.\nStop any other calmind processes before continuing.",
		)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close database before restore", "error", err)
	}

	previous, err := ctx.Backups.Restore(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Println("✓ Database restored")
	if previous != "" {
		ctx.Printf("  Previous database saved as: %s\n", filepath.Base(previous))
	}
	return nil
}
