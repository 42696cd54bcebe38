package cli

import (
	"github.com/julianstephens/calmind/internal/dataservice"
)

// PrintMigrationReport summarizes a local-to-remote migration.
func (c *Context) PrintMigrationReport(r dataservice.MigrationReport) {
	if r.Migrated() == 0 && len(r.Failures) == 0 && len(r.Skipped) == 0 {
		c.Println("No local data to migrate.")
		return
	}
	if r.BackupPath != "" {
		c.Printf("Local database backed up to: %s\n", r.BackupPath)
	}
	c.Printf("Migrated %d task(s), %d goal(s), %d pomodoro session(s)", r.Tasks, r.Goals, r.Sessions)
	if r.Profile {
		c.Printf(", profile")
	}
	if r.Quiz {
		c.Printf(", quiz result")
	}
	c.Println()
	for _, e := range r.Skipped {
		c.Printf("  Kept remote %s (remote already had one)\n", e)
	}
	if len(r.Failures) > 0 {
		c.Printf("⚠ %d record(s) stayed local and will be retried next sign-in:\n", len(r.Failures))
		for _, f := range r.Failures {
			c.Printf("  %s %s: %v\n", f.Entity, ShortID(f.ID), f.Err)
		}
	}
}
