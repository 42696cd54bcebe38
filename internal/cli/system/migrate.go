package system

import (
	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/dataservice"
)

// MigrateCmd provisions the calmind schema on the remote store.
type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(ctx *cli.Context) error {
	if ctx.Remote == nil {
		return dataservice.ErrRemoteNotConfigured
	}
	ctx.Printf("Provisioning remote schema at %s\n", ctx.Remote.Endpoint())
	applied, err := ctx.Remote.Provision(ctx.Ctx)
	if err != nil {
		return err
	}
	if applied == 0 {
		ctx.Println("Remote schema is up to date.")
		return nil
	}
	ctx.Printf("✓ Applied %d migration(s)\n", applied)
	return nil
}
