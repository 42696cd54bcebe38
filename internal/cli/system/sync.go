package system

import (
	"errors"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/constants"
	"github.com/julianstephens/calmind/internal/dataservice"
	"github.com/julianstephens/calmind/internal/storage/local"
)

type SyncCmd struct {
	Status  SyncStatusCmd  `cmd:"" help:"Show where data is being stored." default:"1"`
	Migrate SyncMigrateCmd `cmd:"" help:"Copy data saved while signed out to the remote store."`
}

type SyncStatusCmd struct{}

func (cmd *SyncStatusCmd) Run(ctx *cli.Context) error {
	if !ctx.Data.RemoteConfigured() {
		ctx.Println("Mode: local only")
	} else {
		if err := ctx.Data.Probe(ctx.Ctx); err != nil && !errors.Is(err, dataservice.ErrRemoteDisabled) {
			ctx.Printf("Remote check failed: %v\n", err)
		}
		ctx.Printf("Remote: %s\n", ctx.Remote.Endpoint())
		ctx.Printf("Status: %s\n", ctx.Data.Status())
	}

	if u, ok := ctx.Auth.Current(); ok {
		ctx.Printf("Signed in as: %s\n", u.Email)
	} else {
		ctx.Println("Signed in as: nobody (anonymous local data)")
	}

	pending := 0
	for _, e := range local.Entities {
		if _, ok := ctx.Store.GetItem(local.Key(e, constants.AnonymousUserID)); ok {
			pending++
		}
	}
	if pending > 0 {
		ctx.Printf("Anonymous local data: %d collection(s) waiting to migrate\n", pending)
	}
	return nil
}

type SyncMigrateCmd struct{}

func (cmd *SyncMigrateCmd) Run(ctx *cli.Context) error {
	u, ok := ctx.Auth.Current()
	if !ok {
		return errors.New("sign in first with 'calmind auth signin <email>'")
	}
	report, err := ctx.Data.MigrateLocalData(ctx.Ctx, constants.AnonymousUserID, u.ID)
	if err != nil {
		return err
	}
	ctx.PrintMigrationReport(report)
	return report.Err()
}
