package account

import (
	"errors"
	"fmt"

	"github.com/julianstephens/calmind/internal/auth"
	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/dataservice"
)

type AuthCmd struct {
	Signin  SigninCmd  `cmd:"" help:"Sign in and move local data to your account."`
	Signout SignoutCmd `cmd:"" help:"Sign out. Local data written afterwards stays on this device."`
	Whoami  WhoamiCmd  `cmd:"" help:"Show the current user." default:"1"`
}

type SigninCmd struct {
	Email string `arg:"" help:"Account email address."`
}

func (c *SigninCmd) Run(ctx *cli.Context) error {
	user, err := auth.NewUser(c.Email)
	if err != nil {
		return err
	}
	if current, ok := ctx.Auth.Current(); ok && current.ID == user.ID {
		ctx.Printf("Already signed in as %s\n", current.Email)
		return nil
	}

	report, err := ctx.Auth.SignIn(ctx.Ctx, user)
	if errors.Is(err, dataservice.ErrRemoteNotConfigured) {
		return fmt.Errorf("cannot sign in: %w", err)
	}
	ctx.Printf("✓ Signed in as %s\n", user.Email)
	if err != nil {
		ctx.Printf("⚠ Local data was not migrated: %v\n", err)
		return nil
	}
	ctx.PrintMigrationReport(report)
	return nil
}

type SignoutCmd struct{}

func (c *SignoutCmd) Run(ctx *cli.Context) error {
	u, ok := ctx.Auth.Current()
	if err := ctx.Auth.SignOut(ctx.Ctx); err != nil {
		return err
	}
	if ok {
		ctx.Printf("✓ Signed out %s\n", u.Email)
	}
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	u, ok := ctx.Auth.Current()
	if !ok {
		ctx.Println("Not signed in. Data is stored on this device only.")
		return nil
	}
	ctx.Printf("%s\n", u.Email)
	ctx.Printf("  id:        %s\n", u.ID)
	ctx.Printf("  signed in: %s\n", cli.FormatWhen(u.SignedInAt, ctx.Now()))
	return nil
}
