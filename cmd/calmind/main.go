package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/cli/account"
	"github.com/julianstephens/calmind/internal/cli/backups"
	"github.com/julianstephens/calmind/internal/cli/focus"
	"github.com/julianstephens/calmind/internal/cli/library"
	"github.com/julianstephens/calmind/internal/cli/system"
	"github.com/julianstephens/calmind/internal/cli/tasks"
	"github.com/julianstephens/calmind/internal/config"
	"github.com/julianstephens/calmind/internal/constants"
	"github.com/julianstephens/calmind/internal/errors"
	"github.com/julianstephens/calmind/internal/logger"
	"github.com/julianstephens/calmind/internal/tui"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init      system.InitCmd       `cmd:"" help:"Initialize the local store."`
	Doctor    system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Migrate   system.MigrateCmd    `cmd:"" help:"Provision the remote database schema."`
	Sync      system.SyncCmd       `cmd:"" help:"Show sync status or migrate local data."`
	Keyring   system.KeyringCmd    `cmd:"" help:"Manage secrets in the OS keyring."`
	Diagnose  system.DebugCmd      `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Validate  system.ValidateCmd   `cmd:"" help:"Check tasks and goals for duplicates, bad dates, and missed deadlines."`
	Task      tasks.TaskCmd        `cmd:"" help:"Manage to-do tasks."`
	Goal      tasks.GoalCmd        `cmd:"" help:"Manage calendar goals, milestones, and reminders."`
	Pomodoro  focus.PomodoroCmd    `cmd:"" help:"Focus with pomodoro sessions."`
	Unwind    focus.UnwindCmd      `cmd:"" help:"Guided breathing exercise."`
	Say       focus.SayCmd         `cmd:"" help:"Read text aloud."`
	Auth      account.AuthCmd      `cmd:"" help:"Sign in, sign out, and show the current user."`
	Profile   account.ProfileCmd   `cmd:"" help:"Show or update your profile."`
	Quiz      account.QuizCmd      `cmd:"" help:"Learning-style quiz."`
	Resources library.ResourcesCmd `cmd:"" help:"Browse the study resource library."`
	Backup    backups.BackupCmd    `cmd:"" help:"Manage local database backups."`
}

// commands that open (or must not open) the local store themselves
var skipLoad = []string{"init", "doctor", "keyring", "debug paths", "backup restore"}

func needsStore(command string) bool {
	for _, prefix := range skipLoad {
		if command == prefix || strings.HasPrefix(command, prefix+" ") {
			return false
		}
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Study companion: pomodoro timer, breathing exercises, tasks, goals, and learning-style resources."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": config.DefaultPath(),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataDir}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := cli.New(sigCtx, cfg)
	appCtx.Interactive = tui.Interactive(os.Stdin) && tui.Interactive(os.Stdout)
	defer appCtx.Close()

	if needsStore(ctx.Command()) {
		if err := appCtx.Store.Load(sigCtx); err != nil {
			appCtx.Close()
			errors.Fatal(err)
		}
	}
	logger.Debug("Running command", "command", ctx.Command(), "user", appCtx.UserID())

	if err := ctx.Run(appCtx); err != nil {
		appCtx.Close()
		stop()
		errors.Fatal(err)
	}
}
