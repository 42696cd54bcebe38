package system

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/storage/local"
)

type DebugCmd struct {
	Paths DebugPathsCmd `cmd:"" help:"Show data, database and backup paths."`
	Dump  DebugDumpCmd  `cmd:"" help:"Dump a stored collection as JSON."`
}

type DebugPathsCmd struct{}

func (cmd *DebugPathsCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"data_dir":   ctx.Config.DataDir,
		"database":   ctx.Store.Path(),
		"backups":    ctx.Backups.Dir(),
		"user_id":    ctx.UserID(),
		"sync_state": string(ctx.Data.Status()),
	})
}

type DebugDumpCmd struct {
	Entity string `arg:"" enum:"profile,tasks,goals,pomodoro,quiz,all" help:"Collection to dump (profile|tasks|goals|pomodoro|quiz|all)."`
	User   string `help:"User namespace (defaults to the current user)."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	if cmd.Entity == "all" {
		keys := ctx.Store.Keys("calmind_")
		sort.Strings(keys)
		out := make(map[string]json.RawMessage, len(keys))
		for _, k := range keys {
			v, _ := ctx.Store.GetItem(k)
			out[k] = rawOrString(v)
		}
		return printJSON(ctx, out)
	}

	user := cmd.User
	if user == "" {
		user = ctx.UserID()
	}
	key := local.Key(local.Entity(cmd.Entity), user)
	v, ok := ctx.Store.GetItem(key)
	if !ok {
		return fmt.Errorf("nothing stored under %s", key)
	}
	return printJSON(ctx, rawOrString(v))
}

func rawOrString(v string) json.RawMessage {
	if json.Valid([]byte(v)) {
		return json.RawMessage(v)
	}
	b, _ := json.Marshal(v)
	return b
}

func printJSON(ctx *cli.Context, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(b))
	return nil
}
