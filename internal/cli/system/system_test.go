package system

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/config"
	"github.com/julianstephens/calmind/internal/keyring"
	"github.com/julianstephens/calmind/internal/models"
)

func setupContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	ctx := cli.New(context.Background(), cfg)
	var out bytes.Buffer
	ctx.Out = &out
	t.Cleanup(ctx.Close)
	return ctx, &out
}

func TestInitCmd(t *testing.T) {
	ctx, out := setupContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(ctx.Store.Path()); err != nil {
		t.Fatalf("database not created: %v", err)
	}
	if !strings.Contains(out.String(), "local-only mode") {
		t.Errorf("output = %q", out.String())
	}

	// second run is idempotent
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
}

func TestInitCmdForceBacksUp(t *testing.T) {
	ctx, out := setupContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Data.CreateTask(ctx.Ctx, models.NewTask{UserID: ctx.UserID(), Title: "read chapter 3"}); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Backed up existing database") {
		t.Errorf("output = %q", out.String())
	}
	if tasks := ctx.Data.GetTasks(ctx.Ctx, ctx.UserID()); len(tasks) != 0 {
		t.Errorf("expected empty store after reset, got %d tasks", len(tasks))
	}
	if list, _ := ctx.Backups.List(); len(list) != 1 {
		t.Errorf("expected 1 backup, got %d", len(list))
	}
}

func TestDoctorCmd(t *testing.T) {
	gokeyring.MockInit()

	ctx, out := setupContext(t)
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail before init")
	}

	(&InitCmd{}).Run(ctx)
	out.Reset()
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed after init: %v\n%s", err, out.String())
	}
	for _, want := range []string{"✓ Local store", "not configured (local-only mode)", "⚠ Backups"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("doctor output missing %q:\n%s", want, out.String())
		}
	}
}

func TestMigrateCmdWithoutRemote(t *testing.T) {
	ctx, _ := setupContext(t)
	if err := (&MigrateCmd{}).Run(ctx); err == nil {
		t.Error("expected error without a remote")
	}
}

func TestSyncStatusLocalOnly(t *testing.T) {
	ctx, out := setupContext(t)
	(&InitCmd{}).Run(ctx)
	ctx.Data.CreateGoal(ctx.Ctx, models.NewGoal{UserID: ctx.UserID(), Title: "finish essay", Date: "2026-05-01"})

	if err := (&SyncStatusCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Mode: local only", "nobody", "1 collection(s) waiting"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("status output missing %q:\n%s", want, out.String())
		}
	}

	if err := (&SyncMigrateCmd{}).Run(ctx); err == nil {
		t.Error("sync migrate should require sign-in")
	}
}

func TestDebugCmds(t *testing.T) {
	ctx, out := setupContext(t)
	(&InitCmd{}).Run(ctx)
	ctx.Data.CreateTask(ctx.Ctx, models.NewTask{UserID: ctx.UserID(), Title: "flashcards"})
	out.Reset()

	if err := (&DebugPathsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"user_id": "local"`) {
		t.Errorf("paths output = %s", out.String())
	}

	out.Reset()
	if err := (&DebugDumpCmd{Entity: "tasks"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"title": "flashcards"`) {
		t.Errorf("dump output = %s", out.String())
	}

	if err := (&DebugDumpCmd{Entity: "quiz"}).Run(ctx); err == nil {
		t.Error("expected error for empty collection")
	}

	out.Reset()
	if err := (&DebugDumpCmd{Entity: "all"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "calmind_tasks_local") {
		t.Errorf("dump all output = %s", out.String())
	}
}

func TestKeyringGetDelete(t *testing.T) {
	gokeyring.MockInit()
	ctx, out := setupContext(t)

	if err := (&KeyringGetCmd{Name: "tts-api-key"}).Run(ctx); err == nil {
		t.Error("expected error for missing secret")
	}

	if err := keyring.Set(keyring.TTSAPIKey, "sk-abcdef1234"); err != nil {
		t.Fatal(err)
	}
	if err := (&KeyringGetCmd{Name: "tts-api-key"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "*********1234") || strings.Contains(out.String(), "abcdef") {
		t.Errorf("secret not masked: %q", out.String())
	}

	if err := (&KeyringDeleteCmd{Name: "tts-api-key"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&KeyringDeleteCmd{Name: "tts-api-key"}).Run(ctx); err == nil {
		t.Error("second delete should fail")
	}
}

func TestMask(t *testing.T) {
	tests := map[string]string{"": "", "abc": "***", "abcdefgh": "****efgh"}
	for in, want := range tests {
		if got := mask(in); got != want {
			t.Errorf("mask(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateCmd(t *testing.T) {
	ctx, out := setupContext(t)
	if err := ctx.Store.Init(ctx.Ctx); err != nil {
		t.Fatal(err)
	}

	if err := (&ValidateCmd{MaxGoals: 5, Strict: true}).Run(ctx); err != nil {
		t.Fatalf("clean validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "No conflicts detected.") {
		t.Errorf("output = %q", out.String())
	}

	for i := 0; i < 2; i++ {
		if _, err := ctx.Data.CreateTask(ctx.Ctx, models.NewTask{UserID: ctx.UserID(), Title: "Flashcards", DueDate: "2020-01-01"}); err != nil {
			t.Fatal(err)
		}
	}

	out.Reset()
	if err := (&ValidateCmd{MaxGoals: 5}).Run(ctx); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Duplicate open task") || strings.Count(got, "was due 2020-01-01") != 2 {
		t.Errorf("output = %q", got)
	}

	if err := (&ValidateCmd{MaxGoals: 5, Strict: true}).Run(ctx); err == nil {
		t.Error("strict validate should fail with conflicts")
	}
}
