package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/calmind/internal/dataservice"
	"github.com/julianstephens/calmind/internal/storage/local"
	"github.com/julianstephens/calmind/internal/storage/postgres"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("something went wrong"), expected: "Error: something went wrong"},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to load tasks: %w", errors.New("disk full")),
			expected: "Error: failed to load tasks: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("unknown pattern %q", "box"); got != `Error: unknown pattern "box"` {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{name: "nil", err: nil, contains: ""},
		{name: "uninitialized", err: local.ErrNotInitialized, contains: "calmind init"},
		{
			name:     "persist failure keeps first matching hint",
			err:      fmt.Errorf("%w: create task: %w", dataservice.ErrPersistFailed, local.ErrUnavailable),
			contains: "data directory permissions",
		},
		{
			name:     "schema missing",
			err:      fmt.Errorf("ping: %w", postgres.ErrSchemaMissing),
			contains: "calmind migrate",
		},
		{
			name: "migration failure keeps remote hint",
			err: dataservice.MigrationReport{Failures: []dataservice.MigrationFailure{
				{Entity: local.EntityTasks, ID: "local-1", Err: fmt.Errorf("%w: timeout", postgres.ErrUnreachable)},
			}}.Err(),
			contains: "could not be reached",
		},
		{name: "unknown error has no hint", err: errors.New("boom"), contains: "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UserMessage(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("UserMessage() = %q, want to contain %q", got, tt.contains)
			}
			if tt.err != nil && !strings.HasPrefix(got, "Error: ") {
				t.Errorf("UserMessage() = %q, missing prefix", got)
			}
		})
	}
	if got := UserMessage(errors.New("boom")); strings.Contains(got, "\n") {
		t.Errorf("unexpected hint for unknown error: %q", got)
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(local.ErrNotInitialized)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && !exitErr.Success() {
		if exitErr.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", exitErr.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: local storage not initialized") {
			t.Errorf("Fatal() stderr = %q", stderr.String())
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
