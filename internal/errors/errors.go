package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/calmind/internal/auth"
	"github.com/julianstephens/calmind/internal/backup"
	"github.com/julianstephens/calmind/internal/dataservice"
	"github.com/julianstephens/calmind/internal/logger"
	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/storage/local"
	"github.com/julianstephens/calmind/internal/storage/postgres"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// hints are checked in order; the first match wins.
var hints = []struct {
	target error
	hint   string
}{
	{local.ErrNotInitialized, "Run 'calmind init' to create the local store."},
	{local.ErrUnavailable, "The local store could not be opened. Check the data directory permissions."},
	{postgres.ErrSchemaMissing, "The remote database has no calmind schema. Run 'calmind migrate' to provision it."},
	{postgres.ErrUnauthorized, "The remote rejected the access key. Store a new one with 'calmind keyring set remote-access-key'."},
	{dataservice.ErrRemoteNotConfigured, "Set CALMIND_REMOTE_URL and a remote access key to enable sync."},
	{dataservice.ErrRemoteDisabled, "Sync was turned off after a schema error. Fix the remote and restart."},
	{postgres.ErrUnreachable, "The remote store could not be reached. Your data is kept locally."},
	{dataservice.ErrNotFound, "No record with that id. List records to find the right id."},
	{auth.ErrNotSignedIn, "Sign in with 'calmind auth signin <email>'."},
	{auth.ErrInvalidEmail, "Use a full address such as name@example.com."},
	{backup.ErrNotFound, "List available backups with 'calmind backup list'."},
	{models.ErrInvalid, "Check the values you entered."},
}

// UserMessage returns the error text plus a next-step hint for known failures.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := Format(err)
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return msg + "\n" + h.hint
		}
	}
	return msg
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", UserMessage(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
