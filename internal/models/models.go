package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/calmind/internal/constants"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid entity")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func validateDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(constants.DateFormat, value); err != nil {
		return invalidf("%s must be YYYY-MM-DD, got %q", field, value)
	}
	return nil
}

// ParseTimestamp parses a writer-assigned timestamp. Unparseable values
// yield the zero time.
func ParseTimestamp(ts string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatTimestamp renders t in the canonical UTC timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}
