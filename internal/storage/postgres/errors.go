package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	pq "github.com/lib/pq"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrSchemaMissing = errors.New("remote schema missing")
	ErrUnauthorized  = errors.New("remote rejected credentials")
	ErrUnreachable   = errors.New("remote unreachable")
)

// Classify maps a driver error onto one of the package sentinels. Errors
// already classified are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSchemaMissing),
		errors.Is(err, ErrUnauthorized), errors.Is(err, ErrUnreachable):
		return err
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, ErrEmbeddedCredentials), errors.Is(err, ErrInvalidConnectionString):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "42P01", "3F000": // undefined_table, invalid_schema_name
			return fmt.Errorf("%w: %s", ErrSchemaMissing, pqErr.Message)
		case "28000", "28P01": // invalid_authorization_specification, invalid_password
			return fmt.Errorf("%w: %s", ErrUnauthorized, pqErr.Message)
		}
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
