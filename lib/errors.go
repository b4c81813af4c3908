package lib

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Auth errors
var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotAuthenticated     = errors.New("authentication credentials were not provided")
	ErrForbidden            = errors.New("forbidden")
)

const InvalidCredentialsMessage = "Login or password is incorrect. Try again"

// SQLSTATE codes the store layer cares about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgNoDataFound         = "P0002"
)

// pgErrorFields extracts SQLSTATE, constraint and column from either driver's error type.
func pgErrorFields(err error) (code, constraint, column string, ok bool) {
	var drvErr pgdriver.Error
	if errors.As(err, &drvErr) {
		return drvErr.Field('C'), drvErr.Field('n'), drvErr.Field('c'), true
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code, pgxErr.ConstraintName, pgxErr.ColumnName, true
	}
	return "", "", "", false
}

// MapPgError translates PostgreSQL errors into the package sentinels.
// Errors that are not PostgreSQL errors are returned unchanged.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	code, constraint, column, ok := pgErrorFields(err)
	if !ok {
		return err
	}
	switch code {
	case pgUniqueViolation:
		return ErrConflict
	case pgForeignKeyViolation, pgNoDataFound:
		return ErrNotFound
	case pgCheckViolation, pgNotNullViolation:
		field := column
		if field == "" {
			field = constraintField(constraint)
		}
		return NewValidationError(field, "is invalid")
	}
	return err
}

// constraintField guesses the column from constraint names like "reviews_rating_check".
func constraintField(constraint string) string {
	parts := strings.Split(constraint, "_")
	if len(parts) >= 3 {
		return parts[len(parts)-2]
	}
	return "non_field_errors"
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUniqueViolation(err error) bool {
	if errors.Is(err, ErrConflict) {
		return true
	}
	code, _, _, ok := pgErrorFields(err)
	return ok && code == pgUniqueViolation
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GetUserMessage returns a message that is safe to show to API clients.
func GetUserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err):
		return "Validation failed"
	case errors.Is(err, ErrAuthenticationFailed):
		return InvalidCredentialsMessage
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrInvalidToken):
		return "Authentication credentials were not provided or are invalid"
	case errors.Is(err, ErrForbidden):
		return "You do not have permission to perform this action"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrConflict):
		return "Resource already exists"
	default:
		return "An unexpected error occurred"
	}
}

// GetDetailForLogging returns the most specific description available for logs.
func GetDetailForLogging(err error) string {
	if err == nil {
		return ""
	}
	var drvErr pgdriver.Error
	if errors.As(err, &drvErr) {
		if detail := drvErr.Field('D'); detail != "" {
			return drvErr.Field('M') + ": " + detail
		}
		return drvErr.Field('M')
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		if pgxErr.Detail != "" {
			return pgxErr.Message + ": " + pgxErr.Detail
		}
		return pgxErr.Message
	}
	return err.Error()
}
