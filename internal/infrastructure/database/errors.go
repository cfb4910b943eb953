package database

import (
	"context"
	"errors"
	"strings"

	"healthsystem/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNoRows           = apperror.NotFound("Record not found")
	ErrBrokerClosed     = apperror.Database("database connection already released", nil)
	ErrNoScope          = apperror.Database("no database scope in request context", nil)
	ErrInvalidProcedure = apperror.Database("invalid stored procedure name", nil)
)

// PostgreSQL error codes the broker classifies.
const (
	codeUniqueViolation       = "23505"
	codeInsufficientPrivilege = "42501"
	codeQueryCanceled         = "57014"
	codeRaiseException        = "P0001"
)

// mapError converts driver errors into the application taxonomy. Errors that
// already carry a kind pass through untouched.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.Database("statement timeout exceeded", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			// The constraint name stays in the cause for logs only.
			return apperror.Conflict("Duplicate record", err)
		case codeInsufficientPrivilege:
			return apperror.Wrap(apperror.KindAuthorization, "Operation not permitted for this role", err)
		case codeQueryCanceled:
			return apperror.Database("statement timeout exceeded", err)
		case codeRaiseException:
			// Raised by our own procedures with a client-facing message.
			return apperror.Wrap(apperror.KindValidation, pgErr.Message, err)
		}
	}

	return apperror.Database(op+" failed", err)
}

// IsUniqueViolation reports whether err is a unique violation on a constraint
// whose name contains constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation && strings.Contains(pgErr.ConstraintName, constraint)
	}
	return false
}
