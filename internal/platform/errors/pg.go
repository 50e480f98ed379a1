package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgClass is how one SQLSTATE surfaces to callers
type pgClass struct {
	code      ErrorCode
	retryable bool
}

var pgClasses = map[string]pgClass{
	"23505": {code: ErrorCodeDuplicateKey},                 // unique_violation
	"23503": {code: ErrorCodeInvalidArgument},              // foreign_key_violation
	"23502": {code: ErrorCodeValidation},                   // not_null_violation
	"23514": {code: ErrorCodeValidation},                   // check_violation
	"22001": {code: ErrorCodeInvalidArgument},              // string_data_right_truncation
	"22P02": {code: ErrorCodeInvalidArgument},              // invalid_text_representation
	"40001": {code: ErrorCodeUnavailable, retryable: true}, // serialization_failure
	"40P01": {code: ErrorCodeUnavailable, retryable: true}, // deadlock_detected
	"55P03": {code: ErrorCodeUnavailable, retryable: true}, // lock_not_available, also lock_timeout
	"25006": {code: ErrorCodeUnavailable},                  // read_only_sql_transaction
	"57P03": {code: ErrorCodeUnavailable},                  // cannot_connect_now
}

// driver text for failures that reach us without a PgError, eg on commit
var retryableText = []string{
	"commit unexpectedly resulted in rollback",
	"deadlock detected",
	"could not serialize access",
	"canceling statement due to lock timeout",
	"could not obtain lock on row",
}

// SQLState returns the SQLSTATE of a wrapped PgError, empty when there is none
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// FromPostgresf wraps a database error with the code its SQLSTATE maps to
// unknown states and non postgres errors become ErrorCodeDB, nil stays nil
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if c, ok := pgClasses[SQLState(err)]; ok {
		code = c.code
	}
	return Wrapf(err, code, format, a...)
}

// FromPostgres is FromPostgresf with a plain message
func FromPostgres(err error, msg string) error { return FromPostgresf(err, "%s", msg) }

// IsRetryable reports whether re-running the whole transaction may succeed
// local cancellation never is
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if state := SQLState(err); state != "" {
		return pgClasses[state].retryable
	}
	s := strings.ToLower(err.Error())
	for _, t := range retryableText {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

