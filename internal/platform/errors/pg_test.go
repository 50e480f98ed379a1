package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPostgresf(t *testing.T) {
	cases := map[string]ErrorCode{
		"23505": ErrorCodeDuplicateKey,
		"23503": ErrorCodeInvalidArgument,
		"23502": ErrorCodeValidation,
		"22P02": ErrorCodeInvalidArgument,
		"40001": ErrorCodeUnavailable,
		"55P03": ErrorCodeUnavailable,
		"57P03": ErrorCodeUnavailable,
		"XX000": ErrorCodeDB,
	}
	for state, want := range cases {
		err := FromPostgresf(fmt.Errorf("exec: %w", &pgconn.PgError{Code: state}), "lock session %s", "abc")
		if CodeOf(err) != want {
			t.Errorf("%s: code = %d, want %d", state, CodeOf(err), want)
		}
		if SQLState(err) != state {
			t.Errorf("%s: SQLState = %q", state, SQLState(err))
		}
	}

	if FromPostgres(nil, "x") != nil || FromPostgresf(nil, "x") != nil {
		t.Fatal("nil should stay nil")
	}
	if err := FromPostgres(stderrs.New("conn reset"), "get session"); !IsCode(err, ErrorCodeDB) || err.Error() != "get session: conn reset" {
		t.Fatalf("plain error = %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock wrapped", FromPostgres(&pgconn.PgError{Code: "40P01"}, "put"), true},
		{"lock timeout", fmt.Errorf("tx: %w", &pgconn.PgError{Code: "55P03"}), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"commit text", stderrs.New("commit unexpectedly resulted in rollback"), true},
		{"plain", stderrs.New("boom"), false},
		{"canceled", fmt.Errorf("wait: %w", context.Canceled), false},
		{"deadline", context.DeadlineExceeded, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Fatalf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
