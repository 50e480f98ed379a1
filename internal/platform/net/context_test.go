package net_test

import (
	"context"
	"net/http"
	"testing"

	perr "marketbrowse/internal/platform/errors"
	pnet "marketbrowse/internal/platform/net"
)

func TestContext_RequestAndWallet(t *testing.T) {
	base := context.Background()
	if pnet.WithRequest(base, "") != base || pnet.WithWallet(base, "") != base {
		t.Fatal("empty values should leave ctx untouched")
	}
	if pnet.RequestID(base) != "" || pnet.Wallet(base) != "" {
		t.Fatal("bare ctx should carry nothing")
	}

	ctx := pnet.WithWallet(pnet.WithRequest(base, "req-9"), "0xabc")
	if got := pnet.RequestID(ctx); got != "req-9" {
		t.Fatalf("RequestID = %q", got)
	}
	if got := pnet.Wallet(ctx); got != "0xabc" {
		t.Fatalf("Wallet = %q", got)
	}
}

func TestProblem(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
	}{
		{"nil is ok", nil, http.StatusOK, 0},
		{"unauthorized", perr.Unauthorizedf("invalid bearer token"), http.StatusUnauthorized, perr.ErrorCodeUnauthorized},
		{"invalid argument", perr.InvalidArgf("bad page"), http.StatusUnprocessableEntity, perr.ErrorCodeInvalidArgument},
		{"validation", perr.WithField(perr.New(perr.ErrorCodeValidation, "view is invalid"), "view"), http.StatusBadRequest, perr.ErrorCodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, w := pnet.Problem(tc.err, "rid")
			if status != tc.status || w.StatusCode != tc.status || w.Code != tc.code || w.RequestID != "rid" {
				t.Fatalf("got %d %+v", status, w)
			}
			if w.Field != perr.WireFrom(tc.err).Field {
				t.Fatalf("field = %q", w.Field)
			}
			if w.Status != http.StatusText(tc.status) {
				t.Fatalf("status text = %q", w.Status)
			}
		})
	}
}
