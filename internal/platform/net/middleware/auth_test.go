package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "marketbrowse/internal/platform/errors"
	pnet "marketbrowse/internal/platform/net"
	"marketbrowse/internal/platform/net/middleware"
)

type fakeAuthPort struct {
	wallet string
	err    error
}

func (f fakeAuthPort) Parse(*http.Request) (string, error) { return f.wallet, f.err }

func TestAuth(t *testing.T) {
	cases := []struct {
		name   string
		port   middleware.AuthPort
		code   int
		wallet string
	}{
		{"nil port passes through", nil, http.StatusOK, ""},
		{"resolved wallet on context", fakeAuthPort{wallet: "0xabc"}, http.StatusOK, "0xabc"},
		{"port error is mapped", fakeAuthPort{err: perr.Unauthorizedf("invalid bearer token")}, http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				seen = pnet.Wallet(r.Context())
			})

			rr := httptest.NewRecorder()
			middleware.Auth(tc.port)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			if rr.Code != tc.code || seen != tc.wallet {
				t.Fatalf("code=%d wallet=%q, want %d %q", rr.Code, seen, tc.code, tc.wallet)
			}
			if called != (tc.code == http.StatusOK) {
				t.Fatalf("next called = %v", called)
			}
			if tc.code != http.StatusOK {
				var w pnet.Envelope
				if err := json.Unmarshal(rr.Body.Bytes(), &w); err != nil || w.Code != perr.ErrorCodeUnauthorized {
					t.Fatalf("body %q err %v", rr.Body.String(), err)
				}
			}
		})
	}
}
