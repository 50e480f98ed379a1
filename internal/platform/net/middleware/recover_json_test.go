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

func TestRecoverJSON(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil catalog")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-p"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError || rr.Header().Get("X-Request-ID") != "rid-p" {
		t.Fatalf("code=%d header=%q", rr.Code, rr.Header().Get("X-Request-ID"))
	}
	var w pnet.Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &w); err != nil {
		t.Fatal(err)
	}
	if w.Code != perr.ErrorCodePanic || w.RequestID != "rid-p" || w.Error != "panic recovered" {
		t.Fatalf("wire = %+v", w)
	}
}

func TestRecoverJSON_PassThrough(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("code = %d", rr.Code)
	}
}
