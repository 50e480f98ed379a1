package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "marketbrowse/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type echoIn struct {
	Name string `json:"name" validate:"required"`
}

func newRouter() (Router, http.Handler) {
	mux := chi.NewRouter()
	return phttp.AdaptChi(mux), mux
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return m
}

func TestPostJSON(t *testing.T) {
	r, mux := newRouter()
	PostJSON(r, "/echo", func(_ *http.Request, in echoIn) (any, error) {
		return map[string]string{"hello": in.Name}, nil
	})

	tests := []struct {
		name string
		body string
		code int
	}{
		{"ok", `{"name":"ada"}`, http.StatusOK},
		{"missing field", `{}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)
			if rr.Code != tc.code {
				t.Fatalf("code=%d body=%s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestGet(t *testing.T) {
	r, mux := newRouter()
	Get(r, "/ok", func(*http.Request) (any, error) { return []int{1, 2}, nil })
	Get(r, "/created", func(*http.Request) (any, error) {
		return Response{Status: http.StatusCreated, Body: "x"}, nil
	})
	Get(r, "/boom", func(*http.Request) (any, error) { return nil, errors.New("boom") })

	cases := map[string]int{
		"/ok":      http.StatusOK,
		"/created": http.StatusCreated,
		"/boom":    http.StatusInternalServerError,
	}
	for path, code := range cases {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != code {
			t.Fatalf("%s code=%d want %d", path, rr.Code, code)
		}
		if _, ok := decode(t, rr)["data"]; !ok && code < 300 {
			t.Fatalf("%s missing data: %s", path, rr.Body.String())
		}
	}
}

func TestMountAPIV1(t *testing.T) {
	r, mux := newRouter()
	tagged := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-V1", "yes")
			next.ServeHTTP(w, req)
		})
	}
	MountAPIV1(r, []func(http.Handler) http.Handler{tagged}, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	if rr.Code != http.StatusOK || rr.Header().Get("X-V1") != "yes" {
		t.Fatalf("code=%d headers=%v", rr.Code, rr.Header())
	}
}
