package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestOpen_BackendErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"clickhouse empty url", Config{CH: CHConfig{Enabled: true, Role: "api"}}},
		{"postgres bad url", Config{PG: PGConfig{Enabled: true, URL: "://bad", MaxConns: 1}}},
		{"postgres fails before clickhouse", Config{
			PG: PGConfig{Enabled: true, URL: "://bad"},
			CH: CHConfig{Enabled: true, URL: "clickhouse://local"},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s, err := Open(context.Background(), tc.cfg)
			if err == nil || s != nil {
				t.Fatalf("Open = %#v, %v want error", s, err)
			}
		})
	}
}

func TestOpen_NoBackends(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s, err := Open(context.Background(), Config{}, WithLogger(zerolog.New(&buf)))
	if err != nil {
		t.Fatal(err)
	}
	if s.PG != nil || s.CH != nil {
		t.Fatalf("disabled backends should stay nil: %#v", s)
	}
	s.Log.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("WithLogger not applied, got %q", buf.String())
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close on empty store: %v", err)
	}
}

// pingTx satisfies TxRunner and optionally Pinger
type pingTx struct {
	TxRunner
	err error
}

func (p pingTx) Ping(context.Context) error { return p.err }

type plainTx struct{ TxRunner }

func TestGuard(t *testing.T) {
	t.Parallel()

	var nilStore *Store
	if err := nilStore.Guard(context.Background()); err == nil {
		t.Fatal("nil store should fail")
	}

	tests := []struct {
		name   string
		store  *Store
		prefix string
	}{
		{"no seams", &Store{}, ""},
		{"pg without ping", &Store{PG: plainTx{}}, ""},
		{"pg ping ok", &Store{PG: pingTx{}}, ""},
		{"pg ping fails", &Store{PG: pingTx{err: errors.New("boom")}}, "pg: "},
		{"ch ping fails", &Store{CH: newCHAdapter(&fakeCH{err: errors.New("down")})}, "ch: "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.store.Guard(context.Background())
			if tc.prefix == "" {
				if err != nil {
					t.Fatalf("Guard = %v", err)
				}
				return
			}
			if err == nil || !strings.HasPrefix(err.Error(), tc.prefix) {
				t.Fatalf("Guard = %v want prefix %q", err, tc.prefix)
			}
		})
	}
}

func TestClose_ClosesClickhouse(t *testing.T) {
	t.Parallel()

	f := &fakeCH{}
	s := &Store{CH: newCHAdapter(f)}
	if err := s.Close(context.Background()); err != nil || !f.closed {
		t.Fatalf("Close err=%v closed=%v", err, f.closed)
	}
}
