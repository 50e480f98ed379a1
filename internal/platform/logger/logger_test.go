package logger

import (
	"bytes"
	"context"
	"testing"

	kit "marketbrowse/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"panic":   zerolog.PanicLevel,
		"":        zerolog.DebugLevel,
		"chatty":  zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

// Init is process-wide so every assertion on the root writer lives here
func TestInit_RequestScopedFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "info",
		Format:       "console",
		Service:      "marketbrowse-test",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "dev"},
	})

	Named("browse").Info().Msg("dispatch started")

	ctx := WithWallet(WithRequest(context.Background(), "req-7"), "0xabc")
	C(ctx).Info().Msg("route resolved")

	// empty values leave ctx untouched
	if WithRequest(context.Background(), "") != context.Background() {
		t.Fatal("empty request id should not wrap ctx")
	}
	C(context.Background()).Debug().Msg("below level")

	out := buf.String()
	kit.MustContain(t, out, "dispatch started")
	kit.MustContain(t, out, "browse")
	kit.MustContain(t, out, "route resolved")
	kit.MustContain(t, out, "req-7")
	kit.MustContain(t, out, "0xabc")
	kit.MustContain(t, out, "marketbrowse-test")
	kit.MustContain(t, out, "dev")
	kit.MustNotContain(t, out, "below level")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_COMPONENT", "cli")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Component != "cli" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if opt.Service != "marketbrowse" {
		t.Fatalf("default service = %q", opt.Service)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("caller/sample = %+v", opt)
	}
}
