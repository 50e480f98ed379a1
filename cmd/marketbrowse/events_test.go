package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	perr "marketbrowse/internal/platform/errors"
	"marketbrowse/internal/platform/testkit"
	brepo "marketbrowse/internal/services/api/browse/repo"
)

type fakeSummary struct {
	since time.Time
	out   []brepo.EventCount
}

func (f *fakeSummary) Summary(_ context.Context, since time.Time) ([]brepo.EventCount, error) {
	f.since = since
	return f.out, nil
}

func TestEvents(t *testing.T) {
	testkit.Serial(t)

	fake := &fakeSummary{out: []brepo.EventCount{{Vendor: "decentraland", Kind: "applied", Events: 2, Items: 48}}}
	var gotDSN string
	closed := false
	testkit.Swap(t, &openEvents, func(_ context.Context, dsn string) (summarizer, func(), error) {
		gotDSN = dsn
		return fake, func() { closed = true }, nil
	})

	out, err := run(t, "events", "--dsn", "clickhouse://ch:9000/market", "--since", "2h")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	var got []brepo.EventCount
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if diff := cmp.Diff(fake.out, got); diff != "" {
		t.Fatalf("summary (-want +got):\n%s", diff)
	}
	if gotDSN != "clickhouse://ch:9000/market" || !closed {
		t.Fatalf("dsn=%q closed=%v", gotDSN, closed)
	}
	if d := time.Since(fake.since); d < 2*time.Hour || d > 2*time.Hour+time.Minute {
		t.Fatalf("since window = %v", d)
	}
}

func TestEvents_BadFlags(t *testing.T) {
	t.Setenv("SERVICE_CLICKHOUSE_DBURL", "")
	for _, args := range [][]string{
		{"events"},
		{"events", "--dsn", "clickhouse://x", "--since", "0s"},
	} {
		if _, err := run(t, args...); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("%v: err = %v", args, err)
		}
	}
}
