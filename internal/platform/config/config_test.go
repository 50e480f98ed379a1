package config

import (
	"testing"
	"time"

	kit "marketbrowse/internal/platform/testkit"

	"github.com/google/go-cmp/cmp"
)

func TestPrefix(t *testing.T) {
	c := New().Prefix("SERVICE_").Prefix("PG_")
	if got := c.key("DBURL"); got != "SERVICE_PG_DBURL" {
		t.Fatalf("key = %q", got)
	}
}

func TestMust(t *testing.T) {
	c := New().Prefix("SERVICE_CLICKHOUSE_")
	t.Setenv("SERVICE_CLICKHOUSE_DBURL", " clickhouse://default@localhost:9000/marketbrowse ")
	t.Setenv("SERVICE_CLICKHOUSE_RELATIVE", "/just/a/path")

	if got := c.MustString("DBURL"); got != "clickhouse://default@localhost:9000/marketbrowse" {
		t.Fatalf("MustString = %q", got)
	}
	u := c.MustURL("DBURL")
	if u.Scheme != "clickhouse" || u.Host != "localhost:9000" {
		t.Fatalf("MustURL = %v", u)
	}

	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
	kit.MustPanic(t, func() { _ = c.MustURL("MISSING") })
	kit.MustPanic(t, func() { _ = c.MustURL("RELATIVE") })
}

func TestMay(t *testing.T) {
	c := New().Prefix("BROWSE_")
	t.Setenv("BROWSE_MARKET_API_UA", " marketbrowse-test ")
	t.Setenv("BROWSE_PAGE_SIZE", "24")
	t.Setenv("BROWSE_FETCH_CONCURRENCY", "eight")
	t.Setenv("BROWSE_EVENTS", "false")
	t.Setenv("BROWSE_AUTO_MIGRATE", "sometimes")
	t.Setenv("BROWSE_LOCK_TIMEOUT", "750ms")
	t.Setenv("BROWSE_FETCH_TIMEOUT", "soon")

	if got := c.MayString("MARKET_API_UA", "marketbrowse"); got != "marketbrowse-test" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("MARKET_API_URL", "http://localhost"); got != "http://localhost" {
		t.Fatalf("MayString default = %q", got)
	}

	if got := c.MayInt("PAGE_SIZE", 48); got != 24 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("FETCH_CONCURRENCY", 8); got != 8 {
		t.Fatalf("MayInt invalid = %d", got)
	}

	if c.MayBool("EVENTS", true) {
		t.Fatal("MayBool should read false")
	}
	if !c.MayBool("AUTO_MIGRATE", true) || !c.MayBool("WALLET_AUTH", true) {
		t.Fatal("MayBool should fall back")
	}

	if got := c.MayDuration("LOCK_TIMEOUT", 2*time.Second); got != 750*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("FETCH_TIMEOUT", 15*time.Second); got != 15*time.Second {
		t.Fatalf("MayDuration invalid = %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("BROWSE_")
	tests := []struct {
		name string
		raw  string
		def  []string
		want []string
	}{
		{"unset", "", []string{"super_rare"}, []string{"super_rare"}},
		{"trimmed", " super_rare , known_origin ", nil, []string{"super_rare", "known_origin"}},
		{"blanks dropped", "makers_place,,", nil, []string{"makers_place"}},
		{"only commas", " , ,", []string{"x"}, []string{"x"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("BROWSE_DISABLED_VENDORS", tc.raw)
			if diff := cmp.Diff(tc.want, c.MayCSV("DISABLED_VENDORS", tc.def)); diff != "" {
				t.Fatalf("MayCSV (-want +got):\n%s", diff)
			}
		})
	}
}
