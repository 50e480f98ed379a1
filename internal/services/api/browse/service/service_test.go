package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"marketbrowse/internal/adapters/marketapi"
	"marketbrowse/internal/core/browse"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/locations"
	"marketbrowse/internal/core/query"
	perr "marketbrowse/internal/platform/errors"
	"marketbrowse/internal/platform/testkit"
	"marketbrowse/internal/services/api/browse/domain"
	"marketbrowse/internal/services/api/browse/repo"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	sid  = "9b2f5c1e-4d0a-4c55-9f4e-2b1a7c3d8e6f"
	land = "0xf87e31492faf9a91b02ee0deaad50d51d56d5d4d"
)

// fakeFetcher answers call n with pages[n], blocking on gates[n] when set
type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	reqs  []query.Request
	pages map[int]marketapi.Page
	errs  map[int]error
	gates map[int]chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, r query.Request) (marketapi.Page, error) {
	f.mu.Lock()
	n := f.calls
	f.calls++
	f.reqs = append(f.reqs, r)
	gate := f.gates[n]
	page, err := f.pages[n], f.errs[n]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return marketapi.Page{}, ctx.Err()
		}
	}
	return page, err
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// waitCalls blocks until n fetches have started
func (f *fakeFetcher) waitCalls(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for f.count() < n {
		if time.Now().After(deadline) {
			t.Fatalf("fetcher saw %d calls, want %d", f.count(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

type fakeNav struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (n *fakeNav) Replace(_ context.Context, pathname, query string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, pathname+"?"+query)
	return n.err
}

type fakeSink struct {
	mu     sync.Mutex
	events []domain.Event
}

func (s *fakeSink) Record(_ context.Context, events ...domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return nil
}

func (s *fakeSink) kinds() []domain.EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.EventKind, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Kind)
	}
	return out
}

type fixture struct {
	svc   *Svc
	store *repo.Memory
	fetch *fakeFetcher
	nav   *fakeNav
	sink  *fakeSink
}

func newFixture(t *testing.T, cat *catalog.Catalog) *fixture {
	t.Helper()
	f := &fixture{
		store: repo.NewMemory(),
		fetch: &fakeFetcher{
			pages: map[int]marketapi.Page{},
			errs:  map[int]error{},
			gates: map[int]chan struct{}{},
		},
		nav:  &fakeNav{},
		sink: &fakeSink{},
	}
	clock := time.Unix(1_760_000_000, 0)
	f.svc = New(f.store, f.store, Options{
		Catalog:   cat,
		Fetcher:   f.fetch,
		Navigator: f.nav,
		Events:    f.sink,
		Now:       func() time.Time { return clock },
		NewID:     func() string { return sid },
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := f.svc.Drain(ctx); err != nil {
			t.Errorf("drain: %v", err)
		}
	})
	return f
}

func page(total int, assets ...marketapi.Asset) marketapi.Page {
	return marketapi.Page{Assets: assets, Total: total}
}

func asset(id string) marketapi.Asset {
	return marketapi.Asset{ID: id, ContractAddress: "0x1", TokenID: id, ItemID: id, Name: "asset " + id}
}

func TestNew_RequiresDeps(t *testing.T) {
	m := repo.NewMemory()
	testkit.MustPanic(t, func() { New(nil, m, Options{Fetcher: &fakeFetcher{}}) })
	testkit.MustPanic(t, func() { New(m, nil, Options{Fetcher: &fakeFetcher{}}) })
	testkit.MustPanic(t, func() { New(m, m, Options{}) })
}

func TestRoute_FetchesFromLocation(t *testing.T) {
	f := newFixture(t, nil)
	f.fetch.pages[0] = page(2, asset("a"), asset("b"))

	out, err := f.svc.Route(context.Background(), domain.RouteInput{
		Pathname: "/browse",
		Query:    "section=wearables_hat&page=2&rarities=rare",
		Wait:     true,
	})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if out.Session != sid || out.URL != "" {
		t.Fatalf("route should mint a session and never write the URL: %+v", out)
	}
	o := out.Options
	if o.Vendor != catalog.Decentraland || o.ResultType != catalog.ResultItem || o.Page != 2 || o.View != browse.ViewMarket {
		t.Fatalf("options = %+v", o)
	}
	if out.Request == nil || out.Request.Pipeline != query.PipelineItems {
		t.Fatalf("items on the home vendor go through the items pipeline: %+v", out.Request)
	}
	if out.Results == nil || len(out.Results.IDs) != 2 || out.Applied == nil || !*out.Applied {
		t.Fatalf("results = %+v applied=%v", out.Results, out.Applied)
	}
	if got := out.Assets[0]; got.DetailURL != locations.Item("0x1", "a") || got.BuyURL != locations.Buy(catalog.ResultItem, "0x1", "a") {
		t.Fatalf("asset links = %+v", got)
	}
	if len(f.nav.calls) != 0 {
		t.Fatalf("route navigated: %v", f.nav.calls)
	}
}

func TestRoute_AccountAddress(t *testing.T) {
	f := newFixture(t, nil)

	out, err := f.svc.Route(context.Background(), domain.RouteInput{
		Pathname: "/account",
		Wallet:   " 0xABCDEF ",
		Wait:     true,
	})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if out.Options.Address != "0xabcdef" || out.Options.View != browse.ViewAccount {
		t.Fatalf("account route = %+v", out.Options)
	}
	if out.Options.OnSale() || out.Options.SortBy != browse.SortNewest {
		t.Fatalf("account defaults not applied: %+v", out.Options)
	}
	if out.Request.Tokens == nil || out.Request.Tokens.Params.Address != "0xabcdef" {
		t.Fatalf("request address = %+v", out.Request)
	}
}

func TestRoute_URLFiltersWin(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		query     string
		search    string
		network   catalog.Network
		contracts []string
	}{
		{"all section on items", "/browse", "section=all&search=dragon&network=MATIC", "dragon", catalog.NetworkMatic, nil},
		{"land section on tokens", "/lands", "search=genesis&network=ETHEREUM&contracts=" + land, "genesis", catalog.NetworkEthereum, []string{land}},
		{"search normalized at ingress", "/browse", "section=all&search=%20dragon%20%20fire%20", "dragon fire", "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			out, err := f.svc.Route(context.Background(), domain.RouteInput{Pathname: tc.path, Query: tc.query})
			if err != nil {
				t.Fatalf("Route: %v", err)
			}
			o := out.Options
			if o.Query() != tc.search || o.Network != tc.network || strings.Join(o.Contracts, ",") != strings.Join(tc.contracts, ",") {
				t.Fatalf("route dropped URL filters: search=%q network=%q contracts=%v", o.Query(), o.Network, o.Contracts)
			}
			switch r := out.Request; {
			case r.Items != nil:
				if r.Items.Filters.Search != tc.search || r.Items.Filters.Network != tc.network {
					t.Fatalf("items filters = %+v", r.Items.Filters)
				}
			case r.Tokens != nil:
				if r.Tokens.Params.Search != tc.search || r.Tokens.Filters.Network != tc.network {
					t.Fatalf("tokens request = %+v", r.Tokens)
				}
			default:
				t.Fatalf("no request built: %+v", out)
			}
		})
	}
}

func TestBrowse_RejectsUnknownChange(t *testing.T) {
	tests := []struct {
		name   string
		change browse.Options
		field  string
	}{
		{"vendor", browse.Options{Vendor: "bogus"}, "vendor"},
		{"section", browse.Options{Section: "wearables_nope"}, "section"},
		{"rarity", browse.Options{WearableRarities: []catalog.Rarity{"ultra"}}, "wearableRarities"},
		{"network", browse.Options{Network: "SOLANA"}, "network"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			_, err := f.svc.Browse(context.Background(), domain.BrowseInput{Pathname: "/lands", Change: tc.change})
			if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) || perr.WireFrom(err).Field != tc.field {
				t.Fatalf("want invalid %s, got %v", tc.field, err)
			}
			if f.fetch.count() != 0 || len(f.nav.calls) != 0 {
				t.Fatalf("rejected change still fetched %d times, navigated %v", f.fetch.count(), f.nav.calls)
			}
			if f.store.Len() != 0 {
				t.Fatalf("rejected change stored a snapshot")
			}
		})
	}
}

func TestBrowse_NormalizesChangeSearch(t *testing.T) {
	f := newFixture(t, nil)
	out, err := f.svc.Browse(context.Background(), domain.BrowseInput{
		Pathname: "/collectibles",
		Change:   browse.Options{Section: catalog.SectionWearablesHat, Search: browse.String("  red   ｈａｔ ")},
	})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if out.Options.Query() != "red hat" {
		t.Fatalf("search = %q", out.Options.Query())
	}
	testkit.MustContain(t, out.URL, "search=red+hat")
}

func TestTriggers_DisabledVendor(t *testing.T) {
	cat := catalog.Default().WithDisabled(string(catalog.SuperRare))
	f := newFixture(t, cat)
	ctx := context.Background()

	_, err := f.svc.Route(ctx, domain.RouteInput{Pathname: "/collectibles", Query: "vendor=" + string(catalog.SuperRare)})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("Route on a disabled vendor = %v", err)
	}
	_, err = f.svc.Browse(ctx, domain.BrowseInput{Pathname: "/collectibles", Change: browse.Options{Vendor: catalog.SuperRare}})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) || perr.WireFrom(err).Field != "vendor" {
		t.Fatalf("Browse on a disabled vendor = %v", err)
	}
	if f.fetch.count() != 0 {
		t.Fatalf("disabled vendor fetched %d times", f.fetch.count())
	}
	if _, err := f.svc.Route(ctx, domain.RouteInput{Pathname: "/collectibles", Query: "vendor=" + string(catalog.KnownOrigin)}); err != nil {
		t.Fatalf("enabled partner rejected: %v", err)
	}
}

func TestBrowse_LoadMoreAppendsAndNavigates(t *testing.T) {
	f := newFixture(t, nil)
	f.fetch.pages[0] = page(4, asset("a"), asset("b"))
	f.fetch.pages[1] = page(4, asset("c"), asset("d"))
	ctx := context.Background()

	first, err := f.svc.Browse(ctx, domain.BrowseInput{
		Pathname: "/collectibles",
		Change: browse.Options{
			Section:          catalog.SectionWearablesHat,
			WearableRarities: []catalog.Rarity{catalog.RarityRare},
		},
		Wait: true,
	})
	if err != nil {
		t.Fatalf("first Browse: %v", err)
	}
	if first.Options.Page != 1 || first.Options.View != browse.ViewMarket {
		t.Fatalf("first = %+v", first.Options)
	}
	view, err := f.svc.Session(ctx, domain.SessionQuery{Session: sid})
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if view.Loaded != 2 || !view.HasMore {
		t.Fatalf("after one page want loaded 2 with more, got %+v", view)
	}

	second, err := f.svc.Browse(ctx, domain.BrowseInput{
		Session:  sid,
		Pathname: "/collectibles",
		Change:   browse.Options{Page: 2},
		Wait:     true,
	})
	if err != nil {
		t.Fatalf("second Browse: %v", err)
	}
	if second.Options.View != browse.ViewLoadMore || len(second.Options.WearableRarities) != 1 {
		t.Fatalf("page advance should load more and keep filters: %+v", second.Options)
	}
	if !second.Request.Window.IsAppend || second.Request.Window.Skip != 24 {
		t.Fatalf("window = %+v", second.Request.Window)
	}
	if got := strings.Join(second.Results.IDs, ","); got != "a,b,c,d" {
		t.Fatalf("ids = %s", got)
	}
	testkit.MustContain(t, second.URL, "/collectibles?")
	testkit.MustContain(t, second.URL, "page=2")
	testkit.MustContain(t, second.URL, "rarities=rare")
	if len(f.nav.calls) != 2 || f.nav.calls[1] != second.URL {
		t.Fatalf("navigator calls = %v want last %q", f.nav.calls, second.URL)
	}

	view, _ = f.svc.Session(ctx, domain.SessionQuery{Session: sid})
	if view.Loaded != 4 || view.HasMore {
		t.Fatalf("after the last page want loaded 4 without more, got %+v", view)
	}
}

func TestBrowse_VendorSwitchResets(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Browse(ctx, domain.BrowseInput{
		Pathname: "/collectibles",
		Change: browse.Options{
			Section:          catalog.SectionWearablesHat,
			Page:             3,
			SortBy:           browse.SortCheapest,
			OnlyOnSale:       browse.Bool(false),
			WearableRarities: []catalog.Rarity{catalog.RarityRare},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := f.svc.Browse(ctx, domain.BrowseInput{
		Session:  sid,
		Pathname: "/collectibles",
		Change:   browse.Options{Vendor: catalog.KnownOrigin},
	})
	if err != nil {
		t.Fatal(err)
	}
	o := out.Options
	if o.Vendor != catalog.KnownOrigin || o.Page != 1 || o.WearableRarities != nil {
		t.Fatalf("vendor switch should reset page and filters: %+v", o)
	}
	if o.SortBy != browse.SortCheapest || o.OnSale() {
		t.Fatalf("vendor switch should keep sortBy and onlyOnSale: %+v", o)
	}
	if out.Request.Tokens == nil || out.Request.Tokens.Vendor != catalog.KnownOrigin {
		t.Fatalf("request = %+v", out.Request)
	}
}

func TestBrowse_MapSkipsFetch(t *testing.T) {
	f := newFixture(t, nil)

	out, err := f.svc.Browse(context.Background(), domain.BrowseInput{
		Pathname: "/lands",
		Change:   browse.Options{IsMap: browse.Bool(true), IsFullscreen: browse.Bool(true)},
		Wait:     true,
	})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if out.Request != nil || out.Timestamp != 0 || out.Results != nil {
		t.Fatalf("map view should not fetch: %+v", out)
	}
	if f.fetch.count() != 0 {
		t.Fatalf("fetcher called %d times", f.fetch.count())
	}
	testkit.MustContain(t, out.URL, "isMap=true&isFullscreen=true")
}

func TestBrowse_NavigatorError(t *testing.T) {
	f := newFixture(t, nil)
	f.nav.err = errors.New("history is gone")

	_, err := f.svc.Browse(context.Background(), domain.BrowseInput{Pathname: "/collectibles"})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestStaleResultIsDiscarded(t *testing.T) {
	f := newFixture(t, nil)
	gate := make(chan struct{})
	f.fetch.gates[0] = gate
	f.fetch.pages[0] = page(1, asset("old"))
	f.fetch.pages[1] = page(1, asset("new"))
	ctx := context.Background()

	slow, err := f.svc.Route(ctx, domain.RouteInput{Session: sid, Pathname: "/collectibles"})
	if err != nil {
		t.Fatal(err)
	}
	f.fetch.waitCalls(t, 1)
	fast, err := f.svc.Route(ctx, domain.RouteInput{Session: sid, Pathname: "/collectibles", Wait: true})
	if err != nil {
		t.Fatal(err)
	}
	if fast.Timestamp <= slow.Timestamp {
		t.Fatalf("timestamps must increase: %d then %d", slow.Timestamp, fast.Timestamp)
	}

	close(gate)
	dctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := f.svc.Drain(dctx); err != nil {
		t.Fatal(err)
	}

	view, err := f.svc.Session(ctx, domain.SessionQuery{Session: sid})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(view.Results.IDs, ",") != "new" || view.Results.LastTimestamp != fast.Timestamp {
		t.Fatalf("older result overwrote newer state: %+v", view.Results)
	}
	kinds := f.sink.kinds()
	if kinds[len(kinds)-1] != domain.EventStale {
		t.Fatalf("events = %v", kinds)
	}
}

func TestWait_FetchErrorSurfaces(t *testing.T) {
	f := newFixture(t, nil)
	f.fetch.errs[0] = perr.Unavailablef("upstream down")

	_, err := f.svc.Route(context.Background(), domain.RouteInput{Pathname: "/collectibles", Wait: true})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
	kinds := f.sink.kinds()
	if len(kinds) != 2 || kinds[0] != domain.EventRoute || kinds[1] != domain.EventFailed {
		t.Fatalf("events = %v", kinds)
	}
}

func TestSession_Errors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		id   string
		code perr.ErrorCode
	}{
		{"empty", "", perr.ErrorCodeInvalidArgument},
		{"not a uuid", "abc", perr.ErrorCodeInvalidArgument},
		{"unknown", sid, perr.ErrorCodeNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Session(ctx, domain.SessionQuery{Session: tc.id})
			if !perr.IsCode(err, tc.code) {
				t.Fatalf("want %v, got %v", tc.code, err)
			}
		})
	}
	if _, err := f.svc.Route(ctx, domain.RouteInput{Session: "nope", Pathname: "/"}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("Route with a bad session = %v", err)
	}
}

func TestCatalogQueries(t *testing.T) {
	cat := catalog.Default().WithDisabled(string(catalog.SuperRare))
	f := newFixture(t, cat)
	ctx := context.Background()

	vs, err := f.svc.Vendors(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if vs.Default != catalog.Decentraland {
		t.Fatalf("default = %q", vs.Default)
	}
	for _, v := range vs.Vendors {
		if v.Vendor == catalog.SuperRare {
			t.Fatalf("disabled vendor listed: %+v", vs.Vendors)
		}
		if v.OriginURL == "" || v.MaxQuerySize < 1 {
			t.Fatalf("vendor info incomplete: %+v", v)
		}
	}

	if _, err := f.svc.Sections(ctx, domain.SectionsQuery{Vendor: string(catalog.SuperRare)}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("sections of a disabled vendor = %v", err)
	}
	sec, err := f.svc.Sections(ctx, domain.SectionsQuery{})
	if err != nil || sec.Vendor != catalog.Decentraland || len(sec.Sections) == 0 {
		t.Fatalf("home sections = %+v, %v", sec, err)
	}

	plan, err := f.svc.Plan(ctx, domain.PlanQuery{Page: 3, View: string(browse.ViewLoadMore)})
	if err != nil {
		t.Fatal(err)
	}
	if plan.Window.Skip != 48 || plan.Window.First != 24 || !plan.Window.IsAppend {
		t.Fatalf("plan = %+v", plan)
	}
	full, _ := f.svc.Plan(ctx, domain.PlanQuery{Page: 3})
	if full.Window.Skip != 0 || full.Window.First != 72 || full.View != browse.ViewMarket {
		t.Fatalf("market plan should refetch from the start: %+v", full)
	}
	if _, err := f.svc.Plan(ctx, domain.PlanQuery{View: "grid"}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("bad view = %v", err)
	}
}
