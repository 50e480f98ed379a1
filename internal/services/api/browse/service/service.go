// Package service contains browse workflows
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"marketbrowse/internal/adapters/marketapi"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/locations"
	"marketbrowse/internal/core/paging"
	"marketbrowse/internal/core/query"
	"marketbrowse/internal/core/urlcodec"
	"marketbrowse/internal/modkit/repokit"
	perr "marketbrowse/internal/platform/errors"
	"marketbrowse/internal/platform/logger"
	"marketbrowse/internal/services/api/browse/domain"
	"marketbrowse/internal/services/api/browse/repo"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Fetcher runs one planned request against the market API
type Fetcher interface {
	Fetch(ctx context.Context, r query.Request) (marketapi.Page, error)
}

// Options control service behavior
type Options struct {
	// Catalog defaults to the embedded one
	Catalog *catalog.Catalog

	// Planner defaults to paging.Default
	Planner paging.Planner

	// Fetcher is required
	Fetcher Fetcher

	// Navigator is optional, it is told about every URL an explicit browse writes
	Navigator domain.Navigator

	// Events is optional
	Events domain.EventSink

	// FetchTimeout bounds one detached fetch, default 15s
	FetchTimeout time.Duration

	// Concurrency caps in flight fetches, default 8
	Concurrency int

	// seams for tests
	Now   func() time.Time
	NewID func() string
}

// Svc implements the service port
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	cat     *catalog.Catalog
	planner paging.Planner
	codec   *urlcodec.Codec
	builder *query.Builder
	links   *locations.Builder

	fetcher Fetcher
	nav     domain.Navigator
	events  domain.EventSink
	timeout time.Duration

	sem *semaphore.Weighted
	wg  sync.WaitGroup

	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("browse.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("browse.Service requires a non nil Repo binder")
	}
	if opt.Fetcher == nil {
		panic("browse.Service requires a non nil Fetcher")
	}

	cat := opt.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	planner := opt.Planner
	if planner == (paging.Planner{}) {
		planner = paging.Default
	}
	timeout := opt.FetchTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	conc := opt.Concurrency
	if conc <= 0 {
		conc = 8
	}
	now := opt.Now
	if now == nil {
		now = time.Now
	}
	newID := opt.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	codec := urlcodec.New(cat)
	return &Svc{
		Repo:    binder.Bind(db),
		binder:  binder,
		db:      db,
		cat:     cat,
		planner: planner,
		codec:   codec,
		builder: query.NewBuilder(cat).WithPlanner(planner),
		links:   locations.New(codec),
		fetcher: opt.Fetcher,
		nav:     opt.Navigator,
		events:  opt.Events,
		timeout: timeout,
		sem:     semaphore.NewWeighted(int64(conc)),
		log:     logger.Named("browse"),
		now:     now,
		newID:   newID,
	}
}

// Drain waits for in flight fetches or ctx, whichever ends first
func (s *Svc) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return perr.Unavailablef("browse drain: %v", ctx.Err())
	}
}

// sessionID validates a caller supplied id or mints a new one
func (s *Svc) sessionID(id string) (string, error) {
	if id == "" {
		return s.newID(), nil
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return "", perr.InvalidArgf("session must be a uuid")
	}
	return u.String(), nil
}

// stamp returns a fetch timestamp strictly after prev
func (s *Svc) stamp(prev int64) int64 {
	ts := s.now().UnixNano()
	if ts <= prev {
		ts = prev + 1
	}
	return ts
}

func (s *Svc) record(ctx context.Context, events ...domain.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, events...); err != nil {
		s.log.Warn().Err(err).Int("events", len(events)).Msg("browse events dropped")
	}
}
