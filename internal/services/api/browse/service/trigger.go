package service

import (
	"context"
	"time"

	"marketbrowse/internal/adapters/marketapi"
	"marketbrowse/internal/core/browse"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/locations"
	"marketbrowse/internal/core/query"
	"marketbrowse/internal/core/results"
	"marketbrowse/internal/modkit/repokit"
	perr "marketbrowse/internal/platform/errors"
	"marketbrowse/internal/platform/logger"
	"marketbrowse/internal/services/api/browse/domain"
)

// Route resolves the location into options and fetches, the URL is left alone
func (s *Svc) Route(ctx context.Context, in domain.RouteInput) (domain.Outcome, error) {
	id, err := s.sessionID(in.Session)
	if err != nil {
		return domain.Outcome{}, err
	}

	decoded := s.codec.Sanitize(s.codec.Decode(in.Query))
	next := browse.Load(in.Pathname, decoded, in.View)
	next.Address = browse.ResolveAddress(in.Pathname, in.Wallet)
	if err := s.requireEnabled(next.Vendor); err != nil {
		return domain.Outcome{}, err
	}

	return s.issue(ctx, issue{
		id:      id,
		kind:    domain.EventRoute,
		options: next,
		wait:    in.Wait,
	})
}

// Browse applies a change on top of the session snapshot, fetches, then rewrites the query
// a session without a snapshot starts from the location
func (s *Svc) Browse(ctx context.Context, in domain.BrowseInput) (domain.Outcome, error) {
	id, err := s.sessionID(in.Session)
	if err != nil {
		return domain.Outcome{}, err
	}

	if err := s.codec.Check(in.Change); err != nil {
		return domain.Outcome{}, err
	}
	change := s.codec.Sanitize(in.Change)

	view := browse.ViewFor(in.Pathname)
	var previous browse.Options
	sess, err := s.Repo.Get(ctx, id)
	switch {
	case err == nil:
		previous = sess.Options
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		previous = browse.Load(in.Pathname, s.codec.Sanitize(s.codec.Decode(in.Query)), "")
	default:
		return domain.Outcome{}, err
	}

	next := browse.Resolve(previous, change, hintOf(in.View, view))
	next.Address = browse.ResolveAddress(in.Pathname, in.Wallet)
	if err := s.requireEnabled(next.Vendor); err != nil {
		return domain.Outcome{}, err
	}

	return s.issue(ctx, issue{
		id:       id,
		kind:     domain.EventBrowse,
		options:  next,
		pathname: in.Pathname,
		navigate: true,
		wait:     in.Wait,
	})
}

// requireEnabled rejects a vendor the catalog switched off
func (s *Svc) requireEnabled(v catalog.Vendor) error {
	if s.enabled(v) {
		return nil
	}
	return perr.WithField(perr.InvalidArgf("vendor %s is disabled", v), "vendor")
}

func hintOf(explicit, fromPath browse.View) browse.View {
	if explicit != "" {
		return explicit
	}
	return fromPath
}

type issue struct {
	id       string
	kind     domain.EventKind
	options  browse.Options
	pathname string
	navigate bool
	wait     bool
}

// issue stores the snapshot, dispatches the fetch and optionally navigates and waits
// a map view stores the snapshot only
func (s *Svc) issue(ctx context.Context, t issue) (domain.Outcome, error) {
	out := domain.Outcome{Session: t.id, Options: t.options}
	fetch := !t.options.Map()

	var req query.Request
	if fetch {
		req = s.builder.Build(t.options)
		out.Request = &req
	}

	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		sess, err := r.Lock(ctx, t.id)
		if err != nil {
			return err
		}
		sess.ID = t.id
		sess.Options = t.options
		if fetch {
			sess.Seq = s.stamp(sess.Seq)
			sess.Results = sess.Results.Begin(req.View())
			out.Timestamp = sess.Seq
		}
		sess.UpdatedAt = s.now().UTC()
		return r.Put(ctx, sess)
	})
	if err != nil {
		return domain.Outcome{}, err
	}
	s.record(ctx, eventOf(s.now(), t.kind, t.id, t.options, out.Timestamp, 0))

	var p *pending
	if fetch {
		p = s.dispatch(ctx, t.id, out.Timestamp, req, t.options)
	}

	if t.navigate {
		qs := s.codec.Encode(t.options)
		out.URL = withQuery(t.pathname, qs)
		if s.nav != nil {
			if err := s.nav.Replace(ctx, t.pathname, qs); err != nil {
				return out, perr.Wrapf(err, perr.ErrorCodeUnavailable, "navigate %s", t.pathname)
			}
		}
	}

	if p == nil || !t.wait {
		return out, nil
	}
	select {
	case <-p.done:
	case <-ctx.Done():
		return out, perr.Unavailablef("browse fetch still running: %v", ctx.Err())
	}
	if p.err != nil {
		return out, p.err
	}
	out.Results = &p.state
	out.Applied = &p.applied
	out.Assets = assetViews(query.PipelineFor(t.options), p.page)
	return out, nil
}

// pending is one detached fetch, fields are readable once done is closed
type pending struct {
	done    chan struct{}
	page    marketapi.Page
	state   results.State
	applied bool
	err     error
}

// dispatch fetches in the background and folds the result into the session
// the fetch outlives the trigger, a newer trigger never cancels it
func (s *Svc) dispatch(ctx context.Context, id string, ts int64, req query.Request, o browse.Options) *pending {
	p := &pending{done: make(chan struct{})}
	bg := context.WithoutCancel(ctx)
	log := logger.Named("browse.dispatch")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(p.done)

		// bg is never cancelled so Acquire only returns once a slot frees
		_ = s.sem.Acquire(bg, 1)
		defer s.sem.Release(1)

		fctx, cancel := context.WithTimeout(bg, s.timeout)
		defer cancel()

		view := req.View()
		p.page, p.err = s.fetcher.Fetch(fctx, req)
		if p.err != nil {
			log.Warn().Err(p.err).Str("session", id).Str("view", string(view)).Msg("fetch failed")
			s.record(bg, eventOf(s.now(), domain.EventFailed, id, o, ts, 0))
			return
		}

		res := results.Result{View: view, Timestamp: ts, IDs: p.page.IDs(), Total: p.page.Total}
		p.state, p.applied, p.err = s.apply(bg, id, res)
		if p.err != nil {
			log.Error().Err(p.err).Str("session", id).Msg("apply results failed")
			return
		}

		kind := domain.EventApplied
		if !p.applied {
			if ts >= p.state.LastTimestamp {
				return // view that never folds, atlas
			}
			kind = domain.EventStale
			log.Debug().
				Str("session", id).
				Int64("ts", ts).
				Int64("last", p.state.LastTimestamp).
				Msg("stale result dropped")
		}
		s.record(bg, eventOf(s.now(), kind, id, o, ts, p.page.Total))
	}()
	return p
}

// apply folds r into the stored results inside one transaction
func (s *Svc) apply(ctx context.Context, id string, r results.Result) (results.State, bool, error) {
	var (
		st results.State
		ok bool
	)
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		rp := s.binder.Bind(q)
		sess, err := rp.Lock(ctx, id)
		if err != nil {
			return err
		}
		st, ok = sess.Results.Apply(r)
		if !ok {
			return nil
		}
		sess.ID = id
		sess.Results = st
		sess.UpdatedAt = s.now().UTC()
		return rp.Put(ctx, sess)
	})
	return st, ok, err
}

func eventOf(at time.Time, kind domain.EventKind, id string, o browse.Options, ts int64, count int) domain.Event {
	return domain.Event{
		At:        at,
		Session:   id,
		Kind:      kind,
		View:      o.View,
		Vendor:    o.Vendor,
		Section:   o.Section,
		Page:      o.Page,
		Timestamp: ts,
		Count:     count,
	}
}

func withQuery(pathname, qs string) string {
	if qs == "" {
		return pathname
	}
	return pathname + "?" + qs
}

// assetViews attaches detail and buy links to fetched assets
func assetViews(p query.Pipeline, page marketapi.Page) []domain.AssetView {
	out := make([]domain.AssetView, 0, len(page.Assets))
	for _, a := range page.Assets {
		v := domain.AssetView{
			ID:              a.ID,
			ContractAddress: a.ContractAddress,
			TokenID:         a.TokenID,
			ItemID:          a.ItemID,
			Name:            a.Name,
			Price:           a.Price,
		}
		if p == query.PipelineItems {
			v.DetailURL = locations.Item(a.ContractAddress, a.ItemID)
			v.BuyURL = locations.Buy(catalog.ResultItem, a.ContractAddress, a.ItemID)
		} else {
			v.DetailURL = locations.NFT(a.ContractAddress, a.TokenID)
			v.BuyURL = locations.Buy(catalog.ResultNFT, a.ContractAddress, a.TokenID)
		}
		out = append(out, v)
	}
	return out
}
