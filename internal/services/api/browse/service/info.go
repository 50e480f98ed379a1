package service

import (
	"context"

	"marketbrowse/internal/core/browse"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/paging"
	"marketbrowse/internal/core/query"
	perr "marketbrowse/internal/platform/errors"
	"marketbrowse/internal/services/api/browse/domain"
)

// Session returns the stored snapshot and results with derived paging state
func (s *Svc) Session(ctx context.Context, in domain.SessionQuery) (domain.SessionView, error) {
	if in.Session == "" {
		return domain.SessionView{}, perr.InvalidArgf("session is required")
	}
	id, err := s.sessionID(in.Session)
	if err != nil {
		return domain.SessionView{}, err
	}
	sess, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.SessionView{}, err
	}

	o := sess.Options
	loaded := sess.Results.Loaded()
	more := false
	if sess.Results.Count != nil {
		more = s.planner.HasMorePages(loaded, *sess.Results.Count, s.maxQuerySize(o), max(o.Page, 1))
	}

	url := s.links.Browse(&o)
	if o.View == browse.ViewAccount && o.Address != "" {
		url = s.links.Account(o.Address, &o)
	}
	return domain.SessionView{
		Session:  sess.ID,
		Options:  o,
		Results:  sess.Results,
		Loaded:   loaded,
		HasMore:  more,
		URL:      url,
		Updated:  sess.UpdatedAt.Unix(),
		Sequence: sess.Seq,
	}, nil
}

// Sections lists the taxonomy of a vendor, the home vendor by default
func (s *Svc) Sections(_ context.Context, in domain.SectionsQuery) (domain.SectionsView, error) {
	v := catalog.Vendor(in.Vendor)
	if v == "" {
		v = catalog.DefaultVendor
	}
	if !s.enabled(v) {
		return domain.SectionsView{}, perr.NotFoundf("vendor %q is not enabled", in.Vendor)
	}
	return domain.SectionsView{Vendor: v, Sections: catalog.Sections(v)}, nil
}

// Vendors lists the enabled vendors with their origin and limits
func (s *Svc) Vendors(context.Context) (domain.VendorsView, error) {
	out := domain.VendorsView{Default: catalog.DefaultVendor}
	for _, v := range catalog.Vendors() {
		if !s.enabled(v) {
			continue
		}
		out.Vendors = append(out.Vendors, domain.VendorInfo{
			Vendor:       v,
			Partner:      catalog.IsPartner(string(v)),
			OriginURL:    catalog.OriginURL(v),
			MaxQuerySize: s.cat.MaxQuerySize(v),
		})
	}
	return out, nil
}

// Plan exposes the pagination planner
func (s *Svc) Plan(_ context.Context, in domain.PlanQuery) (domain.PlanView, error) {
	page := max(in.Page, 1)
	view := browse.View(in.View)
	if view == "" {
		view = browse.ViewMarket
	}
	if !view.Valid() {
		return domain.PlanView{}, perr.InvalidArgf("unknown view %q", in.View)
	}
	v := catalog.Vendor(in.Vendor)
	if v == "" {
		v = catalog.DefaultVendor
	}
	if !catalog.IsVendor(string(v)) {
		return domain.PlanView{}, perr.InvalidArgf("unknown vendor %q", in.Vendor)
	}

	size := s.cat.MaxQuerySize(v)
	return domain.PlanView{
		Page:         page,
		View:         view,
		Vendor:       v,
		MaxQuerySize: size,
		Window:       s.planner.Plan(page, view, size),
	}, nil
}

func (s *Svc) enabled(v catalog.Vendor) bool { return s.cat.Enabled(v) }

func (s *Svc) maxQuerySize(o browse.Options) int {
	if query.PipelineFor(o) == query.PipelineItems {
		return paging.ItemsMaxQuerySize
	}
	return s.cat.MaxQuerySize(o.Vendor)
}
