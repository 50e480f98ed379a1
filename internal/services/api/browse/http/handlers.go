// Package http provides http transport for browse
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"marketbrowse/internal/modkit/httpkit"
	perr "marketbrowse/internal/platform/errors"
	"marketbrowse/internal/platform/net/http/bind"
	"marketbrowse/internal/services/api/browse/domain"
)

// Register mounts browse endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// triggers
	httpkit.PostJSON[domain.RouteInput](r, "/route", h.route)
	httpkit.PostJSON[domain.BrowseInput](r, "/", h.browse)

	// reads
	httpkit.Get(r, "/sessions/{session}", h.session)
	httpkit.Get(r, "/sections", h.sections)
	httpkit.Get(r, "/vendors", h.vendors)
	httpkit.Get(r, "/plan", h.plan)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /browse/route Browse browseRoute
// @Summary Fetch for the current location
// @Description Resolves options from pathname and query, stores the session snapshot and fetches. The URL is never rewritten.
// @Tags browse
// @Accept json
// @Produce json
// @Param payload body domain.RouteInput true "Location"
// @Success 200 {object} domain.Outcome "ok"
// @Failure 400 {object} httpkit.Envelope "invalid input"
// @Router /browse/route [post]
func (h *handlers) route(r *stdhttp.Request, in domain.RouteInput) (any, error) {
	in.Wallet = httpkit.Wallet(r)
	return h.svc.Route(r.Context(), in)
}

// swagger:route POST /browse Browse browse
// @Summary Apply a browse change
// @Description Merges the change over the session snapshot, fetches and returns the rewritten URL.
// @Tags browse
// @Accept json
// @Produce json
// @Param payload body domain.BrowseInput true "Change"
// @Success 200 {object} domain.Outcome "ok"
// @Failure 400 {object} httpkit.Envelope "invalid input"
// @Failure 503 {object} httpkit.Envelope "fetch or navigation failed"
// @Router /browse [post]
func (h *handlers) browse(r *stdhttp.Request, in domain.BrowseInput) (any, error) {
	in.Wallet = httpkit.Wallet(r)
	return h.svc.Browse(r.Context(), in)
}

// swagger:route GET /browse/sessions/{session} Browse browseSession
// @Summary Session snapshot and accumulated results
// @Tags browse
// @Produce json
// @Param session path string true "Session id"
// @Success 200 {object} domain.SessionView "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /browse/sessions/{session} [get]
func (h *handlers) session(r *stdhttp.Request) (any, error) {
	in := domain.SessionQuery{Session: chi.URLParam(r, "session")}
	if err := bind.Struct(in); err != nil {
		return nil, err
	}
	return h.svc.Session(r.Context(), in)
}

// swagger:route GET /browse/sections Browse browseSections
// @Summary Section taxonomy of a vendor
// @Tags browse
// @Produce json
// @Param vendor query string false "Vendor, the home vendor by default"
// @Success 200 {object} domain.SectionsView "ok"
// @Failure 404 {object} httpkit.Envelope "vendor not enabled"
// @Router /browse/sections [get]
func (h *handlers) sections(r *stdhttp.Request) (any, error) {
	in := domain.SectionsQuery{Vendor: r.URL.Query().Get("vendor")}
	if err := bind.Struct(in); err != nil {
		return nil, err
	}
	return h.svc.Sections(r.Context(), in)
}

// swagger:route GET /browse/vendors Browse browseVendors
// @Summary Enabled vendors
// @Tags browse
// @Produce json
// @Success 200 {object} domain.VendorsView "ok"
// @Router /browse/vendors [get]
func (h *handlers) vendors(r *stdhttp.Request) (any, error) {
	return h.svc.Vendors(r.Context())
}

// swagger:route GET /browse/plan Browse browsePlan
// @Summary Fetch window of a page
// @Tags browse
// @Produce json
// @Param page query int false "Page, 1 by default"
// @Param view query string false "View, market by default"
// @Param vendor query string false "Vendor, the home vendor by default"
// @Success 200 {object} domain.PlanView "ok"
// @Failure 400 {object} httpkit.Envelope "invalid input"
// @Router /browse/plan [get]
func (h *handlers) plan(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	in := domain.PlanQuery{View: q.Get("view"), Vendor: q.Get("vendor")}
	if raw := q.Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return nil, perr.InvalidArgf("page must be an integer")
		}
		in.Page = p
	}
	if err := bind.Struct(in); err != nil {
		return nil, err
	}
	return h.svc.Plan(r.Context(), in)
}
