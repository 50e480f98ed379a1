// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"slices"
	"time"

	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/version"
	"marketbrowse/internal/modkit/httpkit"
)

// Pinger is satisfied by store seams that can be probed
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time

	// PG backs browse sessions and CH the event log, nil when disabled
	PG any
	CH any

	// Catalog is the runtime vendor catalog, nil means the embedded default
	Catalog *catalog.Catalog
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/catalog", h.catalog)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"marketbrowse-api"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck is the state of one backing store
type ReadyCheck struct {
	Name    string `json:"name"    example:"sessions"`
	Backend string `json:"backend" example:"postgres"`
	Status  string `json:"status"  example:"ok"` // ok fail skipped unknown
	Error   string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
// degraded means the service answers with a fallback, eg sessions in memory
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"marketbrowse-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// CatalogVendor is one vendor of the runtime catalog
type CatalogVendor struct {
	Vendor       catalog.Vendor `json:"vendor"         example:"known_origin"`
	Partner      bool           `json:"partner"        example:"true"`
	Enabled      bool           `json:"enabled"        example:"true"`
	OriginURL    string         `json:"origin_url"     example:"https://knownorigin.io"`
	MaxQuerySize int            `json:"max_query_size" example:"1000"`
}

// CatalogResponse reports the vendor catalog in effect and build info
type CatalogResponse struct {
	Vendors   []CatalogVendor   `json:"vendors"`
	Contracts int               `json:"contracts" example:"12"`
	Build     version.BuildInfo `json:"build"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with backing store checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := []ReadyCheck{
		probe(ctx, "sessions", "postgres", "memory", h.deps.PG),
		probe(ctx, "events", "clickhouse", "off", h.deps.CH),
	}
	out := ReadyResponse{Status: "ok", Checks: checks, Now: time.Now().UTC().Format(time.RFC3339)}
	for _, c := range checks {
		switch {
		case c.Status == "fail":
			out.Status = "fail"
		case c.Status != "ok" && out.Status == "ok":
			out.Status = "degraded"
		}
	}
	if out.Status == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// probe pings seam when it is set, fallback names what serves instead when it is not
func probe(ctx stdctx.Context, name, backend, fallback string, seam any) ReadyCheck {
	if seam == nil {
		return ReadyCheck{Name: name, Backend: fallback, Status: "skipped"}
	}
	c := ReadyCheck{Name: name, Backend: backend, Status: "unknown"}
	if p, ok := seam.(Pinger); ok {
		c.Status = "ok"
		if err := p.Ping(ctx); err != nil {
			c.Status, c.Error = "fail", err.Error()
		}
	}
	return c
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// swagger:route GET /meta/catalog Meta metaCatalog
// @Summary Vendor catalog in effect
// @Tags Meta
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /meta/catalog [get]
func (h *handlers) catalog(_ *http.Request) (any, error) {
	cat := h.deps.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	partners := cat.Partners()

	out := CatalogResponse{Contracts: len(cat.Contracts), Build: version.Info()}
	for _, v := range catalog.Vendors() {
		out.Vendors = append(out.Vendors, CatalogVendor{
			Vendor:       v,
			Partner:      catalog.IsPartner(string(v)),
			Enabled:      v == catalog.DefaultVendor || slices.Contains(partners, v),
			OriginURL:    catalog.OriginURL(v),
			MaxQuerySize: cat.MaxQuerySize(v),
		})
	}
	return out, nil
}
