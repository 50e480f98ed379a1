// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"fmt"
	"time"

	"marketbrowse/internal/core/catalog"
	modkit "marketbrowse/internal/modkit"
	"marketbrowse/internal/modkit/httpkit"
	str "marketbrowse/internal/platform/strings"

	metahttp "marketbrowse/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	built modkit.Built
	deps  metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	// same catalog knobs as the browse module
	bc := deps.Cfg.Prefix("BROWSE_")
	cat, err := catalog.Load(bc.MayString("CATALOG_FILE", ""))
	if err != nil {
		panic(fmt.Sprintf("meta: catalog: %v", err))
	}

	return &Module{
		built: b,
		deps: metahttp.Deps{
			ServiceName: "marketbrowse-api",
			StartedAt:   time.Now(),
			PG:          deps.PG,
			CH:          deps.CH,
			Catalog:     cat.WithDisabled(bc.MayCSV("DISABLED_VENDORS", nil)...),
		},
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
