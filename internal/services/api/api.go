// Package api provides the HTTP API for the application
package api

import (
	"marketbrowse/internal/platform/config"
	"marketbrowse/internal/platform/logger"
	phttp "marketbrowse/internal/platform/net/http"
	"marketbrowse/internal/platform/store"

	"marketbrowse/internal/modkit"
	"marketbrowse/internal/modkit/httpkit"
	"marketbrowse/internal/modkit/module"
	"marketbrowse/internal/modkit/swaggerkit"

	browsemod "marketbrowse/internal/services/api/browse/module"
	metamod "marketbrowse/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Stack          httpkit.StackOptions
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
// the browse ports are returned so main can drain in flight fetches on shutdown
func Mount(r phttp.Router, opt Options) browsemod.Ports {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	browse := browsemod.New(deps)
	mods := []module.Module{
		metamod.New(deps),
		browse,
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		for _, m := range mods {
			deps.Log.Debug().Str("module", m.Name()).Msg("mounting module")
			m.MountRoutes(api)
		}
	})

	return module.MustPortsOf[browsemod.Ports](browse)
}
