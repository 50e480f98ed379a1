// Package module wires browse into the API using modkit
package module

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"marketbrowse/internal/adapters/marketapi"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/paging"
	modkit "marketbrowse/internal/modkit"
	"marketbrowse/internal/modkit/httpkit"
	"marketbrowse/internal/modkit/repokit"
	"marketbrowse/internal/platform/logger"
	"marketbrowse/internal/platform/net/middleware"
	str "marketbrowse/internal/platform/strings"

	bdom "marketbrowse/internal/services/api/browse/domain"
	bhttp "marketbrowse/internal/services/api/browse/http"
	brepo "marketbrowse/internal/services/api/browse/repo"
	bsvc "marketbrowse/internal/services/api/browse/service"
)

// Module implements the browse API module
type Module struct {
	built modkit.Built
	auth  middleware.AuthPort
	svc   *bsvc.Svc
}

// New constructs the browse module
// without postgres the sessions live in process memory, without clickhouse no events are recorded
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("browse"),
		modkit.WithPrefix("/browse"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)
	log := logger.Named("browse")

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		panic(fmt.Sprintf("browse: catalog: %v", err))
	}
	cat = cat.WithDisabled(cfg.Disabled...)

	client := marketapi.NewClient(marketapi.Options{
		BaseURL:    cfg.BaseURL,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryBase:  cfg.RetryBase,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		db     repokit.TxRunner
		binder repokit.Binder[brepo.Repo]
	)
	if deps.PG != nil {
		db = repokit.Wrap(deps.PG, cfg.TxRetries, repokit.LockTimeout(cfg.LockTimeout))
		binder = brepo.NewPG()
		if cfg.AutoMigrate {
			if err := brepo.Migrate(ctx, deps.PG); err != nil {
				panic(fmt.Sprintf("browse: migrate sessions: %v", err))
			}
		}
	} else {
		mem := brepo.NewMemory()
		db, binder = mem, mem
		log.Warn().Msg("postgres disabled, browse sessions are kept in memory")
	}

	var events bdom.EventSink
	if cfg.Events && deps.CH != nil {
		events = brepo.NewEvents(deps.CH)
		if cfg.AutoMigrate {
			if err := brepo.MigrateEvents(ctx, deps.CH); err != nil {
				log.Warn().Err(err).Msg("browse events table not created, events disabled")
				events = nil
			}
		}
	}

	m := &Module{
		built: b,
		svc: bsvc.New(db, binder, bsvc.Options{
			Catalog:      cat,
			Planner:      paging.WithPageSize(cfg.PageSize),
			Fetcher:      client,
			Events:       events,
			FetchTimeout: cfg.FetchTimeout,
			Concurrency:  cfg.Concurrency,
		}),
	}
	if cfg.WalletAuth {
		m.auth = httpkit.NewPortFunc(WalletToken)
	}
	return m
}

var walletRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// WalletToken accepts a bearer token that is a wallet address and returns it lower cased
func WalletToken(token string) (string, error) {
	t := strings.TrimSpace(token)
	if !walletRe.MatchString(t) {
		return "", fmt.Errorf("not a wallet address")
	}
	return strings.ToLower(t), nil
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		if m.auth != nil {
			rr.Use(httpkit.OptionalAuth(m.auth))
		}
		bhttp.Register(rr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }
