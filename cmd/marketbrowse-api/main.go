// @title         Marketbrowse API
// @version       0.1.0
// @description   Browse options, URL state and paginated fetches for a multi vendor NFT marketplace

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketbrowse/internal/modkit/httpkit"
	"marketbrowse/internal/platform/config"
	"marketbrowse/internal/platform/logger"
	phttp "marketbrowse/internal/platform/net/http"
	"marketbrowse/internal/platform/store"

	"marketbrowse/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// both stores are optional, sessions fall back to memory and events are skipped
	pgOn := pgCfg.MayBool("ENABLED", true)
	chOn := chCfg.MayBool("ENABLED", false)
	pg := store.PGConfig{Enabled: pgOn}
	if pgOn {
		pg.URL = pgCfg.MustString("DBURL")
		pg.MaxConns = int32(pgCfg.MayInt("MAX_CONNS", 4))
		pg.SlowQueryMs = pgCfg.MayInt("SLOW_MS", 500)
		pg.LogSQL = pgCfg.MayBool("LOG_SQL", false)
	}
	ch := store.CHConfig{Enabled: chOn, Role: "api"}
	if chOn {
		ch.URL = chCfg.MustURL("DBURL").String()
	}

	st, err := store.Open(ctx, store.Config{AppName: "marketbrowse-api", PG: pg, CH: ch}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// CORE_API_PORT and the CORE_API_*_TIMEOUT keys
	srv := phttp.NewServer(root.Prefix("CORE_"))

	// mount our API
	browse := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Stack: httpkit.StackOptions{
				CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
				Timeout:     apiCfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
				Slow:        apiCfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
				MaxInFlight: apiCfg.MayInt("MAX_IN_FLIGHT", 0),
			},
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("http shutdown")
		}
		if err := browse.Drain(sctx); err != nil {
			l.Warn().Err(err).Msg("browse fetches still running at exit")
		}
	}()

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	<-drained
}
