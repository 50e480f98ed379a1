package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"marketbrowse/internal/platform/config"
	perr "marketbrowse/internal/platform/errors"
	"marketbrowse/internal/platform/logger"
	"marketbrowse/internal/platform/store"
	brepo "marketbrowse/internal/services/api/browse/repo"
)

// summarizer is the read side of the browse event log
type summarizer interface {
	Summary(ctx context.Context, since time.Time) ([]brepo.EventCount, error)
}

// openEvents connects to clickhouse and returns the event log and a closer
var openEvents = func(ctx context.Context, dsn string) (summarizer, func(), error) {
	st, err := store.Open(ctx, store.Config{
		AppName: "marketbrowse-cli",
		CH:      store.CHConfig{Enabled: true, URL: dsn, Role: "cli"},
	}, store.WithLogger(*logger.Named("store")))
	if err != nil {
		return nil, nil, err
	}
	return brepo.NewEvents(st.CH), func() { _ = st.Close(context.Background()) }, nil
}

func newEventsCmd() *cobra.Command {
	var (
		dsn   string
		since time.Duration
	)
	chCfg := config.New().Prefix("SERVICE_CLICKHOUSE_")
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Summarize recorded browse events per vendor and kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dsn == "" {
				return perr.InvalidArgf("a clickhouse dsn is required")
			}
			if since <= 0 {
				return perr.InvalidArgf("since must be positive")
			}
			ev, closeFn, err := openEvents(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer closeFn()

			counts, err := ev.Summary(cmd.Context(), time.Now().Add(-since))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), counts)
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", chCfg.MayString("DBURL", ""), "clickhouse dsn")
	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "window to summarize")
	return cmd
}
