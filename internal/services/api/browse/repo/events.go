package repo

import (
	"context"
	_ "embed"
	"time"

	"github.com/google/uuid"

	perr "marketbrowse/internal/platform/errors"
	"marketbrowse/internal/platform/store"
	"marketbrowse/internal/services/api/browse/domain"
)

//go:embed events.sql
var eventsSQL string

// EventsTable is the ClickHouse table of the browse log
const EventsTable = "browse_events"

// chExec is satisfied by the driver backed ClickHouse seam
type chExec interface {
	Exec(ctx context.Context, sql string, args ...any) error
}

// Events writes browse log rows to ClickHouse
type Events struct {
	ch store.Clickhouse
}

// NewEvents returns a sink over ch, a nil ch yields a sink that drops everything
func NewEvents(ch store.Clickhouse) *Events { return &Events{ch: ch} }

var _ domain.EventSink = (*Events)(nil)

// Record batches events into one insert
func (e *Events) Record(ctx context.Context, events ...domain.Event) error {
	if e == nil || e.ch == nil || len(events) == 0 {
		return nil
	}
	if err := e.ch.Insert(ctx, EventsTable, Rows(events)); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "insert %d browse events", len(events))
	}
	return nil
}

// MigrateEvents creates the event table when the seam can run DDL
func MigrateEvents(ctx context.Context, ch store.Clickhouse) error {
	x, ok := ch.(chExec)
	if !ok {
		return perr.New(perr.ErrorCodeUnavailable, "clickhouse seam cannot run ddl")
	}
	if err := x.Exec(ctx, eventsSQL); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "browse events schema")
	}
	return nil
}

// Rows maps events to column ordered insert rows
func Rows(events []domain.Event) [][]any {
	out := make([][]any, 0, len(events))
	for _, ev := range events {
		id, err := uuid.Parse(ev.Session)
		if err != nil {
			id = uuid.Nil
		}
		out = append(out, []any{
			ev.At.UTC(),
			id,
			string(ev.Kind),
			string(ev.View),
			string(ev.Vendor),
			string(ev.Section),
			uint32(max(ev.Page, 0)),
			ev.Timestamp,
			uint32(max(ev.Count, 0)),
		})
	}
	return out
}

// EventCount aggregates browse events per vendor and kind
type EventCount struct {
	Vendor string `json:"vendor"`
	Kind   string `json:"kind"`
	Events uint64 `json:"events"`
	Items  uint64 `json:"items"`
}

const summarySQL = `
	SELECT vendor, kind, count() AS events, sum(count) AS items
	  FROM browse_events
	 WHERE at >= ?
	 GROUP BY vendor, kind
	 ORDER BY vendor, kind`

// Summary counts events and fetched items recorded since the given instant
func (e *Events) Summary(ctx context.Context, since time.Time) ([]EventCount, error) {
	if e == nil || e.ch == nil {
		return nil, perr.New(perr.ErrorCodeUnavailable, "clickhouse disabled")
	}
	out, err := store.Many(ctx, e.ch, scanEventCount, summarySQL, since.UTC())
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "summarize browse events")
	}
	return out, nil
}

func scanEventCount(r store.Row) (EventCount, error) {
	var c EventCount
	err := r.Scan(&c.Vendor, &c.Kind, &c.Events, &c.Items)
	return c, err
}
