// Package domain holds browse session types independent of transport or storage
package domain

import (
	"time"

	"marketbrowse/internal/core/browse"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/results"
)

// Session is the per client browse state
// Options is the last resolved snapshot, last trigger wins
type Session struct {
	ID        string         `json:"session"`
	Options   browse.Options `json:"options"`
	Results   results.State  `json:"results"`
	Seq       int64          `json:"seq"` // timestamp of the last issued fetch
	UpdatedAt time.Time      `json:"updated_at"`
}

// IsZero reports a session that was never stored
func (s Session) IsZero() bool { return s.UpdatedAt.IsZero() }

// EventKind names a browse log event
type EventKind string

const (
	// EventRoute is a route driven fetch trigger
	EventRoute EventKind = "route"

	// EventBrowse is an explicit browse trigger
	EventBrowse EventKind = "browse"

	// EventApplied is a fetch result folded into the session
	EventApplied EventKind = "applied"

	// EventStale is a fetch result discarded for being older than the applied one
	EventStale EventKind = "stale"

	// EventFailed is a fetch that returned an error
	EventFailed EventKind = "failed"
)

// Event is one row of the browse log
type Event struct {
	At        time.Time
	Session   string
	Kind      EventKind
	View      browse.View
	Vendor    catalog.Vendor
	Section   catalog.Section
	Page      int
	Timestamp int64
	Count     int
}
