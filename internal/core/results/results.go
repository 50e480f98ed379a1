// Package results accumulates fetched asset ids per browse session
package results

import (
	"slices"

	"marketbrowse/internal/core/browse"
)

// State is the accumulated result list of one session
type State struct {
	View          browse.View `json:"view,omitempty"`
	IDs           []string    `json:"ids"`
	Count         *int        `json:"count,omitempty"`
	LastTimestamp int64       `json:"last_timestamp"`
}

// Result is one completed fetch
type Result struct {
	View      browse.View
	Timestamp int64
	IDs       []string
	Total     int
}

// Begin returns the state once a fetch for view is issued
// atlas fetches leave the list alone, load more keeps the ids, anything else starts over
func (s State) Begin(view browse.View) State {
	switch view {
	case browse.ViewAtlas:
		return s
	case browse.ViewLoadMore:
		s.IDs = slices.Clone(s.IDs)
		s.Count = nil
		return s
	}
	s.IDs = nil
	s.Count = nil
	return s
}

// Apply folds r into the state and reports whether it changed anything
// results older than the last applied one are discarded
func (s State) Apply(r Result) (State, bool) {
	if r.Timestamp < s.LastTimestamp {
		return s, false
	}
	total := r.Total
	switch r.View {
	case browse.ViewMarket, browse.ViewAccount:
		s.View = r.View
		s.IDs = slices.Clone(r.IDs)
	case browse.ViewLoadMore:
		s.IDs = append(slices.Clone(s.IDs), r.IDs...)
	default:
		return s, false
	}
	s.Count = &total
	s.LastTimestamp = r.Timestamp
	return s, true
}

// Loaded returns the number of accumulated ids
func (s State) Loaded() int { return len(s.IDs) }
