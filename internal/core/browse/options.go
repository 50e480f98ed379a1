// Package browse derives canonical browse options from previous state and incoming changes
package browse

import "marketbrowse/internal/core/catalog"

// View is the transient fetch mode of a browse
type View string

// Views
const (
	ViewMarket   View = "market"
	ViewAccount  View = "account"
	ViewAtlas    View = "atlas"
	ViewLoadMore View = "load_more"
)

// Valid reports whether v is a known view
func (v View) Valid() bool {
	switch v {
	case ViewMarket, ViewAccount, ViewAtlas, ViewLoadMore:
		return true
	}
	return false
}

// SortBy is the user facing sort key
type SortBy string

// Sort keys
const (
	SortName           SortBy = "name"
	SortNewest         SortBy = "newest"
	SortRecentlyListed SortBy = "recently_listed"
	SortCheapest       SortBy = "cheapest"
)

// Valid reports whether s is a known sort key
func (s SortBy) Valid() bool {
	switch s {
	case SortName, SortNewest, SortRecentlyListed, SortCheapest:
		return true
	}
	return false
}

// Options is one canonical browse query
//
// Zero values mean "not specified": empty strings, a zero page, nil pointers and nil slices.
// A non nil empty slice is an explicit "no filter" and wins over weaker layers, the slices are
// serialized without omitempty so the distinction survives a stored snapshot.
// The category is never stored, call Category to derive it from the section.
type Options struct {
	Vendor           catalog.Vendor     `json:"vendor,omitempty"`
	ResultType       catalog.ResultType `json:"resultType,omitempty"`
	Section          catalog.Section    `json:"section,omitempty"`
	Page             int                `json:"page,omitempty"`
	View             View               `json:"view,omitempty"`
	SortBy           SortBy             `json:"sortBy,omitempty"`
	Search           *string            `json:"search,omitempty"`
	OnlyOnSale       *bool              `json:"onlyOnSale,omitempty"`
	IsMap            *bool              `json:"isMap,omitempty"`
	IsFullscreen     *bool              `json:"isFullscreen,omitempty"`
	WearableRarities []catalog.Rarity   `json:"wearableRarities"`
	WearableGenders  []catalog.Gender   `json:"wearableGenders"`
	Contracts        []string           `json:"contracts"`
	Network          catalog.Network    `json:"network,omitempty"`
	Address          string             `json:"address,omitempty"`
	IsSoldOut        *bool              `json:"isSoldOut,omitempty"`
	ItemID           string             `json:"itemId,omitempty"`
}

// Category derives the content category from the section
func (o Options) Category() (catalog.Category, bool) { return catalog.CategoryOf(o.Section) }

// Map reports whether the map view is on
func (o Options) Map() bool { return o.IsMap != nil && *o.IsMap }

// OnSale reports the sale filter, false when unset
func (o Options) OnSale() bool { return o.OnlyOnSale != nil && *o.OnlyOnSale }

// Query returns the search text, empty when unset
func (o Options) Query() string {
	if o.Search == nil {
		return ""
	}
	return *o.Search
}

// Clone returns a deep copy so callers never share slices or pointers
func (o Options) Clone() Options {
	cp := o
	cp.Search = clonePtr(o.Search)
	cp.OnlyOnSale = clonePtr(o.OnlyOnSale)
	cp.IsMap = clonePtr(o.IsMap)
	cp.IsFullscreen = clonePtr(o.IsFullscreen)
	cp.IsSoldOut = clonePtr(o.IsSoldOut)
	cp.WearableRarities = cloneSlice(o.WearableRarities)
	cp.WearableGenders = cloneSlice(o.WearableGenders)
	cp.Contracts = cloneSlice(o.Contracts)
	return cp
}

// Bool returns a pointer to b
func Bool(b bool) *bool { return &b }

// String returns a pointer to s
func String(s string) *string { return &s }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneSlice keeps the nil versus empty distinction
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

// withoutCategoryFilters drops the category scoped fields
func (o Options) withoutCategoryFilters() Options {
	o.WearableRarities = nil
	o.WearableGenders = nil
	o.Contracts = nil
	o.Search = nil
	o.Network = ""
	return o
}
