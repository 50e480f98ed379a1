package browse

import "marketbrowse/internal/core/catalog"

// DefaultsFor returns the view keyed defaults
// account pages show everything owned, newest first
// market pages show what is on sale, most recently listed first
func DefaultsFor(v View) Options {
	sortBy := SortRecentlyListed
	if v == ViewAccount {
		sortBy = SortNewest
	}
	return Options{
		OnlyOnSale: Bool(v != ViewAccount),
		SortBy:     sortBy,
	}
}

// Resolve derives the next canonical options from the previous snapshot, an incoming partial
// change and a view hint. It is pure and total.
//
// Precedence, weakest first: view defaults, the carried over base, incoming fields, then the
// derived view and vendor which always win.
func Resolve(prev, incoming Options, hint View) Options {
	next, _ := catalog.CategoryOf(pick(incoming.Section, prev.Section))
	before, _ := catalog.CategoryOf(prev.Section)

	// category scoped filters survive only same category edits of a filterable category
	base := prev
	if next != before || !next.Filterable() {
		base = base.withoutCategoryFilters()
	}

	view := deriveView(prev, incoming, hint)
	vendor := pick(incoming.Vendor, pick(prev.Vendor, catalog.DefaultVendor))

	if shouldReset(prev, incoming) {
		base = Options{
			Page:       1,
			OnlyOnSale: prev.OnlyOnSale,
			SortBy:     prev.SortBy,
		}
	}

	out := Merge(incoming, base, DefaultsFor(view))
	out.View = view
	out.Vendor = vendor
	if out.Page < 1 {
		out.Page = 1
	}
	if !out.Map() {
		out.IsFullscreen = nil
	}
	return out
}

// deriveView infers load more from a page advance, otherwise the first explicit view wins
// a load more continuation is never inherited from the previous snapshot
func deriveView(prev, incoming Options, hint View) View {
	if incoming.Page > 0 && pageOf(prev) < incoming.Page {
		return ViewLoadMore
	}
	prevView := prev.View
	if prevView == ViewLoadMore {
		prevView = ""
	}
	return pick(incoming.View, pick(hint, pick(prevView, ViewMarket)))
}

// shouldReset reports a vendor or section switch
func shouldReset(prev, incoming Options) bool {
	return (incoming.Vendor != "" && incoming.Vendor != prev.Vendor) ||
		(incoming.Section != "" && incoming.Section != prev.Section)
}

func pageOf(o Options) int {
	if o.Page < 1 {
		return 1
	}
	return o.Page
}
