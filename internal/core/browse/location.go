package browse

import (
	"strings"

	"marketbrowse/internal/core/catalog"
)

// Route paths the browse surface understands
const (
	PathBrowse         = "/browse"
	PathLands          = "/lands"
	PathPartners       = "/partners"
	PathCurrentAccount = "/account"
	PathAccounts       = "/accounts"
)

// ViewFor returns the base view a page renders with
func ViewFor(pathname string) View {
	if pathname == PathCurrentAccount || strings.HasPrefix(pathname, PathAccounts+"/") {
		return ViewAccount
	}
	return ViewMarket
}

// FromLocation fills decoded query options with the location defaults
// decoded is expected to come out of the url codec, so every present field is already valid
func FromLocation(pathname string, decoded Options, view View) Options {
	o := decoded.Clone()
	if o.Vendor == "" {
		o.Vendor = catalog.DefaultVendor
	}
	if o.Section == "" {
		if pathname == PathLands {
			o.Section = catalog.SectionLand
		} else {
			o.Section = catalog.AllSection(o.Vendor)
		}
	}
	if o.ResultType == "" {
		o.ResultType = catalog.ResultNFT
		if pathname == PathBrowse {
			o.ResultType = catalog.ResultItem
		}
	}
	if o.Page < 1 {
		o.Page = 1
	}
	if o.View == "" {
		o.View = view
	}

	d := DefaultsFor(view)
	if o.SortBy == "" {
		o.SortBy = d.SortBy
	}
	if o.OnlyOnSale == nil {
		o.OnlyOnSale = d.OnlyOnSale
	}

	switch {
	case o.IsFullscreen == nil:
	case o.IsMap == nil:
		o.IsFullscreen = nil
	default:
		o.IsFullscreen = Bool(*o.IsMap && *o.IsFullscreen)
	}
	return o
}

// Load resolves a raw URL load
// the decoded query is the incoming change over the state the location implies, so every
// field present in the URL wins and only absent ones take location defaults
func Load(pathname string, decoded Options, explicit View) Options {
	view := ViewFor(pathname)
	incoming := decoded.Clone()
	incoming.View = explicit
	return Resolve(FromLocation(pathname, decoded, view), incoming, pick(explicit, view))
}

// ResolveAddress picks the account whose assets a page lists, lower cased
// the current account page lists the connected wallet, /accounts/{address} the named one
func ResolveAddress(pathname, wallet string) string {
	if pathname == PathCurrentAccount {
		return strings.ToLower(strings.TrimSpace(wallet))
	}
	rest, ok := strings.CutPrefix(pathname, PathAccounts+"/")
	if !ok {
		return ""
	}
	rest = strings.Trim(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return strings.ToLower(rest)
}
