// Package urlcodec maps browse options to and from a URL query string
package urlcodec

import (
	"net/url"
	"strconv"
	"strings"

	"marketbrowse/internal/core/browse"
	"marketbrowse/internal/core/catalog"
)

// URL keys in emission order
const (
	KeyResults      = "results"
	KeySection      = "section"
	KeyIsMap        = "isMap"
	KeyIsFullscreen = "isFullscreen"
	KeyVendor       = "vendor"
	KeyPage         = "page"
	KeySortBy       = "sortBy"
	KeyOnlyOnSale   = "onlyOnSale"
	KeyRarities     = "rarities"
	KeyGenders      = "genders"
	KeyContracts    = "contracts"
	KeySearch       = "search"
	KeyNetwork      = "network"
	KeyIsSoldOut    = "isSoldOut"
	KeyItemID       = "itemId"
)

// Sep joins array values inside one query param
const Sep = "_"

// Codec encodes and decodes browse options
// the catalog supplies the contracts whitelist, a nil catalog uses the embedded default
type Codec struct {
	cat *catalog.Catalog
}

// New constructs a Codec over cat
func New(cat *catalog.Catalog) *Codec {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Codec{cat: cat}
}

// Encode returns the query string for o without the leading "?"
// only set fields are emitted, in a fixed key order
func (c *Codec) Encode(o browse.Options) string {
	var q query
	q.add(KeyResults, string(o.ResultType))
	q.add(KeySection, string(o.Section))
	if o.IsMap != nil {
		q.add(KeyIsMap, strconv.FormatBool(*o.IsMap))
		if o.IsFullscreen != nil {
			q.add(KeyIsFullscreen, strconv.FormatBool(*o.IsFullscreen))
		}
	}
	q.add(KeyVendor, string(o.Vendor))
	if o.Page > 0 {
		q.add(KeyPage, strconv.Itoa(o.Page))
	}
	q.add(KeySortBy, string(o.SortBy))
	if o.OnlyOnSale != nil {
		q.add(KeyOnlyOnSale, strconv.FormatBool(*o.OnlyOnSale))
	}
	q.add(KeyRarities, join(o.WearableRarities))
	q.add(KeyGenders, join(o.WearableGenders))
	q.add(KeyContracts, join(o.Contracts))
	q.add(KeySearch, o.Query())
	if catalog.IsNetwork(string(o.Network)) {
		q.add(KeyNetwork, string(o.Network))
	}
	if o.IsSoldOut != nil {
		q.add(KeyIsSoldOut, strconv.FormatBool(*o.IsSoldOut))
	}
	q.add(KeyItemID, o.ItemID)
	return q.String()
}

// Decode parses raw into partial options, it never fails
// malformed or unknown values decode to absent, a leading "?" is accepted
// search text is kept as sent, Sanitize normalizes it at ingress
func (c *Codec) Decode(raw string) browse.Options {
	vals, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil && len(vals) == 0 {
		return browse.Options{}
	}

	var o browse.Options
	if v := vals.Get(KeyVendor); catalog.IsVendor(v) {
		o.Vendor = catalog.Vendor(v)
	}
	if v := vals.Get(KeyResults); catalog.IsResultType(v) {
		o.ResultType = catalog.ResultType(v)
	}
	if v := vals.Get(KeySection); v != "" {
		vendor := o.Vendor
		if vendor == "" {
			vendor = catalog.DefaultVendor
		}
		if catalog.IsSection(vendor, v) {
			o.Section = catalog.Section(v)
		}
	}
	if n, err := strconv.Atoi(vals.Get(KeyPage)); err == nil && n >= 1 {
		o.Page = n
	}
	if v := browse.SortBy(vals.Get(KeySortBy)); v.Valid() {
		o.SortBy = v
	}
	o.OnlyOnSale = parseBool(vals, KeyOnlyOnSale)
	o.IsMap = parseBool(vals, KeyIsMap)
	o.IsFullscreen = parseBool(vals, KeyIsFullscreen)
	o.IsSoldOut = parseBool(vals, KeyIsSoldOut)

	o.WearableRarities = split(vals.Get(KeyRarities), func(s string) (catalog.Rarity, bool) {
		return catalog.Rarity(s), catalog.IsRarity(s)
	})
	o.WearableGenders = split(vals.Get(KeyGenders), func(s string) (catalog.Gender, bool) {
		return catalog.Gender(s), catalog.IsGender(s)
	})
	o.Contracts = split(vals.Get(KeyContracts), func(s string) (string, bool) {
		s = strings.ToLower(s)
		return s, c.cat.IsContract(s)
	})

	if s := vals.Get(KeySearch); s != "" {
		o.Search = browse.String(s)
	}
	if v := vals.Get(KeyNetwork); catalog.IsNetwork(v) {
		o.Network = catalog.Network(v)
	}
	if v := strings.TrimSpace(vals.Get(KeyItemID)); v != "" {
		o.ItemID = v
	}
	return o
}

// parseBool accepts only the literal true and false
func parseBool(vals url.Values, key string) *bool {
	switch vals.Get(key) {
	case "true":
		return browse.Bool(true)
	case "false":
		return browse.Bool(false)
	}
	return nil
}

// split keeps the whitelisted tokens of a joined param, nil when none survive
func split[T any](raw string, valid func(string) (T, bool)) []T {
	if raw == "" {
		return nil
	}
	var out []T
	for _, tok := range strings.Split(raw, Sep) {
		if v, ok := valid(tok); ok {
			out = append(out, v)
		}
	}
	return out
}

func join[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, Sep)
}

// query is an insertion ordered url.Values
type query struct {
	b strings.Builder
}

func (q *query) add(key, value string) {
	if value == "" {
		return
	}
	if q.b.Len() > 0 {
		q.b.WriteByte('&')
	}
	q.b.WriteString(url.QueryEscape(key))
	q.b.WriteByte('=')
	q.b.WriteString(url.QueryEscape(value))
}

func (q *query) String() string { return q.b.String() }
