package urlcodec

import (
	"strings"

	"marketbrowse/internal/core/browse"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/normalize"
	perr "marketbrowse/internal/platform/errors"
)

// Check rejects explicit options carrying values outside the known vocabularies
// the returned error names the offending field
func (c *Codec) Check(o browse.Options) error {
	bad := func(field string, v any) error {
		return perr.WithField(perr.InvalidArgf("unknown %s %q", field, v), field)
	}
	if o.Vendor != "" && !catalog.IsVendor(string(o.Vendor)) {
		return bad("vendor", o.Vendor)
	}
	if o.ResultType != "" && !catalog.IsResultType(string(o.ResultType)) {
		return bad("resultType", o.ResultType)
	}
	if o.Section != "" && !c.sectionOK(o.Vendor, string(o.Section)) {
		return bad("section", o.Section)
	}
	if o.Page < 0 {
		return perr.WithField(perr.InvalidArgf("page must be positive, got %d", o.Page), "page")
	}
	if o.View != "" && !o.View.Valid() {
		return bad("view", o.View)
	}
	if o.SortBy != "" && !o.SortBy.Valid() {
		return bad("sortBy", o.SortBy)
	}
	if o.Network != "" && !catalog.IsNetwork(string(o.Network)) {
		return bad("network", o.Network)
	}
	for _, r := range o.WearableRarities {
		if !catalog.IsRarity(string(r)) {
			return bad("wearableRarities", r)
		}
	}
	for _, g := range o.WearableGenders {
		if !catalog.IsGender(string(g)) {
			return bad("wearableGenders", g)
		}
	}
	for _, a := range o.Contracts {
		if !c.cat.IsContract(strings.ToLower(strings.TrimSpace(a))) {
			return bad("contracts", a)
		}
	}
	return nil
}

// Sanitize returns o with every value outside the vocabularies dropped and the search text normalized
// it is the ingress counterpart of Decode, which stays lossless for anything Encode emits
func (c *Codec) Sanitize(o browse.Options) browse.Options {
	o = o.Clone()
	if o.Vendor != "" && !catalog.IsVendor(string(o.Vendor)) {
		o.Vendor = ""
	}
	if o.ResultType != "" && !catalog.IsResultType(string(o.ResultType)) {
		o.ResultType = ""
	}
	if o.Section != "" && !c.sectionOK(o.Vendor, string(o.Section)) {
		o.Section = ""
	}
	if o.Page < 0 {
		o.Page = 0
	}
	if !o.View.Valid() {
		o.View = ""
	}
	if !o.SortBy.Valid() {
		o.SortBy = ""
	}
	if !catalog.IsNetwork(string(o.Network)) {
		o.Network = ""
	}
	o.WearableRarities = keep(o.WearableRarities, func(r catalog.Rarity) (catalog.Rarity, bool) {
		return r, catalog.IsRarity(string(r))
	})
	o.WearableGenders = keep(o.WearableGenders, func(g catalog.Gender) (catalog.Gender, bool) {
		return g, catalog.IsGender(string(g))
	})
	o.Contracts = keep(o.Contracts, func(a string) (string, bool) {
		a = strings.ToLower(strings.TrimSpace(a))
		return a, c.cat.IsContract(a)
	})
	if o.Search != nil {
		if s := normalize.Search(*o.Search); s != "" {
			o.Search = browse.String(s)
		} else {
			o.Search = nil
		}
	}
	o.ItemID = strings.TrimSpace(o.ItemID)
	return o
}

// sectionOK checks s against the vendor taxonomy, any vendor when v is unset
func (c *Codec) sectionOK(v catalog.Vendor, s string) bool {
	if v == "" {
		return catalog.IsAnySection(s)
	}
	return catalog.IsSection(v, s)
}

// keep filters vs, a non nil empty input stays an explicit empty filter
func keep[T any](vs []T, valid func(T) (T, bool)) []T {
	if vs == nil {
		return nil
	}
	out := make([]T, 0, len(vs))
	for _, v := range vs {
		if v, ok := valid(v); ok {
			out = append(out, v)
		}
	}
	return out
}
