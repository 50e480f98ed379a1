package query

import (
	"marketbrowse/internal/core/browse"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/paging"
)

// Builder plans and shapes requests against a vendor catalog
type Builder struct {
	cat     *catalog.Catalog
	planner paging.Planner
}

// NewBuilder returns a Builder on the default planner, a nil catalog uses the embedded default
func NewBuilder(cat *catalog.Catalog) *Builder {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Builder{cat: cat, planner: paging.Default}
}

// WithPlanner returns a copy planning with p
func (b *Builder) WithPlanner(p paging.Planner) *Builder {
	cp := *b
	cp.planner = p
	return &cp
}

// PipelineFor picks the upstream listing for o
// items exist only on the home vendor, every other combination lists tokens
func PipelineFor(o browse.Options) Pipeline {
	if o.ResultType == catalog.ResultItem && (o.Vendor == "" || o.Vendor == catalog.DefaultVendor) {
		return PipelineItems
	}
	return PipelineTokens
}

// Build returns the request for resolved options o
func (b *Builder) Build(o browse.Options) Request {
	if PipelineFor(o) == PipelineItems {
		w := b.planner.Plan(o.Page, o.View, paging.ItemsMaxQuerySize)
		return Request{
			Pipeline: PipelineItems,
			Window:   w,
			Items:    &ItemsRequest{View: o.View, Page: max(o.Page, 1), Filters: ItemFiltersFor(o, w)},
		}
	}

	w := b.planner.Plan(o.Page, o.View, b.cat.MaxQuerySize(o.Vendor))
	orderBy, dir := Order(o.SortBy)
	cat, _ := o.Category()
	return Request{
		Pipeline: PipelineTokens,
		Window:   w,
		Tokens: &TokensRequest{
			Vendor: o.Vendor,
			View:   o.View,
			Params: TokenParams{
				First:          w.First,
				Skip:           w.Skip,
				OrderBy:        orderBy,
				OrderDirection: dir,
				OnlyOnSale:     o.OnSale(),
				Address:        o.Address,
				Category:       cat,
				Search:         o.Query(),
			},
			Filters: TokenFiltersFor(o.Vendor, o),
		},
	}
}

// Order maps a sort key to the token order field and direction
func Order(s browse.SortBy) (string, Direction) {
	switch s {
	case browse.SortName:
		return OrderName, Asc
	case browse.SortNewest:
		return OrderCreatedAt, Desc
	case browse.SortRecentlyListed:
		return OrderOrderCreatedAt, Desc
	case browse.SortCheapest:
		return OrderSearchOrderPrice, Asc
	}
	return OrderCreatedAt, Desc
}

// ItemSort maps a sort key to the items pipeline sort
func ItemSort(s browse.SortBy) ItemSortBy {
	switch s {
	case browse.SortCheapest:
		return ItemSortCheapest
	case browse.SortName:
		return ItemSortName
	}
	return ItemSortNewest
}

// TokenFiltersFor shapes the vendor specific filters, unknown and filterless vendors get none
func TokenFiltersFor(v catalog.Vendor, o browse.Options) TokenFilters {
	switch v {
	case catalog.Decentraland:
		head := o.Section == catalog.SectionWearablesHead
		accessory := o.Section == catalog.SectionWearablesAccesories
		c := o.Clone()
		f := TokenFilters{
			IsLand:              browse.Bool(o.Section == catalog.SectionLand),
			IsWearableHead:      browse.Bool(head),
			IsWearableAccessory: browse.Bool(accessory),
			WearableRarities:    c.WearableRarities,
			WearableGenders:     c.WearableGenders,
			Contracts:           c.Contracts,
			Network:             o.Network,
		}
		if !accessory {
			f.WearableCategory, _ = catalog.WearableCategoryOf(o.Section)
		}
		return f
	case catalog.KnownOrigin:
		return TokenFilters{
			IsEdition: browse.Bool(o.Section == catalog.SectionEditions),
			IsToken:   browse.Bool(o.Section == catalog.SectionTokens),
		}
	}
	return TokenFilters{}
}

// ItemFiltersFor shapes the items pipeline filters over window w
// only the first contract is forwarded, the items listing filters on a single collection
func ItemFiltersFor(o browse.Options, w paging.Window) ItemFilters {
	accessory := o.Section == catalog.SectionWearablesAccesories
	c := o.Clone()
	f := ItemFilters{
		First:               min(w.First, paging.ItemsMaxQuerySize),
		Skip:                w.Skip,
		SortBy:              ItemSort(o.SortBy),
		Creator:             o.Address,
		IsSoldOut:           o.IsSoldOut != nil && *o.IsSoldOut,
		IsOnSale:            o.OnSale(),
		Search:              o.Query(),
		IsWearableHead:      o.Section == catalog.SectionWearablesHead,
		IsWearableAccessory: accessory,
		Rarities:            c.WearableRarities,
		WearableGenders:     c.WearableGenders,
		ItemID:              o.ItemID,
		Network:             o.Network,
	}
	if !accessory {
		f.WearableCategory, _ = catalog.WearableCategoryOf(o.Section)
	}
	if len(o.Contracts) > 0 {
		f.ContractAddress = o.Contracts[0]
	}
	return f
}
