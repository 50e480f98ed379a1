// Package query shapes resolved browse options into fetch requests for the market API
package query

import (
	"marketbrowse/internal/core/browse"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/paging"
)

// Pipeline names the upstream listing a request targets
type Pipeline string

// Pipelines
const (
	PipelineTokens Pipeline = "tokens"
	PipelineItems  Pipeline = "items"
)

// Direction is a sort direction
type Direction string

// Directions
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Token order fields
const (
	OrderName             = "name"
	OrderCreatedAt        = "createdAt"
	OrderOrderCreatedAt   = "orderCreatedAt"
	OrderSearchOrderPrice = "searchOrderPrice"
)

// ItemSortBy is the sort key of the items pipeline
type ItemSortBy string

// Item sort keys
const (
	ItemSortName     ItemSortBy = "name"
	ItemSortNewest   ItemSortBy = "newest"
	ItemSortCheapest ItemSortBy = "cheapest"
)

// Request is one fetch, exactly one of Tokens or Items is set
type Request struct {
	Pipeline Pipeline       `json:"pipeline"`
	Window   paging.Window  `json:"window"`
	Tokens   *TokensRequest `json:"tokens,omitempty"`
	Items    *ItemsRequest  `json:"items,omitempty"`
}

// View returns the fetch view of either pipeline
func (r Request) View() browse.View {
	switch {
	case r.Tokens != nil:
		return r.Tokens.View
	case r.Items != nil:
		return r.Items.View
	}
	return ""
}

// TokensRequest asks for owned or listed tokens
type TokensRequest struct {
	Vendor  catalog.Vendor `json:"vendor"`
	View    browse.View    `json:"view"`
	Params  TokenParams    `json:"params"`
	Filters TokenFilters   `json:"filters"`
}

// TokenParams are the vendor independent token params
type TokenParams struct {
	First          int              `json:"first"`
	Skip           int              `json:"skip"`
	OrderBy        string           `json:"orderBy"`
	OrderDirection Direction        `json:"orderDirection"`
	OnlyOnSale     bool             `json:"onlyOnSale"`
	Address        string           `json:"address,omitempty"`
	Category       catalog.Category `json:"category,omitempty"`
	Search         string           `json:"search,omitempty"`
}

// TokenFilters are the vendor specific token filters
// decentraland fills the land and wearable fields, known origin the edition and token flags
type TokenFilters struct {
	IsLand              *bool                    `json:"isLand,omitempty"`
	IsWearableHead      *bool                    `json:"isWearableHead,omitempty"`
	IsWearableAccessory *bool                    `json:"isWearableAccessory,omitempty"`
	WearableCategory    catalog.WearableCategory `json:"wearableCategory,omitempty"`
	WearableRarities    []catalog.Rarity         `json:"wearableRarities,omitempty"`
	WearableGenders     []catalog.Gender         `json:"wearableGenders,omitempty"`
	Contracts           []string                 `json:"contracts,omitempty"`
	Network             catalog.Network          `json:"network,omitempty"`
	IsEdition           *bool                    `json:"isEdition,omitempty"`
	IsToken             *bool                    `json:"isToken,omitempty"`
}

// IsZero reports empty filters
func (f TokenFilters) IsZero() bool {
	return f.IsLand == nil && f.IsWearableHead == nil && f.IsWearableAccessory == nil &&
		f.WearableCategory == "" && len(f.WearableRarities) == 0 && len(f.WearableGenders) == 0 &&
		len(f.Contracts) == 0 && f.Network == "" && f.IsEdition == nil && f.IsToken == nil
}

// ItemsRequest asks for primary sale items
type ItemsRequest struct {
	View    browse.View `json:"view"`
	Page    int         `json:"page"`
	Filters ItemFilters `json:"filters"`
}

// ItemFilters are the items pipeline filters
type ItemFilters struct {
	First               int                      `json:"first"`
	Skip                int                      `json:"skip"`
	SortBy              ItemSortBy               `json:"sortBy"`
	Creator             string                   `json:"creator,omitempty"`
	IsSoldOut           bool                     `json:"isSoldOut"`
	IsOnSale            bool                     `json:"isOnSale"`
	Search              string                   `json:"search,omitempty"`
	IsWearableHead      bool                     `json:"isWearableHead"`
	IsWearableAccessory bool                     `json:"isWearableAccessory"`
	WearableCategory    catalog.WearableCategory `json:"wearableCategory,omitempty"`
	Rarities            []catalog.Rarity         `json:"rarities,omitempty"`
	WearableGenders     []catalog.Gender         `json:"wearableGenders,omitempty"`
	ContractAddress     string                   `json:"contractAddress,omitempty"`
	ItemID              string                   `json:"itemId,omitempty"`
	Network             catalog.Network          `json:"network,omitempty"`
}
