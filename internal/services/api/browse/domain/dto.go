package domain

import (
	"marketbrowse/internal/core/browse"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/paging"
	"marketbrowse/internal/core/query"
	"marketbrowse/internal/core/results"
)

// RouteInput asks for a fetch driven by the current location
// the URL is read, never written
type RouteInput struct {
	Session  string      `json:"session,omitempty"  validate:"omitempty,uuid" example:"9b2f5c1e-4d0a-4c55-9f4e-2b1a7c3d8e6f"`
	Pathname string      `json:"pathname"           validate:"required,startswith=/,max=512" example:"/browse"`
	Query    string      `json:"query,omitempty"    validate:"max=4096" example:"section=wearables_hat&page=2"`
	View     browse.View `json:"view,omitempty"     validate:"omitempty,browse_view" example:"market"`
	Wait     bool        `json:"wait,omitempty"     example:"true"`

	// Wallet is the signed in address, set by the transport from the bearer token
	Wallet string `json:"-"`
}

// BrowseInput applies a change on top of the session snapshot and rewrites the URL
type BrowseInput struct {
	Session  string         `json:"session,omitempty"  validate:"omitempty,uuid" example:"9b2f5c1e-4d0a-4c55-9f4e-2b1a7c3d8e6f"`
	Pathname string         `json:"pathname"           validate:"required,startswith=/,max=512" example:"/browse"`
	Query    string         `json:"query,omitempty"    validate:"max=4096" example:"section=wearables"`
	Change   browse.Options `json:"change"`
	View     browse.View    `json:"view,omitempty"     validate:"omitempty,browse_view" example:"market"`
	Wait     bool           `json:"wait,omitempty"     example:"false"`

	Wallet string `json:"-"`
}

// Outcome is the result of one trigger
type Outcome struct {
	Session   string         `json:"session" example:"9b2f5c1e-4d0a-4c55-9f4e-2b1a7c3d8e6f"`
	Options   browse.Options `json:"options"`
	URL       string         `json:"url,omitempty" example:"/browse?section=wearables_hat&page=2"`
	Request   *query.Request `json:"request,omitempty"`
	Timestamp int64          `json:"timestamp,omitempty" example:"1760601600000000000"`

	// set when the caller waited for the fetch
	Results *results.State `json:"results,omitempty"`
	Assets  []AssetView    `json:"assets,omitempty"`
	Applied *bool          `json:"applied,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// AssetView is one fetched asset with its links
type AssetView struct {
	ID              string `json:"id" example:"0xf87e...-42"`
	ContractAddress string `json:"contract_address" example:"0xf87e31492faf9a91b02ee0deaad50d51d56d5d4d"`
	TokenID         string `json:"token_id,omitempty" example:"42"`
	ItemID          string `json:"item_id,omitempty" example:"3"`
	Name            string `json:"name" example:"Red Hat"`
	Price           string `json:"price,omitempty" example:"1000000000000000000"`
	DetailURL       string `json:"detail_url" example:"/contracts/0xf87e.../tokens/42"`
	BuyURL          string `json:"buy_url" example:"/contracts/0xf87e.../tokens/42/buy"`
}

// SessionQuery looks up one session
type SessionQuery struct {
	Session string `json:"session" validate:"required,uuid"`
}

// SessionView is a stored session plus derived paging state
type SessionView struct {
	Session  string         `json:"session"`
	Options  browse.Options `json:"options"`
	Results  results.State  `json:"results"`
	Loaded   int            `json:"loaded" example:"48"`
	HasMore  bool           `json:"has_more" example:"true"`
	URL      string         `json:"url" example:"/browse?page=2"`
	Updated  int64          `json:"updated_unix" example:"1760601600"`
	Sequence int64          `json:"seq"`
}

// SectionsQuery lists the taxonomy of a vendor
type SectionsQuery struct {
	Vendor string `json:"vendor" validate:"omitempty,vendor" example:"decentraland"`
}

// SectionsView is the taxonomy of one vendor
type SectionsView struct {
	Vendor   catalog.Vendor        `json:"vendor" example:"decentraland"`
	Sections []catalog.SectionInfo `json:"sections"`
}

// VendorInfo describes one vendor
type VendorInfo struct {
	Vendor       catalog.Vendor `json:"vendor" example:"super_rare"`
	Partner      bool           `json:"partner" example:"true"`
	OriginURL    string         `json:"origin_url" example:"https://superrare.co"`
	MaxQuerySize int            `json:"max_query_size" example:"1000"`
}

// VendorsView lists the enabled vendors
type VendorsView struct {
	Default catalog.Vendor `json:"default" example:"decentraland"`
	Vendors []VendorInfo   `json:"vendors"`
}

// PlanQuery asks for the fetch window of a page
type PlanQuery struct {
	Page   int    `json:"page"   validate:"omitempty,min=1" example:"3"`
	View   string `json:"view"   validate:"omitempty,browse_view" example:"load_more"`
	Vendor string `json:"vendor" validate:"omitempty,vendor" example:"decentraland"`
}

// PlanView is the planned window
type PlanView struct {
	Page         int            `json:"page" example:"3"`
	View         browse.View    `json:"view" example:"load_more"`
	Vendor       catalog.Vendor `json:"vendor" example:"decentraland"`
	MaxQuerySize int            `json:"max_query_size" example:"1000"`
	Window       paging.Window  `json:"window"`
}
