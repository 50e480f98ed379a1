// Package locations builds the site paths a browse result links to
package locations

import (
	"fmt"
	"net/url"

	"marketbrowse/internal/core/browse"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/core/urlcodec"
)

// Builder renders paths, query strings come from the codec
type Builder struct {
	codec *urlcodec.Codec
}

// New returns a Builder encoding options with codec, nil uses a default codec
func New(codec *urlcodec.Codec) *Builder {
	if codec == nil {
		codec = urlcodec.New(nil)
	}
	return &Builder{codec: codec}
}

// static pages

func Root() string         { return "/" }
func SignIn() string       { return "/sign-in" }
func Settings() string     { return "/settings" }
func Partners() string     { return browse.PathPartners }
func Bids() string         { return "/bids" }
func Lands() string        { return browse.PathLands }
func Collectibles() string { return "/collectibles" }
func Activity() string     { return "/activity" }

// Browse links the browse page, nil options link the bare path
func (b *Builder) Browse(o *browse.Options) string {
	return b.withQuery(browse.PathBrowse, o)
}

// CurrentAccount links the connected wallet page
func (b *Builder) CurrentAccount(o *browse.Options) string {
	return b.withQuery(browse.PathCurrentAccount, o)
}

// Account links the page of address
func (b *Builder) Account(address string, o *browse.Options) string {
	return b.withQuery(browse.PathAccounts+"/"+seg(address, ":address"), o)
}

func (b *Builder) withQuery(path string, o *browse.Options) string {
	if o == nil {
		return path
	}
	if q := b.codec.Encode(*o); q != "" {
		return path + "?" + q
	}
	return path
}

// NFT links a token detail page
func NFT(contract, tokenID string) string {
	return fmt.Sprintf("/contracts/%s/tokens/%s", seg(contract, ":contractAddress"), seg(tokenID, ":tokenId"))
}

// Item links an item detail page
func Item(contract, itemID string) string {
	return fmt.Sprintf("/contracts/%s/items/%s", seg(contract, ":contractAddress"), seg(itemID, ":itemId"))
}

// Parcel links a parcel by coordinates
func Parcel(x, y string) string {
	return fmt.Sprintf("/parcels/%s/%s/detail", seg(x, ":x"), seg(y, ":y"))
}

// Estate links an estate
func Estate(id string) string {
	return fmt.Sprintf("/estates/%s/detail", seg(id, ":estateId"))
}

// Buy links the purchase page of a token or item
// an unknown result type is a programming error and panics
func Buy(t catalog.ResultType, contract, tokenID string) string {
	return fmt.Sprintf("/contracts/%s/%s/%s/buy", seg(contract, ":contractAddress"), resource(t), seg(tokenID, ":tokenId"))
}

// Sell links the listing page of a token
func Sell(contract, tokenID string) string { return tokenAction(contract, tokenID, "sell") }

// Cancel links the listing cancel page of a token
func Cancel(contract, tokenID string) string { return tokenAction(contract, tokenID, "cancel") }

// Transfer links the transfer page of a token
func Transfer(contract, tokenID string) string { return tokenAction(contract, tokenID, "transfer") }

// Bid links the bid page of a token
func Bid(contract, tokenID string) string { return tokenAction(contract, tokenID, "bid") }

func tokenAction(contract, tokenID, action string) string {
	return NFT(contract, tokenID) + "/" + action
}

func resource(t catalog.ResultType) string {
	switch t {
	case catalog.ResultNFT:
		return "tokens"
	case catalog.ResultItem:
		return "items"
	}
	panic(fmt.Sprintf("locations: invalid result type %q", t))
}

// seg escapes one path segment, empty values keep the route placeholder
func seg(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return url.PathEscape(v)
}
