package marketapi

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strconv"

	"marketbrowse/internal/core/query"
	perr "marketbrowse/internal/platform/errors"
)

// listing paths
const (
	PathTokens = "/v1/nfts"
	PathItems  = "/v1/items"
)

// maxBody caps a listing response
const maxBody = 8 << 20

// Fetch runs whichever pipeline r targets
func (c *Client) Fetch(ctx context.Context, r query.Request) (Page, error) {
	switch {
	case r.Tokens != nil:
		return c.FetchTokens(ctx, *r.Tokens)
	case r.Items != nil:
		return c.FetchItems(ctx, *r.Items)
	}
	return Page{}, perr.InvalidArgf("marketapi empty request")
}

// FetchTokens performs GET /v1/nfts
func (c *Client) FetchTokens(ctx context.Context, r query.TokensRequest) (Page, error) {
	return c.list(ctx, PathTokens, TokenValues(r))
}

// FetchItems performs GET /v1/items
func (c *Client) FetchItems(ctx context.Context, r query.ItemsRequest) (Page, error) {
	return c.list(ctx, PathItems, ItemValues(r))
}

func (c *Client) list(ctx context.Context, path string, q url.Values) (Page, error) {
	resp, err := c.Do(ctx, path, q)
	if err != nil {
		return Page{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("marketapi close body failed")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Page{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "marketapi read body failed")
	}
	var out Page
	if err := json.Unmarshal(b, &out); err != nil {
		return Page{}, perr.Wrapf(err, perr.ErrorCodeJSON, "marketapi decode %s failed", path)
	}
	if out.Assets == nil {
		out.Assets = []Asset{}
	}
	return out, nil
}

// TokenValues serializes a tokens request as query params
func TokenValues(r query.TokensRequest) url.Values {
	q := url.Values{}
	p := r.Params
	q.Set("vendor", string(r.Vendor))
	q.Set("first", strconv.Itoa(p.First))
	q.Set("skip", strconv.Itoa(p.Skip))
	q.Set("sortBy", p.OrderBy)
	q.Set("sortDirection", string(p.OrderDirection))
	if p.OnlyOnSale {
		q.Set("isOnSale", "true")
	}
	setIf(q, "owner", p.Address)
	setIf(q, "category", string(p.Category))
	setIf(q, "search", p.Search)

	f := r.Filters
	setBool(q, "isLand", f.IsLand)
	setBool(q, "isWearableHead", f.IsWearableHead)
	setBool(q, "isWearableAccessory", f.IsWearableAccessory)
	setBool(q, "isEdition", f.IsEdition)
	setBool(q, "isToken", f.IsToken)
	setIf(q, "wearableCategory", string(f.WearableCategory))
	for _, v := range f.WearableRarities {
		q.Add("rarity", string(v))
	}
	for _, v := range f.WearableGenders {
		q.Add("wearableGender", string(v))
	}
	for _, v := range f.Contracts {
		q.Add("contractAddress", v)
	}
	setIf(q, "network", string(f.Network))
	return q
}

// ItemValues serializes an items request as query params
func ItemValues(r query.ItemsRequest) url.Values {
	q := url.Values{}
	f := r.Filters
	q.Set("first", strconv.Itoa(f.First))
	q.Set("skip", strconv.Itoa(f.Skip))
	q.Set("sortBy", string(f.SortBy))
	setIf(q, "creator", f.Creator)
	if f.IsSoldOut {
		q.Set("isSoldOut", "true")
	}
	if f.IsOnSale {
		q.Set("isOnSale", "true")
	}
	setIf(q, "search", f.Search)
	if f.IsWearableHead {
		q.Set("isWearableHead", "true")
	}
	if f.IsWearableAccessory {
		q.Set("isWearableAccessory", "true")
	}
	setIf(q, "wearableCategory", string(f.WearableCategory))
	for _, v := range f.Rarities {
		q.Add("rarity", string(v))
	}
	for _, v := range f.WearableGenders {
		q.Add("wearableGender", string(v))
	}
	setIf(q, "contractAddress", f.ContractAddress)
	setIf(q, "itemId", f.ItemID)
	setIf(q, "network", string(f.Network))
	return q
}

func setIf(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func setBool(q url.Values, key string, v *bool) {
	if v != nil && *v {
		q.Set(key, "true")
	}
}
