package marketapi

import "marketbrowse/internal/core/catalog"

// Asset is a partial listing document with the fields we use
type Asset struct {
	ID              string         `json:"id"`
	ContractAddress string         `json:"contractAddress"`
	TokenID         string         `json:"tokenId,omitempty"`
	ItemID          string         `json:"itemId,omitempty"`
	Name            string         `json:"name"`
	Category        string         `json:"category,omitempty"`
	Vendor          catalog.Vendor `json:"vendor,omitempty"`
	Owner           string         `json:"owner,omitempty"`
	Price           string         `json:"price,omitempty"`
	Network         string         `json:"network,omitempty"`
}

// Page is one listing response
type Page struct {
	Assets []Asset `json:"assets"`
	Total  int     `json:"total"`
}

// IDs returns the asset ids in listing order
func (p Page) IDs() []string {
	out := make([]string, len(p.Assets))
	for i, a := range p.Assets {
		out[i] = a.ID
	}
	return out
}
