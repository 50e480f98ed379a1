// Package catalog holds the vendor taxonomy and the filter vocabularies used while browsing
package catalog

import (
	"fmt"
	"slices"
)

// Vendor identifies a marketplace data source
type Vendor string

// Known vendors
const (
	Decentraland Vendor = "decentraland"
	SuperRare    Vendor = "super_rare"
	MakersPlace  Vendor = "makers_place"
	KnownOrigin  Vendor = "known_origin"
)

// DefaultVendor is the home vendor used when nothing else is known
const DefaultVendor = Decentraland

var vendors = []Vendor{Decentraland, SuperRare, MakersPlace, KnownOrigin}

// Vendors returns every known vendor in display order
func Vendors() []Vendor { return slices.Clone(vendors) }

// IsVendor reports whether s names a known vendor
func IsVendor(s string) bool { return slices.Contains(vendors, Vendor(s)) }

// IsPartner reports whether s is a known vendor other than the home vendor
func IsPartner(s string) bool { return IsVendor(s) && Vendor(s) != DefaultVendor }

// Partners returns the partner vendors minus the disabled ones
func Partners(disabled ...Vendor) []Vendor {
	out := make([]Vendor, 0, len(vendors))
	for _, v := range vendors {
		if IsPartner(string(v)) && !slices.Contains(disabled, v) {
			out = append(out, v)
		}
	}
	return out
}

// OriginURL returns the public site of a vendor
// an unknown vendor is a programming error and panics
func OriginURL(v Vendor) string {
	switch v {
	case Decentraland:
		return "https://market.decentraland.org"
	case SuperRare:
		return "https://www.superrare.co"
	case MakersPlace:
		return "https://makersplace.com"
	case KnownOrigin:
		return "https://knownorigin.io"
	default:
		panic(fmt.Sprintf("catalog: origin url for vendor %q not implemented", v))
	}
}
