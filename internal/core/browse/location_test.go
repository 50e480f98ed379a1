package browse

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"marketbrowse/internal/core/catalog"
)

func TestFromLocation_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		pathname string
		decoded  Options
		view     View
		want     Options
	}{
		{
			name:     "empty market query",
			pathname: PathPartners,
			view:     ViewMarket,
			want: Options{
				Vendor:     catalog.Decentraland,
				Section:    catalog.SectionAll,
				ResultType: catalog.ResultNFT,
				Page:       1,
				View:       ViewMarket,
				SortBy:     SortRecentlyListed,
				OnlyOnSale: Bool(true),
			},
		},
		{
			name:     "lands page defaults to land",
			pathname: PathLands,
			view:     ViewMarket,
			decoded:  Options{IsMap: Bool(true), IsFullscreen: Bool(true)},
			want: Options{
				Vendor:       catalog.Decentraland,
				Section:      catalog.SectionLand,
				ResultType:   catalog.ResultNFT,
				Page:         1,
				View:         ViewMarket,
				SortBy:       SortRecentlyListed,
				OnlyOnSale:   Bool(true),
				IsMap:        Bool(true),
				IsFullscreen: Bool(true),
			},
		},
		{
			name:     "browse page lists items",
			pathname: PathBrowse,
			view:     ViewMarket,
			decoded:  Options{Page: 3, SortBy: SortCheapest},
			want: Options{
				Vendor:     catalog.Decentraland,
				Section:    catalog.SectionAll,
				ResultType: catalog.ResultItem,
				Page:       3,
				View:       ViewMarket,
				SortBy:     SortCheapest,
				OnlyOnSale: Bool(true),
			},
		},
		{
			name:     "account view defaults",
			pathname: PathCurrentAccount,
			view:     ViewAccount,
			decoded:  Options{Vendor: catalog.SuperRare, IsFullscreen: Bool(true)},
			want: Options{
				Vendor:     catalog.SuperRare,
				Section:    catalog.SectionAll,
				ResultType: catalog.ResultNFT,
				Page:       1,
				View:       ViewAccount,
				SortBy:     SortNewest,
				OnlyOnSale: Bool(false),
			},
		},
		{
			name:     "fullscreen off without the map",
			pathname: PathLands,
			view:     ViewMarket,
			decoded:  Options{IsMap: Bool(false), IsFullscreen: Bool(true), OnlyOnSale: Bool(false)},
			want: Options{
				Vendor:       catalog.Decentraland,
				Section:      catalog.SectionLand,
				ResultType:   catalog.ResultNFT,
				Page:         1,
				View:         ViewMarket,
				SortBy:       SortRecentlyListed,
				OnlyOnSale:   Bool(false),
				IsMap:        Bool(false),
				IsFullscreen: Bool(false),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FromLocation(tc.pathname, tc.decoded, tc.view)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("FromLocation mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveAddress(t *testing.T) {
	tests := []struct {
		pathname string
		wallet   string
		want     string
	}{
		{PathCurrentAccount, "0xAbC", "0xabc"},
		{PathCurrentAccount, "", ""},
		{"/accounts/0xDEF", "0xabc", "0xdef"},
		{"/accounts/0xDEF/", "", "0xdef"},
		{"/accounts/", "0xabc", ""},
		{"/accounts/0x1/extra", "", ""},
		{PathBrowse, "0xabc", ""},
	}
	for _, tc := range tests {
		t.Run(tc.pathname, func(t *testing.T) {
			if got := ResolveAddress(tc.pathname, tc.wallet); got != tc.want {
				t.Fatalf("ResolveAddress(%q,%q) = %q want %q", tc.pathname, tc.wallet, got, tc.want)
			}
		})
	}
}

func TestViewFor(t *testing.T) {
	if ViewFor(PathCurrentAccount) != ViewAccount || ViewFor("/accounts/0x1") != ViewAccount {
		t.Fatalf("account pages should use the account view")
	}
	if ViewFor(PathBrowse) != ViewMarket || ViewFor(PathAccounts) != ViewMarket {
		t.Fatalf("other pages should use the market view")
	}
}

func TestLoad_URLFieldsWin(t *testing.T) {
	tests := []struct {
		name     string
		pathname string
		decoded  Options
		explicit View
		want     Options
	}{
		{
			name:     "unfilterable section keeps search and network",
			pathname: PathBrowse,
			decoded:  Options{Section: catalog.SectionAll, Search: String("dragon"), Network: catalog.NetworkMatic},
			want: Options{
				Vendor:     catalog.Decentraland,
				ResultType: catalog.ResultItem,
				Section:    catalog.SectionAll,
				Page:       1,
				View:       ViewMarket,
				SortBy:     SortRecentlyListed,
				OnlyOnSale: Bool(true),
				Search:     String("dragon"),
				Network:    catalog.NetworkMatic,
			},
		},
		{
			name:     "page in the url is not a page advance",
			pathname: PathCurrentAccount,
			decoded:  Options{Page: 3, WearableRarities: []catalog.Rarity{catalog.RarityRare}, Section: catalog.SectionWearablesHat},
			want: Options{
				Vendor:           catalog.Decentraland,
				ResultType:       catalog.ResultNFT,
				Section:          catalog.SectionWearablesHat,
				Page:             3,
				View:             ViewAccount,
				SortBy:           SortNewest,
				OnlyOnSale:       Bool(false),
				WearableRarities: []catalog.Rarity{catalog.RarityRare},
			},
		},
		{
			name:     "explicit view wins over the path",
			pathname: PathLands,
			decoded:  Options{},
			explicit: ViewAtlas,
			want: Options{
				Vendor:     catalog.Decentraland,
				ResultType: catalog.ResultNFT,
				Section:    catalog.SectionLand,
				Page:       1,
				View:       ViewAtlas,
				SortBy:     SortRecentlyListed,
				OnlyOnSale: Bool(true),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Load(tc.pathname, tc.decoded, tc.explicit)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Load mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
