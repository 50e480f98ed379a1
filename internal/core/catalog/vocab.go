package catalog

import "slices"

// Category is the vendor agnostic content type derived from a section
type Category string

// Categories
const (
	CategoryParcel   Category = "parcel"
	CategoryEstate   Category = "estate"
	CategoryWearable Category = "wearable"
	CategoryENS      Category = "ens"
)

// Filterable reports whether the category carries array and search filters
// only wearables do today
func (c Category) Filterable() bool { return c == CategoryWearable }

// WearableCategory is the body slot sub filter of the wearable category
type WearableCategory string

// Wearable categories
const (
	WearableEyebrows   WearableCategory = "eyebrows"
	WearableEyes       WearableCategory = "eyes"
	WearableFacialHair WearableCategory = "facial_hair"
	WearableHair       WearableCategory = "hair"
	WearableMouth      WearableCategory = "mouth"
	WearableUpperBody  WearableCategory = "upper_body"
	WearableLowerBody  WearableCategory = "lower_body"
	WearableFeet       WearableCategory = "feet"
	WearableEarring    WearableCategory = "earring"
	WearableEyewear    WearableCategory = "eyewear"
	WearableHat        WearableCategory = "hat"
	WearableHelmet     WearableCategory = "helmet"
	WearableMask       WearableCategory = "mask"
	WearableTiara      WearableCategory = "tiara"
	WearableTopHead    WearableCategory = "top_head"
)

// Rarity is a wearable rarity tier
type Rarity string

// Rarities, rarest first
const (
	RarityUnique    Rarity = "unique"
	RarityMythic    Rarity = "mythic"
	RarityLegendary Rarity = "legendary"
	RarityEpic      Rarity = "epic"
	RarityRare      Rarity = "rare"
	RarityUncommon  Rarity = "uncommon"
	RarityCommon    Rarity = "common"
)

// Gender is a wearable body shape
type Gender string

// Genders
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Network is a target chain
type Network string

// Networks
const (
	NetworkEthereum Network = "ETHEREUM"
	NetworkMatic    Network = "MATIC"
)

// ResultType tells listable items apart from owned tokens
type ResultType string

// Result types
const (
	ResultNFT  ResultType = "nft"
	ResultItem ResultType = "item"
)

var (
	rarities    = []Rarity{RarityUnique, RarityMythic, RarityLegendary, RarityEpic, RarityRare, RarityUncommon, RarityCommon}
	genders     = []Gender{GenderMale, GenderFemale}
	networks    = []Network{NetworkEthereum, NetworkMatic}
	resultTypes = []ResultType{ResultNFT, ResultItem}
)

// Rarities returns every rarity tier
func Rarities() []Rarity { return slices.Clone(rarities) }

// Genders returns every gender
func Genders() []Gender { return slices.Clone(genders) }

// Networks returns every network
func Networks() []Network { return slices.Clone(networks) }

// IsRarity reports whether s is a known rarity
func IsRarity(s string) bool { return slices.Contains(rarities, Rarity(s)) }

// IsGender reports whether s is a known gender
func IsGender(s string) bool { return slices.Contains(genders, Gender(s)) }

// IsNetwork reports whether s is a known network
func IsNetwork(s string) bool { return slices.Contains(networks, Network(s)) }

// IsResultType reports whether s is a known result type
func IsResultType(s string) bool { return slices.Contains(resultTypes, ResultType(s)) }
