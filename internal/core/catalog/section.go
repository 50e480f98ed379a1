package catalog

import "slices"

// Section is a vendor scoped leaf of the browse taxonomy
type Section string

// Sections shared by every vendor
const (
	SectionAll Section = "all"
)

// Decentraland sections
const (
	SectionLand                Section = "land"
	SectionParcels             Section = "parcels"
	SectionEstates             Section = "estates"
	SectionWearables           Section = "wearables"
	SectionWearablesHead       Section = "wearables_head"
	SectionWearablesEyebrows   Section = "wearables_eyebrows"
	SectionWearablesEyes       Section = "wearables_eyes"
	SectionWearablesFacialHair Section = "wearables_facial_hair"
	SectionWearablesHair       Section = "wearables_hair"
	SectionWearablesMouth      Section = "wearables_mouth"
	SectionWearablesUpperBody  Section = "wearables_upper_body"
	SectionWearablesLowerBody  Section = "wearables_lower_body"
	SectionWearablesFeet       Section = "wearables_feet"
	SectionWearablesAccesories Section = "wearables_accesories"
	SectionWearablesEarring    Section = "wearables_earring"
	SectionWearablesEyewear    Section = "wearables_eyewear"
	SectionWearablesHat        Section = "wearables_hat"
	SectionWearablesHelmet     Section = "wearables_helmet"
	SectionWearablesMask       Section = "wearables_mask"
	SectionWearablesTiara      Section = "wearables_tiara"
	SectionWearablesTopHead    Section = "wearables_top_head"
	SectionENS                 Section = "ens"
)

// Partner sections
const (
	SectionArt      Section = "art"
	SectionEditions Section = "editions"
	SectionTokens   Section = "tokens"
)

// entry is one row of a vendor taxonomy
// category and wearable are empty when the section maps to none
type entry struct {
	section  Section
	category Category
	wearable WearableCategory
}

// taxonomies is the explicit section table per vendor, in display order
var taxonomies = map[Vendor][]entry{
	Decentraland: {
		{section: SectionAll},
		{section: SectionLand},
		{section: SectionParcels, category: CategoryParcel},
		{section: SectionEstates, category: CategoryEstate},
		{section: SectionWearables, category: CategoryWearable},
		{section: SectionWearablesHead, category: CategoryWearable},
		{section: SectionWearablesEyebrows, category: CategoryWearable, wearable: WearableEyebrows},
		{section: SectionWearablesEyes, category: CategoryWearable, wearable: WearableEyes},
		{section: SectionWearablesFacialHair, category: CategoryWearable, wearable: WearableFacialHair},
		{section: SectionWearablesHair, category: CategoryWearable, wearable: WearableHair},
		{section: SectionWearablesMouth, category: CategoryWearable, wearable: WearableMouth},
		{section: SectionWearablesUpperBody, category: CategoryWearable, wearable: WearableUpperBody},
		{section: SectionWearablesLowerBody, category: CategoryWearable, wearable: WearableLowerBody},
		{section: SectionWearablesFeet, category: CategoryWearable, wearable: WearableFeet},
		{section: SectionWearablesAccesories, category: CategoryWearable},
		{section: SectionWearablesEarring, category: CategoryWearable, wearable: WearableEarring},
		{section: SectionWearablesEyewear, category: CategoryWearable, wearable: WearableEyewear},
		{section: SectionWearablesHat, category: CategoryWearable, wearable: WearableHat},
		{section: SectionWearablesHelmet, category: CategoryWearable, wearable: WearableHelmet},
		{section: SectionWearablesMask, category: CategoryWearable, wearable: WearableMask},
		{section: SectionWearablesTiara, category: CategoryWearable, wearable: WearableTiara},
		{section: SectionWearablesTopHead, category: CategoryWearable, wearable: WearableTopHead},
		{section: SectionENS, category: CategoryENS},
	},
	SuperRare: {
		{section: SectionAll},
		{section: SectionArt},
	},
	MakersPlace: {
		{section: SectionAll},
		{section: SectionArt},
	},
	KnownOrigin: {
		{section: SectionAll},
		{section: SectionArt},
		{section: SectionEditions},
		{section: SectionTokens},
	},
}

// categorized indexes the rows that carry a category, keyed by section
var categorized = func() map[Section]entry {
	m := map[Section]entry{}
	for _, rows := range taxonomies {
		for _, e := range rows {
			if e.category != "" {
				m[e.section] = e
			}
		}
	}
	return m
}()

// SectionInfo describes a section for listings
type SectionInfo struct {
	Section          Section          `json:"section"`
	Category         Category         `json:"category,omitempty"`
	WearableCategory WearableCategory `json:"wearable_category,omitempty"`
}

// Sections returns the ordered taxonomy of a vendor, nil when the vendor is unknown
func Sections(v Vendor) []SectionInfo {
	rows, ok := taxonomies[v]
	if !ok {
		return nil
	}
	out := make([]SectionInfo, 0, len(rows))
	for _, e := range rows {
		out = append(out, SectionInfo{Section: e.section, Category: e.category, WearableCategory: e.wearable})
	}
	return out
}

// IsSection reports whether s belongs to the taxonomy of vendor v
func IsSection(v Vendor, s string) bool {
	return slices.ContainsFunc(taxonomies[v], func(e entry) bool { return e.section == Section(s) })
}

// IsAnySection reports whether s belongs to any vendor taxonomy
func IsAnySection(s string) bool {
	for v := range taxonomies {
		if IsSection(v, s) {
			return true
		}
	}
	return false
}

// AllSection returns the aggregate section of a vendor
func AllSection(Vendor) Section { return SectionAll }

// CategoryOf maps a section to its category
// ok is false for sections without one, such as the aggregate land section
func CategoryOf(s Section) (Category, bool) {
	e, ok := categorized[s]
	return e.category, ok
}

// WearableCategoryOf maps a section to its wearable sub category
// aggregate wearable sections have a category but no sub category
func WearableCategoryOf(s Section) (WearableCategory, bool) {
	e, ok := categorized[s]
	if !ok || e.wearable == "" {
		return "", false
	}
	return e.wearable, true
}

// SectionOf is the inverse lookup of CategoryOf and WearableCategoryOf
// an empty wearable picks the aggregate section of the category
func SectionOf(c Category, w WearableCategory) (Section, bool) {
	for _, e := range taxonomies[Decentraland] {
		if e.category != c || e.category == "" {
			continue
		}
		if e.wearable == w {
			return e.section, true
		}
	}
	return "", false
}

// SameCategory reports whether two sections derive the same category
// two sections without a category are the same
func SameCategory(a, b Section) bool {
	ca, _ := CategoryOf(a)
	cb, _ := CategoryOf(b)
	return ca == cb
}

// HasPrimarySales reports whether a section lists primary market items
func HasPrimarySales(s Section) bool {
	c, ok := CategoryOf(s)
	return ok && c == CategoryWearable
}
