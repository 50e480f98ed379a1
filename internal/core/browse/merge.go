package browse

// Merge composes option layers ordered from strongest to weakest
// a field set on a stronger layer wins, unset fields fall through to weaker ones
// the result never aliases any input
func Merge(layers ...Options) Options {
	var out Options
	for i := len(layers) - 1; i >= 0; i-- {
		out = overlay(out, layers[i])
	}
	return out.Clone()
}

// overlay lays top over base field by field
func overlay(base, top Options) Options {
	return Options{
		Vendor:           pick(top.Vendor, base.Vendor),
		ResultType:       pick(top.ResultType, base.ResultType),
		Section:          pick(top.Section, base.Section),
		Page:             pick(top.Page, base.Page),
		View:             pick(top.View, base.View),
		SortBy:           pick(top.SortBy, base.SortBy),
		Search:           pickPtr(top.Search, base.Search),
		OnlyOnSale:       pickPtr(top.OnlyOnSale, base.OnlyOnSale),
		IsMap:            pickPtr(top.IsMap, base.IsMap),
		IsFullscreen:     pickPtr(top.IsFullscreen, base.IsFullscreen),
		WearableRarities: pickSlice(top.WearableRarities, base.WearableRarities),
		WearableGenders:  pickSlice(top.WearableGenders, base.WearableGenders),
		Contracts:        pickSlice(top.Contracts, base.Contracts),
		Network:          pick(top.Network, base.Network),
		Address:          pick(top.Address, base.Address),
		IsSoldOut:        pickPtr(top.IsSoldOut, base.IsSoldOut),
		ItemID:           pick(top.ItemID, base.ItemID),
	}
}

func pick[T comparable](top, base T) T {
	var zero T
	if top != zero {
		return top
	}
	return base
}

func pickPtr[T any](top, base *T) *T {
	if top != nil {
		return top
	}
	return base
}

func pickSlice[T any](top, base []T) []T {
	if top != nil {
		return top
	}
	return base
}
