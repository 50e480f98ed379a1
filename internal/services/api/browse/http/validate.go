package http

import (
	"marketbrowse/internal/core/browse"
	"marketbrowse/internal/core/catalog"
	"marketbrowse/internal/platform/net/http/bind"
)

// tags used by the browse DTOs, derived from the catalog so new vendors need no tag edits
func init() {
	bind.MustRegister("browse_view", "{0} must be one of market, account, atlas or load_more",
		func(s string) bool { return browse.View(s).Valid() })
	bind.MustRegister("vendor", "{0} must be a known vendor", catalog.IsVendor)
}
