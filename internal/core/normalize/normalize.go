// Package normalize cleans free text search input before it is stored in a browse query
// Pipeline order
// 1 Sanitize drop control characters and invalid UTF-8
// 2 Unicode NFKC normalization
// 3 Remove zero-width format characters
// 4 Width fold fullwidth forms to ASCII
// 5 Collapse whitespace to single spaces and trim
// 6 Cap the length in runes
//
// Case and accents are kept, the market API matches case insensitively on its side.
// The pipeline is idempotent so normalizing stored search text again leaves it unchanged.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// MaxSearchRunes caps the stored search text
const MaxSearchRunes = 128

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct {
	max int
}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
			norm.NFC,
		)
	},
}

// New constructs a Normalizer capped at MaxSearchRunes
func New() *Normalizer { return &Normalizer{max: MaxSearchRunes} }

// WithMax returns a copy capped at max runes, zero or less disables the cap
func (n *Normalizer) WithMax(max int) *Normalizer { return &Normalizer{max: max} }

// Search is the package level shorthand for New().Normalize
func Search(s string) string { return std.Normalize(s) }

var std = New()

// Normalize returns the normalized form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// the chain only fails on invalid input which Sanitize already removed
		ns = s
	}

	ns = strings.Join(strings.Fields(ns), " ")
	return truncate(ns, n.max)
}

// truncate cuts s to max runes and trims a trailing space left by the cut
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return strings.TrimRight(s[:i], " ")
		}
		count++
	}
	return s
}
