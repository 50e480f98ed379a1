package catalog

import (
	_ "embed"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	perr "marketbrowse/internal/platform/errors"
)

// DefaultMaxQuerySize caps a single fetch when the catalog says nothing
const DefaultMaxQuerySize = 1000

//go:embed catalog.yaml
var defaultYAML []byte

// VendorSettings are the per vendor knobs of the catalog file
type VendorSettings struct {
	MaxQuerySize int `yaml:"max_query_size" json:"max_query_size"`
}

// Contract is a whitelisted collection contract
type Contract struct {
	Name     string   `yaml:"name" json:"name"`
	Address  string   `yaml:"address" json:"address"`
	Vendor   Vendor   `yaml:"vendor" json:"vendor"`
	Category Category `yaml:"category" json:"category"`
}

// Catalog is the runtime vendor catalog
// the zero value behaves like an empty catalog with default limits
type Catalog struct {
	Vendors   map[Vendor]VendorSettings `yaml:"vendors" json:"vendors"`
	Disabled  []Vendor                  `yaml:"disabled" json:"disabled"`
	Contracts []Contract                `yaml:"contracts" json:"contracts"`
}

// Default returns the embedded catalog
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic("catalog: embedded catalog is invalid: " + err.Error())
	}
	return c
}

// Load reads a catalog file, an empty path yields the embedded default
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "catalog read %s", path)
	}
	return Parse(raw)
}

// Parse decodes and validates a catalog document
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "catalog parse")
	}
	for v, s := range c.Vendors {
		if !IsVendor(string(v)) {
			return nil, perr.InvalidArgf("catalog: unknown vendor %q", v)
		}
		if s.MaxQuerySize < 0 {
			return nil, perr.InvalidArgf("catalog: negative max_query_size for %q", v)
		}
	}
	for _, v := range c.Disabled {
		if !IsPartner(string(v)) {
			return nil, perr.InvalidArgf("catalog: only partners can be disabled, got %q", v)
		}
	}
	for i := range c.Contracts {
		ct := &c.Contracts[i]
		ct.Address = strings.ToLower(strings.TrimSpace(ct.Address))
		if ct.Address == "" {
			return nil, perr.InvalidArgf("catalog: contract %q has no address", ct.Name)
		}
		if ct.Vendor == "" {
			ct.Vendor = DefaultVendor
		}
	}
	return &c, nil
}

// MaxQuerySize is the largest page a single fetch may ask a vendor for
func (c *Catalog) MaxQuerySize(v Vendor) int {
	if c != nil {
		if s, ok := c.Vendors[v]; ok && s.MaxQuerySize > 0 {
			return s.MaxQuerySize
		}
	}
	return DefaultMaxQuerySize
}

// Partners returns enabled partner vendors
func (c *Catalog) Partners() []Vendor {
	if c == nil {
		return Partners()
	}
	return Partners(c.Disabled...)
}

// ContractAddresses returns the whitelist used when decoding contract filters
func (c *Catalog) ContractAddresses() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.Contracts))
	for _, ct := range c.Contracts {
		out = append(out, ct.Address)
	}
	return out
}

// IsContract reports whether addr is whitelisted
func (c *Catalog) IsContract(addr string) bool {
	return slices.Contains(c.ContractAddresses(), addr)
}

// WithDisabled returns a copy of the catalog with extra disabled vendors
// unknown names and the home vendor are ignored
func (c *Catalog) WithDisabled(names ...string) *Catalog {
	cp := Catalog{}
	if c != nil {
		cp = *c
	}
	cp.Disabled = slices.Clone(cp.Disabled)
	for _, n := range names {
		n = strings.TrimSpace(n)
		if IsPartner(n) && !slices.Contains(cp.Disabled, Vendor(n)) {
			cp.Disabled = append(cp.Disabled, Vendor(n))
		}
	}
	return &cp
}

// Enabled reports whether v is a known vendor that is not switched off
func (c *Catalog) Enabled(v Vendor) bool {
	if !IsVendor(string(v)) {
		return false
	}
	return c == nil || !slices.Contains(c.Disabled, v)
}
