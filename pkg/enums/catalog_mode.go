package enums

import "fmt"

// CatalogMode controls how retail and wholesale catalogs are exposed on a storefront.
type CatalogMode string

const (
	CatalogModeSeparated CatalogMode = "separated"
	CatalogModeHybrid    CatalogMode = "hybrid"
	CatalogModeToggle    CatalogMode = "toggle"
)

var validCatalogModes = []CatalogMode{
	CatalogModeSeparated,
	CatalogModeHybrid,
	CatalogModeToggle,
}

// String implements fmt.Stringer.
func (c CatalogMode) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CatalogMode.
func (c CatalogMode) IsValid() bool {
	for _, candidate := range validCatalogModes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCatalogMode converts raw input into a CatalogMode.
func ParseCatalogMode(value string) (CatalogMode, error) {
	for _, candidate := range validCatalogModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog mode %q", value)
}
