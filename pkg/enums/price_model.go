package enums

import "fmt"

// PriceModel is the store-level pricing strategy applied to every product.
type PriceModel string

const (
	PriceModelRetailOnly       PriceModel = "retail_only"
	PriceModelWholesaleOnly    PriceModel = "wholesale_only"
	PriceModelSimpleWholesale  PriceModel = "simple_wholesale"
	PriceModelGradualWholesale PriceModel = "gradual_wholesale"
)

var validPriceModels = []PriceModel{
	PriceModelRetailOnly,
	PriceModelWholesaleOnly,
	PriceModelSimpleWholesale,
	PriceModelGradualWholesale,
}

// String implements fmt.Stringer.
func (p PriceModel) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PriceModel.
func (p PriceModel) IsValid() bool {
	for _, candidate := range validPriceModels {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsUnknown reports whether the store has not configured a price model yet.
func (p PriceModel) IsUnknown() bool {
	return p == ""
}

// ParsePriceModel converts raw input into a PriceModel.
func ParsePriceModel(value string) (PriceModel, error) {
	for _, candidate := range validPriceModels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price model %q", value)
}
