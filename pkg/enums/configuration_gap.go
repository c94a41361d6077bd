package enums

// ConfigurationGap flags a price model whose required fields are missing.
type ConfigurationGap string

const (
	ConfigurationGapWholesalePriceMissing ConfigurationGap = "wholesale_price_missing"
	ConfigurationGapPriceTiersMissing     ConfigurationGap = "price_tiers_missing"
)

// String implements fmt.Stringer.
func (c ConfigurationGap) String() string {
	return string(c)
}
