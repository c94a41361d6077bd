package enums

import "fmt"

// CartLineStatus tracks whether a cart line could be priced on the last read.
// Unavailable lines point at a product that is gone or inactive; pending lines
// belong to a store without a price model.
type CartLineStatus string

const (
	CartLineStatusPriced       CartLineStatus = "priced"
	CartLineStatusUnavailable  CartLineStatus = "unavailable"
	CartLineStatusPricePending CartLineStatus = "price_pending"
)

var validCartLineStatuses = []CartLineStatus{
	CartLineStatusPriced,
	CartLineStatusUnavailable,
	CartLineStatusPricePending,
}

// String implements fmt.Stringer.
func (c CartLineStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is known.
func (c CartLineStatus) IsValid() bool {
	for _, candidate := range validCartLineStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartLineStatus converts raw input into a CartLineStatus.
func ParseCartLineStatus(value string) (CartLineStatus, error) {
	for _, candidate := range validCartLineStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart line status %q", value)
}
