package pricing

import (
	"fmt"
	"sort"

	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const (
	RetailTierName    = "Retail"
	WholesaleTierName = "Wholesale"

	defaultMinWholesaleQuantity = 1
)

// PriceTier is one quantity break of a gradual wholesale schedule.
type PriceTier struct {
	Name        string          `json:"name"`
	MinQuantity int             `json:"min_quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Order       int             `json:"order"`
}

// PriceableProduct is the pricing-relevant subset of a product record.
// PriceModel is resolved at the store level; an empty value means the model is not known yet.
type PriceableProduct struct {
	ID                      uuid.UUID
	Name                    string
	RetailPrice             decimal.Decimal
	WholesalePrice          *decimal.Decimal
	MinWholesaleQuantity    *int
	PriceTiers              []PriceTier
	GradualWholesaleEnabled bool
	PriceModel              enums.PriceModel
}

// Validate rejects malformed pricing data. Every violation is reported, not just the first.
func (p PriceableProduct) Validate() error {
	var errs error
	if p.RetailPrice.IsNegative() {
		errs = multierr.Append(errs, fmt.Errorf("retail price must not be negative"))
	}
	if p.WholesalePrice != nil && p.WholesalePrice.IsNegative() {
		errs = multierr.Append(errs, fmt.Errorf("wholesale price must not be negative"))
	}
	if p.MinWholesaleQuantity != nil && *p.MinWholesaleQuantity < 1 {
		errs = multierr.Append(errs, fmt.Errorf("min wholesale quantity must be at least 1"))
	}
	if !p.PriceModel.IsUnknown() && !p.PriceModel.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("invalid price model %q", p.PriceModel))
	}
	errs = multierr.Append(errs, validateTiers(p.PriceTiers, p.RetailPrice))
	return validationError(errs)
}

// ValidateTiers checks a tier schedule on its own, as submitted by a store owner.
func ValidateTiers(tiers []PriceTier, retail decimal.Decimal) error {
	return validationError(validateTiers(tiers, retail))
}

func validateTiers(tiers []PriceTier, retail decimal.Decimal) error {
	var errs error
	seen := make(map[int]struct{}, len(tiers))
	for _, tier := range tiers {
		if tier.MinQuantity < 1 {
			errs = multierr.Append(errs, fmt.Errorf("tier %q: min quantity must be at least 1", tier.Name))
		}
		if tier.UnitPrice.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("tier %q: unit price must not be negative", tier.Name))
		}
		if tier.UnitPrice.GreaterThan(retail) {
			errs = multierr.Append(errs, fmt.Errorf("tier %q: unit price exceeds retail price", tier.Name))
		}
		if _, dup := seen[tier.MinQuantity]; dup {
			errs = multierr.Append(errs, fmt.Errorf("duplicate tier min quantity %d", tier.MinQuantity))
		}
		seen[tier.MinQuantity] = struct{}{}
	}

	sorted := sortedTiers(tiers)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].MinQuantity == sorted[i-1].MinQuantity {
			continue
		}
		if sorted[i].UnitPrice.GreaterThan(sorted[i-1].UnitPrice) {
			errs = multierr.Append(errs, fmt.Errorf("tier %q: unit price increases with quantity", sorted[i].Name))
		}
	}
	return errs
}

func validationError(errs error) error {
	if errs == nil {
		return nil
	}
	violations := multierr.Errors(errs)
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid pricing data").
		WithDetails(map[string]any{"violations": msgs})
}

func sortedTiers(tiers []PriceTier) []PriceTier {
	sorted := make([]PriceTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinQuantity < sorted[j].MinQuantity
	})
	return sorted
}

func (p PriceableProduct) minWholesaleQuantity() int {
	if p.MinWholesaleQuantity == nil {
		return defaultMinWholesaleQuantity
	}
	return *p.MinWholesaleQuantity
}

func (p PriceableProduct) usesGradualTiers() bool {
	return p.GradualWholesaleEnabled && len(p.PriceTiers) > 0
}

// WholesaleThreshold is the smallest quantity at which a wholesale price applies.
// It reports false when wholesale pricing cannot be reached for the product.
func (p PriceableProduct) WholesaleThreshold() (int, bool) {
	_, minQty, ok := p.entryWholesale()
	return minQty, ok
}

// entryWholesale returns the first price cheaper than retail and the quantity that unlocks it.
func (p PriceableProduct) entryWholesale() (decimal.Decimal, int, bool) {
	switch p.PriceModel {
	case enums.PriceModelWholesaleOnly:
		if p.WholesalePrice == nil {
			return decimal.Zero, 1, true
		}
		return *p.WholesalePrice, 1, true
	case enums.PriceModelRetailOnly:
		return decimal.Decimal{}, 0, false
	}

	if p.usesGradualTiers() {
		for _, tier := range sortedTiers(p.PriceTiers) {
			if tier.UnitPrice.LessThan(p.RetailPrice) {
				return tier.UnitPrice, tier.MinQuantity, true
			}
		}
		return decimal.Decimal{}, 0, false
	}

	if p.WholesalePrice == nil {
		return decimal.Decimal{}, 0, false
	}
	return *p.WholesalePrice, p.minWholesaleQuantity(), true
}
