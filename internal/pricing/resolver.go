package pricing

import (
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	percentPrecision = int32(2)

	msgUnknownModel   = "price model unknown"
	msgQuantityNotPos = "quantity must be positive"
)

var hundred = decimal.NewFromInt(100)

// NextTierHint tells the shopper how many more units reach a cheaper tier.
type NextTierHint struct {
	QuantityNeeded          int             `json:"quantity_needed"`
	TierName                string          `json:"tier_name"`
	TargetMinQuantity       int             `json:"target_min_quantity"`
	PotentialSavingsPerUnit decimal.Decimal `json:"potential_savings_per_unit"`
}

// PotentialSavings is the per-unit saving multiplied by the missing quantity.
func (h NextTierHint) PotentialSavings() decimal.Decimal {
	return h.PotentialSavingsPerUnit.Mul(decimal.NewFromInt(int64(h.QuantityNeeded)))
}

// PricedResult is the resolved price of a product at a quantity.
type PricedResult struct {
	UnitPrice         decimal.Decimal          `json:"unit_price"`
	Quantity          int                      `json:"quantity"`
	LineTotal         decimal.Decimal          `json:"line_total"`
	TierName          string                   `json:"tier_name"`
	TierMinQuantity   int                      `json:"tier_min_quantity"`
	Wholesale         bool                     `json:"wholesale"`
	SavingsTotal      decimal.Decimal          `json:"savings_total"`
	SavingsPercentage decimal.Decimal          `json:"savings_percentage"`
	NextTierHint      *NextTierHint            `json:"next_tier_hint,omitempty"`
	Gaps              []enums.ConfigurationGap `json:"configuration_gaps,omitempty"`
}

// HasGap reports whether the result was computed from an incomplete configuration.
func (r PricedResult) HasGap() bool {
	return len(r.Gaps) > 0
}

// ResolvePrice selects the effective unit price of product at quantity.
// Malformed input fails before anything is computed; a missing field required by the
// price model resolves to a zero or retail price and is reported in Gaps.
func ResolvePrice(product PriceableProduct, quantity int) (PricedResult, error) {
	if quantity <= 0 {
		return PricedResult{}, pkgerrors.New(pkgerrors.CodeValidation, msgQuantityNotPos).
			WithDetails(map[string]any{"quantity": quantity})
	}
	if err := product.Validate(); err != nil {
		return PricedResult{}, err
	}
	if product.PriceModel.IsUnknown() {
		return PricedResult{}, pkgerrors.New(pkgerrors.CodeStateConflict, msgUnknownModel)
	}

	switch {
	case product.PriceModel == enums.PriceModelWholesaleOnly:
		return resolveWholesaleOnly(product, quantity), nil
	case product.PriceModel == enums.PriceModelRetailOnly:
		return resolveRetail(product, quantity), nil
	case product.usesGradualTiers():
		return resolveGradual(product, quantity), nil
	default:
		return resolveSimple(product, quantity), nil
	}
}

// ResolveRetail prices product at its retail price regardless of model or tiers.
func ResolveRetail(product PriceableProduct, quantity int) (PricedResult, error) {
	if quantity <= 0 {
		return PricedResult{}, pkgerrors.New(pkgerrors.CodeValidation, msgQuantityNotPos).
			WithDetails(map[string]any{"quantity": quantity})
	}
	if err := product.Validate(); err != nil {
		return PricedResult{}, err
	}
	return resolveRetail(product, quantity), nil
}

func resolveWholesaleOnly(product PriceableProduct, quantity int) PricedResult {
	res := PricedResult{
		Quantity:        quantity,
		TierName:        WholesaleTierName,
		TierMinQuantity: 1,
		Wholesale:       true,
	}
	// A zero wholesale price is indistinguishable from an unset one, so both are flagged.
	if product.WholesalePrice == nil || product.WholesalePrice.IsZero() {
		res.UnitPrice = decimal.Zero
		res.Gaps = append(res.Gaps, enums.ConfigurationGapWholesalePriceMissing)
	} else {
		res.UnitPrice = *product.WholesalePrice
	}
	res.LineTotal = lineTotal(res.UnitPrice, quantity)
	res.SavingsTotal = decimal.Zero
	res.SavingsPercentage = decimal.Zero
	return res
}

func resolveRetail(product PriceableProduct, quantity int) PricedResult {
	return PricedResult{
		UnitPrice:         product.RetailPrice,
		Quantity:          quantity,
		LineTotal:         lineTotal(product.RetailPrice, quantity),
		TierName:          RetailTierName,
		TierMinQuantity:   1,
		SavingsTotal:      decimal.Zero,
		SavingsPercentage: decimal.Zero,
	}
}

func resolveGradual(product PriceableProduct, quantity int) PricedResult {
	current := PriceTier{Name: RetailTierName, MinQuantity: 1, UnitPrice: product.RetailPrice}
	if tier, ok := selectTier(quantity, product.PriceTiers); ok {
		current = tier
	}

	res := priced(product, quantity, current.UnitPrice)
	res.TierName = current.Name
	res.TierMinQuantity = current.MinQuantity
	res.Wholesale = current.UnitPrice.LessThan(product.RetailPrice)
	res.NextTierHint = nextTierHint(quantity, current.UnitPrice, product.PriceTiers)
	return res
}

func resolveSimple(product PriceableProduct, quantity int) PricedResult {
	threshold := product.minWholesaleQuantity()

	var res PricedResult
	switch {
	case product.WholesalePrice != nil && quantity >= threshold:
		res = priced(product, quantity, *product.WholesalePrice)
		res.TierName = WholesaleTierName
		res.TierMinQuantity = threshold
		res.Wholesale = true
	default:
		res = priced(product, quantity, product.RetailPrice)
		res.TierName = RetailTierName
		res.TierMinQuantity = 1
		if product.WholesalePrice != nil && product.WholesalePrice.LessThan(product.RetailPrice) {
			res.NextTierHint = &NextTierHint{
				QuantityNeeded:          threshold - quantity,
				TierName:                WholesaleTierName,
				TargetMinQuantity:       threshold,
				PotentialSavingsPerUnit: product.RetailPrice.Sub(*product.WholesalePrice),
			}
		}
	}

	if product.WholesalePrice == nil {
		res.Gaps = append(res.Gaps, enums.ConfigurationGapWholesalePriceMissing)
	}
	if product.PriceModel == enums.PriceModelGradualWholesale {
		res.Gaps = append(res.Gaps, enums.ConfigurationGapPriceTiersMissing)
	}
	return res
}

// selectTier returns the tier with the largest MinQuantity not above quantity.
func selectTier(quantity int, tiers []PriceTier) (PriceTier, bool) {
	var (
		best  PriceTier
		found bool
	)
	for _, tier := range tiers {
		if tier.MinQuantity > quantity {
			continue
		}
		if !found || tier.MinQuantity > best.MinQuantity {
			best = tier
			found = true
		}
	}
	return best, found
}

// nextTierHint points at the nearest higher tier that is cheaper than the current price.
func nextTierHint(quantity int, current decimal.Decimal, tiers []PriceTier) *NextTierHint {
	for _, tier := range sortedTiers(tiers) {
		if tier.MinQuantity <= quantity || !tier.UnitPrice.LessThan(current) {
			continue
		}
		return &NextTierHint{
			QuantityNeeded:          tier.MinQuantity - quantity,
			TierName:                tier.Name,
			TargetMinQuantity:       tier.MinQuantity,
			PotentialSavingsPerUnit: current.Sub(tier.UnitPrice),
		}
	}
	return nil
}

func priced(product PriceableProduct, quantity int, unit decimal.Decimal) PricedResult {
	savings, pct := savingsFor(product.RetailPrice, unit, quantity)
	return PricedResult{
		UnitPrice:         unit,
		Quantity:          quantity,
		LineTotal:         lineTotal(unit, quantity),
		SavingsTotal:      savings,
		SavingsPercentage: pct,
	}
}

func lineTotal(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

func savingsFor(retail, unit decimal.Decimal, quantity int) (decimal.Decimal, decimal.Decimal) {
	qty := decimal.NewFromInt(int64(quantity))
	savings := retail.Sub(unit).Mul(qty)
	if savings.IsNegative() {
		savings = decimal.Zero
	}
	base := retail.Mul(qty)
	if base.IsZero() {
		return savings, decimal.Zero
	}
	return savings, clampPercent(savings.Div(base).Mul(hundred).Round(percentPrecision))
}

func clampPercent(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}
