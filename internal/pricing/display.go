package pricing

import (
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	"github.com/shopspring/decimal"
)

// DisplayPrice is the price shown on a product card before a quantity is chosen.
// Pending is set while the store's price model is unknown; no price is guessed then.
type DisplayPrice struct {
	Pending              bool                     `json:"pending"`
	PriceModel           enums.PriceModel         `json:"price_model,omitempty"`
	Basis                enums.PriceBasis         `json:"basis,omitempty"`
	Price                *decimal.Decimal         `json:"price,omitempty"`
	CompareAtPrice       *decimal.Decimal         `json:"compare_at_price,omitempty"`
	WholesalePrice       *decimal.Decimal         `json:"wholesale_price,omitempty"`
	MinWholesaleQuantity *int                     `json:"min_wholesale_quantity,omitempty"`
	Gaps                 []enums.ConfigurationGap `json:"configuration_gaps,omitempty"`
}

// Display derives the product card price for the given basis.
func Display(product PriceableProduct, basis enums.PriceBasis) (DisplayPrice, error) {
	if product.PriceModel.IsUnknown() {
		return DisplayPrice{Pending: true}, nil
	}
	if err := product.Validate(); err != nil {
		return DisplayPrice{}, err
	}

	out := DisplayPrice{PriceModel: product.PriceModel, Basis: basis}
	retail := product.RetailPrice

	switch product.PriceModel {
	case enums.PriceModelWholesaleOnly:
		res := resolveWholesaleOnly(product, 1)
		out.Basis = enums.PriceBasisWholesale
		out.Price = &res.UnitPrice
		out.Gaps = res.Gaps
		return out, nil
	case enums.PriceModelRetailOnly:
		out.Basis = enums.PriceBasisRetail
		out.Price = &retail
		return out, nil
	}

	entry, minQty, ok := product.entryWholesale()
	if !ok {
		out.Basis = enums.PriceBasisRetail
		out.Price = &retail
		if product.WholesalePrice == nil && !product.usesGradualTiers() {
			out.Gaps = append(out.Gaps, enums.ConfigurationGapWholesalePriceMissing)
		}
		return out, nil
	}

	out.MinWholesaleQuantity = &minQty
	if basis == enums.PriceBasisWholesale {
		out.Price = &entry
		out.CompareAtPrice = &retail
		return out, nil
	}
	out.Price = &retail
	out.WholesalePrice = &entry
	return out, nil
}
