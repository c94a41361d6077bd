package storefront

import (
	"github.com/angelmondragon/storefront-pricing/internal/catalogmode"
	"github.com/angelmondragon/storefront-pricing/internal/pricing"
	"github.com/angelmondragon/storefront-pricing/internal/stores"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteInput identifies the product and quantity a shopper is pricing.
type QuoteInput struct {
	StoreID   uuid.UUID
	SessionID string
	ProductID uuid.UUID
	Quantity  int
}

// Quote is a resolved price together with the catalog it was priced against.
type Quote struct {
	ProductID   uuid.UUID            `json:"product_id"`
	ProductName string               `json:"product_name"`
	PriceModel  enums.PriceModel     `json:"price_model"`
	CatalogMode enums.CatalogMode    `json:"catalog_mode"`
	Basis       enums.PriceBasis     `json:"basis"`
	RetailPrice decimal.Decimal      `json:"retail_price"`
	Result      pricing.PricedResult `json:"result"`

	// WholesaleThreshold is the quantity that unlocks wholesale pricing in the
	// shopper's catalog, 0 when no quantity does.
	WholesaleThreshold int  `json:"wholesale_threshold,omitempty"`
	HasWholesalePrice  bool `json:"has_wholesale_price"`
}

// BelowWholesale reports whether the line sits at retail while more units would unlock wholesale.
func (q Quote) BelowWholesale() bool {
	return !q.Result.Wholesale &&
		q.HasWholesalePrice &&
		q.WholesaleThreshold > 0 &&
		q.Result.Quantity < q.WholesaleThreshold
}

// PricingContext is the store state a quote depends on besides the product itself.
// Loading it once lets a cart price every line against the same settings.
type PricingContext struct {
	Settings   stores.StoreSettings
	Preference *enums.PriceBasis
}

// Quote prices product at quantity under the context's catalog policy.
func (c PricingContext) Quote(product pricing.PriceableProduct, quantity int) (Quote, error) {
	product.PriceModel = c.Settings.PriceModel

	threshold, reachable := product.WholesaleThreshold()
	if !reachable {
		threshold = 0
	}
	cfg := c.Settings.CatalogMode
	basis := catalogmode.EffectivePriceBasis(cfg, c.Preference, quantity, threshold)

	var (
		result pricing.PricedResult
		err    error
	)
	switch {
	case product.PriceModel == enums.PriceModelWholesaleOnly:
		basis = enums.PriceBasisWholesale
		result, err = pricing.ResolvePrice(product, quantity)
	case product.PriceModel == enums.PriceModelRetailOnly:
		basis = enums.PriceBasisRetail
		result, err = pricing.ResolvePrice(product, quantity)
	case c.retailCatalog(product.PriceModel, basis):
		// The retail catalog never unlocks wholesale, whatever the quantity.
		threshold = 0
		result, err = pricing.ResolveRetail(product, quantity)
	default:
		result, err = pricing.ResolvePrice(product, quantity)
	}
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		ProductID:          product.ID,
		ProductName:        product.Name,
		PriceModel:         product.PriceModel,
		CatalogMode:        cfg.Mode,
		Basis:              basis,
		RetailPrice:        product.RetailPrice,
		Result:             result,
		WholesaleThreshold: threshold,
		HasWholesalePrice:  reachable,
	}, nil
}

// Display derives the product card price under the context's catalog policy.
func (c PricingContext) Display(product pricing.PriceableProduct) (pricing.DisplayPrice, error) {
	product.PriceModel = c.Settings.PriceModel
	threshold, reachable := product.WholesaleThreshold()
	if !reachable {
		threshold = 0
	}
	// The card shows the price of a single unit.
	basis := catalogmode.EffectivePriceBasis(c.Settings.CatalogMode, c.Preference, 1, threshold)
	display, err := pricing.Display(product, basis)
	if err != nil {
		return pricing.DisplayPrice{}, err
	}
	if c.retailCatalog(product.PriceModel, basis) {
		display.WholesalePrice = nil
		display.MinWholesaleQuantity = nil
	}
	return display, nil
}

// retailCatalog reports whether a shopper on basis is pinned to retail prices.
// Only hybrid stores let quantity move a retail shopper onto wholesale.
func (c PricingContext) retailCatalog(model enums.PriceModel, basis enums.PriceBasis) bool {
	switch {
	case model.IsUnknown(),
		model == enums.PriceModelWholesaleOnly,
		model == enums.PriceModelRetailOnly:
		return false
	case c.Settings.CatalogMode.Mode == enums.CatalogModeHybrid:
		return false
	default:
		return basis != enums.PriceBasisWholesale
	}
}
