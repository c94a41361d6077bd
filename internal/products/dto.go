package product

import (
	"sort"

	"github.com/angelmondragon/storefront-pricing/internal/pricing"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceTierInput is one tier of an owner-submitted schedule.
type PriceTierInput struct {
	Name        string
	MinQuantity int
	UnitPrice   decimal.Decimal
	Order       *int
}

// PriceTierDTO exposes a persisted tier.
type PriceTierDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	MinQuantity int             `json:"min_quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Order       int             `json:"order"`
}

// PriceTiersDTO is the schedule of a product together with its gradual flag.
type PriceTiersDTO struct {
	ProductID               uuid.UUID      `json:"product_id"`
	GradualWholesaleEnabled bool           `json:"gradual_wholesale_enabled"`
	Tiers                   []PriceTierDTO `json:"tiers"`
}

// VariationDTO identifies a purchasable variation of a product.
type VariationDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
}

// TierFromModel maps a persisted tier.
func TierFromModel(m models.PriceTier) PriceTierDTO {
	return PriceTierDTO{
		ID:          m.ID,
		Name:        m.Name,
		MinQuantity: m.MinQuantity,
		UnitPrice:   m.UnitPrice,
		Order:       m.SortOrder,
	}
}

// TiersFromModels maps tiers ordered by min quantity, highest first.
func TiersFromModels(tiers []models.PriceTier) []PriceTierDTO {
	out := make([]PriceTierDTO, 0, len(tiers))
	for _, tier := range tiers {
		out = append(out, TierFromModel(tier))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MinQuantity > out[j].MinQuantity
	})
	return out
}

// ToPriceable builds the pricing view of a product under the store's price model.
func ToPriceable(m *models.Product, model enums.PriceModel) pricing.PriceableProduct {
	tiers := make([]pricing.PriceTier, 0, len(m.PriceTiers))
	for _, tier := range m.PriceTiers {
		tiers = append(tiers, pricing.PriceTier{
			Name:        tier.Name,
			MinQuantity: tier.MinQuantity,
			UnitPrice:   tier.UnitPrice,
			Order:       tier.SortOrder,
		})
	}
	return pricing.PriceableProduct{
		ID:                      m.ID,
		Name:                    m.Name,
		RetailPrice:             m.RetailPrice,
		WholesalePrice:          m.WholesalePrice,
		MinWholesaleQuantity:    m.MinWholesaleQuantity,
		PriceTiers:              tiers,
		GradualWholesaleEnabled: m.GradualWholesaleEnabled,
		PriceModel:              model,
	}
}

func tierInputsToPricing(inputs []PriceTierInput) []pricing.PriceTier {
	tiers := make([]pricing.PriceTier, 0, len(inputs))
	for i, input := range inputs {
		tiers = append(tiers, pricing.PriceTier{
			Name:        input.Name,
			MinQuantity: input.MinQuantity,
			UnitPrice:   input.UnitPrice,
			Order:       orderOrIndex(input.Order, i),
		})
	}
	return tiers
}

func orderOrIndex(order *int, index int) int {
	if order != nil {
		return *order
	}
	return index
}
