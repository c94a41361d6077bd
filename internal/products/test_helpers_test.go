package product

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront-pricing/internal/stores"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type stubSettings struct {
	settings stores.StoreSettings
	err      error
}

func (s stubSettings) GetSettings(ctx context.Context, storeID uuid.UUID) (stores.StoreSettings, error) {
	if s.err != nil {
		return stores.StoreSettings{}, s.err
	}
	out := s.settings
	out.StoreID = storeID
	return out, nil
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func mustCreateTestStore(t *testing.T, db *gorm.DB) *models.Store {
	t.Helper()
	model := enums.PriceModelGradualWholesale
	store := &models.Store{
		Slug:                   "store-" + uuid.NewString()[:8],
		Name:                   "Repo Store",
		PriceModel:             &model,
		CatalogMode:            enums.CatalogModeHybrid,
		RetailCatalogActive:    true,
		WholesaleCatalogActive: true,
	}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

func mustCreateTestProduct(t *testing.T, db *gorm.DB, storeID uuid.UUID) *models.Product {
	t.Helper()
	wholesale := dec("80")
	minQty := 10
	product := &models.Product{
		StoreID:                 storeID,
		Name:                    "Camiseta Básica",
		RetailPrice:             dec("100"),
		WholesalePrice:          &wholesale,
		MinWholesaleQuantity:    &minQty,
		GradualWholesaleEnabled: true,
		IsActive:                true,
		PriceTiers: []models.PriceTier{
			{Name: "Atacado 5+", MinQuantity: 5, UnitPrice: dec("90"), SortOrder: 0},
			{Name: "Atacado 20+", MinQuantity: 20, UnitPrice: dec("75"), SortOrder: 1},
		},
		Variations: []models.ProductVariation{
			{Name: "Azul M", IsActive: true},
		},
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
