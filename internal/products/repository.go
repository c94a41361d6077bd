package product

import (
	"context"

	"github.com/angelmondragon/storefront-pricing/internal/repo"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles product pricing persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to product operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// Create persists a product with any tiers and variations attached to it.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindForStore loads an active product of the store with its price tiers.
func (r *Repository) FindForStore(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).
		Preload("PriceTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_quantity DESC")
		}).
		Where("id = ? AND store_id = ? AND is_active = ?", productID, storeID, true).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListTiers returns the tiers of a product, highest min quantity first.
func (r *Repository) ListTiers(ctx context.Context, productID uuid.UUID) ([]models.PriceTier, error) {
	var tiers []models.PriceTier
	if err := r.DB(ctx).
		Where("product_id = ?", productID).
		Order("min_quantity DESC").
		Find(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}

// ReplaceTiers swaps the whole tier schedule of a product and updates its gradual flag.
func (r *Repository) ReplaceTiers(ctx context.Context, productID uuid.UUID, tiers []models.PriceTier, gradual bool) error {
	db := r.DB(ctx)
	if err := db.Where("product_id = ?", productID).Delete(&models.PriceTier{}).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("gradual_wholesale_enabled", gradual).Error; err != nil {
		return err
	}
	if len(tiers) == 0 {
		return nil
	}
	return db.Create(&tiers).Error
}

// FindVariation loads an active variation of the product.
func (r *Repository) FindVariation(ctx context.Context, productID, variationID uuid.UUID) (*models.ProductVariation, error) {
	var variation models.ProductVariation
	if err := r.DB(ctx).
		Where("id = ? AND product_id = ? AND is_active = ?", variationID, productID, true).
		First(&variation).Error; err != nil {
		return nil, err
	}
	return &variation, nil
}
