package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-pricing/internal/pricing"
	"github.com/angelmondragon/storefront-pricing/internal/stores"
	"github.com/angelmondragon/storefront-pricing/pkg/db"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes product pricing reads for the storefront and tier management for owners.
type Service interface {
	GetPriceable(ctx context.Context, storeID, productID uuid.UUID) (pricing.PriceableProduct, error)
	ListPriceTiers(ctx context.Context, storeID, productID uuid.UUID) (*PriceTiersDTO, error)
	ReplacePriceTiers(ctx context.Context, storeID, productID uuid.UUID, tiers []PriceTierInput) (*PriceTiersDTO, error)
	GetVariation(ctx context.Context, productID, variationID uuid.UUID) (*VariationDTO, error)
}

type settingsReader interface {
	GetSettings(ctx context.Context, storeID uuid.UUID) (stores.StoreSettings, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     *Repository
	tx       txRunner
	settings settingsReader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, tx txRunner, settings settingsReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if settings == nil {
		return nil, fmt.Errorf("store settings reader required")
	}
	return &service{repo: repo, tx: tx, settings: settings}, nil
}

// GetPriceable loads the product under the store's current price model. Malformed
// persisted pricing data is returned as a validation error.
func (s *service) GetPriceable(ctx context.Context, storeID, productID uuid.UUID) (pricing.PriceableProduct, error) {
	settings, err := s.settings.GetSettings(ctx, storeID)
	if err != nil {
		return pricing.PriceableProduct{}, err
	}
	product, err := s.load(ctx, storeID, productID)
	if err != nil {
		return pricing.PriceableProduct{}, err
	}

	priceable := ToPriceable(product, settings.PriceModel)
	if err := priceable.Validate(); err != nil {
		return pricing.PriceableProduct{}, err
	}
	return priceable, nil
}

func (s *service) ListPriceTiers(ctx context.Context, storeID, productID uuid.UUID) (*PriceTiersDTO, error) {
	product, err := s.load(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	return &PriceTiersDTO{
		ProductID:               product.ID,
		GradualWholesaleEnabled: product.GradualWholesaleEnabled,
		Tiers:                   TiersFromModels(product.PriceTiers),
	}, nil
}

// ReplacePriceTiers swaps the tier schedule in one transaction. A non-empty schedule
// turns gradual wholesale on, an empty one turns it off.
func (s *service) ReplacePriceTiers(ctx context.Context, storeID, productID uuid.UUID, inputs []PriceTierInput) (*PriceTiersDTO, error) {
	product, err := s.load(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}

	for i := range inputs {
		inputs[i].Name = strings.TrimSpace(inputs[i].Name)
		if inputs[i].Name == "" {
			inputs[i].Name = fmt.Sprintf("%d+", inputs[i].MinQuantity)
		}
	}
	schedule := tierInputsToPricing(inputs)
	if err := pricing.ValidateTiers(schedule, product.RetailPrice); err != nil {
		return nil, err
	}

	rows := make([]models.PriceTier, 0, len(schedule))
	for _, tier := range schedule {
		rows = append(rows, models.PriceTier{
			ProductID:   product.ID,
			Name:        tier.Name,
			MinQuantity: tier.MinQuantity,
			UnitPrice:   tier.UnitPrice,
			SortOrder:   tier.Order,
		})
	}

	gradual := len(rows) > 0
	var saved []models.PriceTier
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.ReplaceTiers(ctx, product.ID, rows, gradual); err != nil {
			return err
		}
		var err error
		saved, err = txRepo.ListTiers(ctx, product.ID)
		return err
	}); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "duplicate tier min quantity")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace price tiers")
	}

	return &PriceTiersDTO{
		ProductID:               product.ID,
		GradualWholesaleEnabled: gradual,
		Tiers:                   TiersFromModels(saved),
	}, nil
}

func (s *service) GetVariation(ctx context.Context, productID, variationID uuid.UUID) (*VariationDTO, error) {
	variation, err := s.repo.FindVariation(ctx, productID, variationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variation")
	}
	return &VariationDTO{ID: variation.ID, ProductID: variation.ProductID, Name: variation.Name}, nil
}

func (s *service) load(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindForStore(ctx, storeID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}
