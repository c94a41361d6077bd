package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type storeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindBySlug(ctx context.Context, slug string) (*models.Store, error)
	Update(ctx context.Context, store *models.Store) error
}

// Service exposes store operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	GetBySlug(ctx context.Context, slug string) (*StoreDTO, error)
	GetSettings(ctx context.Context, storeID uuid.UUID) (StoreSettings, error)
	UpdateSettings(ctx context.Context, storeID uuid.UUID, input UpdateSettingsInput) (StoreSettings, error)
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*StoreDTO, error) {
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	store, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, mapLoadError(err)
	}
	return FromModel(store), nil
}

func (s *service) GetSettings(ctx context.Context, storeID uuid.UUID) (StoreSettings, error) {
	store, err := s.load(ctx, storeID)
	if err != nil {
		return StoreSettings{}, err
	}
	return SettingsFromModel(store), nil
}

func (s *service) UpdateSettings(ctx context.Context, storeID uuid.UUID, input UpdateSettingsInput) (StoreSettings, error) {
	store, err := s.load(ctx, storeID)
	if err != nil {
		return StoreSettings{}, err
	}

	if input.PriceModel != nil {
		model := *input.PriceModel
		store.PriceModel = &model
	}
	if input.CatalogMode != nil {
		store.CatalogMode = *input.CatalogMode
	}
	if input.RetailCatalogActive != nil {
		store.RetailCatalogActive = *input.RetailCatalogActive
	}
	if input.WholesaleCatalogActive != nil {
		store.WholesaleCatalogActive = *input.WholesaleCatalogActive
	}

	if err := validateSettings(store); err != nil {
		return StoreSettings{}, err
	}
	if err := s.repo.Update(ctx, store); err != nil {
		return StoreSettings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store settings")
	}
	return SettingsFromModel(store), nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err)
	}
	return store, nil
}

func mapLoadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
}

func validateSettings(store *models.Store) error {
	var errs error
	if store.PriceModel != nil && !store.PriceModel.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("invalid price model %q", *store.PriceModel))
	}
	if !store.CatalogMode.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("invalid catalog mode %q", store.CatalogMode))
	}
	if !store.RetailCatalogActive && !store.WholesaleCatalogActive {
		errs = multierr.Append(errs, fmt.Errorf("at least one catalog must be active"))
	}
	if errs == nil {
		return nil
	}

	violations := make([]string, 0)
	for _, e := range multierr.Errors(errs) {
		violations = append(violations, e.Error())
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid store settings").
		WithDetails(map[string]any{"violations": violations})
}
