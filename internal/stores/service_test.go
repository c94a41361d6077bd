package stores

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubStoreRepo struct {
	store   *models.Store
	err     error
	updated *models.Store
}

func (s *stubStoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	clone := *s.store
	return &clone, nil
}

func (s *stubStoreRepo) FindBySlug(ctx context.Context, slug string) (*models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	if slug != s.store.Slug {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s.store
	return &clone, nil
}

func (s *stubStoreRepo) Update(ctx context.Context, store *models.Store) error {
	s.updated = store
	return nil
}

func baseStore() *models.Store {
	model := enums.PriceModelSimpleWholesale
	return &models.Store{
		ID:                     uuid.New(),
		Slug:                   "loja-da-ana",
		Name:                   "Loja da Ana",
		PriceModel:             &model,
		CatalogMode:            enums.CatalogModeHybrid,
		RetailCatalogActive:    true,
		WholesaleCatalogActive: true,
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceGetSettings(t *testing.T) {
	store := baseStore()
	svc, err := NewService(&stubStoreRepo{store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	settings, err := svc.GetSettings(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.PriceModel != enums.PriceModelSimpleWholesale || !settings.PriceModelKnown() {
		t.Fatalf("unexpected price model %q", settings.PriceModel)
	}
	if settings.CatalogMode.Mode != enums.CatalogModeHybrid || !settings.CatalogMode.WholesaleCatalogActive {
		t.Fatalf("unexpected catalog config %+v", settings.CatalogMode)
	}
}

func TestServiceGetSettingsUnknownModel(t *testing.T) {
	store := baseStore()
	store.PriceModel = nil
	svc, _ := NewService(&stubStoreRepo{store: store})

	settings, err := svc.GetSettings(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.PriceModelKnown() {
		t.Fatalf("expected unknown price model, got %q", settings.PriceModel)
	}
}

func TestServiceGetSettingsErrors(t *testing.T) {
	svc, _ := NewService(&stubStoreRepo{err: gorm.ErrRecordNotFound})
	_, err := svc.GetSettings(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found code, got %v", err)
	}

	svc, _ = NewService(&stubStoreRepo{err: errors.New("boom")})
	_, err = svc.GetSettings(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestServiceGetBySlug(t *testing.T) {
	store := baseStore()
	svc, _ := NewService(&stubStoreRepo{store: store})

	dto, err := svc.GetBySlug(context.Background(), "loja-da-ana")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if dto.ID != store.ID || dto.Settings.StoreID != store.ID {
		t.Fatalf("unexpected store %+v", dto)
	}

	if _, err := svc.GetBySlug(context.Background(), "other"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.GetBySlug(context.Background(), ""); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceUpdateSettings(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc, _ := NewService(repo)

	model := enums.PriceModelGradualWholesale
	mode := enums.CatalogModeToggle
	settings, err := svc.UpdateSettings(context.Background(), store.ID, UpdateSettingsInput{
		PriceModel:  &model,
		CatalogMode: &mode,
	})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if settings.PriceModel != model || settings.CatalogMode.Mode != mode {
		t.Fatalf("unexpected settings %+v", settings)
	}
	if repo.updated == nil || *repo.updated.PriceModel != model {
		t.Fatalf("expected store persisted, got %+v", repo.updated)
	}
}

func TestServiceUpdateSettingsValidation(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc, _ := NewService(repo)

	model := enums.PriceModel("bulk_only")
	mode := enums.CatalogMode("mixed")
	off := false
	_, err := svc.UpdateSettings(context.Background(), store.ID, UpdateSettingsInput{
		PriceModel:             &model,
		CatalogMode:            &mode,
		RetailCatalogActive:    &off,
		WholesaleCatalogActive: &off,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details := typed.Details().(map[string]any)
	if violations := details["violations"].([]string); len(violations) != 3 {
		t.Fatalf("expected 3 violations, got %v", violations)
	}
	if repo.updated != nil {
		t.Fatal("invalid settings must not be persisted")
	}
}
