package stores

import (
	"strings"
	"time"

	"github.com/angelmondragon/storefront-pricing/internal/catalogmode"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	"github.com/google/uuid"
)

// StoreDTO exposes the public storefront data of a store.
type StoreDTO struct {
	ID        uuid.UUID     `json:"id"`
	Slug      string        `json:"slug"`
	Name      string        `json:"name"`
	Settings  StoreSettings `json:"settings"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// StoreSettings is the pricing configuration read by the storefront.
// An empty PriceModel means the owner has not chosen one yet.
type StoreSettings struct {
	StoreID     uuid.UUID          `json:"store_id"`
	PriceModel  enums.PriceModel   `json:"price_model,omitempty"`
	CatalogMode catalogmode.Config `json:"catalog_mode"`
}

// PriceModelKnown reports whether the store has a price model configured.
func (s StoreSettings) PriceModelKnown() bool {
	return !s.PriceModel.IsUnknown()
}

// CreateStoreDTO holds creation-time data for a new store.
type CreateStoreDTO struct {
	Slug                   string
	Name                   string
	PriceModel             *enums.PriceModel
	CatalogMode            enums.CatalogMode
	RetailCatalogActive    bool
	WholesaleCatalogActive bool
}

// ToModel converts the DTO into a persisted model.
func (d CreateStoreDTO) ToModel() *models.Store {
	mode := d.CatalogMode
	if mode == "" {
		mode = enums.CatalogModeSeparated
	}
	return &models.Store{
		ID:                     uuid.New(),
		Slug:                   strings.ToLower(strings.TrimSpace(d.Slug)),
		Name:                   d.Name,
		PriceModel:             d.PriceModel,
		CatalogMode:            mode,
		RetailCatalogActive:    d.RetailCatalogActive,
		WholesaleCatalogActive: d.WholesaleCatalogActive,
	}
}

// UpdateSettingsInput captures the owner-editable pricing settings. Nil fields are left as is.
type UpdateSettingsInput struct {
	PriceModel             *enums.PriceModel
	CatalogMode            *enums.CatalogMode
	RetailCatalogActive    *bool
	WholesaleCatalogActive *bool
}

// SettingsFromModel extracts the pricing settings of a store.
func SettingsFromModel(m *models.Store) StoreSettings {
	if m == nil {
		return StoreSettings{}
	}
	settings := StoreSettings{
		StoreID: m.ID,
		CatalogMode: catalogmode.Config{
			Mode:                   m.CatalogMode,
			RetailCatalogActive:    m.RetailCatalogActive,
			WholesaleCatalogActive: m.WholesaleCatalogActive,
		},
	}
	if m.PriceModel != nil {
		settings.PriceModel = *m.PriceModel
	}
	return settings
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:        m.ID,
		Slug:      m.Slug,
		Name:      m.Name,
		Settings:  SettingsFromModel(m),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
