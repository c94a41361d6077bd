package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-pricing/pkg/enums"
)

// Store represents the tenant whose pricing settings drive its storefront.
type Store struct {
	ID                     uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Slug                   string            `gorm:"column:slug;not null;uniqueIndex"`
	Name                   string            `gorm:"column:name;not null"`
	PriceModel             *enums.PriceModel `gorm:"column:price_model"`
	CatalogMode            enums.CatalogMode `gorm:"column:catalog_mode;not null"`
	RetailCatalogActive    bool              `gorm:"column:retail_catalog_active;not null"`
	WholesaleCatalogActive bool              `gorm:"column:wholesale_catalog_active;not null"`
	CreatedAt              time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
