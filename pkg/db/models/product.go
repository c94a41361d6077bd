package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product carries the pricing columns of a storefront listing.
type Product struct {
	ID                      uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	StoreID                 uuid.UUID          `gorm:"column:store_id;type:uuid;not null"`
	Name                    string             `gorm:"column:name;not null"`
	RetailPrice             decimal.Decimal    `gorm:"column:retail_price;type:numeric(12,2);not null"`
	WholesalePrice          *decimal.Decimal   `gorm:"column:wholesale_price;type:numeric(12,2)"`
	MinWholesaleQuantity    *int               `gorm:"column:min_wholesale_quantity"`
	GradualWholesaleEnabled bool               `gorm:"column:gradual_wholesale_enabled;not null"`
	IsActive                bool               `gorm:"column:is_active;not null"`
	PriceTiers              []PriceTier        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variations              []ProductVariation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt               time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
