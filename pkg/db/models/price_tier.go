package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceTier is one step of a product's gradual wholesale schedule.
type PriceTier struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Name        string          `gorm:"column:name;not null"`
	MinQuantity int             `gorm:"column:min_quantity;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	SortOrder   int             `gorm:"column:sort_order;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
