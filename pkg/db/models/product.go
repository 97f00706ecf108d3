package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bellakids/storefront-backend/pkg/enums"
	"github.com/bellakids/storefront-backend/pkg/types"
)

// Product is the canonical catalog listing. Name/Description carry the legacy
// single-language values kept for rows imported from the old catalog; the
// localized columns take precedence when present.
type Product struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	ItemID        *string               `gorm:"column:item_id"`
	Name          *string               `gorm:"column:name"`
	NameEN        *string               `gorm:"column:name_en"`
	NameAR        *string               `gorm:"column:name_ar"`
	Description   *string               `gorm:"column:description"`
	DescriptionEN *string               `gorm:"column:description_en"`
	DescriptionAR *string               `gorm:"column:description_ar"`
	Category      enums.ProductCategory `gorm:"column:category;not null;default:'all'"`
	Sizes         []string              `gorm:"column:sizes;type:jsonb;serializer:json"`
	Colors        []string              `gorm:"column:colors;type:jsonb;serializer:json"`
	Price         decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	OldPrice      *decimal.Decimal      `gorm:"column:old_price;type:numeric(10,2)"`
	Images        types.ImageRefs       `gorm:"column:images;type:jsonb;serializer:json"`
	InStock       bool                  `gorm:"column:in_stock;not null;default:true"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
