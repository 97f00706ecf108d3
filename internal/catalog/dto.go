package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bellakids/storefront-backend/pkg/db/models"
	"github.com/bellakids/storefront-backend/pkg/types"
)

// ProductDTO is the catalog payload returned to the storefront. Field names
// match what the web client already consumes.
type ProductDTO struct {
	ID              uuid.UUID        `json:"id"`
	ItemID          *string          `json:"itemId,omitempty"`
	Name            *string          `json:"name,omitempty"`
	NameEN          *string          `json:"nameEn,omitempty"`
	NameAR          *string          `json:"nameAr,omitempty"`
	Description     *string          `json:"description,omitempty"`
	DescriptionEN   *string          `json:"descriptionEn,omitempty"`
	DescriptionAR   *string          `json:"descriptionAr,omitempty"`
	Category        string           `json:"category"`
	Sizes           []string         `json:"sizes"`
	Colors          []string         `json:"colors"`
	Price           decimal.Decimal  `json:"price"`
	OldPrice        *decimal.Decimal `json:"oldPrice,omitempty"`
	Images          types.ImageRefs  `json:"images"`
	InStock         bool             `json:"inStock"`
	IsSale          bool             `json:"isSale"`
	DiscountPercent int              `json:"discountPercent,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:              product.ID,
		ItemID:          product.ItemID,
		Name:            product.Name,
		NameEN:          product.NameEN,
		NameAR:          product.NameAR,
		Description:     product.Description,
		DescriptionEN:   product.DescriptionEN,
		DescriptionAR:   product.DescriptionAR,
		Category:        string(product.Category),
		Sizes:           append([]string{}, product.Sizes...),
		Colors:          append([]string{}, product.Colors...),
		Price:           product.Price,
		OldPrice:        product.OldPrice,
		Images:          append(types.ImageRefs{}, product.Images...),
		InStock:         product.InStock,
		IsSale:          IsSale(product),
		DiscountPercent: DiscountPercent(product),
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
	return dto
}
