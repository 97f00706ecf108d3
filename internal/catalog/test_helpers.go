package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bellakids/storefront-backend/pkg/db/models"
	"github.com/bellakids/storefront-backend/pkg/enums"
	"github.com/bellakids/storefront-backend/pkg/types"
)

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, mutate func(*models.Product)) *models.Product {
	t.Helper()

	nameEN := "Summer Dress"
	nameAR := "فستان صيفي"
	product := &models.Product{
		ID:       uuid.New(),
		NameEN:   &nameEN,
		NameAR:   &nameAR,
		Category: enums.CategoryGirls,
		Sizes:    []string{"2Y", "4Y"},
		Colors:   []string{"pink"},
		Price:    decimal.NewFromInt(80),
		Images: types.ImageRefs{
			{URL: "/uploads/dress.png"},
		},
		InStock: true,
	}
	if mutate != nil {
		mutate(product)
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func stringPtr(value string) *string {
	return &value
}

func decimalPtr(value decimal.Decimal) *decimal.Decimal {
	return &value
}
