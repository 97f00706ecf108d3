package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/bellakids/storefront-backend/pkg/db/models"
)

var hundred = decimal.NewFromInt(100)

// IsSale reports whether the product carries a strikethrough price higher
// than the current one.
func IsSale(product *models.Product) bool {
	return product.OldPrice != nil && product.OldPrice.GreaterThan(product.Price)
}

// DiscountPercent returns the badge percentage, rounded half away from zero.
// Products not on sale report zero.
func DiscountPercent(product *models.Product) int {
	if !IsSale(product) {
		return 0
	}
	old := *product.OldPrice
	if old.IsZero() {
		return 0
	}
	percent := old.Sub(product.Price).Div(old).Mul(hundred).Round(0)
	return int(percent.IntPart())
}
