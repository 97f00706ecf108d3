package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
)

// OneSize is the size recorded for products that are not offered in sizes.
const OneSize = "One Size"

// Line is one distinct cart entry. Identity is the full
// (ProductID, Size, Color, ImageURL) tuple: the same product in another size,
// another color, or photographed as another variant stays a separate line.
type Line struct {
	ProductID  uuid.UUID       `json:"productId"`
	Name       string          `json:"name"`
	ItemCode   string          `json:"itemCode,omitempty"`
	Size       string          `json:"size"`
	Color      string          `json:"color,omitempty"`
	ImageURL   string          `json:"imageUrl,omitempty"`
	VariantTag string          `json:"variantTag,omitempty"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
}

// SameIdentity reports whether two lines describe the same orderable thing.
func (l Line) SameIdentity(other Line) bool {
	return l.ProductID == other.ProductID &&
		l.Size == other.Size &&
		l.Color == other.Color &&
		l.ImageURL == other.ImageURL
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the shopper's pending order. It lives in a durable slot keyed by
// the client's cart token and survives page reloads.
type Cart struct {
	Lines     []Line    `json:"lines"`
	RegionKey string    `json:"regionKey,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Lines: []Line{}}
}

// Add merges the line into an existing entry with the same identity, or
// appends it. A merge only increments the quantity: the stored snapshot keeps
// the unit price and display data captured when the line was first added, so
// later catalog edits never reprice goods already in the cart.
func (c *Cart) Add(line Line) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].SameIdentity(line) {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// RemoveLine deletes the entry at index, shifting later lines down.
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return pkgerrors.New(pkgerrors.CodeOutOfRange, "no cart line at that position").
			WithDetails(map[string]int{"index": index, "lines": len(c.Lines)})
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	return nil
}

// Clear drops every line and the chosen delivery region.
func (c *Cart) Clear() {
	c.Lines = []Line{}
	c.RegionKey = ""
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount sums quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Subtotal sums all line subtotals.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range c.Lines {
		subtotal = subtotal.Add(line.Subtotal())
	}
	return subtotal
}

// Total is the subtotal plus the delivery fee. A cart owing nothing is not
// charged for delivery either.
func (c *Cart) Total(deliveryFee decimal.Decimal) decimal.Decimal {
	subtotal := c.Subtotal()
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	return subtotal.Add(deliveryFee)
}

// AdjustPendingQuantity steps the quantity the shopper is still picking on the
// product page. It never drops below 1; there is no zero-quantity line.
func AdjustPendingQuantity(current, delta int) int {
	next := current + delta
	if next < 1 {
		return 1
	}
	return next
}
