package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineView is a cart line plus its derived subtotal.
type LineView struct {
	Line
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Summary is the cart payload returned to the storefront.
type Summary struct {
	Lines     []LineView      `json:"lines"`
	RegionKey string          `json:"regionKey,omitempty"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Summarize derives the response payload from a cart.
func Summarize(c *Cart) Summary {
	lines := make([]LineView, 0, len(c.Lines))
	for _, line := range c.Lines {
		lines = append(lines, LineView{Line: line, Subtotal: line.Subtotal()})
	}
	return Summary{
		Lines:     lines,
		RegionKey: c.RegionKey,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
		UpdatedAt: c.UpdatedAt,
	}
}
