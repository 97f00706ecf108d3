package order

import (
	"fmt"
	"strings"

	"github.com/bellakids/storefront-backend/internal/cart"
	"github.com/bellakids/storefront-backend/pkg/enums"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
	"github.com/bellakids/storefront-backend/pkg/i18n"
)

const messageSeparator = "----------------"

// ComposeMessage renders the cart as the plain-text order summary sent over
// WhatsApp. The same inputs always produce an identical string; only the label
// wording varies with the locale. An empty currency falls back to the locale's
// default symbol.
func ComposeMessage(c *cart.Cart, region Region, locale enums.Locale, currency string) (string, error) {
	if c == nil || c.IsEmpty() {
		return "", pkgerrors.New(pkgerrors.CodeEmptyCart, "cannot compose an order for an empty cart")
	}

	labels := i18n.For(locale)
	if currency == "" {
		currency = labels.Currency
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n", labels.OrderIntro)

	for i, line := range c.Lines {
		fmt.Fprintf(&b, "%d. %s", i+1, line.Name)
		if line.ItemCode != "" {
			fmt.Fprintf(&b, " (%s: %s)", labels.ItemCode, line.ItemCode)
		}
		if attrs := lineAttributes(line, labels); attrs != "" {
			fmt.Fprintf(&b, " (%s)", attrs)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "   %d x %s%s = %s%s\n",
			line.Quantity, currency, line.UnitPrice.String(), currency, line.Subtotal().String())
	}

	subtotal := c.Subtotal()
	total := c.Total(region.Fee)

	fmt.Fprintf(&b, "\n%s\n", messageSeparator)
	fmt.Fprintf(&b, "%s: %s%s\n", labels.Subtotal, currency, subtotal.String())
	fmt.Fprintf(&b, "%s (%s): %s%s\n", labels.Delivery, region.Name(locale), currency, region.Fee.String())
	fmt.Fprintf(&b, "*%s: %s%s*\n", labels.Total, currency, total.StringFixed(2))

	return b.String(), nil
}

func lineAttributes(line cart.Line, labels i18n.Labels) string {
	attrs := make([]string, 0, 3)
	if line.Size != "" {
		attrs = append(attrs, fmt.Sprintf("%s: %s", labels.Size, line.Size))
	}
	if line.Color != "" {
		attrs = append(attrs, fmt.Sprintf("%s: %s", labels.Color, line.Color))
	}
	if line.VariantTag != "" {
		attrs = append(attrs, fmt.Sprintf("%s: %s", labels.Variant, line.VariantTag))
	}
	return strings.Join(attrs, ", ")
}
