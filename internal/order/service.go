package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bellakids/storefront-backend/internal/cart"
	"github.com/bellakids/storefront-backend/pkg/db/models"
	"github.com/bellakids/storefront-backend/pkg/enums"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
)

type cartLoader interface {
	GetCart(ctx context.Context, token string) (*cart.Cart, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service turns a finalized cart into the WhatsApp order handoff.
type Service interface {
	Checkout(ctx context.Context, token string, locale enums.Locale) (*CheckoutResult, error)
	Regions() []Region
}

// CheckoutResult is the composed order returned to the storefront.
type CheckoutResult struct {
	Message      string          `json:"message"`
	WhatsAppLink string          `json:"whatsappLink"`
	Region       Region          `json:"region"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"itemCount"`
}

type service struct {
	carts    cartLoader
	products productLoader
	regions  *RegionSet
	phone    string
	currency string
}

// NewService builds the checkout service. currency is the shop's configured
// symbol for the order message; empty means the locale's default.
func NewService(carts cartLoader, products productLoader, regions *RegionSet, whatsAppPhone, currency string) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart loader required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if regions == nil {
		return nil, fmt.Errorf("region set required")
	}
	if whatsAppPhone == "" {
		return nil, fmt.Errorf("whatsapp phone required")
	}
	return &service{
		carts:    carts,
		products: products,
		regions:  regions,
		phone:    whatsAppPhone,
		currency: currency,
	}, nil
}

// Regions lists the delivery tiers in display order.
func (s *service) Regions() []Region {
	return s.regions.List()
}

// Checkout re-validates every cart line against the live catalog, composes
// the order message, and returns the WhatsApp handoff link.
func (s *service) Checkout(ctx context.Context, token string, locale enums.Locale) (*CheckoutResult, error) {
	c, err := s.carts.GetCart(ctx, token)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cannot check out an empty cart")
	}

	if c.RegionKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery region is required")
	}
	region, ok := s.regions.Get(c.RegionKey)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery region").
			WithDetails(map[string]string{"region": c.RegionKey})
	}

	if err := s.revalidateStock(ctx, c); err != nil {
		return nil, err
	}

	message, err := ComposeMessage(c, region, locale, s.currency)
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{
		Message:      message,
		WhatsAppLink: WhatsAppLink(s.phone, message),
		Region:       region,
		Subtotal:     c.Subtotal(),
		Total:        c.Total(region.Fee),
		ItemCount:    c.ItemCount(),
	}, nil
}

// revalidateStock confirms every snapshotted line is still orderable. The
// cart may be days old by the time the shopper checks out.
func (s *service) revalidateStock(ctx context.Context, c *cart.Cart) error {
	for i, line := range c.Lines {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeConflict, "an item in the cart is no longer available").
					WithDetails(map[string]any{"index": i, "name": line.Name})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revalidating cart item")
		}
		if !product.InStock {
			return pkgerrors.New(pkgerrors.CodeConflict, "an item in the cart is out of stock").
				WithDetails(map[string]any{"index": i, "name": line.Name})
		}
	}
	return nil
}
