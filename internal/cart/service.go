package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bellakids/storefront-backend/internal/catalog"
	"github.com/bellakids/storefront-backend/pkg/db/models"
	"github.com/bellakids/storefront-backend/pkg/enums"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
)

type persistence interface {
	Load(ctx context.Context, token string) (*Cart, error)
	Save(ctx context.Context, token string, cart *Cart) error
	Delete(ctx context.Context, token string) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type imageResolver interface {
	Resolve(raw string) string
}

type regionChecker interface {
	IsValid(key string) bool
}

// Service exposes the shopper-facing cart operations.
type Service interface {
	GetCart(ctx context.Context, token string) (*Cart, error)
	AddItem(ctx context.Context, token string, input AddItemInput) (*Cart, error)
	RemoveItem(ctx context.Context, token string, index int) (*Cart, error)
	SetRegion(ctx context.Context, token, regionKey string) (*Cart, error)
	Clear(ctx context.Context, token string) error
}

// AddItemInput is the payload to put a product variant in the cart.
type AddItemInput struct {
	ProductID  uuid.UUID
	Size       string
	Color      string
	ImageURL   string
	VariantTag string
	Quantity   int
	Locale     enums.Locale
}

type service struct {
	store    persistence
	products productLoader
	images   imageResolver
	regions  regionChecker
}

// NewService builds a cart service backed by the provided stack.
func NewService(store persistence, products productLoader, images imageResolver, regions regionChecker) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if images == nil {
		return nil, fmt.Errorf("image resolver required")
	}
	if regions == nil {
		return nil, fmt.Errorf("region checker required")
	}
	return &service{
		store:    store,
		products: products,
		images:   images,
		regions:  regions,
	}, nil
}

// GetCart returns the shopper's current cart, empty if none is stored.
func (s *service) GetCart(ctx context.Context, token string) (*Cart, error) {
	return s.store.Load(ctx, token)
}

// AddItem validates the variant against the live catalog, snapshots its
// display data, and merges it into the cart.
func (s *service) AddItem(ctx context.Context, token string, input AddItemInput) (*Cart, error) {
	product, err := s.loadProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	line, err := s.buildLine(product, input)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	cart.Add(line)
	if err := s.store.Save(ctx, token, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes the line at index and persists the shrunk cart.
func (s *service) RemoveItem(ctx context.Context, token string, index int) (*Cart, error) {
	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveLine(index); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, token, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetRegion records the delivery region choice. An empty key clears it.
func (s *service) SetRegion(ctx context.Context, token, regionKey string) (*Cart, error) {
	regionKey = strings.TrimSpace(regionKey)
	if regionKey != "" && !s.regions.IsValid(regionKey) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery region").
			WithDetails(map[string]string{"region": regionKey})
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	cart.RegionKey = regionKey
	if err := s.store.Save(ctx, token, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear drops the stored cart entirely.
func (s *service) Clear(ctx context.Context, token string) error {
	return s.store.Delete(ctx, token)
}

func (s *service) loadProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return product, nil
}

func (s *service) buildLine(product *models.Product, input AddItemInput) (Line, error) {
	if !product.InStock {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "product is out of stock")
	}

	size := strings.TrimSpace(input.Size)
	if len(product.Sizes) > 0 {
		if size == "" {
			return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "size is required")
		}
		if !containsFold(product.Sizes, size) {
			return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "size is not offered for this product").
				WithDetails(map[string]any{"size": size, "offered": product.Sizes})
		}
	} else if size == "" {
		// A line always carries a size; sizeless products sell as one size.
		size = OneSize
	}

	color := strings.TrimSpace(input.Color)
	if len(product.Colors) > 0 {
		if color == "" {
			return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "color is required")
		}
		if !containsFold(product.Colors, color) {
			return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "color is not offered for this product").
				WithDetails(map[string]any{"color": color, "offered": product.Colors})
		}
	}

	quantity := AdjustPendingQuantity(0, input.Quantity)

	imageURL, variantTag := s.pickImage(product, input)

	line := Line{
		ProductID:  product.ID,
		Name:       catalog.DisplayName(product, input.Locale),
		Size:       size,
		Color:      color,
		ImageURL:   imageURL,
		VariantTag: variantTag,
		UnitPrice:  product.Price,
		Quantity:   quantity,
	}
	if product.ItemID != nil {
		line.ItemCode = *product.ItemID
	}
	return line, nil
}

// pickImage snapshots the image the shopper was looking at, falling back to
// the product's first photo. The variant tag rides along when the chosen
// image carries one.
func (s *service) pickImage(product *models.Product, input AddItemInput) (string, string) {
	requested := strings.TrimSpace(input.ImageURL)
	if requested == "" && len(product.Images) > 0 {
		requested = product.Images[0].URL
	}
	resolved := ""
	if requested != "" {
		resolved = s.images.Resolve(requested)
	}

	variantTag := strings.TrimSpace(input.VariantTag)
	if variantTag == "" {
		for _, ref := range product.Images {
			if ref.URL == requested || s.images.Resolve(ref.URL) == resolved {
				variantTag = ref.VariantTag
				break
			}
		}
	}
	return resolved, variantTag
}

func containsFold(values []string, needle string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), needle) {
			return true
		}
	}
	return false
}
