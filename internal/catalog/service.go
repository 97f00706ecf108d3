package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bellakids/storefront-backend/pkg/db/models"
	"github.com/bellakids/storefront-backend/pkg/enums"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
	"github.com/bellakids/storefront-backend/pkg/types"
)

// Service exposes catalog read paths for the storefront and mutation paths
// for the admin panel.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	ToggleStock(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ListProductsInput narrows the public listing.
type ListProductsInput struct {
	Category enums.ProductCategory
	Query    string
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	ItemID        *string
	NameEN        *string
	NameAR        *string
	DescriptionEN *string
	DescriptionAR *string
	Category      enums.ProductCategory
	Sizes         []string
	Colors        []string
	Price         decimal.Decimal
	OldPrice      *decimal.Decimal
	Images        types.ImageRefs
	InStock       *bool
}

// UpdateProductInput holds optional mutation values for a product. Nil fields
// are left untouched; non-nil slices replace the stored value wholesale.
type UpdateProductInput struct {
	ItemID        *string
	NameEN        *string
	NameAR        *string
	DescriptionEN *string
	DescriptionAR *string
	Category      *enums.ProductCategory
	Sizes         *[]string
	Colors        *[]string
	Price         *decimal.Decimal
	OldPrice      *decimal.Decimal
	ClearOldPrice bool
	Images        *types.ImageRefs
	InStock       *bool
}

type imageRemover interface {
	Remove(ctx context.Context, url string) error
}

type service struct {
	repo   *Repository
	images imageRemover
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, images imageRemover) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if images == nil {
		return nil, fmt.Errorf("image remover required")
	}
	return &service{repo: repo, images: images}, nil
}

// ListProducts returns the catalog newest first, filtered by category and a
// free-text query over names and item codes.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error) {
	if input.Category != "" && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string]string{"category": string(input.Category)})
	}

	products, err := s.repo.List(ctx, ListFilter{Category: input.Category})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}

	query := strings.TrimSpace(input.Query)
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		if query != "" && !matchesQuery(&products[i], query) {
			continue
		}
		dtos = append(dtos, *NewProductDTO(&products[i]))
	}
	return dtos, nil
}

// GetProduct loads a single catalog entry.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

// CreateProduct inserts a new catalog entry.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateNames(input.NameEN, input.NameAR); err != nil {
		return nil, err
	}
	if err := validatePricing(input.Price, input.OldPrice); err != nil {
		return nil, err
	}
	category := input.Category
	if category == "" {
		category = enums.CategoryAll
	}
	if !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string]string{"category": string(category)})
	}

	product := &models.Product{
		ItemID:        trimPtr(input.ItemID),
		NameEN:        trimPtr(input.NameEN),
		NameAR:        trimPtr(input.NameAR),
		DescriptionEN: trimPtr(input.DescriptionEN),
		DescriptionAR: trimPtr(input.DescriptionAR),
		Category:      category,
		Sizes:         cleanStrings(input.Sizes),
		Colors:        cleanStrings(input.Colors),
		Price:         input.Price,
		OldPrice:      input.OldPrice,
		Images:        append(types.ImageRefs{}, input.Images...),
		InStock:       true,
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}
	return NewProductDTO(created), nil
}

// UpdateProduct applies a partial mutation, removing any uploaded images the
// new image list no longer references.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	previousImages := append(types.ImageRefs{}, product.Images...)
	applyUpdateToProduct(product, input)

	if err := validateNames(product.NameEN, product.NameAR); err != nil {
		return nil, err
	}
	if err := validatePricing(product.Price, product.OldPrice); err != nil {
		return nil, err
	}
	if !product.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string]string{"category": string(product.Category)})
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}

	if input.Images != nil {
		s.removeOrphanedImages(ctx, previousImages, updated.Images)
	}
	return NewProductDTO(updated), nil
}

// ToggleStock flips the product's availability flag.
func (s *service) ToggleStock(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.InStock = !product.InStock
	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggling product stock")
	}
	return NewProductDTO(updated), nil
}

// DeleteProduct removes the row and its uploaded images.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
	}

	s.removeOrphanedImages(ctx, product.Images, nil)
	return nil
}

func (s *service) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return product, nil
}

// removeOrphanedImages best-effort deletes uploads no longer referenced.
// The remover skips URLs that do not point at the local upload directory.
func (s *service) removeOrphanedImages(ctx context.Context, before, after types.ImageRefs) {
	kept := make(map[string]struct{}, len(after))
	for _, ref := range after {
		kept[ref.URL] = struct{}{}
	}
	for _, ref := range before {
		if _, ok := kept[ref.URL]; ok {
			continue
		}
		_ = s.images.Remove(ctx, ref.URL)
	}
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.ItemID != nil {
		product.ItemID = trimPtr(input.ItemID)
	}
	if input.NameEN != nil {
		product.NameEN = trimPtr(input.NameEN)
	}
	if input.NameAR != nil {
		product.NameAR = trimPtr(input.NameAR)
	}
	if input.DescriptionEN != nil {
		product.DescriptionEN = trimPtr(input.DescriptionEN)
	}
	if input.DescriptionAR != nil {
		product.DescriptionAR = trimPtr(input.DescriptionAR)
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Sizes != nil {
		product.Sizes = cleanStrings(*input.Sizes)
	}
	if input.Colors != nil {
		product.Colors = cleanStrings(*input.Colors)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.ClearOldPrice {
		product.OldPrice = nil
	} else if input.OldPrice != nil {
		product.OldPrice = input.OldPrice
	}
	if input.Images != nil {
		product.Images = append(types.ImageRefs{}, (*input.Images)...)
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
}

func validateNames(nameEN, nameAR *string) error {
	if strings.TrimSpace(deref(nameEN)) == "" && strings.TrimSpace(deref(nameAR)) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "a product name is required in at least one language")
	}
	return nil
}

func validatePricing(price decimal.Decimal, oldPrice *decimal.Decimal) error {
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if oldPrice != nil && oldPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "old price cannot be negative")
	}
	return nil
}

func matchesQuery(product *models.Product, query string) bool {
	needle := strings.ToLower(query)
	haystacks := []*string{
		product.Name,
		product.NameEN,
		product.NameAR,
		product.ItemID,
	}
	for _, value := range haystacks {
		if value == nil {
			continue
		}
		if strings.Contains(strings.ToLower(*value), needle) {
			return true
		}
	}
	return false
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func cleanStrings(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}
