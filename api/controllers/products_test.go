package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bellakids/storefront-backend/internal/catalog"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
)

type stubCatalogService struct {
	products []catalog.ProductDTO
	product  *catalog.ProductDTO
	input    catalog.ListProductsInput
	err      error
}

func (s *stubCatalogService) ListProducts(_ context.Context, input catalog.ListProductsInput) ([]catalog.ProductDTO, error) {
	s.input = input
	return s.products, s.err
}

func (s *stubCatalogService) GetProduct(context.Context, uuid.UUID) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) CreateProduct(context.Context, catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) UpdateProduct(context.Context, uuid.UUID, catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) ToggleStock(context.Context, uuid.UUID) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) DeleteProduct(context.Context, uuid.UUID) error {
	return s.err
}

func TestProductListForwardsFilters(t *testing.T) {
	svc := &stubCatalogService{products: []catalog.ProductDTO{
		{ID: uuid.New(), Price: decimal.NewFromInt(80)},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=Girls&q=dress", nil)
	resp := httptest.NewRecorder()
	ProductList(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if string(svc.input.Category) != "girls" {
		t.Fatalf("expected lowercased category got %q", svc.input.Category)
	}
	if svc.input.Query != "dress" {
		t.Fatalf("expected query forwarded got %q", svc.input.Query)
	}

	var envelope struct {
		Data []catalog.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected one product got %d", len(envelope.Data))
	}
}

func TestProductDetail(t *testing.T) {
	id := uuid.New()
	svc := &stubCatalogService{product: &catalog.ProductDTO{ID: id}}

	router := chi.NewRouter()
	router.Get("/api/v1/products/{productId}", ProductDetail(svc, nil))

	t.Run("found", func(t *testing.T) {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id.String(), nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", resp.Code)
		}
	})

	t.Run("badID", func(t *testing.T) {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", resp.Code)
		}
	})

	t.Run("missing", func(t *testing.T) {
		missing := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		missingRouter := chi.NewRouter()
		missingRouter.Get("/api/v1/products/{productId}", ProductDetail(missing, nil))

		resp := httptest.NewRecorder()
		missingRouter.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil))
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected 404 got %d", resp.Code)
		}
	})
}
