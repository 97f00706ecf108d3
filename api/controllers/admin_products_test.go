package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bellakids/storefront-backend/internal/catalog"
	"github.com/bellakids/storefront-backend/internal/media"
	"github.com/bellakids/storefront-backend/pkg/config"
)

type capturingCatalogService struct {
	stubCatalogService
	created catalog.CreateProductInput
	updated catalog.UpdateProductInput
}

func (s *capturingCatalogService) CreateProduct(_ context.Context, input catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	s.created = input
	return &catalog.ProductDTO{ID: uuid.New()}, s.err
}

func (s *capturingCatalogService) UpdateProduct(_ context.Context, _ uuid.UUID, input catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	s.updated = input
	return &catalog.ProductDTO{ID: uuid.New()}, s.err
}

func newTestUploads(t *testing.T) *media.Store {
	t.Helper()
	store, err := media.NewStore(config.UploadsConfig{
		Dir:            t.TempDir(),
		PublicBasePath: "/uploads/",
		MaxUploadMB:    1,
		MaxFiles:       5,
	})
	if err != nil {
		t.Fatalf("creating upload store: %v", err)
	}
	return store
}

func multipartProductRequest(t *testing.T, method, target string, fields map[string]string, files []string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("writing field %s: %v", name, err)
		}
	}
	for _, filename := range files {
		part, err := writer.CreateFormFile("images", filename)
		if err != nil {
			t.Fatalf("creating file part: %v", err)
		}
		if _, err := io.WriteString(part, "fake image bytes"); err != nil {
			t.Fatalf("writing file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAdminCreateProductStoresImages(t *testing.T) {
	svc := &capturingCatalogService{}
	uploads := newTestUploads(t)

	req := multipartProductRequest(t, http.MethodPost, "/api/v1/admin/products", map[string]string{
		"nameEn":    "Summer Dress",
		"category":  "girls",
		"price":     "49.90",
		"sizes":     `["S","M"]`,
		"colors":    "pink, blue",
		"imageTags": `["A","B"]`,
	}, []string{"front.png", "back.jpg"})

	resp := httptest.NewRecorder()
	AdminCreateProduct(svc, uploads, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	got := svc.created
	if got.NameEN == nil || *got.NameEN != "Summer Dress" {
		t.Fatalf("expected name forwarded got %+v", got.NameEN)
	}
	if got.Price.String() != "49.9" {
		t.Fatalf("expected price 49.90 got %s", got.Price)
	}
	if len(got.Sizes) != 2 || got.Sizes[0] != "S" {
		t.Fatalf("expected parsed sizes got %v", got.Sizes)
	}
	if len(got.Colors) != 2 || got.Colors[1] != "blue" {
		t.Fatalf("expected comma list parsed got %v", got.Colors)
	}
	if len(got.Images) != 2 {
		t.Fatalf("expected two stored images got %v", got.Images)
	}
	if got.Images[1].VariantTag != "B" {
		t.Fatalf("expected tag paired with second file got %+v", got.Images[1])
	}

	entries, err := os.ReadDir(uploads.Dir())
	if err != nil {
		t.Fatalf("reading upload dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two files written got %d", len(entries))
	}
}

func TestAdminCreateProductRejectsMissingPrice(t *testing.T) {
	svc := &capturingCatalogService{}
	uploads := newTestUploads(t)

	req := multipartProductRequest(t, http.MethodPost, "/api/v1/admin/products", map[string]string{
		"nameEn": "Summer Dress",
	}, []string{"front.png"})

	resp := httptest.NewRecorder()
	AdminCreateProduct(svc, uploads, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	// The stored upload is rolled back when validation fails.
	entries, err := os.ReadDir(uploads.Dir())
	if err != nil {
		t.Fatalf("reading upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected rollback to empty upload dir, got %d files", len(entries))
	}
}

func TestAdminUpdateProductBlankOldPriceEndsSale(t *testing.T) {
	svc := &capturingCatalogService{}
	uploads := newTestUploads(t)

	router := chi.NewRouter()
	router.Put("/api/v1/admin/products/{productId}", AdminUpdateProduct(svc, uploads, nil))

	req := multipartProductRequest(t, http.MethodPut, "/api/v1/admin/products/"+uuid.NewString(), map[string]string{
		"oldPrice": "",
		"images":   `[{"url":"/uploads/keep.png","variant_tag":"A"}]`,
	}, nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	if !svc.updated.ClearOldPrice {
		t.Fatalf("expected blank oldPrice to clear the sale")
	}
	if svc.updated.Images == nil || len(*svc.updated.Images) != 1 {
		t.Fatalf("expected kept image list got %+v", svc.updated.Images)
	}
	if (*svc.updated.Images)[0].URL != "/uploads/keep.png" {
		t.Fatalf("expected kept url got %+v", (*svc.updated.Images)[0])
	}
}
