package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bellakids/storefront-backend/pkg/db/models"
	"github.com/bellakids/storefront-backend/pkg/enums"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
	"github.com/bellakids/storefront-backend/pkg/types"
)

type fakeImageRemover struct {
	removed []string
}

func (f *fakeImageRemover) Remove(_ context.Context, url string) error {
	f.removed = append(f.removed, url)
	return nil
}

func newTestService(t *testing.T) (Service, *Repository, *fakeImageRemover) {
	t.Helper()
	conn := openTestDB(t)
	repo := NewRepository(conn)
	remover := &fakeImageRemover{}
	svc, err := NewService(repo, remover)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc, repo, remover
}

func TestServiceListProductsQueryMatchesAnyName(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.Product{
		NameEN: stringPtr("Striped Shirt"),
		NameAR: stringPtr("قميص مخطط"),
		Price:  decimal.NewFromInt(45),
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Product{
		NameEN: stringPtr("Winter Coat"),
		ItemID: stringPtr("WC-01"),
		Price:  decimal.NewFromInt(120),
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	t.Run("englishName", func(t *testing.T) {
		dtos, err := svc.ListProducts(ctx, ListProductsInput{Query: "striped"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(dtos) != 1 || *dtos[0].NameEN != "Striped Shirt" {
			t.Fatalf("expected the shirt, got %d rows", len(dtos))
		}
	})

	t.Run("arabicName", func(t *testing.T) {
		dtos, err := svc.ListProducts(ctx, ListProductsInput{Query: "مخطط"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(dtos) != 1 {
			t.Fatalf("expected 1 row, got %d", len(dtos))
		}
	})

	t.Run("itemCode", func(t *testing.T) {
		dtos, err := svc.ListProducts(ctx, ListProductsInput{Query: "wc-01"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(dtos) != 1 || *dtos[0].NameEN != "Winter Coat" {
			t.Fatalf("expected the coat, got %d rows", len(dtos))
		}
	})

	t.Run("unknownCategory", func(t *testing.T) {
		_, err := svc.ListProducts(ctx, ListProductsInput{Category: "toys"})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestServiceCreateProductValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	t.Run("missingNames", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, CreateProductInput{Price: decimal.NewFromInt(10)})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("negativePrice", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, CreateProductInput{
			NameEN: stringPtr("Hat"),
			Price:  decimal.NewFromInt(-1),
		})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("defaultsApplied", func(t *testing.T) {
		dto, err := svc.CreateProduct(ctx, CreateProductInput{
			NameAR: stringPtr("قبعة"),
			Sizes:  []string{" 2Y ", "", "4Y"},
			Price:  decimal.NewFromInt(30),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dto.Category != string(enums.CategoryAll) {
			t.Fatalf("expected default category all, got %s", dto.Category)
		}
		if !dto.InStock {
			t.Fatal("expected new product in stock by default")
		}
		if len(dto.Sizes) != 2 || dto.Sizes[0] != "2Y" {
			t.Fatalf("expected cleaned sizes, got %v", dto.Sizes)
		}
	})
}

func TestServiceToggleStockFlips(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Product{
		NameEN:  stringPtr("Socks"),
		Price:   decimal.NewFromInt(12),
		InStock: true,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	dto, err := svc.ToggleStock(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.InStock {
		t.Fatal("expected stock toggled off")
	}

	dto, err = svc.ToggleStock(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dto.InStock {
		t.Fatal("expected stock toggled back on")
	}
}

func TestServiceUpdateRemovesOrphanedImages(t *testing.T) {
	svc, repo, remover := newTestService(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Product{
		NameEN: stringPtr("Jacket"),
		Price:  decimal.NewFromInt(90),
		Images: types.ImageRefs{
			{URL: "/uploads/a.png"},
			{URL: "/uploads/b.png"},
		},
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	newImages := types.ImageRefs{{URL: "/uploads/b.png"}, {URL: "/uploads/c.png"}}
	dto, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Images: &newImages})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dto.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(dto.Images))
	}
	if len(remover.removed) != 1 || remover.removed[0] != "/uploads/a.png" {
		t.Fatalf("expected only /uploads/a.png removed, got %v", remover.removed)
	}
}

func TestServiceDeleteRemovesRowAndImages(t *testing.T) {
	svc, repo, remover := newTestService(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Product{
		NameEN: stringPtr("Shoes"),
		Price:  decimal.NewFromInt(65),
		Images: types.ImageRefs{{URL: "/uploads/shoes.png"}},
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remover.removed) != 1 || remover.removed[0] != "/uploads/shoes.png" {
		t.Fatalf("expected shoes image removed, got %v", remover.removed)
	}

	_, err = svc.GetProduct(ctx, created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceGetProductNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetProduct(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
