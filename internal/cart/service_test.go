package cart

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bellakids/storefront-backend/pkg/db/models"
	"github.com/bellakids/storefront-backend/pkg/enums"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
	"github.com/bellakids/storefront-backend/pkg/types"
)

type fakePersistence struct {
	carts   map[string]*Cart
	deleted []string
}

func newFakePersistence() *fakePersistence {
	return &fakePersistence{carts: map[string]*Cart{}}
}

func (f *fakePersistence) Load(_ context.Context, token string) (*Cart, error) {
	if cart, ok := f.carts[token]; ok {
		return cart, nil
	}
	return NewCart(), nil
}

func (f *fakePersistence) Save(_ context.Context, token string, cart *Cart) error {
	f.carts[token] = cart
	return nil
}

func (f *fakePersistence) Delete(_ context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	delete(f.carts, token)
	return nil
}

type fakeProducts struct {
	rows map[uuid.UUID]*models.Product
}

func (f *fakeProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := f.rows[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type passthroughResolver struct{}

func (passthroughResolver) Resolve(raw string) string {
	if strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "http") {
		return raw
	}
	return "/uploads/" + raw
}

type fakeRegions struct {
	keys map[string]struct{}
}

func (f *fakeRegions) IsValid(key string) bool {
	_, ok := f.keys[key]
	return ok
}

func newServiceFixture(t *testing.T) (Service, *fakePersistence, *fakeProducts) {
	t.Helper()
	store := newFakePersistence()
	itemCode := "DR-7"
	products := &fakeProducts{rows: map[uuid.UUID]*models.Product{}}
	dress := &models.Product{
		ID:     uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		ItemID: &itemCode,
		NameEN: stringPtr("Summer Dress"),
		NameAR: stringPtr("فستان صيفي"),
		Sizes:  []string{"S", "M"},
		Colors: []string{"pink", "blue"},
		Price:  decimal.NewFromInt(50),
		Images: types.ImageRefs{
			{URL: "/uploads/img1.png", VariantTag: "A"},
			{URL: "/uploads/img2.png", VariantTag: "B"},
		},
		InStock: true,
	}
	products.rows[dress.ID] = dress

	svc, err := NewService(store, products, passthroughResolver{}, &fakeRegions{
		keys: map[string]struct{}{"wb": {}, "jln": {}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc, store, products
}

func stringPtr(value string) *string {
	return &value
}

func dressID() uuid.UUID {
	return uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
}

func TestServiceAddItemSnapshotsProduct(t *testing.T) {
	svc, _, _ := newServiceFixture(t)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "tok-1", AddItemInput{
		ProductID: dressID(),
		Size:      "S",
		Color:     "pink",
		ImageURL:  "/uploads/img2.png",
		Quantity:  1,
		Locale:    enums.LocaleAR,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Lines))
	}

	line := cart.Lines[0]
	if line.Name != "فستان صيفي" {
		t.Fatalf("expected arabic snapshot name, got %q", line.Name)
	}
	if line.ItemCode != "DR-7" {
		t.Fatalf("expected item code snapshot, got %q", line.ItemCode)
	}
	if !line.UnitPrice.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected snapshot price 50, got %s", line.UnitPrice)
	}
	if line.VariantTag != "B" {
		t.Fatalf("expected variant tag from the chosen image, got %q", line.VariantTag)
	}
}

func TestServiceAddItemFallsBackToFirstImage(t *testing.T) {
	svc, _, _ := newServiceFixture(t)

	cart, err := svc.AddItem(context.Background(), "tok-1", AddItemInput{
		ProductID: dressID(),
		Size:      "S",
		Color:     "pink",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line := cart.Lines[0]
	if line.ImageURL != "/uploads/img1.png" {
		t.Fatalf("expected first product image, got %q", line.ImageURL)
	}
	if line.VariantTag != "A" {
		t.Fatalf("expected variant tag A, got %q", line.VariantTag)
	}
	if line.Quantity != 1 {
		t.Fatalf("expected quantity defaulted to 1, got %d", line.Quantity)
	}
}

func TestServiceAddItemMergesRepeatAdds(t *testing.T) {
	svc, store, _ := newServiceFixture(t)
	ctx := context.Background()

	input := AddItemInput{ProductID: dressID(), Size: "S", Color: "pink", ImageURL: "/uploads/img1.png", Quantity: 1}
	if _, err := svc.AddItem(ctx, "tok-1", input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.AddItem(ctx, "tok-1", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cart.Lines) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cart.Lines[0].Quantity)
	}
	if !cart.Subtotal().Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected subtotal 100, got %s", cart.Subtotal())
	}
	if stored := store.carts["tok-1"]; stored == nil || len(stored.Lines) != 1 {
		t.Fatal("expected merged cart persisted")
	}
}

func TestServiceAddItemMergeIgnoresCatalogPriceChange(t *testing.T) {
	svc, _, products := newServiceFixture(t)
	ctx := context.Background()

	input := AddItemInput{ProductID: dressID(), Size: "S", Color: "pink", ImageURL: "/uploads/img1.png", Quantity: 1}
	if _, err := svc.AddItem(ctx, "tok-1", input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	products.rows[dressID()].Price = decimal.NewFromInt(60)
	cart, err := svc.AddItem(ctx, "tok-1", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected one merged line with quantity 2, got %+v", cart.Lines)
	}
	if !cart.Lines[0].UnitPrice.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected unit price captured at first add, got %s", cart.Lines[0].UnitPrice)
	}
	if !cart.Subtotal().Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected subtotal 100, got %s", cart.Subtotal())
	}
}

func TestServiceAddItemDefaultsOneSize(t *testing.T) {
	svc, _, products := newServiceFixture(t)
	hat := &models.Product{
		ID:      uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8"),
		NameEN:  stringPtr("Sun Hat"),
		Price:   decimal.NewFromInt(25),
		InStock: true,
	}
	products.rows[hat.ID] = hat

	cart, err := svc.AddItem(context.Background(), "tok-1", AddItemInput{ProductID: hat.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Size != OneSize {
		t.Fatalf("expected size %q for a sizeless product, got %q", OneSize, cart.Lines[0].Size)
	}
}

func TestServiceAddItemValidation(t *testing.T) {
	svc, _, products := newServiceFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		prepare  func()
		input    AddItemInput
		wantCode pkgerrors.Code
	}{
		{
			name:     "productMissing",
			input:    AddItemInput{ProductID: uuid.New(), Size: "S"},
			wantCode: pkgerrors.CodeNotFound,
		},
		{
			name:     "missingProductID",
			input:    AddItemInput{Size: "S"},
			wantCode: pkgerrors.CodeValidation,
		},
		{
			name:     "sizeRequired",
			input:    AddItemInput{ProductID: dressID(), Color: "pink"},
			wantCode: pkgerrors.CodeValidation,
		},
		{
			name:     "sizeNotOffered",
			input:    AddItemInput{ProductID: dressID(), Size: "XXL", Color: "pink"},
			wantCode: pkgerrors.CodeValidation,
		},
		{
			name:     "colorRequired",
			input:    AddItemInput{ProductID: dressID(), Size: "S"},
			wantCode: pkgerrors.CodeValidation,
		},
		{
			name:     "colorNotOffered",
			input:    AddItemInput{ProductID: dressID(), Size: "S", Color: "green"},
			wantCode: pkgerrors.CodeValidation,
		},
		{
			name: "outOfStock",
			prepare: func() {
				products.rows[dressID()].InStock = false
			},
			input:    AddItemInput{ProductID: dressID(), Size: "S", Color: "pink"},
			wantCode: pkgerrors.CodeValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.prepare != nil {
				tc.prepare()
				defer func() { products.rows[dressID()].InStock = true }()
			}
			_, err := svc.AddItem(ctx, "tok-1", tc.input)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != tc.wantCode {
				t.Fatalf("expected %s, got %v", tc.wantCode, err)
			}
		})
	}
}

func TestServiceRemoveItem(t *testing.T) {
	svc, _, _ := newServiceFixture(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "tok-1", AddItemInput{ProductID: dressID(), Size: "S", Color: "pink"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AddItem(ctx, "tok-1", AddItemInput{ProductID: dressID(), Size: "M", Color: "pink"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart, err := svc.RemoveItem(ctx, "tok-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Size != "M" {
		t.Fatalf("expected only the M line left, got %+v", cart.Lines)
	}

	_, err = svc.RemoveItem(ctx, "tok-1", 7)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeOutOfRange {
		t.Fatalf("expected out of range, got %v", err)
	}
}

func TestServiceSetRegion(t *testing.T) {
	svc, store, _ := newServiceFixture(t)
	ctx := context.Background()

	cart, err := svc.SetRegion(ctx, "tok-1", "wb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.RegionKey != "wb" {
		t.Fatalf("expected region wb, got %q", cart.RegionKey)
	}
	if store.carts["tok-1"].RegionKey != "wb" {
		t.Fatal("expected region persisted")
	}

	t.Run("unknownRegion", func(t *testing.T) {
		_, err := svc.SetRegion(ctx, "tok-1", "mars")
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("emptyKeyClears", func(t *testing.T) {
		cart, err := svc.SetRegion(ctx, "tok-1", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cart.RegionKey != "" {
			t.Fatalf("expected cleared region, got %q", cart.RegionKey)
		}
	})
}

func TestServiceClear(t *testing.T) {
	svc, store, _ := newServiceFixture(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "tok-1", AddItemInput{ProductID: dressID(), Size: "S", Color: "pink"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Clear(ctx, "tok-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "tok-1" {
		t.Fatalf("expected stored cart deleted, got %v", store.deleted)
	}

	cart, err := svc.GetCart(ctx, "tok-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatal("expected empty cart after clear")
	}
}
