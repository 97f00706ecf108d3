package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
)

func testLine(mutate func(*Line)) Line {
	line := Line{
		ProductID: uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		Name:      "Summer Dress",
		Size:      "S",
		Color:     "pink",
		ImageURL:  "/uploads/img1.png",
		UnitPrice: decimal.NewFromInt(50),
		Quantity:  1,
	}
	if mutate != nil {
		mutate(&line)
	}
	return line
}

func TestCartAddMergesIdenticalLines(t *testing.T) {
	cart := NewCart()
	cart.Add(testLine(nil))
	cart.Add(testLine(nil))

	if len(cart.Lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cart.Lines[0].Quantity)
	}
	if !cart.Subtotal().Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected subtotal 100, got %s", cart.Subtotal())
	}
}

func TestCartAddMergeKeepsOriginalSnapshot(t *testing.T) {
	cart := NewCart()
	cart.Add(testLine(nil))
	cart.Add(testLine(func(l *Line) {
		l.Name = "Summer Dress (renamed)"
		l.UnitPrice = decimal.NewFromInt(60)
	}))

	if len(cart.Lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cart.Lines[0].Quantity)
	}
	if !cart.Lines[0].UnitPrice.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected unit price captured at first add, got %s", cart.Lines[0].UnitPrice)
	}
	if cart.Lines[0].Name != "Summer Dress" {
		t.Fatalf("expected original name kept, got %q", cart.Lines[0].Name)
	}
	if !cart.Subtotal().Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected subtotal 100, got %s", cart.Subtotal())
	}
}

func TestCartAddKeepsDistinctVariantsApart(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Line)
	}{
		{name: "differentSize", mutate: func(l *Line) { l.Size = "M" }},
		{name: "differentColor", mutate: func(l *Line) { l.Color = "blue" }},
		{name: "differentImage", mutate: func(l *Line) { l.ImageURL = "/uploads/img2.png" }},
		{name: "differentProduct", mutate: func(l *Line) { l.ProductID = uuid.New() }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cart := NewCart()
			cart.Add(testLine(nil))
			cart.Add(testLine(tc.mutate))
			if len(cart.Lines) != 2 {
				t.Fatalf("expected 2 distinct lines, got %d", len(cart.Lines))
			}
		})
	}
}

func TestCartAddClampsQuantity(t *testing.T) {
	cart := NewCart()
	cart.Add(testLine(func(l *Line) { l.Quantity = 0 }))
	if cart.Lines[0].Quantity != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", cart.Lines[0].Quantity)
	}

	cart.Add(testLine(func(l *Line) { l.Quantity = -3 }))
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected merged quantity 2, got %d", cart.Lines[0].Quantity)
	}
}

func TestCartRemoveLineShiftsFollowing(t *testing.T) {
	cart := NewCart()
	cart.Add(testLine(nil))
	cart.Add(testLine(func(l *Line) { l.Size = "M" }))
	cart.Add(testLine(func(l *Line) { l.Size = "L" }))

	if err := cart.RemoveLine(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Size != "S" || cart.Lines[1].Size != "L" {
		t.Fatalf("expected S then L after removal, got %s then %s", cart.Lines[0].Size, cart.Lines[1].Size)
	}
}

func TestCartRemoveLineOutOfRange(t *testing.T) {
	cart := NewCart()
	cart.Add(testLine(nil))

	for _, index := range []int{-1, 1, 5} {
		err := cart.RemoveLine(index)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeOutOfRange {
			t.Fatalf("expected out of range error for index %d, got %v", index, err)
		}
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected cart untouched, got %d lines", len(cart.Lines))
	}
}

func TestCartTotals(t *testing.T) {
	fee := decimal.NewFromInt(20)

	t.Run("emptyCartOwesNothing", func(t *testing.T) {
		cart := NewCart()
		if !cart.Total(fee).IsZero() {
			t.Fatalf("expected zero total for empty cart, got %s", cart.Total(fee))
		}
		if !cart.Subtotal().IsZero() {
			t.Fatalf("expected zero subtotal, got %s", cart.Subtotal())
		}
		if cart.ItemCount() != 0 {
			t.Fatalf("expected zero items, got %d", cart.ItemCount())
		}
	})

	t.Run("totalAddsDeliveryFee", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testLine(func(l *Line) { l.Quantity = 2 }))
		if !cart.Total(fee).Equal(decimal.NewFromInt(120)) {
			t.Fatalf("expected total 120, got %s", cart.Total(fee))
		}
		if cart.ItemCount() != 2 {
			t.Fatalf("expected 2 items, got %d", cart.ItemCount())
		}
	})

	t.Run("fractionalPricesStayExact", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testLine(func(l *Line) {
			l.UnitPrice = decimal.NewFromFloat(19.90)
			l.Quantity = 3
		}))
		if got := cart.Subtotal().StringFixed(2); got != "59.70" {
			t.Fatalf("expected subtotal 59.70, got %s", got)
		}
	})
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	cart.Add(testLine(nil))
	cart.RegionKey = "wb"

	cart.Clear()
	if !cart.IsEmpty() {
		t.Fatal("expected empty cart after clear")
	}
	if cart.RegionKey != "" {
		t.Fatalf("expected region cleared, got %q", cart.RegionKey)
	}
}

func TestSummarizeDerivesTotals(t *testing.T) {
	cart := NewCart()
	cart.Add(testLine(func(l *Line) { l.Quantity = 2 }))
	cart.Add(testLine(func(l *Line) {
		l.Size = "M"
		l.UnitPrice = decimal.NewFromInt(30)
	}))
	cart.RegionKey = "jln"

	summary := Summarize(cart)
	if len(summary.Lines) != 2 {
		t.Fatalf("expected 2 line views, got %d", len(summary.Lines))
	}
	if !summary.Lines[0].Subtotal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected first line subtotal 100, got %s", summary.Lines[0].Subtotal)
	}
	if summary.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", summary.ItemCount)
	}
	if !summary.Subtotal.Equal(decimal.NewFromInt(130)) {
		t.Fatalf("expected subtotal 130, got %s", summary.Subtotal)
	}
	if summary.RegionKey != "jln" {
		t.Fatalf("expected region jln, got %q", summary.RegionKey)
	}
}

func TestAdjustPendingQuantity(t *testing.T) {
	cases := []struct {
		name    string
		current int
		delta   int
		want    int
	}{
		{"increment", 2, 1, 3},
		{"decrement", 3, -1, 2},
		{"floorAtOne", 1, -1, 1},
		{"bigNegativeDelta", 2, -10, 1},
		{"fromZeroSelection", 0, 4, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AdjustPendingQuantity(tc.current, tc.delta); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
