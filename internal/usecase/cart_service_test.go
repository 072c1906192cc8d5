package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/roomly/backend/internal/domain"
)

func TestCartAddItemMergesQuantities(t *testing.T) {
	service := NewCartService(newFakeBlobStore())
	ctx := context.Background()

	if err := service.AddItem(ctx, domain.CartItem{ProductID: "p1", Name: "Sofa", Price: 899, Quantity: 1}); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if err := service.AddItem(ctx, domain.CartItem{ProductID: "p1", Quantity: 2}); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}

	items := service.Items(ctx)
	if len(items) != 1 {
		t.Fatalf("expected 1 cart line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("expected merged quantity 3, got %d", items[0].Quantity)
	}
}

func TestCartAddItemDefaultsQuantity(t *testing.T) {
	service := NewCartService(newFakeBlobStore())
	ctx := context.Background()

	if err := service.AddItem(ctx, domain.CartItem{ProductID: "p1", Price: 50}); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if items := service.Items(ctx); items[0].Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", items[0].Quantity)
	}
}

func TestCartAddItemRequiresProductID(t *testing.T) {
	service := NewCartService(newFakeBlobStore())
	if err := service.AddItem(context.Background(), domain.CartItem{Name: "no id"}); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestCartSetQuantity(t *testing.T) {
	service := NewCartService(newFakeBlobStore())
	ctx := context.Background()

	if err := service.AddItem(ctx, domain.CartItem{ProductID: "p1", Price: 100, Quantity: 2}); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}

	t.Run("updates quantity", func(t *testing.T) {
		if err := service.SetQuantity(ctx, "p1", 5); err != nil {
			t.Fatalf("SetQuantity returned error: %v", err)
		}
		if items := service.Items(ctx); items[0].Quantity != 5 {
			t.Errorf("expected quantity 5, got %d", items[0].Quantity)
		}
	})

	t.Run("zero removes line", func(t *testing.T) {
		if err := service.SetQuantity(ctx, "p1", 0); err != nil {
			t.Fatalf("SetQuantity returned error: %v", err)
		}
		if items := service.Items(ctx); len(items) != 0 {
			t.Errorf("expected empty cart, got %d lines", len(items))
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		if err := service.SetQuantity(ctx, "missing", 1); !errors.Is(err, domain.ErrCartItemNotFound) {
			t.Errorf("expected ErrCartItemNotFound, got %v", err)
		}
	})
}

func TestCartTotalsWithDiscounts(t *testing.T) {
	service := NewCartService(newFakeBlobStore())
	ctx := context.Background()

	if err := service.AddItem(ctx, domain.CartItem{ProductID: "sofa", Price: 800, Quantity: 1}); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if err := service.AddItem(ctx, domain.CartItem{ProductID: "lamp", Price: 50, Quantity: 2}); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if err := service.SetDiscount(ctx, "sofa", 0.25); err != nil {
		t.Fatalf("SetDiscount returned error: %v", err)
	}

	totals := service.Totals(ctx)
	if totals.Subtotal != 900 {
		t.Errorf("expected subtotal 900, got %v", totals.Subtotal)
	}
	if totals.Discount != 200 {
		t.Errorf("expected discount 200, got %v", totals.Discount)
	}
	if math.Abs(totals.Total-700) > 1e-9 {
		t.Errorf("expected total 700, got %v", totals.Total)
	}
	if totals.ItemCount != 3 {
		t.Errorf("expected item count 3, got %d", totals.ItemCount)
	}
}

func TestCartSetDiscountValidation(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		fraction  float64
	}{
		{"blank product", "", 0.1},
		{"zero fraction", "p1", 0},
		{"negative fraction", "p1", -0.5},
		{"above one", "p1", 1.5},
	}

	service := NewCartService(newFakeBlobStore())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := service.SetDiscount(context.Background(), tt.productID, tt.fraction); !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestCartRemoveDiscount(t *testing.T) {
	service := NewCartService(newFakeBlobStore())
	ctx := context.Background()

	if err := service.SetDiscount(ctx, "p1", 0.5); err != nil {
		t.Fatalf("SetDiscount returned error: %v", err)
	}
	service.RemoveDiscount(ctx, "p1")
	if discounts := service.Discounts(ctx); len(discounts) != 0 {
		t.Errorf("expected no discounts, got %v", discounts)
	}
}

func TestCartSurvivesReload(t *testing.T) {
	store := newFakeBlobStore()
	ctx := context.Background()

	first := NewCartService(store)
	if err := first.AddItem(ctx, domain.CartItem{ProductID: "p1", Price: 10, Quantity: 4}); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if err := first.SetDiscount(ctx, "p1", 0.1); err != nil {
		t.Fatalf("SetDiscount returned error: %v", err)
	}

	second := NewCartService(store)
	if items := second.Items(ctx); len(items) != 1 || items[0].Quantity != 4 {
		t.Errorf("expected reloaded cart line with quantity 4, got %+v", items)
	}
	if discounts := second.Discounts(ctx); discounts["p1"] != 0.1 {
		t.Errorf("expected reloaded discount 0.1, got %v", discounts)
	}
}

func TestCartClear(t *testing.T) {
	service := NewCartService(newFakeBlobStore())
	ctx := context.Background()

	if err := service.AddItem(ctx, domain.CartItem{ProductID: "p1", Quantity: 1}); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	service.Clear(ctx)
	if items := service.Items(ctx); len(items) != 0 {
		t.Errorf("expected empty cart after Clear, got %d lines", len(items))
	}
}
