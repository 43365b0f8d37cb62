package service

import (
	"context"
	"errors"
	"testing"
)

const cartUserID = int64(2)

func TestAddToCart_RepeatIncrementsQuantity(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	// Товар 1 — Clear iPhone 15 Case, 2500 KSh из стартового каталога.
	if _, err := s.AddToCart(ctx, cartUserID, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := s.AddToCart(ctx, cartUserID, 1); err != nil {
		t.Fatalf("AddToCart second time: %v", err)
	}

	items := s.Cart(cartUserID)
	if len(items) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", items[0].Quantity)
	}
	if got := s.TotalItems(cartUserID); got != 2 {
		t.Fatalf("TotalItems = %d, want 2", got)
	}
	if got := s.TotalPrice(cartUserID); got != 5000 {
		t.Fatalf("TotalPrice = %d, want 5000", got)
	}
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	s := newTestService(nil)

	if _, err := s.AddToCart(context.Background(), cartUserID, 999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("AddToCart error = %v, want ErrProductNotFound", err)
	}
	if items := s.Cart(cartUserID); len(items) != 0 {
		t.Fatalf("cart must stay empty, got %d lines", len(items))
	}
}

func TestUpdateQuantity(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	if _, err := s.AddToCart(ctx, cartUserID, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := s.AddToCart(ctx, cartUserID, 4); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	s.UpdateQuantity(cartUserID, 1, 5)
	items := s.Cart(cartUserID)
	if len(items) != 2 || items[0].Quantity != 5 {
		t.Fatalf("unexpected cart after update: %+v", items)
	}

	// Нулевое количество удаляет позицию целиком.
	s.UpdateQuantity(cartUserID, 1, 0)
	items = s.Cart(cartUserID)
	if len(items) != 1 {
		t.Fatalf("cart has %d lines after zero quantity, want 1", len(items))
	}
	if items[0].Product.ID != 4 {
		t.Fatalf("remaining line product = %d, want 4", items[0].Product.ID)
	}
}

func TestRemoveFromCart(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	if _, err := s.AddToCart(ctx, cartUserID, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	s.RemoveFromCart(cartUserID, 1)
	if items := s.Cart(cartUserID); len(items) != 0 {
		t.Fatalf("cart has %d lines after remove, want 0", len(items))
	}

	// Удаление отсутствующей позиции не является ошибкой.
	s.RemoveFromCart(cartUserID, 1)
}

func TestCartLineKeepsProductSnapshot(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	if _, err := s.AddToCart(ctx, cartUserID, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	if _, err := s.UpdateProduct(ctx, 1, ProductInput{
		Name:        "Renamed Case",
		Category:    "iphone-cases",
		Price:       "9900",
		Description: "updated",
	}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	items := s.Cart(cartUserID)
	if items[0].Product.Name != "Clear iPhone 15 Case" || items[0].Product.Price != 2500 {
		t.Fatalf("cart line must keep product snapshot, got %+v", items[0].Product)
	}
}

func TestGetCartSummary(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	if _, err := s.AddToCart(ctx, cartUserID, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := s.AddToCart(ctx, cartUserID, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := s.AddToCart(ctx, cartUserID, 4); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	summary := s.GetCartSummary(cartUserID)
	if len(summary.Items) != 2 {
		t.Fatalf("summary has %d lines, want 2", len(summary.Items))
	}
	if summary.TotalItems != 3 {
		t.Fatalf("TotalItems = %d, want 3", summary.TotalItems)
	}
	if summary.TotalPrice != 2*2500+6500 {
		t.Fatalf("TotalPrice = %d, want %d", summary.TotalPrice, 2*2500+6500)
	}
}

func TestClearCart(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	if _, err := s.AddToCart(ctx, cartUserID, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	s.ClearCart(cartUserID)
	if got := s.TotalItems(cartUserID); got != 0 {
		t.Fatalf("TotalItems after clear = %d, want 0", got)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	if _, err := s.AddToCart(ctx, 2, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := s.AddToCart(ctx, 3, 4); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	if items := s.Cart(2); len(items) != 1 || items[0].Product.ID != 1 {
		t.Fatalf("unexpected cart of user 2: %+v", items)
	}
	if items := s.Cart(3); len(items) != 1 || items[0].Product.ID != 4 {
		t.Fatalf("unexpected cart of user 3: %+v", items)
	}
}
