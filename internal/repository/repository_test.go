package repository

import (
	"context"
	"testing"

	"github.com/mmeshcher/urbanaura-shop/internal/model"
	"github.com/mmeshcher/urbanaura-shop/internal/storage"
)

func newTestRepository() (*Repository, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return New(store), store
}

func TestSessionRoundTrip(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	user, err := repo.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected anonymous session, got %+v", user)
	}

	saved := &model.User{ID: 2, Name: "jane", Email: "jane@example.com"}
	if err := repo.SaveSession(ctx, saved); err != nil {
		t.Fatalf("SaveSession error: %v", err)
	}

	user, err = repo.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession error: %v", err)
	}
	if user == nil || user.ID != 2 || user.Email != "jane@example.com" {
		t.Fatalf("unexpected session user: %+v", user)
	}

	if err := repo.DeleteSession(ctx); err != nil {
		t.Fatalf("DeleteSession error: %v", err)
	}

	user, err = repo.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected anonymous session after logout, got %+v", user)
	}
}

func TestLoadSession_CorruptRecordTreatedAsAbsent(t *testing.T) {
	repo, store := newTestRepository()
	ctx := context.Background()

	if err := store.Set(ctx, storage.KeySession, []byte("{broken")); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	user, err := repo.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession error: %v", err)
	}
	if user != nil {
		t.Fatalf("corrupt session must be treated as absent, got %+v", user)
	}
}

func TestProductsRoundTrip(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	_, ok, err := repo.LoadProducts(ctx)
	if err != nil {
		t.Fatalf("LoadProducts error: %v", err)
	}
	if ok {
		t.Fatalf("expected no persisted catalog")
	}

	products := []model.Product{
		{ID: 1, Name: "Clear iPhone 15 Case", Category: model.CategoryIPhoneCases, Price: 2500},
	}
	if err := repo.SaveProducts(ctx, products); err != nil {
		t.Fatalf("SaveProducts error: %v", err)
	}

	loaded, ok, err := repo.LoadProducts(ctx)
	if err != nil {
		t.Fatalf("LoadProducts error: %v", err)
	}
	if !ok || len(loaded) != 1 || loaded[0].Name != "Clear iPhone 15 Case" {
		t.Fatalf("unexpected catalog: ok=%v products=%+v", ok, loaded)
	}
}

func TestLoadProducts_CorruptRecordTreatedAsAbsent(t *testing.T) {
	repo, store := newTestRepository()
	ctx := context.Background()

	if err := store.Set(ctx, storage.KeyProducts, []byte("42")); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	_, ok, err := repo.LoadProducts(ctx)
	if err != nil {
		t.Fatalf("LoadProducts error: %v", err)
	}
	if ok {
		t.Fatalf("corrupt catalog must be treated as absent")
	}
}

func TestLoadOrders_CorruptRecordTreatedAsEmpty(t *testing.T) {
	repo, store := newTestRepository()
	ctx := context.Background()

	if err := store.Set(ctx, storage.KeyOrders, []byte(`{"not":"a list"}`)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	orders, err := repo.LoadOrders(ctx)
	if err != nil {
		t.Fatalf("LoadOrders error: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("corrupt order list must be treated as empty, got %+v", orders)
	}
}

func TestOrdersPreserveInsertionOrder(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	orders := []model.Order{
		{ID: 100, Status: model.OrderStatusProcessing},
		{ID: 200, Status: model.OrderStatusDelivered},
	}
	if err := repo.SaveOrders(ctx, orders); err != nil {
		t.Fatalf("SaveOrders error: %v", err)
	}

	loaded, err := repo.LoadOrders(ctx)
	if err != nil {
		t.Fatalf("LoadOrders error: %v", err)
	}
	if len(loaded) != 2 || loaded[0].ID != 100 || loaded[1].ID != 200 {
		t.Fatalf("unexpected order list: %+v", loaded)
	}
}
