package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mmeshcher/urbanaura-shop/internal/model"
)

func TestListProducts_SeedsCatalogOnFirstCall(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	products, err := s.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 6 {
		t.Fatalf("seeded catalog has %d products, want 6", len(products))
	}

	// Повторный вызов читает сохранённый каталог, а не засевает заново.
	again, err := s.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts second call: %v", err)
	}
	if len(again) != 6 {
		t.Fatalf("catalog has %d products after reread, want 6", len(again))
	}
}

func TestListProductsByCategory(t *testing.T) {
	s := newTestService(nil)

	cases, err := s.ListProductsByCategory(context.Background(), "iphone-cases")
	if err != nil {
		t.Fatalf("ListProductsByCategory: %v", err)
	}
	if len(cases) != 3 {
		t.Fatalf("got %d iphone cases, want 3", len(cases))
	}
	for _, p := range cases {
		if p.Category != model.CategoryIPhoneCases {
			t.Fatalf("product %d has category %s", p.ID, p.Category)
		}
	}

	none, err := s.ListProductsByCategory(context.Background(), "watches")
	if err != nil {
		t.Fatalf("ListProductsByCategory: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("got %d products for unknown category, want 0", len(none))
	}
}

func TestCreateProduct(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, ProductInput{
		Name:        "Titanium iPhone 15 Pro Case",
		Category:    "iphone-cases",
		Price:       "7500",
		Description: "Aerospace grade titanium shell",
		Features:    []string{"Titanium", "Ultra Thin"},
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("created product has zero id")
	}
	if created.Price != 7500 {
		t.Fatalf("price = %d, want 7500", created.Price)
	}
	if created.Image != defaultProductImage {
		t.Fatalf("empty image must fall back to placeholder, got %s", created.Image)
	}
	if !created.InStock {
		t.Fatalf("new product must be in stock")
	}

	products, err := s.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 7 {
		t.Fatalf("catalog has %d products, want 7", len(products))
	}
	if products[6].ID != created.ID {
		t.Fatalf("new product must be appended last")
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    ProductInput
		field string
	}{
		{
			name:  "empty name",
			in:    ProductInput{Category: "sunglasses", Price: "100", Description: "d"},
			field: "name",
		},
		{
			name:  "unknown category",
			in:    ProductInput{Name: "n", Category: "watches", Price: "100", Description: "d"},
			field: "category",
		},
		{
			name:  "empty description",
			in:    ProductInput{Name: "n", Category: "sunglasses", Price: "100"},
			field: "description",
		},
		{
			name:  "non-numeric price",
			in:    ProductInput{Name: "n", Category: "sunglasses", Price: "abc", Description: "d"},
			field: "price",
		},
		{
			name:  "negative price",
			in:    ProductInput{Name: "n", Category: "sunglasses", Price: "-5", Description: "d"},
			field: "price",
		},
		{
			name:  "zero price",
			in:    ProductInput{Name: "n", Category: "sunglasses", Price: "0", Description: "d"},
			field: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateProduct(ctx, tt.in)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("CreateProduct error = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Fatalf("validation field = %s, want %s", verr.Field, tt.field)
			}

			products, err := s.ListProducts(ctx)
			if err != nil {
				t.Fatalf("ListProducts: %v", err)
			}
			if len(products) != 6 {
				t.Fatalf("catalog changed on invalid input: %d products", len(products))
			}
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	updated, err := s.UpdateProduct(ctx, 4, ProductInput{
		Name:        "Aviator Sunglasses Gold",
		Category:    "sunglasses",
		Price:       "7000",
		Description: "Gold rim edition",
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.ID != 4 {
		t.Fatalf("id changed to %d", updated.ID)
	}
	if updated.Name != "Aviator Sunglasses Gold" || updated.Price != 7000 {
		t.Fatalf("unexpected product after update: %+v", updated)
	}

	// Пустое изображение и nil-список особенностей сохраняют прежние значения.
	if updated.Image == "" {
		t.Fatalf("image must be kept when input image is empty")
	}
	if len(updated.Features) == 0 {
		t.Fatalf("features must be kept when input features are nil")
	}

	got, err := s.Product(ctx, 4)
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	if got.Name != "Aviator Sunglasses Gold" {
		t.Fatalf("update was not persisted: %+v", got)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	s := newTestService(nil)

	_, err := s.UpdateProduct(context.Background(), 999, ProductInput{
		Name:        "n",
		Category:    "sunglasses",
		Price:       "100",
		Description: "d",
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("UpdateProduct error = %v, want ErrProductNotFound", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	if err := s.DeleteProduct(ctx, 1); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	if _, err := s.Product(ctx, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("Product after delete error = %v, want ErrProductNotFound", err)
	}

	products, err := s.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 5 {
		t.Fatalf("catalog has %d products after delete, want 5", len(products))
	}

	// Повторное удаление того же товара не является ошибкой.
	if err := s.DeleteProduct(ctx, 1); err != nil {
		t.Fatalf("repeat DeleteProduct: %v", err)
	}
}

func TestGetCatalogStats(t *testing.T) {
	s := newTestService(nil)

	stats, err := s.GetCatalogStats(context.Background())
	if err != nil {
		t.Fatalf("GetCatalogStats: %v", err)
	}
	if stats.Total != 6 {
		t.Fatalf("total = %d, want 6", stats.Total)
	}
	if stats.ByCategory[model.CategoryIPhoneCases] != 3 {
		t.Fatalf("iphone cases = %d, want 3", stats.ByCategory[model.CategoryIPhoneCases])
	}
	if stats.ByCategory[model.CategorySunglasses] != 3 {
		t.Fatalf("sunglasses = %d, want 3", stats.ByCategory[model.CategorySunglasses])
	}
}
