package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/mmeshcher/urbanaura-shop/internal/model"
)

// ErrProductNotFound возвращается, если товар с указанным идентификатором
// отсутствует в каталоге.
var ErrProductNotFound = errors.New("product not found")

// ValidationError описывает ошибку валидации с указанием поля и причины.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Картинка-заглушка для товара без изображения.
const defaultProductImage = "https://images.unsplash.com/photo-1601784551446-20c9e07cdbdb?w=400&h=400&fit=crop"

// ProductInput содержит поля формы создания и редактирования товара.
// Цена приходит строкой из формы и должна парситься в положительное целое.
type ProductInput struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// CatalogStats содержит сводку каталога для панели администратора.
type CatalogStats struct {
	Total      int                    `json:"total"`
	ByCategory map[model.Category]int `json:"by_category"`
}

// ListProducts возвращает каталог товаров. При самом первом обращении,
// когда сохранённого каталога нет, засевает и сохраняет стартовый набор.
func (s *Service) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, ok, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return products, nil
	}

	seeded := seedProducts()
	if err := s.repo.SaveProducts(ctx, seeded); err != nil {
		return nil, err
	}

	return seeded, nil
}

// ListProductsByCategory возвращает товары указанной категории.
func (s *Service) ListProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Category == model.Category(category) {
			filtered = append(filtered, p)
		}
	}

	return filtered, nil
}

// Product возвращает товар по идентификатору.
func (s *Service) Product(ctx context.Context, id int64) (*model.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}

	return nil, ErrProductNotFound
}

// CreateProduct добавляет товар в каталог. При ошибке валидации каталог
// не изменяется.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	price, err := validateProductInput(in)
	if err != nil {
		return nil, err
	}

	image := in.Image
	if image == "" {
		image = defaultProductImage
	}

	product := model.Product{
		ID:          s.nextID(),
		Name:        in.Name,
		Category:    model.Category(in.Category),
		Price:       price,
		Image:       image,
		Description: in.Description,
		Features:    in.Features,
		InStock:     true,
	}

	products, _, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}

	products = append(products, product)
	if err := s.repo.SaveProducts(ctx, products); err != nil {
		return nil, err
	}

	return &product, nil
}

// UpdateProduct заменяет изменяемые поля товара, сохраняя идентификатор.
// Пустое изображение оставляет прежнее.
func (s *Service) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*model.Product, error) {
	price, err := validateProductInput(in)
	if err != nil {
		return nil, err
	}

	products, _, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}

		products[i].Name = in.Name
		products[i].Category = model.Category(in.Category)
		products[i].Price = price
		products[i].Description = in.Description
		if in.Image != "" {
			products[i].Image = in.Image
		}
		if in.Features != nil {
			products[i].Features = in.Features
		}

		if err := s.repo.SaveProducts(ctx, products); err != nil {
			return nil, err
		}

		return &products[i], nil
	}

	return nil, ErrProductNotFound
}

// DeleteProduct удаляет товар из каталога. Неизвестный идентификатор
// не является ошибкой.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	products, _, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return err
	}

	filtered := products[:0]
	for _, p := range products {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}

	return s.repo.SaveProducts(ctx, filtered)
}

// GetCatalogStats возвращает сводку каталога по категориям.
func (s *Service) GetCatalogStats(ctx context.Context) (*CatalogStats, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &CatalogStats{
		Total:      len(products),
		ByCategory: make(map[model.Category]int),
	}
	for _, c := range model.Categories() {
		stats.ByCategory[c] = 0
	}
	for _, p := range products {
		stats.ByCategory[p.Category]++
	}

	return stats, nil
}

func validateProductInput(in ProductInput) (int64, error) {
	if in.Name == "" {
		return 0, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.Category == "" {
		return 0, &ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if !model.Category(in.Category).Valid() {
		return 0, &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if in.Description == "" {
		return 0, &ValidationError{Field: "description", Reason: "must not be empty"}
	}

	price, err := strconv.ParseInt(in.Price, 10, 64)
	if err != nil || price <= 0 {
		return 0, &ValidationError{Field: "price", Reason: "must be a positive integer"}
	}

	return price, nil
}

// seedProducts возвращает стартовый каталог: по три товара в каждой категории.
func seedProducts() []model.Product {
	return []model.Product{
		{
			ID:          1,
			Name:        "Clear iPhone 15 Case",
			Category:    model.CategoryIPhoneCases,
			Price:       2500,
			Image:       "https://images.unsplash.com/photo-1601784551446-20c9e07cdbdb?w=400&h=400&fit=crop",
			Description: "Crystal clear protection for your iPhone 15",
			Features:    []string{"Crystal Clear", "Drop Protection", "Wireless Charging Compatible", "Scratch Resistant"},
			InStock:     true,
		},
		{
			ID:          2,
			Name:        "Leather iPhone 15 Pro Case",
			Category:    model.CategoryIPhoneCases,
			Price:       4500,
			Image:       "https://images.unsplash.com/photo-1556656793-08538906a9f8?w=400&h=400&fit=crop",
			Description: "Premium leather case with card slots",
			Features:    []string{"Genuine Leather", "Card Slots", "Magnetic Closure", "Premium Feel"},
			InStock:     true,
		},
		{
			ID:          3,
			Name:        "MagSafe iPhone 14 Case",
			Category:    model.CategoryIPhoneCases,
			Price:       3500,
			Image:       "https://images.unsplash.com/photo-1592779677260-dea1358c09d3?w=400&h=400&fit=crop",
			Description: "Compatible with MagSafe charging",
			Features:    []string{"MagSafe Compatible", "Strong Magnets", "Easy Installation", "Wireless Charging"},
			InStock:     true,
		},
		{
			ID:          4,
			Name:        "Aviator Sunglasses",
			Category:    model.CategorySunglasses,
			Price:       6500,
			Image:       "https://images.unsplash.com/photo-1572635196237-14b3f281503f?w=400&h=400&fit=crop",
			Description: "Classic aviator style with UV protection",
			Features:    []string{"UV 400 Protection", "Metal Frame", "Classic Design", "Comfortable Fit"},
			InStock:     true,
		},
		{
			ID:          5,
			Name:        "Polarized Sport Sunglasses",
			Category:    model.CategorySunglasses,
			Price:       8500,
			Image:       "https://images.unsplash.com/photo-1511499767150-a48a237f0083?w=400&h=400&fit=crop",
			Description: "Perfect for outdoor activities",
			Features:    []string{"Polarized Lenses", "Sport Design", "Lightweight", "Anti-Glare"},
			InStock:     true,
		},
		{
			ID:          6,
			Name:        "Vintage Round Sunglasses",
			Category:    model.CategorySunglasses,
			Price:       5500,
			Image:       "https://images.unsplash.com/photo-1508296695146-257a814070b4?w=400&h=400&fit=crop",
			Description: "Retro style meets modern protection",
			Features:    []string{"Vintage Style", "Round Frame", "UV Protection", "Trendy Design"},
			InStock:     true,
		},
	}
}
