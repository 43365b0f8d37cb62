package service

import (
	"context"

	"github.com/mmeshcher/urbanaura-shop/internal/model"
)

// CartSummary агрегирует состояние корзины для отображения.
type CartSummary struct {
	Items      []model.CartItem `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPrice int64            `json:"total_price"`
}

// AddToCart добавляет товар в корзину пользователя. Повторное добавление
// увеличивает количество существующей позиции на единицу; верхней границы нет.
func (s *Service) AddToCart(ctx context.Context, userID, productID int64) (model.CartItem, error) {
	product, err := s.Product(ctx, productID)
	if err != nil {
		return model.CartItem{}, err
	}

	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity++
			return items[i], nil
		}
	}

	// В позиции хранится копия товара, а не ссылка на каталог:
	// последующее редактирование товара не меняет корзину.
	item := model.CartItem{Product: *product, Quantity: 1}
	s.carts[userID] = append(items, item)
	return item, nil
}

// RemoveFromCart удаляет позицию с указанным товаром, если она есть.
func (s *Service) RemoveFromCart(userID, productID int64) {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	s.removeLocked(userID, productID)
}

// UpdateQuantity устанавливает количество позиции. Значение меньше либо
// равное нулю удаляет позицию.
func (s *Service) UpdateQuantity(userID, productID int64, quantity int) {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	if quantity <= 0 {
		s.removeLocked(userID, productID)
		return
	}

	items := s.carts[userID]
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = quantity
			return
		}
	}
}

// Cart возвращает копию позиций корзины пользователя.
func (s *Service) Cart(userID int64) []model.CartItem {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	items := s.carts[userID]
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}

// TotalItems возвращает суммарное количество единиц товара в корзине.
func (s *Service) TotalItems(userID int64) int {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	total := 0
	for _, item := range s.carts[userID] {
		total += item.Quantity
	}
	return total
}

// TotalPrice возвращает стоимость корзины в целых шиллингах.
func (s *Service) TotalPrice(userID int64) int64 {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	var total int64
	for _, item := range s.carts[userID] {
		total += item.Product.Price * int64(item.Quantity)
	}
	return total
}

// ClearCart опустошает корзину пользователя.
func (s *Service) ClearCart(userID int64) {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	delete(s.carts, userID)
}

// GetCartSummary возвращает позиции корзины вместе с итогами.
func (s *Service) GetCartSummary(userID int64) CartSummary {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	items := s.carts[userID]
	summary := CartSummary{
		Items: make([]model.CartItem, len(items)),
	}
	copy(summary.Items, items)

	for _, item := range items {
		summary.TotalItems += item.Quantity
		summary.TotalPrice += item.Product.Price * int64(item.Quantity)
	}

	return summary
}

func (s *Service) removeLocked(userID, productID int64) {
	items := s.carts[userID]
	for i := range items {
		if items[i].Product.ID == productID {
			s.carts[userID] = append(items[:i], items[i+1:]...)
			return
		}
	}
}
