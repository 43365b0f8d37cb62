// Package model содержит доменные сущности магазина urbanaura.
package model

import "time"

// Category описывает категорию товара каталога.
type Category string

const (
	CategoryIPhoneCases Category = "iphone-cases"
	CategorySunglasses  Category = "sunglasses"
)

// Valid сообщает, является ли категория одной из известных.
func (c Category) Valid() bool {
	switch c {
	case CategoryIPhoneCases, CategorySunglasses:
		return true
	}
	return false
}

// Categories возвращает список всех категорий каталога.
func Categories() []Category {
	return []Category{CategoryIPhoneCases, CategorySunglasses}
}

// Product представляет товар каталога.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Features    []string `json:"features,omitempty"`
	InStock     bool     `json:"in_stock"`
}

// User представляет пользователя текущей сессии.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// CartItem описывает позицию корзины: денормализованную копию товара
// на момент добавления и количество.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// OrderStatus описывает статус обработки заказа.
type OrderStatus string

const (
	OrderStatusProcessing     OrderStatus = "Processing"
	OrderStatusConfirmed      OrderStatus = "Confirmed"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

// Valid сообщает, является ли статус одним из известных.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusConfirmed, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Способы оплаты заказа.
const (
	PaymentMethodMpesa = "mpesa"
	PaymentMethodCOD   = "cod"
)

// Customer содержит снимок данных покупателя на момент оформления заказа.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Order описывает оформленный заказ. Суммы хранятся в целых шиллингах,
// позиции — как снимок корзины на момент оформления.
type Order struct {
	ID            int64       `json:"id"`
	Customer      Customer    `json:"customer"`
	Items         []CartItem  `json:"items"`
	Subtotal      int64       `json:"subtotal"`
	DeliveryFee   int64       `json:"delivery_fee"`
	Total         int64       `json:"total"`
	Address       string      `json:"address"`
	Area          string      `json:"area"`
	PaymentMethod string      `json:"payment_method"`
	TransactionID string      `json:"transaction_id,omitempty"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}
