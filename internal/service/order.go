package service

import (
	"context"
	"errors"

	"github.com/mmeshcher/urbanaura-shop/internal/model"
	"github.com/mmeshcher/urbanaura-shop/internal/validation"
)

// ErrEmptyCart возвращается при попытке оформить заказ с пустой корзиной.
var ErrEmptyCart = errors.New("cart is empty")

// ErrOrderNotFound возвращается, если заказ с указанным идентификатором
// отсутствует.
var ErrOrderNotFound = errors.New("order not found")

// Стоимость доставки по районам Найроби; для неизвестного района
// действует ставка "other".
var deliveryPricing = map[string]int64{
	"city-center": 150,
	"westlands":   200,
	"karen":       300,
	"kiambu":      400,
	"thika":       500,
	"other":       350,
}

const defaultDeliveryFee = 350

// DeliveryFee возвращает стоимость доставки в указанный район.
func DeliveryFee(area string) int64 {
	if fee, ok := deliveryPricing[area]; ok {
		return fee
	}
	return defaultDeliveryFee
}

// CheckoutInput содержит данные формы оформления заказа.
type CheckoutInput struct {
	Address       string `json:"address"`
	Area          string `json:"area"`
	PaymentMethod string `json:"payment_method"`
	Phone         string `json:"phone"`
}

// PlaceOrder оформляет заказ из текущей корзины пользователя.
// Для оплаты M-Pesa сначала выполняется платёж: при его неуспехе заказ
// не создаётся и корзина сохраняется. Запись заказа и очистка корзины —
// две независимые операции без общей транзакции.
func (s *Service) PlaceOrder(ctx context.Context, user *model.User, in CheckoutInput) (*model.Order, error) {
	items := s.Cart(user.ID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := validateCheckoutInput(in); err != nil {
		return nil, err
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.Product.Price * int64(item.Quantity)
	}
	fee := DeliveryFee(in.Area)
	total := subtotal + fee

	var transactionID string
	phone := ""
	if in.PaymentMethod == model.PaymentMethodMpesa {
		receipt, err := s.gateway.Charge(ctx, in.Phone, total)
		if err != nil {
			return nil, err
		}
		transactionID = receipt.TransactionID
		phone = in.Phone
	}

	order := model.Order{
		ID: s.nextID(),
		Customer: model.Customer{
			Name:  user.Name,
			Email: user.Email,
			Phone: phone,
		},
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		Total:         total,
		Address:       in.Address,
		Area:          in.Area,
		PaymentMethod: in.PaymentMethod,
		TransactionID: transactionID,
		Status:        model.OrderStatusProcessing,
		CreatedAt:     s.now(),
	}

	orders, err := s.repo.LoadOrders(ctx)
	if err != nil {
		return nil, err
	}

	orders = append(orders, order)
	if err := s.repo.SaveOrders(ctx, orders); err != nil {
		return nil, err
	}

	s.ClearCart(user.ID)

	return &order, nil
}

// ListOrders возвращает все заказы в порядке добавления.
func (s *Service) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.repo.LoadOrders(ctx)
}

// Order возвращает заказ по идентификатору.
func (s *Service) Order(ctx context.Context, id int64) (*model.Order, error) {
	orders, err := s.repo.LoadOrders(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}

	return nil, ErrOrderNotFound
}

// UpdateOrderStatus перезаписывает статус заказа. Допустим любой переход
// между известными статусами.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "unknown status"}
	}

	orders, err := s.repo.LoadOrders(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID != orderID {
			continue
		}

		orders[i].Status = status
		if err := s.repo.SaveOrders(ctx, orders); err != nil {
			return nil, err
		}

		return &orders[i], nil
	}

	return nil, ErrOrderNotFound
}

func validateCheckoutInput(in CheckoutInput) error {
	if in.Address == "" {
		return &ValidationError{Field: "address", Reason: "must not be empty"}
	}
	if in.Area == "" {
		return &ValidationError{Field: "area", Reason: "must not be empty"}
	}

	switch in.PaymentMethod {
	case model.PaymentMethodMpesa:
		if in.Phone == "" {
			return &ValidationError{Field: "phone", Reason: "must not be empty"}
		}
		if !validation.IsValidPhoneNumber(in.Phone) {
			return &ValidationError{Field: "phone", Reason: "invalid phone number"}
		}
	case model.PaymentMethodCOD:
	default:
		return &ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	}

	return nil
}
