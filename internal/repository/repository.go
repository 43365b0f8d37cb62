// Package repository предоставляет типизированный доступ к коллекциям записей
// магазина поверх key-value хранилища.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmeshcher/urbanaura-shop/internal/model"
	"github.com/mmeshcher/urbanaura-shop/internal/storage"
)

// Repository сериализует доменные записи в JSON и обратно.
// Повреждённая запись трактуется как отсутствующая: сессия считается
// анонимной, каталог — незасеянным, список заказов — пустым.
type Repository struct {
	store storage.Store
}

// New создаёт репозиторий поверх указанного хранилища.
func New(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Close закрывает нижележащее хранилище.
func (r *Repository) Close() error {
	return r.store.Close()
}

// LoadSession возвращает пользователя текущей сессии или nil, если сессии нет.
func (r *Repository) LoadSession(ctx context.Context) (*model.User, error) {
	data, err := r.store.Get(ctx, storage.KeySession)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var u model.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, nil
	}

	return &u, nil
}

// SaveSession сохраняет пользователя как запись текущей сессии.
func (r *Repository) SaveSession(ctx context.Context, u *model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.store.Set(ctx, storage.KeySession, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// DeleteSession удаляет запись текущей сессии.
func (r *Repository) DeleteSession(ctx context.Context) error {
	if err := r.store.Delete(ctx, storage.KeySession); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// LoadProducts возвращает каталог товаров. Второе значение сообщает,
// была ли найдена сохранённая запись каталога.
func (r *Repository) LoadProducts(ctx context.Context) ([]model.Product, bool, error) {
	data, err := r.store.Get(ctx, storage.KeyProducts)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load products: %w", err)
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, nil
	}

	return products, true, nil
}

// SaveProducts сохраняет каталог товаров целиком.
func (r *Repository) SaveProducts(ctx context.Context, products []model.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal products: %w", err)
	}

	if err := r.store.Set(ctx, storage.KeyProducts, data); err != nil {
		return fmt.Errorf("save products: %w", err)
	}

	return nil
}

// LoadOrders возвращает список заказов в порядке добавления.
func (r *Repository) LoadOrders(ctx context.Context) ([]model.Order, error) {
	data, err := r.store.Get(ctx, storage.KeyOrders)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load orders: %w", err)
	}

	var orders []model.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, nil
	}

	return orders, nil
}

// SaveOrders сохраняет список заказов целиком.
func (r *Repository) SaveOrders(ctx context.Context, orders []model.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}

	if err := r.store.Set(ctx, storage.KeyOrders, data); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}

	return nil
}
