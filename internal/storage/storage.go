// Package storage реализует key-value хранилище записей магазина.
// Каждая коллекция записей хранится целиком под одним логическим ключом.
package storage

import (
	"context"
	"errors"
)

// Ключи коллекций хранилища.
const (
	KeySession  = "urbanaura_user"
	KeyProducts = "urbanaura_products"
	KeyOrders   = "urbanaura_orders"
)

// ErrNotFound возвращается, когда запись по ключу отсутствует.
var ErrNotFound = errors.New("record not found")

// Store описывает контракт key-value хранилища.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
