// Package service реализует бизнес-логику магазина urbanaura:
// сессию покупателя, корзину, каталог товаров и оформление заказов.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/mmeshcher/urbanaura-shop/internal/config"
	"github.com/mmeshcher/urbanaura-shop/internal/model"
	"github.com/mmeshcher/urbanaura-shop/internal/payment"
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error
	LoadSession(ctx context.Context) (*model.User, error)
	SaveSession(ctx context.Context, u *model.User) error
	DeleteSession(ctx context.Context) error
	LoadProducts(ctx context.Context) ([]model.Product, bool, error)
	SaveProducts(ctx context.Context, products []model.Product) error
	LoadOrders(ctx context.Context) ([]model.Order, error)
	SaveOrders(ctx context.Context, orders []model.Order) error
}

// Service содержит бизнес-логику магазина urbanaura.
type Service struct {
	repo    Repository
	gateway payment.Gateway

	adminEmail    string
	adminPassword string

	// Корзины живут только в памяти процесса и никогда не сохраняются.
	cartMu sync.Mutex
	carts  map[int64][]model.CartItem

	idMu   sync.Mutex
	lastID int64

	now func() time.Time
}

// NewService создаёт сервис с указанным репозиторием и платёжным шлюзом.
func NewService(repo Repository, gateway payment.Gateway, adminEmail, adminPassword string) *Service {
	if adminEmail == "" {
		adminEmail = config.DefaultAdminEmail
	}
	if adminPassword == "" {
		adminPassword = config.DefaultAdminPassword
	}

	return &Service{
		repo:          repo,
		gateway:       gateway,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		carts:         make(map[int64][]model.CartItem),
		now:           time.Now,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// nextID выдаёт идентификатор из текущего времени в миллисекундах.
// Повторный вызов в пределах одной миллисекунды получает следующее значение,
// чтобы сохранить уникальность идентификаторов.
func (s *Service) nextID() int64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
