package service

import (
	"context"

	"github.com/mmeshcher/urbanaura-shop/internal/payment"
	"github.com/mmeshcher/urbanaura-shop/internal/repository"
	"github.com/mmeshcher/urbanaura-shop/internal/storage"
)

// stubGateway записывает параметры последнего платежа и возвращает
// заранее заданный результат.
type stubGateway struct {
	receipt *payment.Receipt
	err     error

	calls  int
	phone  string
	amount int64
}

func (g *stubGateway) Charge(_ context.Context, phone string, amount int64) (*payment.Receipt, error) {
	g.calls++
	g.phone = phone
	g.amount = amount

	if g.err != nil {
		return nil, g.err
	}
	return g.receipt, nil
}

func newTestService(gateway payment.Gateway) *Service {
	if gateway == nil {
		gateway = &stubGateway{receipt: &payment.Receipt{TransactionID: "TXN-STUB0001"}}
	}
	return NewService(repository.New(storage.NewMemoryStore()), gateway, "", "")
}
