// Package payment реализует взаимодействие с платёжной системой M-Pesa:
// имитацию STK-push-запроса и HTTP-клиент внешнего платёжного шлюза.
package payment

import (
	"context"
	"errors"
)

// ErrTransactionFailed возвращается, когда платёж не прошёл.
var ErrTransactionFailed = errors.New("mpesa transaction failed")

// Receipt описывает результат успешного платежа.
type Receipt struct {
	TransactionID string `json:"transaction_id"`
}

// Gateway описывает контракт платёжной системы. Charge блокирует вызывающего
// до завершения запроса; сумма передаётся в целых шиллингах.
type Gateway interface {
	Charge(ctx context.Context, phone string, amount int64) (*Receipt, error)
}
