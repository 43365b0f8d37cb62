package payment

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	simulatorDelay       = 3 * time.Second
	simulatorSuccessRate = 0.9
)

// Simulator имитирует платёжный шлюз: выдерживает фиксированную задержку
// и завершает транзакцию успешно с вероятностью 0.9. Заглушка для разработки,
// в эксплуатации её место занимает Client.
type Simulator struct {
	delay       time.Duration
	successRate float64
	randFloat   func() float64
}

// NewSimulator создаёт имитацию платёжного шлюза с параметрами по умолчанию.
func NewSimulator() *Simulator {
	return &Simulator{
		delay:       simulatorDelay,
		successRate: simulatorSuccessRate,
		randFloat:   rand.Float64,
	}
}

// Charge имитирует отправку STK-push-запроса на указанный номер.
// Отмена контекста прерывает ожидание ответа.
func (s *Simulator) Charge(ctx context.Context, phone string, amount int64) (*Receipt, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	rf := s.randFloat
	if rf == nil {
		rf = rand.Float64
	}

	if rf() >= s.successRate {
		return nil, ErrTransactionFailed
	}

	return &Receipt{TransactionID: newTransactionID()}, nil
}

func newTransactionID() string {
	return fmt.Sprintf("TXN-%s", strings.ToUpper(uuid.NewString()[:8]))
}
