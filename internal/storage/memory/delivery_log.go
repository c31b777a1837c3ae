package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// deliveryLogInMemory хранит журнал доставок в памяти (для разработки/тестов).
type deliveryLogInMemory struct {
	mu      sync.RWMutex
	entries []domain.Delivery
}

// NewDeliveryLog создаёт in-memory реализацию DeliveryLog.
func NewDeliveryLog() domain.DeliveryLog {
	return &deliveryLogInMemory{}
}

// Append добавляет запись в конец журнала.
func (l *deliveryLogInMemory) Append(_ context.Context, delivery domain.Delivery) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, delivery)
	return nil
}

// List возвращает последние записи, начиная с самой свежей.
func (l *deliveryLogInMemory) List(_ context.Context, limit int) ([]domain.Delivery, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]domain.Delivery, 0, n)
	for i := len(l.entries) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, l.entries[i])
	}
	return result, nil
}

var _ domain.DeliveryLog = (*deliveryLogInMemory)(nil)
