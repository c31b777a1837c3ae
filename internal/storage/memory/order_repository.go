package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// orderRepositoryInMemory простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]storedOrder
	seq   uint64
}

// storedOrder хранит порядковый номер вставки для стабильной сортировки.
type storedOrder struct {
	order domain.Order
	seq   uint64
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]storedOrder),
	}
}

// Create сохраняет новый заказ, если ID ещё не занят.
func (r *orderRepositoryInMemory) Create(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return fmt.Errorf("order %s already exists", order.ID)
	}
	r.seq++
	r.items[order.ID] = storedOrder{order: order, seq: r.seq}
	return nil
}

// List возвращает заказы от новых к старым, ограничивая выборку limit (если >0).
func (r *orderRepositoryInMemory) List(_ context.Context, limit int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := make([]storedOrder, 0, len(r.items))
	for _, item := range r.items {
		stored = append(stored, item)
	}

	sort.Slice(stored, func(i, j int) bool {
		a, b := stored[i], stored[j]
		if !a.order.CreatedAt.Equal(b.order.CreatedAt) {
			return a.order.CreatedAt.After(b.order.CreatedAt)
		}
		return a.seq > b.seq
	})

	if limit > 0 && len(stored) > limit {
		stored = stored[:limit]
	}

	result := make([]domain.Order, 0, len(stored))
	for _, item := range stored {
		result = append(result, item.order)
	}
	return result, nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
