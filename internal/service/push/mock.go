package push

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// MockDispatcher конфигурируемая заглушка PushDispatcher
// Подходит для тестов и локального запуска без учётных данных Firebase.
type MockDispatcher struct {
	mu sync.Mutex

	// Err, если задан, возвращается из каждого вызова вместо квитанции.
	Err error
	// Receipt возвращается при успехе; пустой MessageID генерируется.
	Receipt domain.DeliveryReceipt

	calls       int
	lastAddress string
	lastMessage domain.PushMessage
}

// NewMockDispatcher возвращает mock с успешным сценарием по умолчанию.
func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

func (m *MockDispatcher) Dispatch(_ context.Context, address string, message domain.PushMessage) (domain.DeliveryReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.TrimSpace(address) == "" {
		return domain.DeliveryReceipt{}, domain.ErrNotificationAddressRequired
	}

	m.calls++
	m.lastAddress = address
	m.lastMessage = message

	if m.Err != nil {
		return domain.DeliveryReceipt{}, m.Err
	}
	receipt := m.Receipt
	if receipt.MessageID == "" {
		receipt.MessageID = "mock-" + uuid.NewString()
	}
	return receipt, nil
}

// Calls возвращает количество попыток доставки.
func (m *MockDispatcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Last возвращает адрес и сообщение последнего вызова.
func (m *MockDispatcher) Last() (string, domain.PushMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastAddress, m.lastMessage
}

var _ domain.PushDispatcher = (*MockDispatcher)(nil)
