package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// EventType определяет тип события
type EventType string

// Order события
const (
	EventTypeOrderCreated EventType = "order.created"
)

// TopicOrderEvents — topic по умолчанию для событий заказов.
const TopicOrderEvents = "storefront.order.events"

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType           EventType `json:"event_type"`
	OrderID             string    `json:"order_id"`
	ProductID           string    `json:"product_id"`
	NotificationAddress string    `json:"notification_address"`
	Price               string    `json:"price,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

// NewOrderCreatedEvent создает событие order.created для записанного заказа
func NewOrderCreatedEvent(order domain.Order) *OrderEvent {
	return &OrderEvent{
		EventType:           EventTypeOrderCreated,
		OrderID:             order.ID,
		ProductID:           order.ProductID,
		NotificationAddress: order.NotificationAddress,
		Price:               order.Price,
		Timestamp:           time.Now().UTC(),
	}
}

// ParseOrderEvent парсит OrderEvent из сообщения
func ParseOrderEvent(message *sarama.ConsumerMessage) (*OrderEvent, error) {
	var event OrderEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order event: %w", err)
	}
	return &event, nil
}
