package kafka

import (
	"context"
	"errors"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// OrderEventPublisher публикует order.created в topic событий заказов.
type OrderEventPublisher struct {
	producer *Producer
	topic    string
}

// NewOrderEventPublisher создаёт паблишер событий заказов. Пустой topic заменяется TopicOrderEvents.
func NewOrderEventPublisher(producer *Producer, topic string) *OrderEventPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OrderEventPublisher{producer: producer, topic: topic}
}

// PublishOrderCreated отправляет событие; ключ сообщения — id заказа.
func (p *OrderEventPublisher) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	if p == nil || p.producer == nil {
		return errors.New("kafka order publisher is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.producer.PublishEvent(p.topic, order.ID, NewOrderCreatedEvent(order))
}

var _ domain.EventPublisher = (*OrderEventPublisher)(nil)
