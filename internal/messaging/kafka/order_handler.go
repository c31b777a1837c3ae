package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

// ConfirmFunc подтверждает заказ из события order.created.
type ConfirmFunc func(ctx context.Context, event OrderEvent) error

// NewOrderConfirmationHandler возвращает обработчик, вызывающий confirm ровно один раз на событие order.created.
// События других типов пропускаются.
func NewOrderConfirmationHandler(confirm ConfirmFunc, logger *log.Entry) MessageHandler {
	if logger == nil {
		logger = log.WithField("component", "kafka-order-handler")
	}

	return func(ctx context.Context, message *sarama.ConsumerMessage) error {
		event, err := ParseOrderEvent(message)
		if err != nil {
			return err
		}
		if event.EventType != EventTypeOrderCreated {
			logger.WithField("event_type", event.EventType).Debug("skipping order event")
			return nil
		}

		if err := confirm(ctx, *event); err != nil {
			return fmt.Errorf("confirm order %s: %w", event.OrderID, err)
		}
		logger.WithField("order_id", event.OrderID).Info("order confirmed from event")
		return nil
	}
}
