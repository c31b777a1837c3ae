package app

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/service/confirmation"
)

// parseBrokers разбирает список брокеров через запятую, пропуская пустые элементы.
func parseBrokers(raw string) []string {
	var brokers []string
	for _, broker := range strings.Split(raw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// initKafkaProducer инициализирует Kafka producer если brokers не пустой.
// Возвращает nil, nil если brokers пустой.
func initKafkaProducer(brokers string, logger *log.Entry) (*kafka.Producer, error) {
	brokerList := parseBrokers(brokers)
	if len(brokerList) == 0 {
		return nil, nil
	}

	producer, err := kafka.NewProducer(brokerList, logger.WithField("layer", "kafka-producer"))
	if err != nil {
		return nil, err
	}

	logger.WithField("brokers", brokerList).Info("kafka producer initialized")
	return producer, nil
}

// initOrderConsumer создаёт consumer событий order.created, если он включён.
func initOrderConsumer(cfg Config, confirmer *confirmation.Service, logger *log.Entry) (*kafka.Consumer, error) {
	brokerList := parseBrokers(cfg.KafkaBrokers)
	if !cfg.KafkaConsumeOrders || len(brokerList) == 0 {
		return nil, nil
	}

	consumerLogger := logger.WithField("layer", "kafka-consumer")
	handler := kafka.NewOrderConfirmationHandler(func(ctx context.Context, event kafka.OrderEvent) error {
		_, err := confirmer.Confirm(ctx, confirmation.Request{
			NotificationAddress: event.NotificationAddress,
			ProductID:           event.ProductID,
		})
		return err
	}, consumerLogger)

	return kafka.NewConsumer(brokerList, cfg.KafkaConsumerGroup, []string{cfg.KafkaOrderTopic}, handler, consumerLogger)
}

// closeKafkaProducer закрывает Kafka producer если он не nil.
func closeKafkaProducer(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
