package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestProducer_PublishEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, log.WithField("component", "kafka-producer-test"))

	mockProducer.ExpectSendMessageAndSucceed()

	event := NewOrderCreatedEvent(domain.Order{ID: "order-123", ProductID: "p1", NotificationAddress: "tok"})
	if err := producer.PublishEvent(TopicOrderEvents, "order-123", event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := producer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, nil)

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	if err := producer.PublishEvent(TopicOrderEvents, "order-123", map[string]string{"a": "b"}); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_MarshalError(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, nil)

	if err := producer.PublishEvent(TopicOrderEvents, "k", make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewOrderCreatedEvent(t *testing.T) {
	order := domain.Order{
		ID:                  "order-1",
		ProductID:           "p1",
		Price:               "9.99",
		NotificationAddress: "tok-123",
	}

	before := time.Now().UTC()
	event := NewOrderCreatedEvent(order)

	if event.EventType != EventTypeOrderCreated {
		t.Fatalf("unexpected event type %s", event.EventType)
	}
	if event.OrderID != "order-1" || event.ProductID != "p1" || event.NotificationAddress != "tok-123" || event.Price != "9.99" {
		t.Fatalf("unexpected event payload: %+v", event)
	}
	if event.Timestamp.Before(before) {
		t.Fatal("timestamp must be set at creation")
	}
}

func TestOrderEventPublisher(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event OrderEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.EventType != EventTypeOrderCreated || event.OrderID != "order-9" {
			return fmt.Errorf("unexpected event %+v", event)
		}
		return nil
	})

	publisher := NewOrderEventPublisher(newProducer(mockProducer, nil), "")
	if publisher.topic != TopicOrderEvents {
		t.Fatalf("expected default topic, got %s", publisher.topic)
	}

	err := publisher.PublishOrderCreated(context.Background(), domain.Order{ID: "order-9", ProductID: "p1", NotificationAddress: "tok"})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOrderEventPublisher_Errors(t *testing.T) {
	var nilPublisher *OrderEventPublisher
	if err := nilPublisher.PublishOrderCreated(context.Background(), domain.Order{ID: "o"}); err == nil {
		t.Fatal("expected error for nil publisher")
	}

	mockProducer := mocks.NewSyncProducer(t, nil)
	publisher := NewOrderEventPublisher(newProducer(mockProducer, nil), "custom.topic")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := publisher.PublishOrderCreated(ctx, domain.Order{ID: "o"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}
