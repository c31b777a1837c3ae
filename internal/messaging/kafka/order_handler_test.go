package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
)

func TestOrderConfirmationHandler(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		confirmErr error
		wantCalls  int
		wantErr    bool
	}{
		{
			name:      "order created",
			value:     `{"event_type":"order.created","order_id":"o-1","product_id":"p1","notification_address":"tok-123"}`,
			wantCalls: 1,
		},
		{
			name:       "confirmation failure surfaces once",
			value:      `{"event_type":"order.created","order_id":"o-2","product_id":"p404","notification_address":"tok"}`,
			confirmErr: errors.New("product not found"),
			wantCalls:  1,
			wantErr:    true,
		},
		{
			name:  "other event type skipped",
			value: `{"event_type":"order.shipped","order_id":"o-3"}`,
		},
		{
			name:    "malformed payload",
			value:   `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			var got OrderEvent
			handler := NewOrderConfirmationHandler(func(_ context.Context, event OrderEvent) error {
				calls++
				got = event
				return tt.confirmErr
			}, nil)

			err := handler(context.Background(), &sarama.ConsumerMessage{Value: []byte(tt.value)})
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if calls != tt.wantCalls {
				t.Fatalf("expected %d confirm calls, got %d", tt.wantCalls, calls)
			}
			if tt.wantCalls == 1 && got.ProductID == "" {
				t.Fatalf("event was not passed to confirm: %+v", got)
			}
		})
	}
}
