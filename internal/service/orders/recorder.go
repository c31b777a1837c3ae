package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// CreateOrderRequest — данные покупки, которые присылает витрина.
type CreateOrderRequest struct {
	ProductID   string
	ProductName string
	// Price — цена, показанная покупателю; сохраняется без пересчёта.
	Price               string
	NotificationAddress string
}

// Recorder записывает заказы и публикует событие order.created.
type Recorder struct {
	orders    domain.OrderRepository
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	logger    *log.Entry
	now       func() time.Time
}

// Option настраивает Recorder.
type Option func(*Recorder)

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPublisher включает публикацию событий о новых заказах.
func WithPublisher(publisher domain.EventPublisher) Option {
	return func(r *Recorder) {
		r.publisher = publisher
	}
}

// WithMetrics включает метрики записи заказов.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Recorder) {
		r.metrics = m
	}
}

// NewRecorder создаёт Recorder поверх хранилища заказов.
func NewRecorder(orders domain.OrderRepository, opts ...Option) *Recorder {
	r := &Recorder{
		orders: orders,
		logger: log.New().WithField("component", "orders"),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateOrder проверяет обязательные поля и дописывает заказ в хранилище.
// Наличие товара в каталоге не перепроверяется. Повторов при ошибке записи нет.
func (r *Recorder) CreateOrder(ctx context.Context, req CreateOrderRequest) (domain.Order, error) {
	order := domain.Order{
		ID:                  uuid.NewString(),
		ProductID:           strings.TrimSpace(req.ProductID),
		ProductName:         strings.TrimSpace(req.ProductName),
		Price:               req.Price,
		NotificationAddress: strings.TrimSpace(req.NotificationAddress),
		CreatedAt:           r.now(),
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		r.metrics.OrderCreated(metrics.ResultBadRequest)
		return domain.Order{}, errors.Join(errs...)
	}

	if err := r.orders.Create(ctx, order); err != nil {
		r.metrics.OrderCreated(metrics.ResultWriteFailed)
		r.logger.WithError(err).WithFields(log.Fields{
			"order_id":   order.ID,
			"product_id": order.ProductID,
		}).Error("order write rejected")
		return domain.Order{}, fmt.Errorf("%w: %v", domain.ErrOrderWriteFailed, err)
	}
	r.metrics.OrderCreated(metrics.ResultSuccess)

	if r.publisher != nil {
		if err := r.publisher.PublishOrderCreated(ctx, order); err != nil {
			r.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order.created event")
		}
	}

	r.logger.WithFields(log.Fields{
		"order_id":   order.ID,
		"product_id": order.ProductID,
	}).Info("order recorded")
	return order, nil
}

// ListOrders возвращает заказы от новых к старым.
func (r *Recorder) ListOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	orders, err := r.orders.List(ctx, limit)
	if err != nil {
		r.logger.WithError(err).Warn("order listing failed")
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
