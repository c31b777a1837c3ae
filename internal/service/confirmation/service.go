package confirmation

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/notification"
)

const (
	// DefaultDeepLink открывает страницу заказов покупателя.
	DefaultDeepLink = "/orders"
	// ProductIDPlaceholder заменяется идентификатором товара в шаблоне deep-link.
	ProductIDPlaceholder = "{product_id}"
)

// Request — событие подтверждения заказа.
type Request struct {
	NotificationAddress string
	ProductID           string
}

// ProductLookup ищет товар в каталоге.
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (domain.Product, error)
}

// Service подтверждает заказ push-уведомлением: Validate → Lookup → Compose → Dispatch.
// Промежуточное состояние не хранится, повторов и идемпотентности нет.
type Service struct {
	catalog    ProductLookup
	dispatcher domain.PushDispatcher
	deliveries domain.DeliveryLog
	metrics    *metrics.Metrics
	deepLink   string
	logger     *log.Entry
}

// Option настраивает Service.
type Option func(*Service)

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDeliveryLog включает журнал доставок.
func WithDeliveryLog(deliveries domain.DeliveryLog) Option {
	return func(s *Service) {
		s.deliveries = deliveries
	}
}

// WithMetrics включает метрики подтверждений.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithDeepLink задаёт шаблон deep-link. Пустая строка отключает ссылку.
func WithDeepLink(template string) Option {
	return func(s *Service) {
		s.deepLink = strings.TrimSpace(template)
	}
}

// NewService создаёт сервис подтверждения заказов.
func NewService(catalog ProductLookup, dispatcher domain.PushDispatcher, opts ...Option) *Service {
	s := &Service{
		catalog:    catalog,
		dispatcher: dispatcher,
		deepLink:   DefaultDeepLink,
		logger:     log.New().WithField("component", "confirmation"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Confirm обрабатывает одно событие подтверждения. Все ошибки терминальны:
// BadRequest, NotFound или DispatchFailed.
func (s *Service) Confirm(ctx context.Context, req Request) (receipt domain.DeliveryReceipt, err error) {
	s.metrics.ConfirmationStarted()
	defer func() {
		s.metrics.ConfirmationFinished(resultOf(err))
	}()

	address := strings.TrimSpace(req.NotificationAddress)
	productID := strings.TrimSpace(req.ProductID)
	logger := s.logger.WithField("product_id", productID)

	switch {
	case address == "":
		logger.Info("confirmation rejected: missing notification address")
		return domain.DeliveryReceipt{}, domain.ErrNotificationAddressRequired
	case productID == "":
		logger.Info("confirmation rejected: missing product id")
		return domain.DeliveryReceipt{}, domain.ErrProductIDRequired
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		logger.WithError(err).Info("confirmation rejected: product not found")
		return domain.DeliveryReceipt{}, err
	}

	message := notification.Compose(product)
	message.Link = s.link(productID)

	started := time.Now()
	receipt, err = s.dispatcher.Dispatch(ctx, address, message)
	s.metrics.ObserveDispatch(time.Since(started), err)
	s.record(ctx, productID, address, message, receipt, err)
	if err != nil {
		if !domain.IsDispatchFailure(err) {
			err = fmt.Errorf("%w: %v", domain.ErrDispatchFailed, err)
		}
		logger.WithError(err).Warn("confirmation push failed")
		return domain.DeliveryReceipt{}, err
	}

	logger.WithField("message_id", receipt.MessageID).Info("order confirmation sent")
	return receipt, nil
}

func (s *Service) link(productID string) string {
	return strings.ReplaceAll(s.deepLink, ProductIDPlaceholder, productID)
}

// record дописывает результат доставки в журнал. Ошибка журнала не влияет на ответ.
func (s *Service) record(
	ctx context.Context,
	productID, address string,
	message domain.PushMessage,
	receipt domain.DeliveryReceipt,
	dispatchErr error,
) {
	if s.deliveries == nil {
		return
	}

	delivery := domain.Delivery{
		ProductID:           productID,
		NotificationAddress: address,
		Title:               message.Title,
		Body:                message.Body,
		Status:              domain.DeliveryStatusSent,
		MessageID:           receipt.MessageID,
		CreatedAt:           time.Now().UTC(),
	}
	if dispatchErr != nil {
		delivery.Status = domain.DeliveryStatusFailed
		delivery.Error = dispatchErr.Error()
	}

	if err := s.deliveries.Append(ctx, delivery); err != nil {
		s.metrics.DeliveryLogFailed()
		s.logger.WithError(err).WithField("product_id", productID).Warn("failed to append delivery log entry")
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case domain.IsBadRequest(err):
		return metrics.ResultBadRequest
	case domain.IsNotFound(err):
		return metrics.ResultNotFound
	default:
		return metrics.ResultDispatchFailed
	}
}
