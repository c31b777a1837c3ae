package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты подтверждения заказа, используются как значение label "result".
const (
	ResultSuccess        = "success"
	ResultBadRequest     = "bad_request"
	ResultNotFound       = "not_found"
	ResultDispatchFailed = "dispatch_failed"
	ResultWriteFailed    = "write_failed"
)

// Metrics содержит метрики подтверждений, доставок и заказов.
type Metrics struct {
	confirmations     *prometheus.CounterVec
	inFlight          prometheus.Gauge
	dispatchDuration  *prometheus.HistogramVec
	ordersCreated     *prometheus.CounterVec
	deliveryLogErrors prometheus.Counter
}

// New создаёт метрики в глобальном реестре Prometheus.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer создаёт метрики в переданном реестре (удобно для тестов).
func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		confirmations: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_confirmations_total",
			Help: "Total number of order confirmations grouped by result.",
		}, []string{"result"})),
		inFlight: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_confirmations_in_flight",
			Help: "Number of order confirmations currently being processed.",
		})),
		dispatchDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_dispatch_duration_seconds",
			Help:    "Duration of a single push dispatch call in seconds.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"result"})),
		ordersCreated: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Total number of order write attempts grouped by result.",
		}, []string{"result"})),
		deliveryLogErrors: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_delivery_log_failures_total",
			Help: "Total number of delivery log entries that could not be stored.",
		})),
	}
}

// register регистрирует коллектор; при повторной регистрации возвращает уже существующий.
func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", alreadyRegistered.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

// ConfirmationStarted увеличивает количество подтверждений в работе.
func (m *Metrics) ConfirmationStarted() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

// ConfirmationFinished фиксирует результат подтверждения.
func (m *Metrics) ConfirmationFinished(result string) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.confirmations.WithLabelValues(result).Inc()
}

// ObserveDispatch записывает длительность вызова push-провайдера.
func (m *Metrics) ObserveDispatch(duration time.Duration, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultDispatchFailed
	}
	m.dispatchDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// OrderCreated фиксирует результат записи заказа.
func (m *Metrics) OrderCreated(result string) {
	if m == nil {
		return
	}
	m.ordersCreated.WithLabelValues(result).Inc()
}

// DeliveryLogFailed увеличивает счётчик потерянных записей журнала доставок.
func (m *Metrics) DeliveryLogFailed() {
	if m == nil {
		return
	}
	m.deliveryLogErrors.Inc()
}
