package app

import (
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/service/confirmation"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	GRPCAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	// AllowMockIntegrations разрешает заглушку push-провайдера, если учётные данные Firebase не заданы.
	AllowMockIntegrations      bool
	FirebaseServiceAccountJSON string
	// PublicBaseURL — публичный https-адрес витрины для абсолютных deep-link.
	PublicBaseURL string
	DeepLink      string
	// CORSOrigins — список origin через запятую; пусто означает "*".
	CORSOrigins string

	KafkaBrokers       string
	KafkaOrderTopic    string
	KafkaConsumerGroup string
	KafkaConsumeOrders bool

	ShutdownTimeout time.Duration
}

// DefaultConfig возвращает настройки для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		GRPCAddr:            ":50051",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		DeepLink:            confirmation.DefaultDeepLink,
		KafkaOrderTopic:     kafka.TopicOrderEvents,
		KafkaConsumerGroup:  "storefront-confirmations",
		ShutdownTimeout:     5 * time.Second,
	}
}
