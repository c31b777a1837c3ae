package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/app"
)

const (
	envHTTPAddr    = "STOREFRONT_HTTP_ADDR"
	envGRPCAddr    = "STOREFRONT_GRPC_ADDR"
	envMetricsAddr = "STOREFRONT_METRICS_ADDR"

	envStorageDriver       = "STOREFRONT_STORAGE_DRIVER"
	envPostgresDSN         = "STOREFRONT_POSTGRES_DSN"
	envPostgresAutoMigrate = "STOREFRONT_POSTGRES_AUTO_MIGRATE"

	envAllowMockIntegrations = "STOREFRONT_ALLOW_MOCK_INTEGRATIONS"
	envFirebaseServiceAcct   = "FIREBASE_SERVICE_ACCOUNT_KEY"
	envPublicBaseURL         = "STOREFRONT_PUBLIC_URL"
	envDeepLink              = "STOREFRONT_DEEP_LINK"
	envCORSOrigins           = "STOREFRONT_CORS_ORIGINS"

	envKafkaBrokers       = "KAFKA_BROKERS"
	envKafkaOrderTopic    = "STOREFRONT_KAFKA_ORDER_TOPIC"
	envKafkaConsumerGroup = "STOREFRONT_KAFKA_CONSUMER_GROUP"
	envKafkaConsumeOrders = "STOREFRONT_KAFKA_CONSUME_ORDERS"

	envShutdownTimeout = "STOREFRONT_SHUTDOWN_TIMEOUT"
	envLogLevel        = "STOREFRONT_LOG_LEVEL"
)

type lookupFunc func(string) (string, bool)

// readConfigFromEnv собирает конфигурацию поверх DefaultConfig.
// Некорректные значения не прерывают запуск: остаётся значение по умолчанию и добавляется предупреждение.
func readConfigFromEnv(lookup lookupFunc) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	str := func(key string, dst *string) {
		if v, ok := lookupTrimmed(lookup, key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		v, ok := lookupTrimmed(lookup, key)
		if !ok {
			return
		}
		parsed, err := parseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", key, err))
			return
		}
		*dst = parsed
	}

	str(envHTTPAddr, &cfg.HTTPAddr)
	str(envGRPCAddr, &cfg.GRPCAddr)
	str(envMetricsAddr, &cfg.MetricsAddr)

	if v, ok := lookupTrimmed(lookup, envStorageDriver); ok {
		cfg.StorageDriver = strings.ToLower(v)
	}
	str(envPostgresDSN, &cfg.PostgresDSN)
	boolean(envPostgresAutoMigrate, &cfg.PostgresAutoMigrate)

	boolean(envAllowMockIntegrations, &cfg.AllowMockIntegrations)
	str(envFirebaseServiceAcct, &cfg.FirebaseServiceAccountJSON)
	str(envPublicBaseURL, &cfg.PublicBaseURL)
	str(envDeepLink, &cfg.DeepLink)
	str(envCORSOrigins, &cfg.CORSOrigins)

	str(envKafkaBrokers, &cfg.KafkaBrokers)
	str(envKafkaOrderTopic, &cfg.KafkaOrderTopic)
	str(envKafkaConsumerGroup, &cfg.KafkaConsumerGroup)
	boolean(envKafkaConsumeOrders, &cfg.KafkaConsumeOrders)

	if v, ok := lookupTrimmed(lookup, envShutdownTimeout); ok {
		d, err := parseDuration(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envShutdownTimeout, err))
		} else {
			cfg.ShutdownTimeout = d
		}
	}

	return cfg, warnings
}

// lookupTrimmed возвращает значение без пробелов; пустое значение считается отсутствующим.
func lookupTrimmed(lookup lookupFunc, key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
}

func parseDuration(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", d)
	}
	return d, nil
}
