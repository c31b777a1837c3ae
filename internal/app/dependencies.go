package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

// runtimeDependencies содержит хранилища, выбранные по конфигурации.
type runtimeDependencies struct {
	products       domain.ProductRepository
	orders         domain.OrderRepository
	deliveries     domain.DeliveryLog
	storageChecker healthcheck.Checker
	closeFn        func() error
}

func (d *runtimeDependencies) close(logger *log.Entry) {
	if d == nil || d.closeFn == nil {
		return
	}
	if err := d.closeFn(); err != nil {
		logger.WithError(err).Warn("failed to close storage")
	}
}

// initRuntimeDependencies открывает хранилище, выбранное StorageDriver.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if driver == "" {
		driver = StorageDriverMemory
	}

	switch driver {
	case StorageDriverMemory:
		logger.Info("using in-memory storage with demo catalog")
		return &runtimeDependencies{
			products:   memory.NewProductRepository(memory.DemoProducts()...),
			orders:     memory.NewOrderRepository(),
			deliveries: memory.NewDeliveryLog(),
			storageChecker: healthcheck.NewSimpleChecker("storage", func(context.Context) error {
				return nil
			}),
		}, nil

	case StorageDriverPostgres:
		dsn := strings.TrimSpace(cfg.PostgresDSN)
		if dsn == "" {
			return nil, errors.New("postgres dsn is required when storage driver is postgres")
		}

		store, err := postgres.Open(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply postgres migrations: %w", err)
			}
			version, count, err := store.MigrationStatus(ctx)
			if err == nil {
				logger.WithFields(log.Fields{"version": version, "applied": count}).Info("postgres schema is up to date")
			}
		}

		return &runtimeDependencies{
			products:       postgres.NewProductRepository(store),
			orders:         postgres.NewOrderRepository(store),
			deliveries:     postgres.NewDeliveryLog(store),
			storageChecker: healthcheck.NewSimpleChecker("storage", store.Ping),
			closeFn:        store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}
