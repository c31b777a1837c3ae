package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/service/confirmation"
	"github.com/vladislavdragonenkov/storefront/internal/service/httpapi"
	"github.com/vladislavdragonenkov/storefront/internal/service/orders"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// Run поднимает HTTP API, gRPC и сервер метрик и блокируется до отмены ctx
// или падения одного из серверов.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := initRuntimeDependencies(ctx, cfg, logger.WithField("layer", "storage"))
	if err != nil {
		return err
	}
	defer deps.close(logger)

	dispatcher, pushChecker, err := initPushDispatcher(ctx, cfg, logger.WithField("layer", "push"))
	if err != nil {
		return err
	}

	appMetrics := metrics.New()
	reader := catalog.NewReader(deps.products, logger.WithField("layer", "catalog"))
	confirmer := confirmation.NewService(reader, dispatcher,
		confirmation.WithLogger(logger.WithField("layer", "confirmation")),
		confirmation.WithDeliveryLog(deps.deliveries),
		confirmation.WithMetrics(appMetrics),
		confirmation.WithDeepLink(cfg.DeepLink),
	)

	recorderOpts := []orders.Option{
		orders.WithLogger(logger.WithField("layer", "orders")),
		orders.WithMetrics(appMetrics),
	}
	producer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
	}
	if producer != nil {
		defer closeKafkaProducer(producer, logger)
		recorderOpts = append(recorderOpts, orders.WithPublisher(kafka.NewOrderEventPublisher(producer, cfg.KafkaOrderTopic)))
	}
	recorder := orders.NewRecorder(deps.orders, recorderOpts...)

	consumer, err := initOrderConsumer(cfg, confirmer, logger)
	if err != nil {
		return fmt.Errorf("init kafka consumer: %w", err)
	}

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("storage", deps.storageChecker)
	healthHandler.RegisterChecker("push", pushChecker)

	apiHandler := httpapi.NewHandler(httpapi.Dependencies{
		Confirmer:  confirmer,
		Catalog:    reader,
		Orders:     recorder,
		Deliveries: deps.deliveries,
		Dispatcher: dispatcher,
		Logger:     logger.WithField("layer", "http"),
	})
	apiServer := &http.Server{
		Handler:           httpapi.NewRouter(apiHandler, splitList(cfg.CORSOrigins)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsServer := newMetricsServer(healthHandler)
	grpcServer, grpcHealth := newGRPCServer(confirmer, logger.WithField("layer", "grpc"))

	apiLis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen http api: %w", err)
	}
	metricsLis, err := net.Listen("tcp", cfg.MetricsAddr)
	if err != nil {
		_ = apiLis.Close()
		return fmt.Errorf("listen metrics: %w", err)
	}
	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		_ = apiLis.Close()
		_ = metricsLis.Close()
		return fmt.Errorf("listen grpc: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("HTTP API слушает %s", apiLis.Addr())
		return serveHTTP(apiServer, apiLis)
	})
	g.Go(func() error {
		logger.Infof("метрики доступны по адресу %s/metrics", metricsLis.Addr())
		return serveHTTP(metricsServer, metricsLis)
	})
	g.Go(func() error {
		logger.Infof("gRPC сервер слушает %s", grpcLis.Addr())
		if err := grpcServer.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	if consumer != nil {
		if err := consumer.Start(gctx); err != nil {
			logger.WithError(err).Warn("failed to start kafka consumer")
		}
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("получен сигнал остановки, останавливаем серверы")
		stopGRPC(grpcServer, grpcHealth, cfg.ShutdownTimeout, logger)
		shutdownHTTP(apiServer, cfg.ShutdownTimeout, logger)
		shutdownHTTP(metricsServer, cfg.ShutdownTimeout, logger)
		if consumer != nil {
			if err := consumer.Stop(); err != nil {
				logger.WithError(err).Warn("failed to stop kafka consumer")
			}
		}
		return nil
	})

	err = g.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// splitList разбирает список через запятую.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
