package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/service/push"
)

// initPushDispatcher выбирает push-диспетчер: FCM при наличии учётных данных,
// иначе заглушку, если она разрешена.
func initPushDispatcher(ctx context.Context, cfg Config, logger *log.Entry) (domain.PushDispatcher, healthcheck.Checker, error) {
	raw := strings.TrimSpace(cfg.FirebaseServiceAccountJSON)
	if raw == "" {
		if !cfg.AllowMockIntegrations {
			return nil, nil, errors.New("firebase service account is not configured and mock integrations are disabled")
		}
		logger.Warn("firebase credentials are missing, using mock push dispatcher")
		return push.NewMockDispatcher(),
			healthcheck.NewStaticChecker("push", healthcheck.StatusDegraded, "mock push dispatcher"),
			nil
	}

	account, err := push.LoadServiceAccount(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("load firebase service account: %w", err)
	}

	client, err := push.NewFCMClient(ctx, account)
	if err != nil {
		return nil, nil, err
	}

	opts := []push.Option{push.WithLogger(logger)}
	if base := strings.TrimSpace(cfg.PublicBaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil {
			return nil, nil, fmt.Errorf("parse public base url: %w", err)
		}
		opts = append(opts, push.WithLinkBase(parsed))
	}

	logger.WithField("project_id", account.ProjectID).Info("firebase cloud messaging initialized")
	return push.NewFCMDispatcher(client, opts...),
		healthcheck.NewStaticChecker("push", healthcheck.StatusHealthy, "fcm"),
		nil
}
