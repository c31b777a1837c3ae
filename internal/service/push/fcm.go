package push

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// messagingClient — часть клиента FCM, которой пользуется диспетчер.
type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMDispatcher отправляет push-уведомления через Firebase Cloud Messaging.
type FCMDispatcher struct {
	client   messagingClient
	linkBase *url.URL
	logger   *log.Entry
}

// Option настраивает FCMDispatcher.
type Option func(*FCMDispatcher)

// WithLogger задаёт логгер диспетчера.
func WithLogger(logger *log.Entry) Option {
	return func(d *FCMDispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithLinkBase задаёт публичный адрес витрины, относительно которого разрешаются deep-link.
// FCM принимает в webpush fcm_options только абсолютные https-ссылки.
func WithLinkBase(base *url.URL) Option {
	return func(d *FCMDispatcher) {
		d.linkBase = base
	}
}

// NewFCMClient инициализирует приложение Firebase и возвращает клиент Messaging.
func NewFCMClient(ctx context.Context, account ServiceAccount) (*messaging.Client, error) {
	app, err := firebase.NewApp(ctx,
		&firebase.Config{ProjectID: account.ProjectID},
		option.WithCredentialsJSON(account.CredentialsJSON()),
	)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}
	return client, nil
}

// NewFCMDispatcher создаёт диспетчер поверх клиента FCM.
func NewFCMDispatcher(client messagingClient, opts ...Option) *FCMDispatcher {
	d := &FCMDispatcher{
		client: client,
		logger: log.New().WithField("component", "push"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch делает ровно одну попытку отправки. Любая ошибка провайдера превращается в ErrDispatchFailed.
func (d *FCMDispatcher) Dispatch(ctx context.Context, address string, message domain.PushMessage) (domain.DeliveryReceipt, error) {
	if strings.TrimSpace(address) == "" {
		return domain.DeliveryReceipt{}, domain.ErrNotificationAddressRequired
	}

	envelope := d.buildMessage(address, message)
	messageID, err := d.client.Send(ctx, envelope)
	if err != nil {
		entry := d.logger.WithError(err).WithField("title", message.Title)
		if messaging.IsUnregistered(err) {
			entry = entry.WithField("reason", "unregistered")
		}
		entry.Warn("push dispatch failed")
		return domain.DeliveryReceipt{}, fmt.Errorf("%w: %v", domain.ErrDispatchFailed, err)
	}

	d.logger.WithField("message_id", messageID).Debug("push dispatched")
	return domain.DeliveryReceipt{MessageID: messageID}, nil
}

func (d *FCMDispatcher) buildMessage(address string, message domain.PushMessage) *messaging.Message {
	envelope := &messaging.Message{
		Token: address,
		Notification: &messaging.Notification{
			Title:    message.Title,
			Body:     message.Body,
			ImageURL: message.ImageURL,
		},
	}

	if link := d.resolveLink(message.Link); link != "" {
		envelope.Webpush = &messaging.WebpushConfig{
			FCMOptions: &messaging.WebpushFCMOptions{Link: link},
		}
	}
	return envelope
}

// resolveLink возвращает абсолютную https-ссылку или пустую строку, если её не построить.
func (d *FCMDispatcher) resolveLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}

	parsed, err := url.Parse(link)
	if err != nil {
		d.logger.WithError(err).WithField("link", link).Debug("deep link dropped")
		return ""
	}
	if !parsed.IsAbs() && d.linkBase != nil {
		parsed = d.linkBase.ResolveReference(parsed)
	}
	if parsed.Scheme != "https" {
		d.logger.WithField("link", link).Debug("deep link dropped: https base url is not configured")
		return ""
	}
	return parsed.String()
}

var _ domain.PushDispatcher = (*FCMDispatcher)(nil)
