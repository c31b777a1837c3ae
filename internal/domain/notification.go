package domain

import "time"

// PushMessage — сообщение для одного получателя push-уведомлений.
type PushMessage struct {
	Title string
	Body  string
	// ImageURL опционален: пустое значение не передаётся провайдеру.
	ImageURL string
	// Link — deep-link, который откроет клиент по клику.
	Link string
}

// DeliveryReceipt — подтверждение провайдера о принятии сообщения.
type DeliveryReceipt struct {
	MessageID string
}

// DeliveryStatus описывает результат попытки доставки.
type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

// Delivery — запись журнала доставок уведомлений.
type Delivery struct {
	ID                  string
	ProductID           string
	NotificationAddress string
	Title               string
	Body                string
	Status              DeliveryStatus
	MessageID           string
	Error               string
	CreatedAt           time.Time
}
