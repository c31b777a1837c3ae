package domain

import (
	"strings"
	"time"
)

// Order фиксирует покупку: товар, цену на момент решения и адрес для push-уведомлений.
// Создаётся один раз и больше не изменяется.
type Order struct {
	ID        string
	ProductID string
	// ProductName — снимок названия товара, который показывался покупателю.
	ProductName string
	// Price сохраняется как есть и не пересчитывается по каталогу.
	Price               string
	NotificationAddress string
	CreatedAt           time.Time
}

// ValidateInvariants проверяет обязательные поля заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(o.ProductID) == "" {
		errs = append(errs, ErrProductIDRequired)
	}
	if strings.TrimSpace(o.NotificationAddress) == "" {
		errs = append(errs, ErrNotificationAddressRequired)
	}

	return errs
}
