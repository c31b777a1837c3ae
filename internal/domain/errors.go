package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput — базовый вид ошибки для некорректного запроса клиента (BadRequest).
	ErrInvalidInput = errors.New("invalid input")
	// ErrProductNotFound возвращается, если товар не найден в каталоге (NotFound).
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderWriteFailed — хранилище отклонило запись заказа (WriteFailure).
	ErrOrderWriteFailed = errors.New("order write failed")
	// ErrDispatchFailed — push-провайдер отклонил или не доставил сообщение (DispatchFailed).
	ErrDispatchFailed = errors.New("push dispatch failed")

	// Ошибка отсутствующего адреса для push-уведомлений.
	ErrNotificationAddressRequired = fmt.Errorf("%w: notification address is required", ErrInvalidInput)
	// Ошибка отсутствующего идентификатора товара.
	ErrProductIDRequired = fmt.Errorf("%w: product id is required", ErrInvalidInput)
	// Ошибка пустого заголовка тестового уведомления.
	ErrMessageTitleRequired = fmt.Errorf("%w: message title is required", ErrInvalidInput)
)

// IsBadRequest проверяет, относится ли ошибка к некорректному вводу.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotFound проверяет, что запрошенная сущность отсутствует.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}

// IsWriteFailure проверяет, что хранилище не приняло запись.
func IsWriteFailure(err error) bool {
	return errors.Is(err, ErrOrderWriteFailed)
}

// IsDispatchFailure проверяет, что доставка push-сообщения не удалась.
func IsDispatchFailure(err error) bool {
	return errors.Is(err, ErrDispatchFailed)
}
