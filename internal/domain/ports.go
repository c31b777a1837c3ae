package domain

import "context"

// ProductRepository предоставляет доступ к каталогу товаров только на чтение.
type ProductRepository interface {
	// Get возвращает товар или ErrProductNotFound, если записи нет.
	Get(ctx context.Context, id string) (Product, error)
	// List возвращает все товары каталога.
	List(ctx context.Context) ([]Product, error)
}

// OrderRepository — append-only хранилище заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ.
	Create(ctx context.Context, order Order) error
	// List возвращает заказы от новых к старым; limit<=0 снимает ограничение.
	List(ctx context.Context, limit int) ([]Order, error)
}

// DeliveryLog хранит результаты отправки уведомлений.
type DeliveryLog interface {
	Append(ctx context.Context, delivery Delivery) error
	List(ctx context.Context, limit int) ([]Delivery, error)
}

// PushDispatcher доставляет сообщение одному клиенту через push-провайдера.
type PushDispatcher interface {
	// Dispatch делает ровно одну попытку доставки.
	Dispatch(ctx context.Context, address string, message PushMessage) (DeliveryReceipt, error)
}

// EventPublisher публикует доменные события во внешний брокер.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order Order) error
}
