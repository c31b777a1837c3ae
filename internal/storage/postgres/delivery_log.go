package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type deliveryLog struct {
	db *sql.DB
}

// NewDeliveryLog создаёт PostgreSQL-реализацию DeliveryLog.
func NewDeliveryLog(store *Store) domain.DeliveryLog {
	return &deliveryLog{db: store.DB()}
}

func (l *deliveryLog) Append(ctx context.Context, delivery domain.Delivery) error {
	if delivery.ID == "" {
		delivery.ID = uuid.NewString()
	}
	if delivery.CreatedAt.IsZero() {
		delivery.CreatedAt = time.Now().UTC()
	}

	query, args, err := psql.Insert("notification_deliveries").
		Columns("id", "product_id", "fcm_token", "title", "body", "status", "message_id", "error", "created_at").
		Values(
			delivery.ID, delivery.ProductID, delivery.NotificationAddress, delivery.Title, delivery.Body,
			string(delivery.Status), delivery.MessageID, delivery.Error, delivery.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert delivery: %w", err)
	}

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append delivery: %w", err)
	}
	return nil
}

func (l *deliveryLog) List(ctx context.Context, limit int) ([]domain.Delivery, error) {
	builder := psql.Select("id", "product_id", "fcm_token", "title", "body", "status", "message_id", "error", "created_at").
		From("notification_deliveries").
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list deliveries: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	deliveries := make([]domain.Delivery, 0)
	for rows.Next() {
		var d domain.Delivery
		var status string
		if err := rows.Scan(
			&d.ID, &d.ProductID, &d.NotificationAddress, &d.Title, &d.Body,
			&status, &d.MessageID, &d.Error, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.Status = domain.DeliveryStatus(status)
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}

	return deliveries, nil
}

var _ domain.DeliveryLog = (*deliveryLog)(nil)
