// internal/infrastructure/persistence/postgres/repository/delivery/repository.go
package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"web3-token-analytics-bot/internal/infrastructure/persistence/postgres/models"
)

// DeliveryRepository - журнал доставки в PostgreSQL
type DeliveryRepository struct {
	db *sqlx.DB
}

// NewDeliveryRepository создает репозиторий
func NewDeliveryRepository(db *sqlx.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// Save сохраняет запись; пустые ID и время заполняются
func (r *DeliveryRepository) Save(ctx context.Context, rec *models.Delivery) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO deliveries (id, channel, status, error, message_length, created_at)
	VALUES (:id, :channel, :status, :error, :message_length, :created_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("failed to save delivery: %w", err)
	}
	return nil
}

// Recent - последние записи, новые первыми
func (r *DeliveryRepository) Recent(ctx context.Context, limit int) ([]models.Delivery, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
	SELECT id, channel, status, error, message_length, created_at
	FROM deliveries
	ORDER BY created_at DESC
	LIMIT $1
	`
	var deliveries []models.Delivery
	if err := r.db.SelectContext(ctx, &deliveries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to load deliveries: %w", err)
	}
	return deliveries, nil
}
