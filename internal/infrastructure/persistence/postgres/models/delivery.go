// internal/infrastructure/persistence/postgres/models/delivery.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus - итог попытки доставки
type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

// Delivery - запись журнала доставки отчета
type Delivery struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Channel       string         `db:"channel" json:"channel"`
	Status        DeliveryStatus `db:"status" json:"status"`
	Error         string         `db:"error" json:"error,omitempty"`
	MessageLength int            `db:"message_length" json:"message_length"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}
