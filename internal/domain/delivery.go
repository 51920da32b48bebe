package domain

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusCompleted DeliveryStatus = "completed"
)

// Delivery is owned exclusively by one order and is deleted with it.
type Delivery struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Address   Address        `gorm:"embedded" json:"address"`
	Status    DeliveryStatus `gorm:"not null;default:'pending';column:status" json:"status"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Delivery) TableName() string {
	return "delivery"
}

func (d *Delivery) IsCompleted() bool {
	return d.Status == DeliveryStatusCompleted
}
