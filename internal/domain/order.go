package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ErrAlreadyDelivered rejects cancellation once the delivery completed.
var ErrAlreadyDelivered = errors.New("already delivered")

// Order is the aggregate root. It owns its delivery and its lines; the member
// reference is a plain foreign key.
type Order struct {
	ID         uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MemberID   uuid.UUID   `gorm:"type:uuid;not null;index;column:member_id" json:"member_id"`
	DeliveryID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex;column:delivery_id" json:"delivery_id"`
	OrderDate  time.Time   `gorm:"not null;column:order_date" json:"order_date"`
	Status     OrderStatus `gorm:"not null;default:'placed';column:status" json:"status"`
	CreatedAt  time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"not null;default:now()" json:"updated_at"`

	Member   *Member      `gorm:"foreignKey:MemberID" json:"-"`
	Delivery *Delivery    `gorm:"foreignKey:DeliveryID" json:"-"`
	Lines    []*OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// CancelGuard validates the cancellation preconditions without mutating
// anything. The only transition is placed -> cancelled.
func (o *Order) CancelGuard(delivery *Delivery) error {
	if delivery != nil && delivery.IsCompleted() {
		return ErrAlreadyDelivered
	}
	return nil
}

// TotalPrice sums unit price times quantity across all lines. Line prices are
// snapshots taken at order time, so the total is stable after cancellation.
func (o *Order) TotalPrice() int64 {
	var total int64
	for _, line := range o.Lines {
		total += line.TotalPrice()
	}
	return total
}
