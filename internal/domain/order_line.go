package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderLine is owned exclusively by one order. UnitPrice is captured at order
// time and never edited afterwards.
type OrderLine struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index;column:order_id" json:"order_id"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index;column:item_id" json:"item_id"`
	UnitPrice int64     `gorm:"not null;column:unit_price" json:"unit_price"`
	Quantity  int       `gorm:"not null;column:quantity" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`

	Item *Item `gorm:"foreignKey:ItemID" json:"-"`
}

func (OrderLine) TableName() string {
	return "order_line"
}

func (l *OrderLine) TotalPrice() int64 {
	return l.UnitPrice * int64(l.Quantity)
}
