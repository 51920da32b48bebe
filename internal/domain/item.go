package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ItemType discriminates item variants stored in the single item table.
type ItemType string

const (
	ItemTypeGeneric ItemType = "item"
	ItemTypeBook    ItemType = "book"
)

// ErrInsufficientStock is returned when a stock decrease would drive the
// counter below zero. The item is left unchanged.
var ErrInsufficientStock = errors.New("insufficient stock")

type Item struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DType         ItemType  `gorm:"not null;default:'item';column:dtype" json:"dtype"`
	Name          string    `gorm:"not null;column:name" json:"name"`
	Price         int64     `gorm:"not null;column:price" json:"price"`
	StockQuantity int       `gorm:"not null;default:0;column:stock_quantity" json:"stock_quantity"`

	// Book variant payload. Empty for generic items.
	Author string `gorm:"column:author" json:"author,omitempty"`
	ISBN   string `gorm:"column:isbn" json:"isbn,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`

	Categories []*Category `gorm:"many2many:category_item" json:"-"`
}

func (Item) TableName() string {
	return "item"
}

// AddStock increases the stock counter. There is no upper bound.
func (i *Item) AddStock(quantity int) {
	i.StockQuantity += quantity
}

// RemoveStock decreases the stock counter, failing without any change when
// the remaining stock would go negative. Concurrent callers must hold the
// item row lock inside the surrounding transaction.
func (i *Item) RemoveStock(quantity int) error {
	rest := i.StockQuantity - quantity
	if rest < 0 {
		return ErrInsufficientStock
	}
	i.StockQuantity = rest
	return nil
}

func (i *Item) IsBook() bool {
	return i.DType == ItemTypeBook
}
