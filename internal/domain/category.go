package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category forms a tree through ParentID and cross-links to items through the
// category_item join table.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string     `gorm:"not null;column:name" json:"name"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index;column:parent_id" json:"parent_id,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:now()" json:"updated_at"`

	Parent   *Category   `gorm:"foreignKey:ParentID" json:"-"`
	Children []*Category `gorm:"foreignKey:ParentID" json:"-"`
	Items    []*Item     `gorm:"many2many:category_item" json:"-"`
}

func (Category) TableName() string {
	return "category"
}
