package domain

import (
	"time"

	"github.com/google/uuid"
)

type Member struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Address   Address   `gorm:"embedded" json:"address"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`

	// Orders is a non-owning back-reference kept for queries only.
	Orders []*Order `gorm:"foreignKey:MemberID" json:"-"`
}

func (Member) TableName() string {
	return "member"
}
