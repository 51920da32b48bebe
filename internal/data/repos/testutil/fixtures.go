package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shopcore-backend/internal/domain"
)

// SeedMember inserts a member with a fixed test address.
func SeedMember(tb testing.TB, db *gorm.DB, name string) *domain.Member {
	tb.Helper()
	now := time.Now().UTC()
	row := &domain.Member{
		ID:   uuid.New(),
		Name: name,
		Address: domain.Address{
			City:    "Seoul",
			Street:  "Teheran-ro 1",
			Zipcode: "06234",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(context.Background()).Create(row).Error; err != nil {
		tb.Fatalf("seed member: %v", err)
	}
	return row
}

// SeedItem inserts a generic item with the given price and stock.
func SeedItem(tb testing.TB, db *gorm.DB, name string, price int64, stock int) *domain.Item {
	tb.Helper()
	now := time.Now().UTC()
	row := &domain.Item{
		ID:            uuid.New(),
		DType:         domain.ItemTypeGeneric,
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.WithContext(context.Background()).Create(row).Error; err != nil {
		tb.Fatalf("seed item: %v", err)
	}
	return row
}

// SeedBook inserts a book-variant item.
func SeedBook(tb testing.TB, db *gorm.DB, name, author, isbn string, price int64, stock int) *domain.Item {
	tb.Helper()
	now := time.Now().UTC()
	row := &domain.Item{
		ID:            uuid.New(),
		DType:         domain.ItemTypeBook,
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		Author:        author,
		ISBN:          isbn,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.WithContext(context.Background()).Create(row).Error; err != nil {
		tb.Fatalf("seed book: %v", err)
	}
	return row
}
