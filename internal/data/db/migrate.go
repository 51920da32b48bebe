package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/shopcore-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Catalog
		// =========================
		&domain.Member{},
		&domain.Item{},
		&domain.Category{},

		// =========================
		// Orders
		// =========================
		&domain.Delivery{},
		&domain.Order{},
		&domain.OrderLine{},
	)
}

// EnsureOrderIndexes creates the lookup indexes the search and projection
// paths rely on. AutoMigrate skips FK constraints, so they are added here.
func EnsureOrderIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("enable uuid-ossp: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_orders_member_id ON orders(member_id);`).Error; err != nil {
		return fmt.Errorf("create idx_orders_member_id: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);`).Error; err != nil {
		return fmt.Errorf("create idx_orders_status: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date);`).Error; err != nil {
		return fmt.Errorf("create idx_orders_order_date: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_order_line_order_id ON order_line(order_id);`).Error; err != nil {
		return fmt.Errorf("create idx_order_line_order_id: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_order_line_item_id ON order_line(item_id);`).Error; err != nil {
		return fmt.Errorf("create idx_order_line_item_id: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_category_parent_id ON category(parent_id);`).Error; err != nil {
		return fmt.Errorf("create idx_category_parent_id: %w", err)
	}
	return nil
}
