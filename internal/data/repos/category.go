package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/shopcore-backend/internal/domain"
	"github.com/yungbote/shopcore-backend/internal/pkg/dbctx"
	"github.com/yungbote/shopcore-backend/internal/platform/logger"
)

type CategoryRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Category) ([]*domain.Category, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Category, error)
	ListChildren(dbc dbctx.Context, parentID uuid.UUID) ([]*domain.Category, error)

	// LinkItem persists one category<->item cross-link in the join table.
	LinkItem(dbc dbctx.Context, categoryID, itemID uuid.UUID) error
	ListItems(dbc dbctx.Context, categoryID uuid.UUID) ([]*domain.Item, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

func (r *categoryRepo) Create(dbc dbctx.Context, rows []*domain.Category) ([]*domain.Category, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Category{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *categoryRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Category, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row domain.Category
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *categoryRepo) ListChildren(dbc dbctx.Context, parentID uuid.UUID) ([]*domain.Category, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Category
	if parentID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("parent_id = ?", parentID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) LinkItem(dbc dbctx.Context, categoryID, itemID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if categoryID == uuid.Nil || itemID == uuid.Nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).Exec(
		`INSERT INTO "category_item" ("category_id", "item_id") VALUES (?, ?) ON CONFLICT DO NOTHING`,
		categoryID, itemID,
	).Error
}

func (r *categoryRepo) ListItems(dbc dbctx.Context, categoryID uuid.UUID) ([]*domain.Item, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Item
	if categoryID == uuid.Nil {
		return out, nil
	}
	err := t.WithContext(dbc.Ctx).
		Joins(`JOIN "category_item" ci ON ci.item_id = "item".id`).
		Where("ci.category_id = ?", categoryID).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
