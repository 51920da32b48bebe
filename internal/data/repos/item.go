package repos

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/shopcore-backend/internal/domain"
	"github.com/yungbote/shopcore-backend/internal/pkg/dbctx"
	"github.com/yungbote/shopcore-backend/internal/platform/logger"
)

type ItemRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Item) ([]*domain.Item, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Item, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Item, error)

	// LockByID takes the item row lock the stock ledger relies on.
	LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Item, error)

	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	List(dbc dbctx.Context) ([]*domain.Item, error)
}

type itemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return &itemRepo{db: db, log: baseLog.With("repo", "ItemRepo")}
}

func (r *itemRepo) Create(dbc dbctx.Context, rows []*domain.Item) ([]*domain.Item, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Item{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *itemRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Item, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Item
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Item, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *itemRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Item, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row domain.Item
	err := t.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *itemRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return t.WithContext(dbc.Ctx).
		Model(&domain.Item{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *itemRepo) List(dbc dbctx.Context) ([]*domain.Item, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Item
	if err := t.WithContext(dbc.Ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
