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

type OrderRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Order) ([]*domain.Order, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Order, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Order, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Order, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	ListByMemberID(dbc dbctx.Context, memberID uuid.UUID) ([]*domain.Order, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo")}
}

func (r *orderRepo) Create(dbc dbctx.Context, rows []*domain.Order) ([]*domain.Order, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Order{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *orderRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Order, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Order
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Order, error) {
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

func (r *orderRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Order, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row domain.Order
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

func (r *orderRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *orderRepo) ListByMemberID(dbc dbctx.Context, memberID uuid.UUID) ([]*domain.Order, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Order
	if memberID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("member_id = ?", memberID).
		Order("order_date DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
