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

type DeliveryRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Delivery) ([]*domain.Delivery, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Delivery, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Delivery, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Delivery, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type deliveryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeliveryRepo(db *gorm.DB, baseLog *logger.Logger) DeliveryRepo {
	return &deliveryRepo{db: db, log: baseLog.With("repo", "DeliveryRepo")}
}

func (r *deliveryRepo) Create(dbc dbctx.Context, rows []*domain.Delivery) ([]*domain.Delivery, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Delivery{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *deliveryRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Delivery, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Delivery
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *deliveryRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Delivery, error) {
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

func (r *deliveryRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Delivery, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row domain.Delivery
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

func (r *deliveryRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&domain.Delivery{}).
		Where("id = ?", id).
		Updates(updates).Error
}
