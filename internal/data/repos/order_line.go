package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/shopcore-backend/internal/domain"
	"github.com/yungbote/shopcore-backend/internal/pkg/dbctx"
	"github.com/yungbote/shopcore-backend/internal/platform/logger"
)

type OrderLineRepo interface {
	Create(dbc dbctx.Context, rows []*domain.OrderLine) ([]*domain.OrderLine, error)
	ListByOrderID(dbc dbctx.Context, orderID uuid.UUID) ([]*domain.OrderLine, error)
	ListByOrderIDs(dbc dbctx.Context, orderIDs []uuid.UUID) ([]*domain.OrderLine, error)
}

type orderLineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderLineRepo(db *gorm.DB, baseLog *logger.Logger) OrderLineRepo {
	return &orderLineRepo{db: db, log: baseLog.With("repo", "OrderLineRepo")}
}

func (r *orderLineRepo) Create(dbc dbctx.Context, rows []*domain.OrderLine) ([]*domain.OrderLine, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.OrderLine{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *orderLineRepo) ListByOrderID(dbc dbctx.Context, orderID uuid.UUID) ([]*domain.OrderLine, error) {
	if orderID == uuid.Nil {
		return nil, nil
	}
	return r.ListByOrderIDs(dbc, []uuid.UUID{orderID})
}

func (r *orderLineRepo) ListByOrderIDs(dbc dbctx.Context, orderIDs []uuid.UUID) ([]*domain.OrderLine, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.OrderLine
	if len(orderIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("order_id IN ?", orderIDs).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
