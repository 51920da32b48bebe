package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/shopcore-backend/internal/domain"
	"github.com/yungbote/shopcore-backend/internal/pkg/dbctx"
	"github.com/yungbote/shopcore-backend/internal/platform/logger"
)

type MemberRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Member) ([]*domain.Member, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Member, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Member, error)
	ListByName(dbc dbctx.Context, name string) ([]*domain.Member, error)
	List(dbc dbctx.Context) ([]*domain.Member, error)
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	return &memberRepo{db: db, log: baseLog.With("repo", "MemberRepo")}
}

func (r *memberRepo) Create(dbc dbctx.Context, rows []*domain.Member) ([]*domain.Member, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Member{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *memberRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Member, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Member
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *memberRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Member, error) {
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

func (r *memberRepo) ListByName(dbc dbctx.Context, name string) ([]*domain.Member, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Member
	if name == "" {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("name = ?", name).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *memberRepo) List(dbc dbctx.Context) ([]*domain.Member, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Member
	if err := t.WithContext(dbc.Ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
