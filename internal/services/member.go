package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shopcore-backend/internal/data/repos"
	"github.com/yungbote/shopcore-backend/internal/domain"
	domainagg "github.com/yungbote/shopcore-backend/internal/domain/aggregates"
	"github.com/yungbote/shopcore-backend/internal/pkg/dbctx"
	"github.com/yungbote/shopcore-backend/internal/platform/logger"
)

type RegisterMemberInput struct {
	Name    string         `json:"name"`
	Address domain.Address `json:"address"`
}

type MemberService interface {
	Register(ctx context.Context, in RegisterMemberInput) (*domain.Member, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	List(ctx context.Context) ([]*domain.Member, error)
}

type memberService struct {
	db         *gorm.DB
	log        *logger.Logger
	memberRepo repos.MemberRepo
}

func NewMemberService(db *gorm.DB, baseLog *logger.Logger, memberRepo repos.MemberRepo) MemberService {
	return &memberService{
		db:         db,
		log:        baseLog.With("service", "MemberService"),
		memberRepo: memberRepo,
	}
}

func (s *memberService) Register(ctx context.Context, in RegisterMemberInput) (*domain.Member, error) {
	const op = "Retail.Member.Register"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "member name is required", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}

	// Member names are unique; registration with a taken name is rejected.
	existing, err := s.memberRepo.ListByName(dbc, name)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if len(existing) > 0 {
		return nil, domainagg.NewError(domainagg.CodeConflict, op, fmt.Sprintf("member name already taken: %s", name), nil)
	}

	member := &domain.Member{
		ID:      uuid.New(),
		Name:    name,
		Address: in.Address,
	}
	if _, err := s.memberRepo.Create(dbc, []*domain.Member{member}); err != nil {
		s.log.Error("Register member failed", "error", err, "name", name)
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return member, nil
}

func (s *memberService) Get(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	const op = "Retail.Member.Get"

	if id == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing member_id", nil)
	}
	member, err := s.memberRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if member == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("member not found: %s", id.String()), nil)
	}
	return member, nil
}

func (s *memberService) List(ctx context.Context) ([]*domain.Member, error) {
	const op = "Retail.Member.List"

	members, err := s.memberRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return members, nil
}
