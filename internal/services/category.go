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

type CreateCategoryInput struct {
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

type CategoryService interface {
	Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
	AddItem(ctx context.Context, categoryID, itemID uuid.UUID) error
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]*domain.Category, error)
	ListItems(ctx context.Context, categoryID uuid.UUID) ([]*domain.Item, error)
}

type categoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
	itemRepo     repos.ItemRepo
}

func NewCategoryService(db *gorm.DB, baseLog *logger.Logger, categoryRepo repos.CategoryRepo, itemRepo repos.ItemRepo) CategoryService {
	return &categoryService{
		db:           db,
		log:          baseLog.With("service", "CategoryService"),
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
	}
}

func (s *categoryService) Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error) {
	const op = "Retail.Category.Create"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "category name is required", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	category := &domain.Category{
		ID:   uuid.New(),
		Name: name,
	}

	if in.ParentID != nil && *in.ParentID != uuid.Nil {
		parent, err := s.categoryRepo.GetByID(dbc, *in.ParentID)
		if err != nil {
			return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
		}
		if parent == nil {
			return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("parent category not found: %s", in.ParentID.String()), nil)
		}
		domain.AddChildCategory(parent, category)
	}

	if _, err := s.categoryRepo.Create(dbc, []*domain.Category{category}); err != nil {
		s.log.Error("Create category failed", "error", err, "name", name)
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return category, nil
}

func (s *categoryService) AddItem(ctx context.Context, categoryID, itemID uuid.UUID) error {
	const op = "Retail.Category.AddItem"

	if categoryID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing category_id", nil)
	}
	if itemID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing item_id", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	category, err := s.categoryRepo.GetByID(dbc, categoryID)
	if err != nil {
		return domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if category == nil {
		return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("category not found: %s", categoryID.String()), nil)
	}
	item, err := s.itemRepo.GetByID(dbc, itemID)
	if err != nil {
		return domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if item == nil {
		return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("item not found: %s", itemID.String()), nil)
	}

	domain.LinkCategoryItem(category, item)
	if err := s.categoryRepo.LinkItem(dbc, categoryID, itemID); err != nil {
		s.log.Error("Link category item failed", "error", err, "category_id", categoryID.String(), "item_id", itemID.String())
		return domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return nil
}

func (s *categoryService) ListChildren(ctx context.Context, parentID uuid.UUID) ([]*domain.Category, error) {
	const op = "Retail.Category.ListChildren"

	if parentID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing parent_id", nil)
	}
	children, err := s.categoryRepo.ListChildren(dbctx.Context{Ctx: ctx}, parentID)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return children, nil
}

func (s *categoryService) ListItems(ctx context.Context, categoryID uuid.UUID) ([]*domain.Item, error) {
	const op = "Retail.Category.ListItems"

	if categoryID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing category_id", nil)
	}
	items, err := s.categoryRepo.ListItems(dbctx.Context{Ctx: ctx}, categoryID)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return items, nil
}
