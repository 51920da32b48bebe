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

type CreateItemInput struct {
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stock_quantity"`

	// Book variant fields; both optional for generic items.
	Author string `json:"author,omitempty"`
	ISBN   string `json:"isbn,omitempty"`
	Book   bool   `json:"book,omitempty"`
}

type UpdateItemInput struct {
	Name          *string `json:"name,omitempty"`
	Price         *int64  `json:"price,omitempty"`
	StockQuantity *int    `json:"stock_quantity,omitempty"`
}

type ItemService interface {
	Create(ctx context.Context, in CreateItemInput) (*domain.Item, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateItemInput) (*domain.Item, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
}

type itemService struct {
	db       *gorm.DB
	log      *logger.Logger
	itemRepo repos.ItemRepo
}

func NewItemService(db *gorm.DB, baseLog *logger.Logger, itemRepo repos.ItemRepo) ItemService {
	return &itemService{
		db:       db,
		log:      baseLog.With("service", "ItemService"),
		itemRepo: itemRepo,
	}
}

func (s *itemService) Create(ctx context.Context, in CreateItemInput) (*domain.Item, error) {
	const op = "Retail.Item.Create"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "item name is required", nil)
	}
	if in.Price < 0 {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "item price cannot be negative", nil)
	}
	if in.StockQuantity < 0 {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "stock quantity cannot be negative", nil)
	}

	item := &domain.Item{
		ID:            uuid.New(),
		DType:         domain.ItemTypeGeneric,
		Name:          name,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
	}
	if in.Book || in.Author != "" || in.ISBN != "" {
		item.DType = domain.ItemTypeBook
		item.Author = strings.TrimSpace(in.Author)
		item.ISBN = strings.TrimSpace(in.ISBN)
	}

	if _, err := s.itemRepo.Create(dbctx.Context{Ctx: ctx}, []*domain.Item{item}); err != nil {
		s.log.Error("Create item failed", "error", err, "name", name)
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return item, nil
}

func (s *itemService) Update(ctx context.Context, id uuid.UUID, in UpdateItemInput) (*domain.Item, error) {
	const op = "Retail.Item.Update"

	if id == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing item_id", nil)
	}
	if in.Name == nil && in.Price == nil && in.StockQuantity == nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "update requires at least one field", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	item, err := s.itemRepo.GetByID(dbc, id)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if item == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("item not found: %s", id.String()), nil)
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domainagg.NewError(domainagg.CodeValidation, op, "item name cannot be empty", nil)
		}
		item.Name = name
		updates["name"] = name
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, domainagg.NewError(domainagg.CodeValidation, op, "item price cannot be negative", nil)
		}
		item.Price = *in.Price
		updates["price"] = *in.Price
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, domainagg.NewError(domainagg.CodeValidation, op, "stock quantity cannot be negative", nil)
		}
		item.StockQuantity = *in.StockQuantity
		updates["stock_quantity"] = *in.StockQuantity
	}

	if err := s.itemRepo.UpdateFields(dbc, id, updates); err != nil {
		s.log.Error("Update item failed", "error", err, "item_id", id.String())
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return item, nil
}

func (s *itemService) Get(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	const op = "Retail.Item.Get"

	if id == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing item_id", nil)
	}
	item, err := s.itemRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if item == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("item not found: %s", id.String()), nil)
	}
	return item, nil
}

func (s *itemService) List(ctx context.Context) ([]*domain.Item, error) {
	const op = "Retail.Item.List"

	items, err := s.itemRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return items, nil
}
