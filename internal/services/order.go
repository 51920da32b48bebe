package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shopcore-backend/internal/data/query"
	"github.com/yungbote/shopcore-backend/internal/domain"
	domainagg "github.com/yungbote/shopcore-backend/internal/domain/aggregates"
	"github.com/yungbote/shopcore-backend/internal/platform/logger"
)

// OrderService fronts the order aggregate for the HTTP layer and exposes the
// read paths (search, projections) next to the writes.
type OrderService interface {
	Place(ctx context.Context, in domainagg.PlaceOrderInput) (domainagg.PlaceOrderResult, error)
	PlaceSingle(ctx context.Context, memberID, itemID uuid.UUID, quantity int) (domainagg.PlaceOrderResult, error)
	Cancel(ctx context.Context, orderID uuid.UUID) (domainagg.CancelOrderResult, error)
	CompleteDelivery(ctx context.Context, deliveryID uuid.UUID) (domainagg.CompleteDeliveryResult, error)

	Search(ctx context.Context, search query.OrderSearch) ([]*domain.Order, error)
	ListViews(ctx context.Context, strategy query.Strategy, page *query.Page) ([]query.OrderView, error)
}

type orderService struct {
	db        *gorm.DB
	log       *logger.Logger
	aggregate domainagg.OrderAggregate
	engine    *query.Engine
}

func NewOrderService(db *gorm.DB, baseLog *logger.Logger, aggregate domainagg.OrderAggregate, engine *query.Engine) OrderService {
	return &orderService{
		db:        db,
		log:       baseLog.With("service", "OrderService"),
		aggregate: aggregate,
		engine:    engine,
	}
}

func (s *orderService) Place(ctx context.Context, in domainagg.PlaceOrderInput) (domainagg.PlaceOrderResult, error) {
	out, err := s.aggregate.Place(ctx, in)
	if err != nil {
		s.log.Warn("Place order failed", "error", err, "member_id", in.MemberID.String())
		return out, err
	}
	s.log.Info("Order placed",
		"order_id", out.OrderID.String(),
		"member_id", in.MemberID.String(),
		"total_price", out.TotalPrice,
		"lines", len(in.Lines))
	return out, nil
}

// PlaceSingle is the one-item convenience path.
func (s *orderService) PlaceSingle(ctx context.Context, memberID, itemID uuid.UUID, quantity int) (domainagg.PlaceOrderResult, error) {
	return s.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: memberID,
		Lines:    []domainagg.OrderLineSpec{{ItemID: itemID, Quantity: quantity}},
	})
}

func (s *orderService) Cancel(ctx context.Context, orderID uuid.UUID) (domainagg.CancelOrderResult, error) {
	out, err := s.aggregate.Cancel(ctx, domainagg.CancelOrderInput{OrderID: orderID})
	if err != nil {
		s.log.Warn("Cancel order failed", "error", err, "order_id", orderID.String())
		return out, err
	}
	s.log.Info("Order cancelled", "order_id", out.OrderID.String())
	return out, nil
}

func (s *orderService) CompleteDelivery(ctx context.Context, deliveryID uuid.UUID) (domainagg.CompleteDeliveryResult, error) {
	out, err := s.aggregate.CompleteDelivery(ctx, domainagg.CompleteDeliveryInput{DeliveryID: deliveryID})
	if err != nil {
		s.log.Warn("Complete delivery failed", "error", err, "delivery_id", deliveryID.String())
		return out, err
	}
	s.log.Info("Delivery completed", "delivery_id", out.DeliveryID.String())
	return out, nil
}

func (s *orderService) Search(ctx context.Context, search query.OrderSearch) ([]*domain.Order, error) {
	return s.engine.SearchOrders(ctx, search)
}

func (s *orderService) ListViews(ctx context.Context, strategy query.Strategy, page *query.Page) ([]query.OrderView, error) {
	return s.engine.ListOrderViews(ctx, strategy, page)
}
