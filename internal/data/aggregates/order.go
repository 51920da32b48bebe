package aggregates

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/shopcore-backend/internal/data/repos"
	"github.com/yungbote/shopcore-backend/internal/domain"
	domainagg "github.com/yungbote/shopcore-backend/internal/domain/aggregates"
	"github.com/yungbote/shopcore-backend/internal/pkg/dbctx"
)

type OrderAggregateDeps struct {
	Base BaseDeps

	Members    repos.MemberRepo
	Items      repos.ItemRepo
	Orders     repos.OrderRepo
	Lines      repos.OrderLineRepo
	Deliveries repos.DeliveryRepo
	Guard      StatusGuard
}

type orderAggregate struct {
	deps OrderAggregateDeps
}

func NewOrderAggregate(deps OrderAggregateDeps) domainagg.OrderAggregate {
	deps.Base = deps.Base.withDefaults()
	if deps.Guard.db == nil {
		deps.Guard = NewStatusGuard(deps.Base.DB)
	}
	return &orderAggregate{deps: deps}
}

func (a *orderAggregate) Contract() domainagg.Contract {
	return domainagg.OrderAggregateContract
}

func (a *orderAggregate) Place(ctx context.Context, in domainagg.PlaceOrderInput) (domainagg.PlaceOrderResult, error) {
	const op = "Retail.Order.Place"
	var out domainagg.PlaceOrderResult

	if in.MemberID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing member_id", nil)
	}
	if len(in.Lines) == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "order requires at least one line", nil)
	}
	for _, spec := range in.Lines {
		if spec.ItemID == uuid.Nil {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "missing item_id", nil)
		}
		if spec.Quantity <= 0 {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "line quantity must be positive", nil)
		}
	}
	if a.deps.Members == nil || a.deps.Items == nil || a.deps.Orders == nil || a.deps.Lines == nil || a.deps.Deliveries == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "order aggregate repos not configured", nil)
	}

	orderedAt := in.OrderedAt.UTC()
	if orderedAt.IsZero() {
		orderedAt = time.Now().UTC()
	}

	// Lock items in a stable order so concurrent placements cannot deadlock.
	specs := make([]domainagg.OrderLineSpec, len(in.Lines))
	copy(specs, in.Lines)
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].ItemID.String() < specs[j].ItemID.String()
	})

	var unitsRemoved int
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		unitsRemoved = 0
		member, err := a.deps.Members.GetByID(dbc, in.MemberID)
		if err != nil {
			return err
		}
		if member == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("member not found: %s", in.MemberID.String()), nil)
		}

		order := &domain.Order{
			ID:        uuid.New(),
			OrderDate: orderedAt,
			Status:    domain.OrderStatusPlaced,
			CreatedAt: orderedAt,
			UpdatedAt: orderedAt,
		}
		delivery := &domain.Delivery{
			ID:        uuid.New(),
			Address:   member.Address,
			Status:    domain.DeliveryStatusPending,
			CreatedAt: orderedAt,
			UpdatedAt: orderedAt,
		}
		domain.AssignMember(order, member)
		domain.AttachDelivery(order, delivery)

		for _, spec := range specs {
			item, err := a.deps.Items.LockByID(dbc, spec.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("item not found: %s", spec.ItemID.String()), nil)
			}
			if err := item.RemoveStock(spec.Quantity); err != nil {
				return err
			}
			if err := a.deps.Items.UpdateFields(dbc, item.ID, map[string]interface{}{
				"stock_quantity": item.StockQuantity,
			}); err != nil {
				return err
			}
			unitsRemoved += spec.Quantity
			line := &domain.OrderLine{
				ID:        uuid.New(),
				ItemID:    item.ID,
				UnitPrice: item.Price,
				Quantity:  spec.Quantity,
				CreatedAt: orderedAt,
			}
			domain.AttachLine(order, line)
		}

		if _, err := a.deps.Deliveries.Create(dbc, []*domain.Delivery{delivery}); err != nil {
			return err
		}
		if _, err := a.deps.Orders.Create(dbc, []*domain.Order{order}); err != nil {
			return err
		}
		if _, err := a.deps.Lines.Create(dbc, order.Lines); err != nil {
			return err
		}

		out = domainagg.PlaceOrderResult{
			OrderID:    order.ID,
			DeliveryID: delivery.ID,
			TotalPrice: order.TotalPrice(),
			OrderedAt:  orderedAt,
		}
		return nil
	})
	if err == nil {
		a.deps.Base.Hooks.AddStockRemoved(unitsRemoved)
	}
	return out, err
}

func (a *orderAggregate) Cancel(ctx context.Context, in domainagg.CancelOrderInput) (domainagg.CancelOrderResult, error) {
	const op = "Retail.Order.Cancel"
	var out domainagg.CancelOrderResult

	if in.OrderID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing order_id", nil)
	}
	if a.deps.Orders == nil || a.deps.Lines == nil || a.deps.Items == nil || a.deps.Deliveries == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "order aggregate repos not configured", nil)
	}

	cancelledAt := in.CancelledAt.UTC()
	if cancelledAt.IsZero() {
		cancelledAt = time.Now().UTC()
	}

	var unitsRestored int
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		unitsRestored = 0
		order, err := a.deps.Orders.LockByID(dbc, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("order not found: %s", in.OrderID.String()), nil)
		}

		// The delivery row lock serializes cancellation against an in-flight
		// completion; a plain read could pass the guard on a stale status.
		delivery, err := a.deps.Deliveries.LockByID(dbc, order.DeliveryID)
		if err != nil {
			return err
		}
		if err := order.CancelGuard(delivery); err != nil {
			return err
		}

		// Double cancellation is a conflict, not a silent no-op: the guard
		// only moves placed orders.
		ok, err := a.deps.Guard.UpdateByStatus(dbc, order.TableName(), order.ID,
			[]string{string(domain.OrderStatusPlaced)},
			map[string]any{
				"status":     string(domain.OrderStatusCancelled),
				"updated_at": cancelledAt,
			})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "order already cancelled"); err != nil {
			return err
		}

		lines, err := a.deps.Lines.ListByOrderID(dbc, order.ID)
		if err != nil {
			return err
		}
		// Same item lock order as Place, so overlapping writers never deadlock.
		sort.Slice(lines, func(i, j int) bool {
			return lines[i].ItemID.String() < lines[j].ItemID.String()
		})
		for _, line := range lines {
			item, err := a.deps.Items.LockByID(dbc, line.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domainagg.NewError(domainagg.CodeInternal, op, fmt.Sprintf("order line references missing item: %s", line.ItemID.String()), nil)
			}
			item.AddStock(line.Quantity)
			if err := a.deps.Items.UpdateFields(dbc, item.ID, map[string]interface{}{
				"stock_quantity": item.StockQuantity,
			}); err != nil {
				return err
			}
			unitsRestored += line.Quantity
		}

		out = domainagg.CancelOrderResult{
			OrderID:     order.ID,
			Status:      string(domain.OrderStatusCancelled),
			CancelledAt: cancelledAt,
		}
		return nil
	})
	if err == nil {
		a.deps.Base.Hooks.AddStockRestored(unitsRestored)
	}
	return out, err
}

func (a *orderAggregate) CompleteDelivery(ctx context.Context, in domainagg.CompleteDeliveryInput) (domainagg.CompleteDeliveryResult, error) {
	const op = "Retail.Order.CompleteDelivery"
	var out domainagg.CompleteDeliveryResult

	if in.DeliveryID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing delivery_id", nil)
	}
	if a.deps.Deliveries == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "delivery repo not configured", nil)
	}

	completedAt := in.CompletedAt.UTC()
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		delivery, err := a.deps.Deliveries.LockByID(dbc, in.DeliveryID)
		if err != nil {
			return err
		}
		if delivery == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("delivery not found: %s", in.DeliveryID.String()), nil)
		}
		if delivery.IsCompleted() {
			out = domainagg.CompleteDeliveryResult{
				DeliveryID:  delivery.ID,
				Status:      string(delivery.Status),
				CompletedAt: completedAt,
			}
			return nil
		}

		if err := a.deps.Deliveries.UpdateFields(dbc, delivery.ID, map[string]interface{}{
			"status":     string(domain.DeliveryStatusCompleted),
			"updated_at": completedAt,
		}); err != nil {
			return err
		}

		out = domainagg.CompleteDeliveryResult{
			DeliveryID:  delivery.ID,
			Status:      string(domain.DeliveryStatusCompleted),
			CompletedAt: completedAt,
		}
		return nil
	})
	return out, err
}
