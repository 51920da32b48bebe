package query

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shopcore-backend/internal/domain"
	domainagg "github.com/yungbote/shopcore-backend/internal/domain/aggregates"
	"github.com/yungbote/shopcore-backend/internal/platform/logger"
)

// Hooks receives per-call projection observations.
type Hooks interface {
	ObserveProjection(strategy string, queries int, dur time.Duration)
}

type noopHooks struct{}

func (noopHooks) ObserveProjection(string, int, time.Duration) {}

// Engine materializes order views through interchangeable strategies that
// trade off query count, transferred payload and pagination support.
type Engine struct {
	db    *gorm.DB
	log   *logger.Logger
	hooks Hooks
}

func NewEngine(db *gorm.DB, baseLog *logger.Logger, hooks Hooks) *Engine {
	if hooks == nil {
		hooks = noopHooks{}
	}
	return &Engine{db: db, log: baseLog.With("component", "ProjectionEngine"), hooks: hooks}
}

// ListOrderViews runs the chosen strategy. A nil page means "everything".
// StrategyJoinAll rejects pagination outright: its to-many join multiplies
// rows, so offset/limit would silently return wrong windows.
func (e *Engine) ListOrderViews(ctx context.Context, strategy Strategy, page *Page) ([]OrderView, error) {
	const op = "Retail.Projection.ListOrderViews"
	start := time.Now()

	if page != nil {
		if page.Offset < 0 || page.Limit <= 0 {
			return nil, domainagg.NewError(domainagg.CodeValidation, op, "page offset must be >= 0 and limit > 0", nil)
		}
		if strategy == StrategyJoinAll {
			return nil, domainagg.NewError(domainagg.CodeValidation, op, "join_all strategy does not support pagination", nil)
		}
	}

	run := &projectionRun{ctx: ctx, db: e.db}

	var (
		views []OrderView
		err   error
	)
	switch strategy {
	case StrategyEachRelation:
		views, err = run.eachRelation(page)
	case StrategyJoinToOne:
		views, err = run.joinToOne(page)
	case StrategyJoinAll:
		views, err = run.joinAll()
	case StrategyBatchedLines:
		views, err = run.batchedLines(page)
	case StrategyFlatColumns:
		views, err = run.flatColumns(page)
	default:
		return nil, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown projection strategy: %q", strategy), nil)
	}
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}

	e.hooks.ObserveProjection(string(strategy), run.queries, time.Since(start))
	return views, nil
}

// projectionRun scopes one ListOrderViews call: it counts issued queries and
// carries the identity caches that keep the lazy strategy from re-fetching
// the same row twice within the call.
type projectionRun struct {
	ctx     context.Context
	db      *gorm.DB
	queries int
}

func (r *projectionRun) session() *gorm.DB {
	r.queries++
	return r.db.WithContext(r.ctx)
}

const rootOrdering = "orders.order_date ASC, orders.id ASC"

// eachRelation is the naive strategy: load roots, then resolve member,
// delivery, lines and items one lookup at a time.
func (r *projectionRun) eachRelation(page *Page) ([]OrderView, error) {
	q := r.session().Model(&domain.Order{}).Order(rootOrdering)
	if page != nil {
		q = q.Offset(page.Offset).Limit(page.Limit)
	}
	var orders []*domain.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}

	members := map[uuid.UUID]*domain.Member{}
	deliveries := map[uuid.UUID]*domain.Delivery{}
	items := map[uuid.UUID]*domain.Item{}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		member, err := lookupCached(r, members, order.MemberID, &domain.Member{})
		if err != nil {
			return nil, err
		}
		delivery, err := lookupCached(r, deliveries, order.DeliveryID, &domain.Delivery{})
		if err != nil {
			return nil, err
		}

		var lines []*domain.OrderLine
		if err := r.session().
			Where("order_id = ?", order.ID).
			Order("created_at ASC, id ASC").
			Find(&lines).Error; err != nil {
			return nil, err
		}

		lineViews := make([]OrderLineView, 0, len(lines))
		for _, line := range lines {
			item, err := lookupCached(r, items, line.ItemID, &domain.Item{})
			if err != nil {
				return nil, err
			}
			lineViews = append(lineViews, OrderLineView{
				ItemName:  item.Name,
				UnitPrice: line.UnitPrice,
				Quantity:  line.Quantity,
			})
		}

		views = append(views, OrderView{
			OrderID:    order.ID,
			MemberName: member.Name,
			OrderDate:  order.OrderDate,
			Status:     order.Status,
			Address:    delivery.Address,
			Lines:      lineViews,
		})
	}
	return views, nil
}

// lookupCached fetches an entity by id at most once per projection run.
func lookupCached[T any](r *projectionRun, cache map[uuid.UUID]*T, id uuid.UUID, model *T) (*T, error) {
	if cached, ok := cache[id]; ok {
		return cached, nil
	}
	var row T
	if err := r.session().Model(model).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	cache[id] = &row
	return &row, nil
}

// joinToOne joins the to-one relations into the root query; lines are still
// resolved per order.
func (r *projectionRun) joinToOne(page *Page) ([]OrderView, error) {
	orders, err := r.joinedRoots(page)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		lines, err := r.linesWithItems([]uuid.UUID{order.ID})
		if err != nil {
			return nil, err
		}
		views = append(views, viewFromJoinedRoot(order, lines[order.ID]))
	}
	return views, nil
}

// joinAll materializes everything with a single query. The to-many join
// multiplies root rows, so duplicates are collapsed by order identity while
// preserving row order.
func (r *projectionRun) joinAll() ([]OrderView, error) {
	type flatRow struct {
		OrderID    uuid.UUID
		MemberName string
		OrderDate  time.Time
		Status     string
		City       string
		Street     string
		Zipcode    string
		ItemName   *string
		UnitPrice  *int64
		Quantity   *int
	}
	var rows []flatRow
	err := r.session().
		Table(`"orders"`).
		Select(`"orders".id AS order_id, m.name AS member_name, "orders".order_date, "orders".status, ` +
			`d.city, d.street, d.zipcode, i.name AS item_name, ol.unit_price, ol.quantity`).
		Joins(`JOIN "member" m ON m.id = "orders".member_id`).
		Joins(`JOIN "delivery" d ON d.id = "orders".delivery_id`).
		Joins(`LEFT JOIN "order_line" ol ON ol.order_id = "orders".id`).
		Joins(`LEFT JOIN "item" i ON i.id = ol.item_id`).
		Order(rootOrdering + ", ol.created_at ASC, ol.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0)
	index := map[uuid.UUID]int{}
	for _, row := range rows {
		pos, seen := index[row.OrderID]
		if !seen {
			pos = len(views)
			index[row.OrderID] = pos
			views = append(views, OrderView{
				OrderID:    row.OrderID,
				MemberName: row.MemberName,
				OrderDate:  row.OrderDate,
				Status:     domain.OrderStatus(row.Status),
				Address:    domain.Address{City: row.City, Street: row.Street, Zipcode: row.Zipcode},
				Lines:      []OrderLineView{},
			})
		}
		if row.ItemName != nil && row.UnitPrice != nil && row.Quantity != nil {
			views[pos].Lines = append(views[pos].Lines, OrderLineView{
				ItemName:  *row.ItemName,
				UnitPrice: *row.UnitPrice,
				Quantity:  *row.Quantity,
			})
		}
	}
	return views, nil
}

// batchedLines pages the to-one-joined roots first (safe: to-one joins do
// not multiply rows), then issues exactly one batched line query keyed by
// the paged root ids.
func (r *projectionRun) batchedLines(page *Page) ([]OrderView, error) {
	orders, err := r.joinedRoots(page)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}

	lines, err := r.linesWithItems(ids)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, viewFromJoinedRoot(order, lines[order.ID]))
	}
	return views, nil
}

// flatColumns projects scalar columns directly: one flat root query, one flat
// batched line query, merged the same way as batchedLines.
func (r *projectionRun) flatColumns(page *Page) ([]OrderView, error) {
	type rootRow struct {
		OrderID    uuid.UUID
		MemberName string
		OrderDate  time.Time
		Status     string
		City       string
		Street     string
		Zipcode    string
	}
	q := r.session().
		Table(`"orders"`).
		Select(`"orders".id AS order_id, m.name AS member_name, "orders".order_date, "orders".status, d.city, d.street, d.zipcode`).
		Joins(`JOIN "member" m ON m.id = "orders".member_id`).
		Joins(`JOIN "delivery" d ON d.id = "orders".delivery_id`).
		Order(rootOrdering)
	if page != nil {
		q = q.Offset(page.Offset).Limit(page.Limit)
	}
	var roots []rootRow
	if err := q.Scan(&roots).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(roots))
	for _, root := range roots {
		ids = append(ids, root.OrderID)
	}

	lines, err := r.linesWithItems(ids)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(roots))
	for _, root := range roots {
		lineViews := lines[root.OrderID]
		if lineViews == nil {
			lineViews = []OrderLineView{}
		}
		views = append(views, OrderView{
			OrderID:    root.OrderID,
			MemberName: root.MemberName,
			OrderDate:  root.OrderDate,
			Status:     domain.OrderStatus(root.Status),
			Address:    domain.Address{City: root.City, Street: root.Street, Zipcode: root.Zipcode},
			Lines:      lineViews,
		})
	}
	return views, nil
}

// joinedRoots loads order entities with member and delivery joined in the
// same query.
func (r *projectionRun) joinedRoots(page *Page) ([]*domain.Order, error) {
	q := r.session().Model(&domain.Order{}).
		Joins("Member").
		Joins("Delivery").
		Order(rootOrdering)
	if page != nil {
		q = q.Offset(page.Offset).Limit(page.Limit)
	}
	var orders []*domain.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// linesWithItems fetches line scalar fields plus the item name for the given
// order ids in one query, grouped by order id.
func (r *projectionRun) linesWithItems(orderIDs []uuid.UUID) (map[uuid.UUID][]OrderLineView, error) {
	out := map[uuid.UUID][]OrderLineView{}
	if len(orderIDs) == 0 {
		return out, nil
	}
	type lineRow struct {
		OrderID   uuid.UUID
		ItemName  string
		UnitPrice int64
		Quantity  int
	}
	var rows []lineRow
	err := r.session().
		Table(`"order_line"`).
		Select(`"order_line".order_id, i.name AS item_name, "order_line".unit_price, "order_line".quantity`).
		Joins(`JOIN "item" i ON i.id = "order_line".item_id`).
		Where(`"order_line".order_id IN ?`, orderIDs).
		Order(`"order_line".created_at ASC, "order_line".id ASC`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.OrderID] = append(out[row.OrderID], OrderLineView{
			ItemName:  row.ItemName,
			UnitPrice: row.UnitPrice,
			Quantity:  row.Quantity,
		})
	}
	return out, nil
}

func viewFromJoinedRoot(order *domain.Order, lines []OrderLineView) OrderView {
	if lines == nil {
		lines = []OrderLineView{}
	}
	view := OrderView{
		OrderID:   order.ID,
		OrderDate: order.OrderDate,
		Status:    order.Status,
		Lines:     lines,
	}
	if order.Member != nil {
		view.MemberName = order.Member.Name
	}
	if order.Delivery != nil {
		view.Address = order.Delivery.Address
	}
	return view
}
