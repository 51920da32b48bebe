package aggregates

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/shopcore-backend/internal/data/repos"
	"github.com/yungbote/shopcore-backend/internal/data/repos/testutil"
	"github.com/yungbote/shopcore-backend/internal/domain"
	domainagg "github.com/yungbote/shopcore-backend/internal/domain/aggregates"
	"github.com/yungbote/shopcore-backend/internal/pkg/dbctx"
)

type recordingHooks struct {
	mu            sync.Mutex
	operations    []string
	statuses      []string
	conflicts     []string
	retries       []string
	stockRemoved  int
	stockRestored int
}

func (h *recordingHooks) ObserveOperation(name, status string, dur time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.operations = append(h.operations, name)
	h.statuses = append(h.statuses, status)
}

func (h *recordingHooks) IncConflict(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conflicts = append(h.conflicts, name)
}

func (h *recordingHooks) IncRetry(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.retries = append(h.retries, name)
}

func (h *recordingHooks) AddStockRemoved(units int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stockRemoved += units
}

func (h *recordingHooks) AddStockRestored(units int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stockRestored += units
}

func newOrderAggregate(tb testing.TB, db *gorm.DB, hooks Hooks) domainagg.OrderAggregate {
	tb.Helper()
	log := testutil.Logger(tb)
	return NewOrderAggregate(OrderAggregateDeps{
		Base: BaseDeps{
			DB:    db,
			Log:   log,
			Hooks: hooks,
		},
		Members:    repos.NewMemberRepo(db, log),
		Items:      repos.NewItemRepo(db, log),
		Orders:     repos.NewOrderRepo(db, log),
		Lines:      repos.NewOrderLineRepo(db, log),
		Deliveries: repos.NewDeliveryRepo(db, log),
	})
}

// cleanupRetail removes everything the given members/items accumulated during
// a test. Aggregate writes commit for real, so each test seeds fresh rows and
// tears them down here.
func cleanupRetail(tb testing.TB, db *gorm.DB, memberIDs, itemIDs []uuid.UUID) {
	tb.Helper()
	tb.Cleanup(func() {
		if len(memberIDs) > 0 {
			db.Exec(`DELETE FROM "order_line" WHERE order_id IN (SELECT id FROM "orders" WHERE member_id IN ?)`, memberIDs)
			db.Exec(`DELETE FROM "delivery" WHERE id IN (SELECT delivery_id FROM "orders" WHERE member_id IN ?)`, memberIDs)
			db.Exec(`DELETE FROM "orders" WHERE member_id IN ?`, memberIDs)
			db.Exec(`DELETE FROM "member" WHERE id IN ?`, memberIDs)
		}
		if len(itemIDs) > 0 {
			db.Exec(`DELETE FROM "item" WHERE id IN ?`, itemIDs)
		}
	})
}

func itemStock(tb testing.TB, db *gorm.DB, id uuid.UUID) int {
	tb.Helper()
	var item domain.Item
	require.NoError(tb, db.Where("id = ?", id).First(&item).Error)
	return item.StockQuantity
}

func TestPlaceOrderHappyPath(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	member := testutil.SeedMember(t, db, "place-happy-"+uuid.NewString())
	book := testutil.SeedBook(t, db, "Domain Modeling", "E. Evans", "978-0321125217", 20000, 10)
	pen := testutil.SeedItem(t, db, "Fountain Pen", 1000, 5)
	cleanupRetail(t, db, []uuid.UUID{member.ID}, []uuid.UUID{book.ID, pen.ID})

	hooks := &recordingHooks{}
	agg := newOrderAggregate(t, db, hooks)

	out, err := agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines: []domainagg.OrderLineSpec{
			{ItemID: book.ID, Quantity: 2},
			{ItemID: pen.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, out.OrderID)
	require.NotEqual(t, uuid.Nil, out.DeliveryID)
	require.Equal(t, int64(2*20000+3*1000), out.TotalPrice)

	require.Equal(t, 8, itemStock(t, db, book.ID))
	require.Equal(t, 2, itemStock(t, db, pen.ID))

	var order domain.Order
	require.NoError(t, db.Where("id = ?", out.OrderID).First(&order).Error)
	require.Equal(t, domain.OrderStatusPlaced, order.Status)
	require.Equal(t, member.ID, order.MemberID)
	require.Equal(t, out.DeliveryID, order.DeliveryID)

	var delivery domain.Delivery
	require.NoError(t, db.Where("id = ?", out.DeliveryID).First(&delivery).Error)
	require.Equal(t, domain.DeliveryStatusPending, delivery.Status)
	require.Equal(t, member.Address, delivery.Address)

	var lines []*domain.OrderLine
	require.NoError(t, db.Where("order_id = ?", out.OrderID).Find(&lines).Error)
	require.Len(t, lines, 2)

	require.Contains(t, hooks.operations, "Retail.Order.Place")
	require.Contains(t, hooks.statuses, "success")
	require.Equal(t, 5, hooks.stockRemoved)
}

func TestPlaceOrderUnitPriceIsSnapshot(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	member := testutil.SeedMember(t, db, "place-snapshot-"+uuid.NewString())
	item := testutil.SeedItem(t, db, "Snapshot Item", 5000, 10)
	cleanupRetail(t, db, []uuid.UUID{member.ID}, []uuid.UUID{item.ID})

	agg := newOrderAggregate(t, db, nil)
	out, err := agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines:    []domainagg.OrderLineSpec{{ItemID: item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// Raising the catalog price must not touch already-placed orders.
	require.NoError(t, db.Model(&domain.Item{}).Where("id = ?", item.ID).Update("price", 9000).Error)

	var line domain.OrderLine
	require.NoError(t, db.Where("order_id = ?", out.OrderID).First(&line).Error)
	require.Equal(t, int64(5000), line.UnitPrice)
}

func TestPlaceOrderStockScenario(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	member := testutil.SeedMember(t, db, "place-scenario-"+uuid.NewString())
	item := testutil.SeedItem(t, db, "Scenario Item", 1000, 10)
	cleanupRetail(t, db, []uuid.UUID{member.ID}, []uuid.UUID{item.ID})

	agg := newOrderAggregate(t, db, nil)

	first, err := agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines:    []domainagg.OrderLineSpec{{ItemID: item.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 7, itemStock(t, db, item.ID))

	_, err = agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines:    []domainagg.OrderLineSpec{{ItemID: item.ID, Quantity: 8}},
	})
	require.Error(t, err)
	require.True(t, domainagg.IsCode(err, domainagg.CodeInvariantViolation), "err=%v", err)
	require.Equal(t, 7, itemStock(t, db, item.ID))

	_, err = agg.Cancel(ctx, domainagg.CancelOrderInput{OrderID: first.OrderID})
	require.NoError(t, err)
	require.Equal(t, 10, itemStock(t, db, item.ID))

	// With stock restored the previously impossible order fits.
	_, err = agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines:    []domainagg.OrderLineSpec{{ItemID: item.ID, Quantity: 8}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, itemStock(t, db, item.ID))
}

func TestPlaceOrderPartialFailureRollsBack(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	member := testutil.SeedMember(t, db, "place-rollback-"+uuid.NewString())
	plenty := testutil.SeedItem(t, db, "Plenty", 1000, 5)
	scarce := testutil.SeedItem(t, db, "Scarce", 1000, 1)
	cleanupRetail(t, db, []uuid.UUID{member.ID}, []uuid.UUID{plenty.ID, scarce.ID})

	agg := newOrderAggregate(t, db, nil)
	_, err := agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines: []domainagg.OrderLineSpec{
			{ItemID: plenty.ID, Quantity: 2},
			{ItemID: scarce.ID, Quantity: 3},
		},
	})
	require.Error(t, err)
	require.True(t, domainagg.IsCode(err, domainagg.CodeInvariantViolation), "err=%v", err)

	// The whole transaction rolled back: neither item lost stock, no order rows.
	require.Equal(t, 5, itemStock(t, db, plenty.ID))
	require.Equal(t, 1, itemStock(t, db, scarce.ID))

	var count int64
	require.NoError(t, db.Model(&domain.Order{}).Where("member_id = ?", member.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestPlaceOrderValidation(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	agg := newOrderAggregate(t, db, nil)

	_, err := agg.Place(ctx, domainagg.PlaceOrderInput{})
	require.True(t, domainagg.IsCode(err, domainagg.CodeValidation), "missing member err=%v", err)

	_, err = agg.Place(ctx, domainagg.PlaceOrderInput{MemberID: uuid.New()})
	require.True(t, domainagg.IsCode(err, domainagg.CodeValidation), "no lines err=%v", err)

	_, err = agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: uuid.New(),
		Lines:    []domainagg.OrderLineSpec{{ItemID: uuid.New(), Quantity: 0}},
	})
	require.True(t, domainagg.IsCode(err, domainagg.CodeValidation), "zero quantity err=%v", err)
}

func TestPlaceOrderNotFound(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	agg := newOrderAggregate(t, db, nil)

	_, err := agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: uuid.New(),
		Lines:    []domainagg.OrderLineSpec{{ItemID: uuid.New(), Quantity: 1}},
	})
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "unknown member err=%v", err)

	member := testutil.SeedMember(t, db, "place-notfound-"+uuid.NewString())
	cleanupRetail(t, db, []uuid.UUID{member.ID}, nil)

	_, err = agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines:    []domainagg.OrderLineSpec{{ItemID: uuid.New(), Quantity: 1}},
	})
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "unknown item err=%v", err)
}

func TestCancelOrderNotFound(t *testing.T) {
	db := testutil.DB(t)
	agg := newOrderAggregate(t, db, nil)

	_, err := agg.Cancel(context.Background(), domainagg.CancelOrderInput{OrderID: uuid.New()})
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "err=%v", err)
}

func TestCancelRejectedAfterDeliveryCompleted(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	member := testutil.SeedMember(t, db, "cancel-delivered-"+uuid.NewString())
	item := testutil.SeedItem(t, db, "Delivered Item", 1000, 5)
	cleanupRetail(t, db, []uuid.UUID{member.ID}, []uuid.UUID{item.ID})

	agg := newOrderAggregate(t, db, nil)
	out, err := agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines:    []domainagg.OrderLineSpec{{ItemID: item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = agg.CompleteDelivery(ctx, domainagg.CompleteDeliveryInput{DeliveryID: out.DeliveryID})
	require.NoError(t, err)

	_, err = agg.Cancel(ctx, domainagg.CancelOrderInput{OrderID: out.OrderID})
	require.True(t, domainagg.IsCode(err, domainagg.CodeInvariantViolation), "err=%v", err)

	// Nothing changed: order still placed, stock still decremented.
	var order domain.Order
	require.NoError(t, db.Where("id = ?", out.OrderID).First(&order).Error)
	require.Equal(t, domain.OrderStatusPlaced, order.Status)
	require.Equal(t, 3, itemStock(t, db, item.ID))
}

func TestCancelWaitsForInFlightDeliveryCompletion(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	member := testutil.SeedMember(t, db, "cancel-inflight-"+uuid.NewString())
	item := testutil.SeedItem(t, db, "Inflight Item", 1000, 5)
	cleanupRetail(t, db, []uuid.UUID{member.ID}, []uuid.UUID{item.ID})

	agg := newOrderAggregate(t, db, nil)
	out, err := agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines:    []domainagg.OrderLineSpec{{ItemID: item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// Hold the delivery row lock with an uncommitted completion, the way a
	// concurrent CompleteDelivery transaction would.
	tx := db.Begin()
	require.NoError(t, tx.Error)
	var held domain.Delivery
	require.NoError(t, tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", out.DeliveryID).
		First(&held).Error)
	require.NoError(t, tx.Model(&domain.Delivery{}).
		Where("id = ?", out.DeliveryID).
		Update("status", string(domain.DeliveryStatusCompleted)).Error)

	errCh := make(chan error, 1)
	go func() {
		_, cancelErr := agg.Cancel(ctx, domainagg.CancelOrderInput{OrderID: out.OrderID})
		errCh <- cancelErr
	}()

	// Cancel must block on the delivery lock instead of reading the stale
	// pending status.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, tx.Commit().Error)

	err = <-errCh
	require.True(t, domainagg.IsCode(err, domainagg.CodeInvariantViolation), "err=%v", err)

	var order domain.Order
	require.NoError(t, db.Where("id = ?", out.OrderID).First(&order).Error)
	require.Equal(t, domain.OrderStatusPlaced, order.Status)
	require.Equal(t, 3, itemStock(t, db, item.ID))
}

func TestCancelRestoresEveryLine(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	member := testutil.SeedMember(t, db, "cancel-lines-"+uuid.NewString())
	book := testutil.SeedBook(t, db, "Refund Book", "Author", "isbn-r", 20000, 10)
	pen := testutil.SeedItem(t, db, "Refund Pen", 1000, 6)
	cleanupRetail(t, db, []uuid.UUID{member.ID}, []uuid.UUID{book.ID, pen.ID})

	hooks := &recordingHooks{}
	agg := newOrderAggregate(t, db, hooks)
	out, err := agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines: []domainagg.OrderLineSpec{
			{ItemID: book.ID, Quantity: 4},
			{ItemID: pen.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 6, itemStock(t, db, book.ID))
	require.Equal(t, 4, itemStock(t, db, pen.ID))

	_, err = agg.Cancel(ctx, domainagg.CancelOrderInput{OrderID: out.OrderID})
	require.NoError(t, err)

	require.Equal(t, 10, itemStock(t, db, book.ID))
	require.Equal(t, 6, itemStock(t, db, pen.ID))
	require.Equal(t, 6, hooks.stockRemoved)
	require.Equal(t, 6, hooks.stockRestored)
}

func TestDoubleCancelConflicts(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	member := testutil.SeedMember(t, db, "double-cancel-"+uuid.NewString())
	item := testutil.SeedItem(t, db, "Cancel Item", 1000, 5)
	cleanupRetail(t, db, []uuid.UUID{member.ID}, []uuid.UUID{item.ID})

	hooks := &recordingHooks{}
	agg := newOrderAggregate(t, db, hooks)
	out, err := agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines:    []domainagg.OrderLineSpec{{ItemID: item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = agg.Cancel(ctx, domainagg.CancelOrderInput{OrderID: out.OrderID})
	require.NoError(t, err)
	require.Equal(t, 5, itemStock(t, db, item.ID))

	_, err = agg.Cancel(ctx, domainagg.CancelOrderInput{OrderID: out.OrderID})
	require.True(t, domainagg.IsCode(err, domainagg.CodeConflict), "err=%v", err)

	// Stock restored exactly once.
	require.Equal(t, 5, itemStock(t, db, item.ID))
	require.Contains(t, hooks.conflicts, "Retail.Order.Cancel")
	require.Equal(t, 2, hooks.stockRestored)
}

func TestCompleteDeliveryIdempotent(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	member := testutil.SeedMember(t, db, "complete-idem-"+uuid.NewString())
	item := testutil.SeedItem(t, db, "Idem Item", 1000, 5)
	cleanupRetail(t, db, []uuid.UUID{member.ID}, []uuid.UUID{item.ID})

	agg := newOrderAggregate(t, db, nil)
	out, err := agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines:    []domainagg.OrderLineSpec{{ItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	first, err := agg.CompleteDelivery(ctx, domainagg.CompleteDeliveryInput{DeliveryID: out.DeliveryID})
	require.NoError(t, err)
	require.Equal(t, string(domain.DeliveryStatusCompleted), first.Status)

	second, err := agg.CompleteDelivery(ctx, domainagg.CompleteDeliveryInput{DeliveryID: out.DeliveryID})
	require.NoError(t, err)
	require.Equal(t, string(domain.DeliveryStatusCompleted), second.Status)
}

func TestCompleteDeliveryNotFound(t *testing.T) {
	db := testutil.DB(t)
	agg := newOrderAggregate(t, db, nil)

	_, err := agg.CompleteDelivery(context.Background(), domainagg.CompleteDeliveryInput{DeliveryID: uuid.New()})
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "err=%v", err)
}

func TestStatusGuardUpdateByStatus(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	member := testutil.SeedMember(t, db, "guard-"+uuid.NewString())
	item := testutil.SeedItem(t, db, "Guard Item", 1000, 5)
	cleanupRetail(t, db, []uuid.UUID{member.ID}, []uuid.UUID{item.ID})

	agg := newOrderAggregate(t, db, nil)
	out, err := agg.Place(ctx, domainagg.PlaceOrderInput{
		MemberID: member.ID,
		Lines:    []domainagg.OrderLineSpec{{ItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	guard := NewStatusGuard(db)
	dbc := dbctx.Context{Ctx: ctx}

	ok, err := guard.UpdateByStatus(dbc, "orders", out.OrderID,
		[]string{string(domain.OrderStatusPlaced)},
		map[string]any{"status": string(domain.OrderStatusCancelled)})
	require.NoError(t, err)
	require.True(t, ok)

	// Second CAS against the old status must miss.
	ok, err = guard.UpdateByStatus(dbc, "orders", out.OrderID,
		[]string{string(domain.OrderStatusPlaced)},
		map[string]any{"status": string(domain.OrderStatusCancelled)})
	require.NoError(t, err)
	require.False(t, ok)
}
