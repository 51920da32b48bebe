package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var OrderAggregateContract = Contract{
	Name:             "Retail.OrderAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyTableRepoQueries,
	Notes:            "Owns order placement, cancellation and the stock counters they move.",
}

// OrderAggregate owns order lifecycle invariants: stock never goes negative,
// cancellation restores exactly what placement removed, and a completed
// delivery blocks cancellation.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInvariantViolation,
// CodeRetryable, CodeInternal.
type OrderAggregate interface {
	Aggregate

	// Place atomically creates an order with its delivery and lines and
	// decreases stock once per line. No partial order survives a failure.
	Place(ctx context.Context, in PlaceOrderInput) (PlaceOrderResult, error)

	// Cancel transitions a placed order to cancelled and restores stock per
	// line. Fails once the delivery has completed.
	Cancel(ctx context.Context, in CancelOrderInput) (CancelOrderResult, error)

	// CompleteDelivery transitions the order's delivery from pending to
	// completed.
	CompleteDelivery(ctx context.Context, in CompleteDeliveryInput) (CompleteDeliveryResult, error)
}

type OrderLineSpec struct {
	ItemID   uuid.UUID
	Quantity int
}

type PlaceOrderInput struct {
	MemberID  uuid.UUID
	Lines     []OrderLineSpec
	OrderedAt time.Time
}

type PlaceOrderResult struct {
	OrderID    uuid.UUID
	DeliveryID uuid.UUID
	TotalPrice int64
	OrderedAt  time.Time
}

type CancelOrderInput struct {
	OrderID     uuid.UUID
	CancelledAt time.Time
}

type CancelOrderResult struct {
	OrderID     uuid.UUID
	Status      string
	CancelledAt time.Time
}

type CompleteDeliveryInput struct {
	DeliveryID  uuid.UUID
	CompletedAt time.Time
}

type CompleteDeliveryResult struct {
	DeliveryID  uuid.UUID
	Status      string
	CompletedAt time.Time
}
