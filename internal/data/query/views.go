package query

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/shopcore-backend/internal/domain"
)

// OrderView is the flat, read-only projection of one order with its member
// name, delivery address and lines. Every strategy produces identical views
// for the same stored data.
type OrderView struct {
	OrderID    uuid.UUID          `json:"order_id"`
	MemberName string             `json:"member_name"`
	OrderDate  time.Time          `json:"order_date"`
	Status     domain.OrderStatus `json:"status"`
	Address    domain.Address     `json:"address"`
	Lines      []OrderLineView    `json:"lines"`
}

type OrderLineView struct {
	ItemName  string `json:"item_name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Page requests an offset/limit window over projection roots.
type Page struct {
	Offset int
	Limit  int
}

// Strategy selects how the projection resolves related records.
type Strategy string

const (
	// StrategyEachRelation resolves every relation on demand through a
	// call-scoped identity cache. 1 + O(N) + O(M) queries. Paginates.
	StrategyEachRelation Strategy = "each_relation"
	// StrategyJoinToOne joins member and delivery into the root query; lines
	// are still resolved per order. 1 + O(N) queries. Paginates.
	StrategyJoinToOne Strategy = "join_to_one"
	// StrategyJoinAll joins everything into one query and collapses the row
	// multiplication by order identity. 1 query. Never paginates.
	StrategyJoinAll Strategy = "join_all"
	// StrategyBatchedLines pages to-one-joined roots, then fetches all lines
	// for the paged ids in one batched query. 2 queries. Paginates.
	StrategyBatchedLines Strategy = "batched_lines"
	// StrategyFlatColumns projects root and line scalar columns directly,
	// assembled like StrategyBatchedLines. 2 queries. Paginates.
	StrategyFlatColumns Strategy = "flat_columns"
)

func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case StrategyEachRelation, StrategyJoinToOne, StrategyJoinAll, StrategyBatchedLines, StrategyFlatColumns:
		return Strategy(s), true
	default:
		return "", false
	}
}
