package query

import (
	"context"
	"strings"

	"github.com/yungbote/shopcore-backend/internal/domain"
	domainagg "github.com/yungbote/shopcore-backend/internal/domain/aggregates"
)

// maxSearchResults caps every search regardless of how many orders match.
const maxSearchResults = 1000

// OrderSearch holds optional, AND-combined search predicates. Zero values
// match everything.
type OrderSearch struct {
	Status     domain.OrderStatus
	MemberName string
}

// SearchOrders filters orders by exact status and member-name substring.
// There is no offset/limit on this path; the result is capped at 1000 rows.
func (e *Engine) SearchOrders(ctx context.Context, search OrderSearch) ([]*domain.Order, error) {
	const op = "Retail.Projection.SearchOrders"

	q := e.db.WithContext(ctx).
		Model(&domain.Order{}).
		Select(`"orders".*`).
		Joins(`JOIN "member" m ON m.id = "orders".member_id`).
		Order(rootOrdering).
		Limit(maxSearchResults)

	if status := strings.TrimSpace(string(search.Status)); status != "" {
		q = q.Where(`"orders".status = ?`, status)
	}
	if name := strings.TrimSpace(search.MemberName); name != "" {
		q = q.Where("m.name LIKE ?", "%"+name+"%")
	}

	var out []*domain.Order
	if err := q.Find(&out).Error; err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return out, nil
}
