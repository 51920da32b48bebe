package aggregates

import (
	"strings"
	"time"

	"github.com/yungbote/shopcore-backend/internal/observability"
)

// Hooks captures aggregate-level observability events. Stock movement hooks
// fire once per committed write with the total units the write moved.
type Hooks interface {
	ObserveOperation(name, status string, dur time.Duration)
	IncConflict(name string)
	IncRetry(name string)
	AddStockRemoved(units int)
	AddStockRestored(units int)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncRetry(string)                                {}
func (noopHooks) AddStockRemoved(int)                            {}
func (noopHooks) AddStockRestored(int)                           {}

type observabilityHooks struct {
	metrics *observability.Metrics
}

// NewObservabilityHooks creates aggregate hooks backed by observability metrics.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return &observabilityHooks{metrics: metrics}
}

func (h *observabilityHooks) ObserveOperation(name, status string, dur time.Duration) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.ObserveAggregateOperation(strings.TrimSpace(name), strings.TrimSpace(status), dur)
}

func (h *observabilityHooks) IncConflict(name string) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.IncAggregateConflict(strings.TrimSpace(name))
}

func (h *observabilityHooks) IncRetry(name string) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.IncAggregateRetry(strings.TrimSpace(name))
}

func (h *observabilityHooks) AddStockRemoved(units int) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.AddStockRemoved(units)
}

func (h *observabilityHooks) AddStockRestored(units int) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.AddStockRestored(units)
}
