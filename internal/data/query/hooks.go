package query

import (
	"strings"
	"time"

	"github.com/yungbote/shopcore-backend/internal/observability"
)

type observabilityHooks struct {
	metrics *observability.Metrics
}

// NewObservabilityHooks creates projection hooks backed by observability metrics.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return &observabilityHooks{metrics: metrics}
}

func (h *observabilityHooks) ObserveProjection(strategy string, queries int, dur time.Duration) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.ObserveProjection(strings.TrimSpace(strategy), queries, dur)
}
