// Package eventlog publishes domain events to the structured log. It is the
// default event outlet: every capacity change and committed plan lands in
// the log stream, where downstream tooling can pick it up.
package eventlog

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/services/capacityledger"
	"logistics/internal/core/ports"
)

// SlogPublisher writes domain events as structured log records. It satisfies
// both the event publisher port and the capacity ledger sink, so one instance
// covers both wiring points.
type SlogPublisher struct {
	log *slog.Logger
}

// NewSlogPublisher creates a publisher over the given logger.
// A nil logger falls back to the default one.
func NewSlogPublisher(log *slog.Logger) *SlogPublisher {
	if log == nil {
		log = slog.Default()
	}
	return &SlogPublisher{log: log}
}

// PublishCapacityChanged logs a ledger occupancy change.
func (p *SlogPublisher) PublishCapacityChanged(ctx context.Context,
	event capacityledger.CapacityChanged) {
	p.log.InfoContext(ctx, "capacity changed",
		"resource", event.Resource.String(),
		"delta", event.Delta,
		"occupied", event.Occupied,
		"max", event.Max,
	)
}

// PublishPlanCommitted logs a committed logistics plan summary.
func (p *SlogPublisher) PublishPlanCommitted(ctx context.Context,
	event ports.PlanCommitted) {
	stops := 0
	for _, route := range event.Routes {
		stops += len(route.Stops)
	}

	p.log.InfoContext(ctx, "plan committed",
		"plan_id", event.PlanID.String(),
		"depart_at", event.DepartAt,
		"routes", len(event.Routes),
		"stops", stops,
		"unassigned_orders", event.UnassignedOrders,
	)
}
