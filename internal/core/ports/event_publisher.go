package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services/capacityledger"
	"logistics/internal/core/domain/services/routing"
)

// PlannedRoute is the per-vehicle slice of a committed plan.
type PlannedRoute struct {
	VehicleID       kernel.UUID
	Stops           []routing.Stop
	TotalDistanceKm float64
	Degraded        bool
}

// PlanCommitted is published once per successful planning cycle, after the
// unit of work commits.
type PlanCommitted struct {
	PlanID           kernel.UUID
	DepartAt         time.Time
	Routes           []PlannedRoute
	UnassignedOrders int
}

// EventPublisher pushes domain events to the outside world. Implementations
// must not fail the calling operation; delivery problems are theirs to log.
type EventPublisher interface {
	// PublishCapacityChanged reports a ledger occupancy change.
	PublishCapacityChanged(ctx context.Context, event capacityledger.CapacityChanged)

	// PublishPlanCommitted reports a committed logistics plan.
	PublishPlanCommitted(ctx context.Context, event PlanCommitted)
}
