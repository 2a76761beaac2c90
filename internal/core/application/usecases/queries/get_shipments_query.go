package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrGetShipmentsQueryIsNotConstructed = errors.New(
		"GetShipmentsQuery must be created via NewGetShipmentsQuery or NewGetActiveShipmentsQuery",
	)
)

// GetShipmentsQuery retrieves shipments for tracking views. The active-only
// variant excludes shipments that reached a terminal stage (Delivered or
// Failed), which is what carrier dashboards poll for.
//
// Example:
//
//	query := NewGetActiveShipmentsQuery()
//	handler := NewGetShipmentsQueryHandler(db)
//
//	shipments, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get shipments: %w", err)
//	}
type GetShipmentsQuery struct {
	activeOnly bool

	guard guard.ConstructorGuard
}

// NewGetShipmentsQuery creates a query to retrieve every shipment.
func NewGetShipmentsQuery() GetShipmentsQuery {
	return GetShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// NewGetActiveShipmentsQuery creates a query restricted to shipments still
// moving toward the recipient.
func NewGetActiveShipmentsQuery() GetShipmentsQuery {
	return GetShipmentsQuery{activeOnly: true, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through a constructor.
func (q GetShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentsQueryIsNotConstructed)
}

// ActiveOnly reports whether terminal shipments are excluded.
func (q GetShipmentsQuery) ActiveOnly() bool {
	return q.activeOnly
}

// GetShipmentsQueryResponse represents one shipment in a tracking view.
// The delivery PIN is deliberately absent: it travels to the recipient
// out of band, never through list endpoints.
type GetShipmentsQueryResponse struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	VehicleID     kernel.UUID
	Stage         string
	PlacedAt      time.Time
	FailureReason string
	VerifiedBy    string
}
