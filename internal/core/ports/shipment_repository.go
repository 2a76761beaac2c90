package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAll retrieves every shipment.
	GetAll(ctx context.Context) ([]*shipment.Shipment, error)

	// GetAllInStages retrieves shipments currently in any of the given stages.
	// Used by the active-shipments view and carrier event handling.
	GetAllInStages(ctx context.Context, stages ...shipment.Stage) ([]*shipment.Shipment, error)
}
