// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by status so the planner can pull the pending backlog cheaply, and
// by vehicle for tracking views.
type OrderDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID      `gorm:"type:uuid;index"`
	VehicleID   *uuid.UUID     `gorm:"type:uuid;index"`
	Destination GeoLocationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Weight      int
	Window      TimeWindowDTO `gorm:"embedded;embeddedPrefix:window_"`
	Status      int           `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoLocationDTO represents embedded WGS84 coordinates within the order table.
type GeoLocationDTO struct {
	Lat float64
	Lng float64
}

// TimeWindowDTO represents the embedded delivery window within the order table.
type TimeWindowDTO struct {
	Earliest time.Time
	Latest   time.Time
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var vehicleID *uuid.UUID
	if id := aggregate.Vehicle(); id != nil {
		raw := id.Bytes()
		vehicleID = &raw
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		WarehouseID: aggregate.WarehouseID().Bytes(),
		VehicleID:   vehicleID,
		Destination: GeoLocationDTO{
			Lat: aggregate.Destination().Lat(),
			Lng: aggregate.Destination().Lng(),
		},
		Weight: aggregate.Weight(),
		Window: TimeWindowDTO{
			Earliest: aggregate.Window().Earliest(),
			Latest:   aggregate.Window().Latest(),
		},
		Status: int(aggregate.Status()),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the aggregate with RestoreOrder so row corruption cannot
// produce invalid domain state.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	var vehicleID *kernel.UUID
	if dto.VehicleID != nil {
		vID, vehicleErr := kernel.UUIDFromBytes((*dto.VehicleID)[:])
		if vehicleErr != nil {
			return nil, vehicleErr
		}

		vehicleID = &vID
	}

	destination, err := kernel.NewGeoLocation(dto.Destination.Lat, dto.Destination.Lng)
	if err != nil {
		return nil, err
	}

	window, err := kernel.NewTimeWindow(dto.Window.Earliest, dto.Window.Latest)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, warehouseID, destination, dto.Weight, window,
		order.Status(dto.Status), vehicleID)
}
