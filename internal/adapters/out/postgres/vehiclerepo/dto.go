// Package vehiclerepo persists fleet vehicle aggregates with GORM.
package vehiclerepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO represents the database structure for persisting vehicle aggregates.
type VehicleDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255)"`
	WarehouseID  uuid.UUID `gorm:"type:uuid;index"`
	Capacity     int
	Load         int
	Location     GeoLocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Availability TimeWindowDTO  `gorm:"embedded;embeddedPrefix:availability_"`
}

// TableName specifies the database table name for vehicle entities.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// GeoLocationDTO represents embedded WGS84 coordinates within the vehicle table.
type GeoLocationDTO struct {
	Lat float64
	Lng float64
}

// TimeWindowDTO represents the embedded availability window within the vehicle table.
type TimeWindowDTO struct {
	Earliest time.Time
	Latest   time.Time
}

func fromDomain(aggregate *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		WarehouseID: aggregate.WarehouseID().Bytes(),
		Capacity:    aggregate.Capacity(),
		Load:        aggregate.CurrentLoad(),
		Location: GeoLocationDTO{
			Lat: aggregate.Location().Lat(),
			Lng: aggregate.Location().Lng(),
		},
		Availability: TimeWindowDTO{
			Earliest: aggregate.Availability().Earliest(),
			Latest:   aggregate.Availability().Latest(),
		},
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoLocation(dto.Location.Lat, dto.Location.Lng)
	if err != nil {
		return nil, err
	}

	availability, err := kernel.NewTimeWindow(dto.Availability.Earliest, dto.Availability.Latest)
	if err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(id, dto.Name, warehouseID, dto.Capacity, dto.Load,
		location, availability)
}
