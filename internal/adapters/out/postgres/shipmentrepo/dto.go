// Package shipmentrepo persists shipment aggregates with GORM.
//
// The stage timeline is flattened into one nullable timestamp column per
// stage, which keeps the table queryable without a join and maps cleanly
// onto the aggregate's per-stage times.
package shipmentrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
type ShipmentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	VehicleID uuid.UUID `gorm:"type:uuid;index"`
	Pin       string    `gorm:"type:varchar(8)"`
	Stage     int       `gorm:"index"`

	PlacedAt         time.Time
	ConfirmedAt      *time.Time
	InTransitAt      *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	FailedAt         *time.Time

	FailureReason string `gorm:"type:varchar(512)"`
	VerifiedBy    string `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		VehicleID:     aggregate.VehicleID().Bytes(),
		Pin:           aggregate.PIN(),
		Stage:         int(aggregate.Stage()),
		FailureReason: aggregate.FailureReason(),
		VerifiedBy:    aggregate.VerifiedBy(),
	}

	if at, ok := aggregate.StageAt(shipment.StagePlaced); ok {
		dto.PlacedAt = at
	}
	dto.ConfirmedAt = stageTime(aggregate, shipment.StageConfirmed)
	dto.InTransitAt = stageTime(aggregate, shipment.StageInTransit)
	dto.OutForDeliveryAt = stageTime(aggregate, shipment.StageOutForDelivery)
	dto.DeliveredAt = stageTime(aggregate, shipment.StageDelivered)
	dto.FailedAt = stageTime(aggregate, shipment.StageFailed)

	return dto
}

func stageTime(aggregate *shipment.Shipment, stage shipment.Stage) *time.Time {
	if at, ok := aggregate.StageAt(stage); ok {
		return &at
	}
	return nil
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	stageTimes := map[shipment.Stage]time.Time{
		shipment.StagePlaced: dto.PlacedAt,
	}
	restoreStageTime(stageTimes, shipment.StageConfirmed, dto.ConfirmedAt)
	restoreStageTime(stageTimes, shipment.StageInTransit, dto.InTransitAt)
	restoreStageTime(stageTimes, shipment.StageOutForDelivery, dto.OutForDeliveryAt)
	restoreStageTime(stageTimes, shipment.StageDelivered, dto.DeliveredAt)
	restoreStageTime(stageTimes, shipment.StageFailed, dto.FailedAt)

	return shipment.RestoreShipment(id, orderID, vehicleID, dto.Pin,
		shipment.Stage(dto.Stage), stageTimes, dto.FailureReason, dto.VerifiedBy)
}

func restoreStageTime(times map[shipment.Stage]time.Time, stage shipment.Stage, at *time.Time) {
	if at != nil {
		times[stage] = *at
	}
}
