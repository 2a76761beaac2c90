// Package incidentrepo persists incident aggregates with GORM.
package incidentrepo

import (
	"strings"
	"time"

	"logistics/internal/core/domain/model/incident"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// recoveryStepSeparator joins the recovery checklist into one text column.
// Steps come from a fixed assessment table and never contain newlines.
const recoveryStepSeparator = "\n"

// IncidentDTO represents the database structure for persisting incident aggregates.
type IncidentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID    uuid.UUID `gorm:"type:uuid;index"`
	VehicleID     uuid.UUID `gorm:"type:uuid;index"`
	IncidentType  string    `gorm:"type:varchar(32)"`
	Description   string    `gorm:"type:varchar(512)"`
	Severity      string    `gorm:"type:varchar(16)"`
	DelayMinutes  int
	RecoverySteps string `gorm:"type:text"`
	Status        string `gorm:"type:varchar(16);index"`
	ReportedAt    time.Time
	ResolvedAt    *time.Time
}

// TableName specifies the database table name for incident entities.
func (IncidentDTO) TableName() string {
	return "incidents"
}

func fromDomain(aggregate *incident.Incident) IncidentDTO {
	var resolvedAt *time.Time
	if at := aggregate.ResolvedAt(); !at.IsZero() {
		resolvedAt = &at
	}

	return IncidentDTO{
		ID:            aggregate.ID().Bytes(),
		ShipmentID:    aggregate.ShipmentID().Bytes(),
		VehicleID:     aggregate.VehicleID().Bytes(),
		IncidentType:  string(aggregate.IncidentType()),
		Description:   aggregate.Description(),
		Severity:      string(aggregate.Severity()),
		DelayMinutes:  aggregate.DelayMinutes(),
		RecoverySteps: strings.Join(aggregate.RecoverySteps(), recoveryStepSeparator),
		Status:        string(aggregate.Status()),
		ReportedAt:    aggregate.ReportedAt(),
		ResolvedAt:    resolvedAt,
	}
}

func toDomain(dto IncidentDTO) (*incident.Incident, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	var recoverySteps []string
	if dto.RecoverySteps != "" {
		recoverySteps = strings.Split(dto.RecoverySteps, recoveryStepSeparator)
	}

	var resolvedAt time.Time
	if dto.ResolvedAt != nil {
		resolvedAt = *dto.ResolvedAt
	}

	return incident.RestoreIncident(id, shipmentID, vehicleID,
		incident.Type(dto.IncidentType), dto.Description, incident.Severity(dto.Severity),
		dto.DelayMinutes, recoverySteps, incident.Status(dto.Status),
		dto.ReportedAt, resolvedAt)
}
