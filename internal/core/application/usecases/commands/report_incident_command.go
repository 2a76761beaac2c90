package commands

import (
	"errors"

	"logistics/internal/core/domain/model/incident"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrReportIncidentCommandIsNotConstructed = errors.New(
		"ReportIncidentCommand must be created via NewReportIncidentCommand constructor",
	)
	ErrDescriptionIsRequired = errors.New("description is required")
)

// ReportIncidentCommand represents a driver or dispatcher reporting a
// transport disruption against a shipment.
type ReportIncidentCommand struct { //nolint:recvcheck //using for validation
	incidentID   kernel.UUID
	shipmentID   kernel.UUID
	incidentType incident.Type
	description  string

	guard guard.ConstructorGuard
}

// NewReportIncidentCommand creates an incident report command.
func NewReportIncidentCommand(incidentID kernel.UUID, shipmentID kernel.UUID,
	incidentType incident.Type, description string) (ReportIncidentCommand, error) {
	reportCommand := ReportIncidentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		reportCommand.setIncidentID(incidentID),
		reportCommand.setShipmentID(shipmentID),
		reportCommand.setIncidentType(incidentType),
		reportCommand.setDescription(description),
	); err != nil {
		return ReportIncidentCommand{}, err
	}

	return reportCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportIncidentCommand) Validate() error {
	return c.guard.Validate(ErrReportIncidentCommandIsNotConstructed)
}

// IncidentID returns the identifier for the new incident.
func (c ReportIncidentCommand) IncidentID() kernel.UUID {
	return c.incidentID
}

// ShipmentID returns the shipment the incident is reported against.
func (c ReportIncidentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// IncidentType returns the incident classification.
func (c ReportIncidentCommand) IncidentType() incident.Type {
	return c.incidentType
}

// Description returns the reporter's account of the disruption.
func (c ReportIncidentCommand) Description() string {
	return c.description
}

func (c *ReportIncidentCommand) setIncidentID(incidentID kernel.UUID) error {
	if err := incidentID.Validate(); err != nil {
		return err
	}

	c.incidentID = incidentID
	return nil
}

func (c *ReportIncidentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *ReportIncidentCommand) setIncidentType(incidentType incident.Type) error {
	if err := incidentType.Validate(); err != nil {
		return err
	}

	c.incidentType = incidentType
	return nil
}

func (c *ReportIncidentCommand) setDescription(description string) error {
	if description == "" {
		return ErrDescriptionIsRequired
	}

	c.description = description
	return nil
}
