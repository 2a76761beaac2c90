package incident

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var (
	// ErrIncidentIsNotConstructed is returned when an Incident instance was not
	// created through the NewIncident factory method.
	ErrIncidentIsNotConstructed = errors.New("Incident must be created via NewIncident constructor")

	// ErrAlreadyResolved is returned when resolving an incident twice.
	ErrAlreadyResolved = errors.New("incident is already resolved")
)

// Type classifies what went wrong with a shipment in transit.
type Type string

const (
	TypeBreakdown    Type = "breakdown"
	TypePuncture     Type = "puncture"
	TypeAccident     Type = "accident"
	TypeWeatherDelay Type = "weather_delay"
	TypeOther        Type = "other"
)

// Validate checks if the incident type is one of the known values.
func (t Type) Validate() error {
	switch t {
	case TypeBreakdown, TypePuncture, TypeAccident, TypeWeatherDelay, TypeOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("incident type is invalid",
			fmt.Errorf("%q is not a known incident type", string(t)))
	}
}

// Severity grades how badly an incident disrupts a shipment.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Status tracks whether an incident still needs attention.
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// assessment bundles the dispatcher guidance derived from an incident type.
type assessment struct {
	severity      Severity
	delayMinutes  int
	recoverySteps []string
}

// getAssessments returns the per-type severity, expected delay and recovery
// playbook. The table is fixed so two reports of the same incident type always
// produce the same guidance.
func getAssessments() map[Type]assessment {
	return map[Type]assessment{
		TypeBreakdown: {
			severity:     SeverityHigh,
			delayMinutes: 180,
			recoverySteps: []string{
				"Dispatch roadside mechanic to the vehicle's last known position",
				"Reassign undelivered shipments to the nearest available vehicle",
				"Notify affected customers of the revised delivery window",
			},
		},
		TypePuncture: {
			severity:     SeverityLow,
			delayMinutes: 45,
			recoverySteps: []string{
				"Driver swaps to the spare wheel",
				"Resume route and update the estimated arrival times",
			},
		},
		TypeAccident: {
			severity:     SeverityHigh,
			delayMinutes: 240,
			recoverySteps: []string{
				"Confirm driver safety and involve emergency services if needed",
				"Transfer cargo to a replacement vehicle",
				"File the insurance report and take the vehicle out of rotation",
			},
		},
		TypeWeatherDelay: {
			severity:     SeverityMedium,
			delayMinutes: 90,
			recoverySteps: []string{
				"Hold departure until conditions clear",
				"Re-run planning with the adjusted travel time factors",
			},
		},
		TypeOther: {
			severity:     SeverityMedium,
			delayMinutes: 60,
			recoverySteps: []string{
				"Escalate to the dispatch supervisor for manual triage",
			},
		},
	}
}

// Incident records a disruption reported against a shipment in transit.
// Severity, expected delay and recovery steps are derived from the incident
// type at reporting time so dispatchers get consistent guidance.
type Incident struct {
	// id is the unique identifier for the incident
	id kernel.UUID

	// shipmentID is the shipment the incident was reported against
	shipmentID kernel.UUID

	// vehicleID is the vehicle involved
	vehicleID kernel.UUID

	// incidentType classifies the disruption
	incidentType Type

	// description is the reporter's free-form account
	description string

	// severity grades the disruption, derived from the type
	severity Severity

	// delayMinutes is the expected delay, derived from the type
	delayMinutes int

	// recoverySteps is the dispatcher playbook, derived from the type
	recoverySteps []string

	// status is open until a dispatcher resolves the incident
	status Status

	// reportedAt is when the incident was reported
	reportedAt time.Time

	// resolvedAt is when the incident was resolved (zero while open)
	resolvedAt time.Time

	// isConstructed ensures the incident was created via a constructor
	isConstructed bool
}

// NewIncident reports a new incident and derives its severity, expected delay
// and recovery steps from the incident type.
func NewIncident(id kernel.UUID, shipmentID kernel.UUID, vehicleID kernel.UUID,
	incidentType Type, description string, reportedAt time.Time) (*Incident, error) {
	if description == "" {
		return nil, errs.NewValueIsRequiredError("description")
	}
	if reportedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("reportedAt")
	}
	if err := incidentType.Validate(); err != nil {
		return nil, err
	}

	incident := &Incident{
		incidentType:  incidentType,
		description:   description,
		status:        StatusOpen,
		reportedAt:    reportedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		incident.setID(id),
		incident.setShipmentID(shipmentID),
		incident.setVehicleID(vehicleID),
	); err != nil {
		return nil, err
	}

	guidance := getAssessments()[incidentType]
	incident.severity = guidance.severity
	incident.delayMinutes = guidance.delayMinutes
	incident.recoverySteps = guidance.recoverySteps

	return incident, nil
}

// RestoreIncident reconstructs an Incident from persisted state.
func RestoreIncident(id kernel.UUID, shipmentID kernel.UUID, vehicleID kernel.UUID,
	incidentType Type, description string, severity Severity, delayMinutes int,
	recoverySteps []string, status Status, reportedAt time.Time,
	resolvedAt time.Time) (*Incident, error) {
	if err := incidentType.Validate(); err != nil {
		return nil, err
	}
	if status != StatusOpen && status != StatusResolved {
		return nil, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a known incident status", string(status)))
	}

	incident := &Incident{
		incidentType:  incidentType,
		description:   description,
		severity:      severity,
		delayMinutes:  delayMinutes,
		recoverySteps: append([]string(nil), recoverySteps...),
		status:        status,
		reportedAt:    reportedAt,
		resolvedAt:    resolvedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		incident.setID(id),
		incident.setShipmentID(shipmentID),
		incident.setVehicleID(vehicleID),
	); err != nil {
		return nil, err
	}

	return incident, nil
}

// Validate ensures the Incident instance was properly constructed.
func (i *Incident) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrIncidentIsNotConstructed
	}

	return nil
}

// ID returns the incident's unique identifier.
func (i *Incident) ID() kernel.UUID {
	return i.id
}

// ShipmentID returns the shipment the incident was reported against.
func (i *Incident) ShipmentID() kernel.UUID {
	return i.shipmentID
}

// VehicleID returns the vehicle involved in the incident.
func (i *Incident) VehicleID() kernel.UUID {
	return i.vehicleID
}

// IncidentType returns the incident classification.
func (i *Incident) IncidentType() Type {
	return i.incidentType
}

// Description returns the reporter's free-form account.
func (i *Incident) Description() string {
	return i.description
}

// Severity returns the derived severity grade.
func (i *Incident) Severity() Severity {
	return i.severity
}

// DelayMinutes returns the expected delay in minutes.
func (i *Incident) DelayMinutes() int {
	return i.delayMinutes
}

// RecoverySteps returns the dispatcher playbook for this incident.
func (i *Incident) RecoverySteps() []string {
	return append([]string(nil), i.recoverySteps...)
}

// Status returns whether the incident is still open.
func (i *Incident) Status() Status {
	return i.status
}

// ReportedAt returns when the incident was reported.
func (i *Incident) ReportedAt() time.Time {
	return i.reportedAt
}

// ResolvedAt returns when the incident was resolved. Zero while open.
func (i *Incident) ResolvedAt() time.Time {
	return i.resolvedAt
}

// Resolve closes the incident. Resolving an already resolved incident
// returns ErrAlreadyResolved.
func (i *Incident) Resolve(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if i.status == StatusResolved {
		return ErrAlreadyResolved
	}

	i.status = StatusResolved
	i.resolvedAt = at
	return nil
}

// setID validates and sets the incident's unique identifier.
func (i *Incident) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

// setShipmentID validates and sets the affected shipment's identifier.
func (i *Incident) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	i.shipmentID = shipmentID
	return nil
}

// setVehicleID validates and sets the involved vehicle's identifier.
func (i *Incident) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	i.vehicleID = vehicleID
	return nil
}
