package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/incident"
	"logistics/internal/core/domain/model/shipment"
)

// ReportIncidentCommandHandler records transport disruptions. The incident's
// severity and recovery plan come from the per-type assessment table; a high
// severity incident also fails the shipment and its order, since the cargo
// will not arrive through this shipment anymore.
type ReportIncidentCommandHandler struct {
	uowFactory IncidentUoWFactory
	now        func() time.Time
}

// NewReportIncidentCommandHandler creates a handler for incident reports.
func NewReportIncidentCommandHandler(uowFactory IncidentUoWFactory) ReportIncidentCommandHandler {
	return ReportIncidentCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the incident report and returns the created incident so
// callers can surface the recovery plan to the reporter.
func (h *ReportIncidentCommandHandler) Handle(ctx context.Context,
	cmd ReportIncidentCommand) (*incident.Incident, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	affected, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	reportedAt := h.now()
	reported, err := incident.NewIncident(cmd.IncidentID(), affected.ID(),
		affected.VehicleID(), cmd.IncidentType(), cmd.Description(), reportedAt)
	if err != nil {
		return nil, err
	}

	if err = uow.IncidentRepository().Add(ctx, reported); err != nil {
		return nil, err
	}

	if reported.Severity() == incident.SeverityHigh {
		if err = h.failDelivery(ctx, uow, affected, reported, reportedAt); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return reported, nil
}

// failDelivery marks the shipment and its order as failed for incidents the
// assessment grades high severity.
func (h *ReportIncidentCommandHandler) failDelivery(ctx context.Context, uow IncidentUoW,
	affected *shipment.Shipment, reported *incident.Incident, at time.Time) error {
	reason := fmt.Sprintf("%s: %s", reported.IncidentType(), reported.Description())

	if err := affected.Fail(reason, at); err != nil {
		return err
	}

	if err := uow.ShipmentRepository().Update(ctx, affected); err != nil {
		return err
	}

	carried, err := uow.OrderRepository().Get(ctx, affected.OrderID())
	if err != nil {
		return err
	}

	if err = carried.MarkFailed(); err != nil {
		return err
	}

	return uow.OrderRepository().Update(ctx, carried)
}
