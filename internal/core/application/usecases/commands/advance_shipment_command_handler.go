package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/shipment"
)

// AdvanceShipmentCommandHandler applies carrier progress events to shipments.
// Moving a shipment to InTransit also flips its order to InTransit so both
// views of the delivery stay in step.
type AdvanceShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	now        func() time.Time
}

// NewAdvanceShipmentCommandHandler creates a handler for shipment progress events.
func NewAdvanceShipmentCommandHandler(uowFactory ShipmentUoWFactory) AdvanceShipmentCommandHandler {
	return AdvanceShipmentCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the advance command. The aggregate enforces strict
// stage adjacency; an illegal move leaves everything unchanged and the
// transaction rolled back.
func (h *AdvanceShipmentCommandHandler) Handle(ctx context.Context, cmd AdvanceShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = aggregate.Advance(cmd.To(), h.now()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if cmd.To() == shipment.StageInTransit {
		carried, orderErr := uow.OrderRepository().Get(ctx, aggregate.OrderID())
		if orderErr != nil {
			return orderErr
		}

		if orderErr = carried.MarkInTransit(); orderErr != nil {
			return orderErr
		}

		if orderErr = uow.OrderRepository().Update(ctx, carried); orderErr != nil {
			return orderErr
		}
	}

	return uow.Commit(ctx)
}
