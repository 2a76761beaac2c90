package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services/capacityledger"
)

// VerifyDeliveryCommandHandler completes deliveries on successful PIN
// verification. Success moves the shipment to Delivered, completes the
// order and frees the vehicle's load, both on the aggregate and in the
// capacity ledger.
type VerifyDeliveryCommandHandler struct {
	uowFactory ShipmentUoWFactory
	ledger     *capacityledger.Ledger
	now        func() time.Time
}

// NewVerifyDeliveryCommandHandler creates a handler for proof-of-delivery.
func NewVerifyDeliveryCommandHandler(uowFactory ShipmentUoWFactory,
	ledger *capacityledger.Ledger) VerifyDeliveryCommandHandler {
	return VerifyDeliveryCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		now:        time.Now,
	}
}

// Handle processes the proof-of-delivery command.
//
// A wrong PIN surfaces shipment.ErrVerificationFailed with the shipment
// unchanged, so the recipient may retry. On success the order is marked
// Delivered and the order's weight is unloaded from the vehicle.
func (h *VerifyDeliveryCommandHandler) Handle(ctx context.Context, cmd VerifyDeliveryCommand) error {
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

	if err = aggregate.VerifyDelivery(cmd.Pin(), cmd.VerifiedBy(), h.now()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	carried, err := uow.OrderRepository().Get(ctx, aggregate.OrderID())
	if err != nil {
		return err
	}

	if err = carried.MarkDelivered(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, carried); err != nil {
		return err
	}

	carrier, err := uow.VehicleRepository().Get(ctx, aggregate.VehicleID())
	if err != nil {
		return err
	}

	if err = carrier.Unload(carried.Weight()); err != nil {
		return err
	}

	if err = uow.VehicleRepository().Update(ctx, carrier); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.releaseLedger(ctx, carrier.ID(), carried.Weight())
	return nil
}

// releaseLedger mirrors the unload in the capacity ledger. The ledger is
// rebuilt from persisted aggregates at the start of every planning cycle,
// so a vehicle the ledger has not seen yet is not an error here.
func (h *VerifyDeliveryCommandHandler) releaseLedger(ctx context.Context,
	vehicleID kernel.UUID, weight int) {
	if h.ledger == nil {
		return
	}

	resource := capacityledger.ResourceID{Kind: capacityledger.KindVehicle, ID: vehicleID}
	if !h.ledger.Registered(resource) {
		return
	}

	// Best effort: the durable unload already happened in the transaction.
	_ = h.ledger.Release(ctx, resource, weight)
}
