package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/guard"
)

var (
	ErrAdvanceShipmentCommandIsNotConstructed = errors.New(
		"AdvanceShipmentCommand must be created via NewAdvanceShipmentCommand constructor",
	)
)

// AdvanceShipmentCommand represents a carrier event moving a shipment one
// stage forward in its pipeline.
//
// Example:
//
//	cmd, err := NewAdvanceShipmentCommand(shipmentID, shipment.StageInTransit)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewAdvanceShipmentCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // transition rejected or shipment not found
//	}
type AdvanceShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	to         shipment.Stage

	guard guard.ConstructorGuard
}

// NewAdvanceShipmentCommand creates a command to advance a shipment to the
// given stage. The target stage must be a valid stage; whether the move is
// allowed from the current stage is decided by the aggregate.
func NewAdvanceShipmentCommand(shipmentID kernel.UUID, to shipment.Stage) (AdvanceShipmentCommand, error) {
	advanceCommand := AdvanceShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		advanceCommand.setShipmentID(shipmentID),
		advanceCommand.setTo(to),
	); err != nil {
		return AdvanceShipmentCommand{}, err
	}

	return advanceCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to advance.
func (c AdvanceShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// To returns the target stage.
func (c AdvanceShipmentCommand) To() shipment.Stage {
	return c.to
}

func (c *AdvanceShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *AdvanceShipmentCommand) setTo(to shipment.Stage) error {
	if err := to.Validate(); err != nil {
		return err
	}

	c.to = to
	return nil
}
