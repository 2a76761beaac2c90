package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrVerifyDeliveryCommandIsNotConstructed = errors.New(
		"VerifyDeliveryCommand must be created via NewVerifyDeliveryCommand constructor",
	)
	ErrPinIsRequired      = errors.New("pin is required")
	ErrVerifierIsRequired = errors.New("verifiedBy is required")
)

// VerifyDeliveryCommand represents a proof-of-delivery attempt: the recipient
// presents the PIN issued when the shipment was planned.
type VerifyDeliveryCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	pin        string
	verifiedBy string

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryCommand creates a proof-of-delivery command.
func NewVerifyDeliveryCommand(shipmentID kernel.UUID, pin string,
	verifiedBy string) (VerifyDeliveryCommand, error) {
	verifyCommand := VerifyDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		verifyCommand.setShipmentID(shipmentID),
		verifyCommand.setPin(pin),
		verifyCommand.setVerifiedBy(verifiedBy),
	); err != nil {
		return VerifyDeliveryCommand{}, err
	}

	return verifyCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryCommandIsNotConstructed)
}

// ShipmentID returns the shipment being delivered.
func (c VerifyDeliveryCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Pin returns the PIN the recipient presented.
func (c VerifyDeliveryCommand) Pin() string {
	return c.pin
}

// VerifiedBy returns who confirmed the delivery.
func (c VerifyDeliveryCommand) VerifiedBy() string {
	return c.verifiedBy
}

func (c *VerifyDeliveryCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *VerifyDeliveryCommand) setPin(pin string) error {
	if pin == "" {
		return ErrPinIsRequired
	}

	c.pin = pin
	return nil
}

func (c *VerifyDeliveryCommand) setVerifiedBy(verifiedBy string) error {
	if verifiedBy == "" {
		return ErrVerifierIsRequired
	}

	c.verifiedBy = verifiedBy
	return nil
}
