package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrWeightIsInvalid = errors.New("weight must be greater than 0")
)

// CreateOrderCommand represents a request to accept a new delivery order.
// Encapsulates the origin warehouse, destination, weight and the delivery
// window the customer agreed to.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, warehouseID, destination, 25, window)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	warehouseID kernel.UUID
	destination kernel.GeoLocation
	weight      int
	window      kernel.TimeWindow

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to accept a new delivery order.
// Validates identifiers, destination, weight and window; returns an error
// if any validation fails.
func NewCreateOrderCommand(orderID kernel.UUID, warehouseID kernel.UUID,
	destination kernel.GeoLocation, weight int, window kernel.TimeWindow) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setWarehouseID(warehouseID),
		orderCommand.setDestination(destination),
		orderCommand.setWeight(weight),
		orderCommand.setWindow(window),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// WarehouseID returns the origin warehouse identifier.
func (c CreateOrderCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// Destination returns the delivery location.
func (c CreateOrderCommand) Destination() kernel.GeoLocation {
	return c.destination
}

// Weight returns the order weight in capacity units.
func (c CreateOrderCommand) Weight() int {
	return c.weight
}

// Window returns the delivery time window.
func (c CreateOrderCommand) Window() kernel.TimeWindow {
	return c.window
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *CreateOrderCommand) setDestination(destination kernel.GeoLocation) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}

func (c *CreateOrderCommand) setWeight(weight int) error {
	if weight <= 0 {
		return ErrWeightIsInvalid
	}

	c.weight = weight
	return nil
}

func (c *CreateOrderCommand) setWindow(window kernel.TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}

	c.window = window
	return nil
}
