package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrRegisterWarehouseCommandIsNotConstructed = errors.New(
		"RegisterWarehouseCommand must be created via NewRegisterWarehouseCommand constructor",
	)
	ErrMaxCapacityIsInvalid = errors.New("maxCapacity must be greater than 0")
)

// RegisterWarehouseCommand represents a request to register a storage facility.
type RegisterWarehouseCommand struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	name        string
	location    kernel.GeoLocation
	maxCapacity int

	guard guard.ConstructorGuard
}

// NewRegisterWarehouseCommand creates a command to register a warehouse.
func NewRegisterWarehouseCommand(warehouseID kernel.UUID, name string,
	location kernel.GeoLocation, maxCapacity int) (RegisterWarehouseCommand, error) {
	warehouseCommand := RegisterWarehouseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		warehouseCommand.setWarehouseID(warehouseID),
		warehouseCommand.setName(name),
		warehouseCommand.setLocation(location),
		warehouseCommand.setMaxCapacity(maxCapacity),
	); err != nil {
		return RegisterWarehouseCommand{}, err
	}

	return warehouseCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrRegisterWarehouseCommandIsNotConstructed)
}

// WarehouseID returns the unique identifier for the warehouse.
func (c RegisterWarehouseCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// Name returns the facility name.
func (c RegisterWarehouseCommand) Name() string {
	return c.name
}

// Location returns the warehouse position.
func (c RegisterWarehouseCommand) Location() kernel.GeoLocation {
	return c.location
}

// MaxCapacity returns the total storage capacity.
func (c RegisterWarehouseCommand) MaxCapacity() int {
	return c.maxCapacity
}

func (c *RegisterWarehouseCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *RegisterWarehouseCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterWarehouseCommand) setLocation(location kernel.GeoLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *RegisterWarehouseCommand) setMaxCapacity(maxCapacity int) error {
	if maxCapacity <= 0 {
		return ErrMaxCapacityIsInvalid
	}

	c.maxCapacity = maxCapacity
	return nil
}
