package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrRegisterVehicleCommandIsNotConstructed = errors.New(
		"RegisterVehicleCommand must be created via NewRegisterVehicleCommand constructor",
	)
	ErrNameIsRequired    = errors.New("name is required")
	ErrCapacityIsInvalid = errors.New("capacity must be greater than 0")
)

// RegisterVehicleCommand represents a request to add a vehicle to the fleet.
type RegisterVehicleCommand struct { //nolint:recvcheck //using for validation
	vehicleID    kernel.UUID
	name         string
	warehouseID  kernel.UUID
	capacity     int
	location     kernel.GeoLocation
	availability kernel.TimeWindow

	guard guard.ConstructorGuard
}

// NewRegisterVehicleCommand creates a command to register a fleet vehicle.
func NewRegisterVehicleCommand(vehicleID kernel.UUID, name string, warehouseID kernel.UUID,
	capacity int, location kernel.GeoLocation,
	availability kernel.TimeWindow) (RegisterVehicleCommand, error) {
	vehicleCommand := RegisterVehicleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		vehicleCommand.setVehicleID(vehicleID),
		vehicleCommand.setName(name),
		vehicleCommand.setWarehouseID(warehouseID),
		vehicleCommand.setCapacity(capacity),
		vehicleCommand.setLocation(location),
		vehicleCommand.setAvailability(availability),
	); err != nil {
		return RegisterVehicleCommand{}, err
	}

	return vehicleCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterVehicleCommand) Validate() error {
	return c.guard.Validate(ErrRegisterVehicleCommandIsNotConstructed)
}

// VehicleID returns the unique identifier for the vehicle.
func (c RegisterVehicleCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// Name returns the vehicle's fleet designation.
func (c RegisterVehicleCommand) Name() string {
	return c.name
}

// WarehouseID returns the home warehouse identifier.
func (c RegisterVehicleCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// Capacity returns the maximum weight the vehicle can carry.
func (c RegisterVehicleCommand) Capacity() int {
	return c.capacity
}

// Location returns the vehicle's current position.
func (c RegisterVehicleCommand) Location() kernel.GeoLocation {
	return c.location
}

// Availability returns the vehicle's dispatch window.
func (c RegisterVehicleCommand) Availability() kernel.TimeWindow {
	return c.availability
}

func (c *RegisterVehicleCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}

	c.vehicleID = vehicleID
	return nil
}

func (c *RegisterVehicleCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterVehicleCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *RegisterVehicleCommand) setCapacity(capacity int) error {
	if capacity <= 0 {
		return ErrCapacityIsInvalid
	}

	c.capacity = capacity
	return nil
}

func (c *RegisterVehicleCommand) setLocation(location kernel.GeoLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *RegisterVehicleCommand) setAvailability(availability kernel.TimeWindow) error {
	if err := availability.Validate(); err != nil {
		return err
	}

	c.availability = availability
	return nil
}
