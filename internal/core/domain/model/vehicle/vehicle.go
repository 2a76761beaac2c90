package vehicle

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var (
	// ErrVehicleIsNotConstructed is returned when a Vehicle instance was not created
	// through the NewVehicle factory method.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

	// ErrInsufficientCapacity is returned when a load would push the vehicle
	// over its capacity.
	ErrInsufficientCapacity = errors.New("vehicle has insufficient remaining capacity")

	// ErrNotReserved is returned when an unload asks for more weight than the
	// vehicle is currently carrying.
	ErrNotReserved = errors.New("cannot unload more than the vehicle is carrying")
)

// Vehicle represents a delivery vehicle in the fleet. It is an aggregate root
// that tracks the vehicle's position, availability and current load.
//
// Vehicle follows these invariants:
//   - Capacity must be positive
//   - 0 <= load <= capacity at all times
//   - Load and Unload either fully apply or leave the state unchanged
//   - Can only be created through NewVehicle or RestoreVehicle
type Vehicle struct {
	// id is the unique identifier for the vehicle
	id kernel.UUID

	// name is a human-readable fleet designation, e.g. "VAN-07"
	name string

	// warehouseID is the home warehouse the vehicle dispatches from
	warehouseID kernel.UUID

	// capacity is the maximum total weight the vehicle can carry
	capacity int

	// load is the weight currently reserved on the vehicle
	load int

	// location is the vehicle's current position
	location kernel.GeoLocation

	// availability is the window during which the vehicle can be dispatched
	availability kernel.TimeWindow

	// isConstructed ensures the vehicle was created via a constructor
	isConstructed bool
}

// NewVehicle creates a new Vehicle with zero load.
//
// Parameters:
//   - id: Unique identifier for the vehicle
//   - name: Fleet designation (must be non-empty)
//   - warehouseID: Home warehouse the vehicle dispatches from
//   - capacity: Maximum carryable weight (must be positive)
//   - location: Current position of the vehicle
//   - availability: Dispatch window for the vehicle
//
// Returns the created vehicle, or a validation error if any parameter
// is invalid. Errors for multiple invalid parameters are joined.
func NewVehicle(id kernel.UUID, name string, warehouseID kernel.UUID, capacity int,
	location kernel.GeoLocation, availability kernel.TimeWindow) (*Vehicle, error) {
	vehicle := &Vehicle{
		isConstructed: true,
	}

	if err := errors.Join(
		vehicle.setID(id),
		vehicle.setName(name),
		vehicle.setWarehouseID(warehouseID),
		vehicle.setCapacity(capacity),
		vehicle.setLocation(location),
		vehicle.setAvailability(availability),
	); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// RestoreVehicle reconstructs a Vehicle from persisted state, including its
// current load. The load must respect 0 <= load <= capacity.
func RestoreVehicle(id kernel.UUID, name string, warehouseID kernel.UUID, capacity int,
	load int, location kernel.GeoLocation, availability kernel.TimeWindow) (*Vehicle, error) {
	vehicle := &Vehicle{
		isConstructed: true,
	}

	if err := errors.Join(
		vehicle.setID(id),
		vehicle.setName(name),
		vehicle.setWarehouseID(warehouseID),
		vehicle.setCapacity(capacity),
		vehicle.setLocation(location),
		vehicle.setAvailability(availability),
	); err != nil {
		return nil, err
	}

	if load < 0 || load > vehicle.capacity {
		return nil, errs.NewValueIsOutOfRangeError("load", load, 0, vehicle.capacity)
	}
	vehicle.load = load

	return vehicle, nil
}

// Validate ensures the Vehicle instance was properly constructed.
func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}

	return nil
}

// IsEqual compares two vehicles by their unique identifiers.
func (v *Vehicle) IsEqual(other *Vehicle) bool {
	return other != nil && v.id.IsEqual(other.id)
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// Name returns the vehicle's fleet designation.
func (v *Vehicle) Name() string {
	return v.name
}

// WarehouseID returns the home warehouse identifier.
func (v *Vehicle) WarehouseID() kernel.UUID {
	return v.warehouseID
}

// Capacity returns the maximum total weight the vehicle can carry.
func (v *Vehicle) Capacity() int {
	return v.capacity
}

// CurrentLoad returns the weight currently reserved on the vehicle.
func (v *Vehicle) CurrentLoad() int {
	return v.load
}

// Location returns the vehicle's current position.
func (v *Vehicle) Location() kernel.GeoLocation {
	return v.location
}

// Availability returns the window during which the vehicle can be dispatched.
func (v *Vehicle) Availability() kernel.TimeWindow {
	return v.availability
}

// RemainingCapacity returns how much more weight the vehicle can take.
func (v *Vehicle) RemainingCapacity() int {
	return v.capacity - v.load
}

// CanCarry reports whether the vehicle can take the given additional weight.
// Non-positive weights are never carryable.
func (v *Vehicle) CanCarry(weight int) bool {
	return weight > 0 && v.load+weight <= v.capacity
}

// Load reserves the given weight on the vehicle.
//
// Returns ErrInsufficientCapacity if the weight would exceed capacity, or a
// validation error for non-positive weight. On any error the current load
// is unchanged.
func (v *Vehicle) Load(weight int) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%d is not greater than 0", weight))
	}
	if v.load+weight > v.capacity {
		return fmt.Errorf("%w: load %d + %d exceeds capacity %d",
			ErrInsufficientCapacity, v.load, weight, v.capacity)
	}

	v.load += weight
	return nil
}

// Unload releases the given weight from the vehicle.
//
// Returns ErrNotReserved if the weight exceeds the current load, or a
// validation error for non-positive weight. On any error the current load
// is unchanged.
func (v *Vehicle) Unload(weight int) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%d is not greater than 0", weight))
	}
	if weight > v.load {
		return fmt.Errorf("%w: carrying %d, asked to unload %d",
			ErrNotReserved, v.load, weight)
	}

	v.load -= weight
	return nil
}

// MoveTo updates the vehicle's current position.
func (v *Vehicle) MoveTo(location kernel.GeoLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}

	v.location = location
	return nil
}

// setID validates and sets the vehicle's unique identifier.
func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

// setName validates and sets the vehicle's name.
func (v *Vehicle) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	v.name = name
	return nil
}

// setWarehouseID validates and sets the home warehouse identifier.
func (v *Vehicle) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	v.warehouseID = warehouseID
	return nil
}

// setCapacity validates and sets the vehicle's capacity.
func (v *Vehicle) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity is invalid",
			fmt.Errorf("%d is not greater than 0", capacity))
	}
	v.capacity = capacity
	return nil
}

// setLocation validates and sets the vehicle's position.
func (v *Vehicle) setLocation(location kernel.GeoLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}
	v.location = location
	return nil
}

// setAvailability validates and sets the dispatch window.
func (v *Vehicle) setAvailability(availability kernel.TimeWindow) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	v.availability = availability
	return nil
}
