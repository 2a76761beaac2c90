package warehouse

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var (
	// ErrWarehouseIsNotConstructed is returned when a Warehouse instance was not
	// created through the NewWarehouse factory method.
	ErrWarehouseIsNotConstructed = errors.New("Warehouse must be created via NewWarehouse constructor")

	// ErrInsufficientCapacity is returned when a reservation would push the
	// warehouse over its maximum capacity.
	ErrInsufficientCapacity = errors.New("warehouse has insufficient remaining capacity")

	// ErrNotReserved is returned when a release asks for more capacity than is
	// currently occupied.
	ErrNotReserved = errors.New("cannot release more than the warehouse holds")
)

// Warehouse represents a storage facility that orders ship from. It tracks
// occupied capacity so planning cycles cannot oversubscribe storage.
//
// Warehouse follows these invariants:
//   - Maximum capacity must be positive
//   - 0 <= occupied <= maxCapacity at all times
//   - Reserve and Release either fully apply or leave the state unchanged
//   - Can only be created through NewWarehouse or RestoreWarehouse
type Warehouse struct {
	// id is the unique identifier for the warehouse
	id kernel.UUID

	// name is a human-readable facility name
	name string

	// location is the warehouse's position
	location kernel.GeoLocation

	// maxCapacity is the total storage capacity
	maxCapacity int

	// occupied is the capacity currently reserved
	occupied int

	// isConstructed ensures the warehouse was created via a constructor
	isConstructed bool
}

// NewWarehouse creates a new Warehouse with nothing reserved.
//
// Returns the created warehouse, or a validation error if any parameter
// is invalid. Errors for multiple invalid parameters are joined.
func NewWarehouse(id kernel.UUID, name string, location kernel.GeoLocation,
	maxCapacity int) (*Warehouse, error) {
	warehouse := &Warehouse{
		isConstructed: true,
	}

	if err := errors.Join(
		warehouse.setID(id),
		warehouse.setName(name),
		warehouse.setLocation(location),
		warehouse.setMaxCapacity(maxCapacity),
	); err != nil {
		return nil, err
	}

	return warehouse, nil
}

// RestoreWarehouse reconstructs a Warehouse from persisted state, including
// its occupied capacity. Occupied must respect 0 <= occupied <= maxCapacity.
func RestoreWarehouse(id kernel.UUID, name string, location kernel.GeoLocation,
	maxCapacity int, occupied int) (*Warehouse, error) {
	warehouse := &Warehouse{
		isConstructed: true,
	}

	if err := errors.Join(
		warehouse.setID(id),
		warehouse.setName(name),
		warehouse.setLocation(location),
		warehouse.setMaxCapacity(maxCapacity),
	); err != nil {
		return nil, err
	}

	if occupied < 0 || occupied > warehouse.maxCapacity {
		return nil, errs.NewValueIsOutOfRangeError("occupied", occupied, 0, warehouse.maxCapacity)
	}
	warehouse.occupied = occupied

	return warehouse, nil
}

// Validate ensures the Warehouse instance was properly constructed.
func (w *Warehouse) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWarehouseIsNotConstructed
	}

	return nil
}

// IsEqual compares two warehouses by their unique identifiers.
func (w *Warehouse) IsEqual(other *Warehouse) bool {
	return other != nil && w.id.IsEqual(other.id)
}

// ID returns the warehouse's unique identifier.
func (w *Warehouse) ID() kernel.UUID {
	return w.id
}

// Name returns the facility name.
func (w *Warehouse) Name() string {
	return w.name
}

// Location returns the warehouse's position.
func (w *Warehouse) Location() kernel.GeoLocation {
	return w.location
}

// MaxCapacity returns the total storage capacity.
func (w *Warehouse) MaxCapacity() int {
	return w.maxCapacity
}

// Occupied returns the capacity currently reserved.
func (w *Warehouse) Occupied() int {
	return w.occupied
}

// Available returns how much capacity is still free.
func (w *Warehouse) Available() int {
	return w.maxCapacity - w.occupied
}

// Reserve occupies the given amount of capacity.
//
// Returns ErrInsufficientCapacity if the amount would exceed maximum capacity,
// or a validation error for non-positive amounts. On any error the occupied
// capacity is unchanged.
func (w *Warehouse) Reserve(amount int) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d is not greater than 0", amount))
	}
	if w.occupied+amount > w.maxCapacity {
		return fmt.Errorf("%w: occupied %d + %d exceeds max capacity %d",
			ErrInsufficientCapacity, w.occupied, amount, w.maxCapacity)
	}

	w.occupied += amount
	return nil
}

// Release frees the given amount of capacity.
//
// Returns ErrNotReserved if the amount exceeds what is occupied, so a double
// release surfaces as an error instead of silently going negative. On any
// error the occupied capacity is unchanged.
func (w *Warehouse) Release(amount int) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d is not greater than 0", amount))
	}
	if amount > w.occupied {
		return fmt.Errorf("%w: occupied %d, asked to release %d",
			ErrNotReserved, w.occupied, amount)
	}

	w.occupied -= amount
	return nil
}

// setID validates and sets the warehouse's unique identifier.
func (w *Warehouse) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

// setName validates and sets the facility name.
func (w *Warehouse) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	w.name = name
	return nil
}

// setLocation validates and sets the warehouse's position.
func (w *Warehouse) setLocation(location kernel.GeoLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}
	w.location = location
	return nil
}

// setMaxCapacity validates and sets the total storage capacity.
func (w *Warehouse) setMaxCapacity(maxCapacity int) error {
	if maxCapacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxCapacity is invalid",
			fmt.Errorf("%d is not greater than 0", maxCapacity))
	}
	w.maxCapacity = maxCapacity
	return nil
}
