package order

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a customer delivery order. It is the aggregate root that manages
// the order lifecycle from intake through vehicle assignment to completion.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and origin warehouse
//   - Must have a valid destination location and delivery time window
//   - Weight must be positive (greater than 0)
//   - Status transitions follow defined business rules
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// warehouseID is the warehouse the order ships from
	warehouseID kernel.UUID

	// vehicleID is the assigned vehicle's ID (nil if unassigned)
	vehicleID *kernel.UUID

	// destination is the delivery location
	destination kernel.GeoLocation

	// weight is the order weight in capacity units (must be positive)
	weight int

	// window is the delivery time window the customer accepted
	window kernel.TimeWindow

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. This is the only way to create
// a valid Order, ensuring all business invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - warehouseID: Origin warehouse the order ships from
//   - destination: Delivery location with validated coordinates
//   - weight: Order weight in capacity units (must be positive)
//   - window: Delivery time window
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
//
// Example:
//
//	orderID := kernel.NewUUID()
//	destination, _ := kernel.NewGeoLocation(12.9716, 77.5946)
//	order, err := NewOrder(orderID, warehouseID, destination, 100, window)
//	if err != nil {
//	    // Handle validation error
//	}
//
// The constructor validates all inputs and ensures the order is created
// with Pending status and no vehicle assigned.
func NewOrder(id kernel.UUID, warehouseID kernel.UUID, destination kernel.GeoLocation,
	weight int, window kernel.TimeWindow) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setWarehouseID(warehouseID),
		order.setDestination(destination),
		order.setWeight(weight),
		order.setWindow(window),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persisted state. Unlike NewOrder it
// accepts any valid status and an optional assigned vehicle, but it still runs
// the full field validation so corrupt rows cannot produce invalid aggregates.
func RestoreOrder(id kernel.UUID, warehouseID kernel.UUID, destination kernel.GeoLocation,
	weight int, window kernel.TimeWindow, status Status, vehicleID *kernel.UUID) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setWarehouseID(warehouseID),
		order.setDestination(destination),
		order.setWeight(weight),
		order.setWindow(window),
		order.setStatus(status),
		order.setVehicleID(vehicleID),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// WarehouseID returns the origin warehouse identifier.
func (o *Order) WarehouseID() kernel.UUID {
	return o.warehouseID
}

// Destination returns the delivery location for the order.
func (o *Order) Destination() kernel.GeoLocation {
	return o.destination
}

// Weight returns the order's weight in capacity units.
func (o *Order) Weight() int {
	return o.weight
}

// Window returns the delivery time window.
func (o *Order) Window() kernel.TimeWindow {
	return o.window
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Vehicle returns the assigned vehicle's ID.
// Returns nil if no vehicle is assigned.
func (o *Order) Vehicle() *kernel.UUID {
	return o.vehicleID
}

// Assign assigns the order to a vehicle and updates the status to Assigned.
//
// This method enforces the following business rules:
//   - The vehicle ID must be valid
//   - The order must be in Pending or Assigned status
//   - Reassignment is allowed (from Assigned to Assigned)
//
// Parameters:
//   - vehicleID: The ID of the vehicle to assign
//
// Returns:
//   - nil on successful assignment
//   - error if vehicle ID is invalid or status transition is not allowed
//
// After successful assignment, the order's status becomes Assigned and
// Vehicle() will return the assigned vehicle's ID.
func (o *Order) Assign(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.vehicleID = &vehicleID
	return nil
}

// MarkInTransit records that the shipment carrying this order has departed.
//
// Returns an error if the order is not in Assigned status.
func (o *Order) MarkInTransit() error {
	newStatus, err := o.status.Depart()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkDelivered marks the order as delivered.
//
// Returns an error if the order is not in InTransit status.
// Delivered is a final state with no further transitions.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkFailed marks the order as failed.
//
// Returns an error if the order is already in a terminal status.
// Failed is a final state with no further transitions.
func (o *Order) MarkFailed() error {
	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setWarehouseID validates and sets the origin warehouse identifier.
// This is a private method used only during construction.
func (o *Order) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	o.warehouseID = warehouseID
	return nil
}

// setDestination validates and sets the order's delivery location.
// This is a private method used only during construction.
func (o *Order) setDestination(destination kernel.GeoLocation) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

// setWeight validates and sets the order's weight.
// Weight must be positive (greater than 0).
// This is a private method used only during construction.
func (o *Order) setWeight(weight int) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%d is not greater than 0", weight))
	}
	o.weight = weight
	return nil
}

// setWindow validates and sets the delivery time window.
// This is a private method used only during construction.
func (o *Order) setWindow(window kernel.TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	o.window = window
	return nil
}

// setStatus validates and sets the order's status.
// This is a private method used only during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setVehicleID validates and sets the assigned vehicle.
// A nil vehicle ID means the order is unassigned.
// This is a private method used only during restoration.
func (o *Order) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID == nil {
		return nil
	}
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	o.vehicleID = vehicleID
	return nil
}
