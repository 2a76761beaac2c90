package order

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> InTransit ──> Delivered
//	   │            │            │
//	   └────────────┴────────────┴──> Failed
//
// Reassignment (Assigned -> Assigned) is allowed so a later planning cycle
// can move a still-undispatched order to a different vehicle.
// Delivered and Failed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is accepted at intake.
	// Orders in this status are waiting for a planning cycle to assign a vehicle.
	Pending

	// Assigned indicates the order has been assigned to a vehicle and a shipment
	// exists for it. Orders can be reassigned while in this status.
	Assigned

	// InTransit indicates the shipment carrying this order has left the warehouse.
	InTransit

	// Delivered indicates the order has been delivered and verified.
	// This is a final state with no further transitions allowed.
	Delivered

	// Failed indicates the order was cancelled or its shipment failed.
	// This is a final state reachable from any non-terminal status.
	Failed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Failed:    "Failed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Assigned:  "Assigned",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Failed:    "Failed",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// Assign transitions the status to Assigned.
// Allowed from Pending and from Assigned (reassignment).
func (s Status) Assign() (Status, error) {
	if s != Pending && s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status transition",
			fmt.Errorf("cannot assign order in status %s", s))
	}
	return Assigned, nil
}

// Depart transitions the status to InTransit. Allowed only from Assigned.
func (s Status) Depart() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status transition",
			fmt.Errorf("cannot mark order in status %s as in transit", s))
	}
	return InTransit, nil
}

// Complete transitions the status to Delivered. Allowed only from InTransit.
func (s Status) Complete() (Status, error) {
	if s != InTransit {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status transition",
			fmt.Errorf("cannot complete order in status %s", s))
	}
	return Delivered, nil
}

// Fail transitions the status to Failed. Allowed from any non-terminal status.
func (s Status) Fail() (Status, error) {
	if s.IsTerminal() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status transition",
			fmt.Errorf("cannot fail order in terminal status %s", s))
	}
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	return Failed, nil
}
