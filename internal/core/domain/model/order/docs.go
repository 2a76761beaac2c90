// Package order contains the Order aggregate and its status state machine.
//
// An order moves through Pending, Assigned, InTransit and Delivered, with
// Failed reachable from any non-terminal status. All mutation goes through
// methods that delegate to the Status state machine, so illegal transitions
// are rejected at the domain layer.
package order
