// Package vehicle contains the Vehicle aggregate.
//
// A vehicle carries a bounded load (0 <= load <= capacity) and exposes
// Load/Unload operations that either fully apply or leave the state
// unchanged. Position updates go through MoveTo.
package vehicle
