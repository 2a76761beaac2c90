// Package capacityledger provides the in-memory capacity authority consulted
// by planning cycles before committing assignments.
//
// Every resource (warehouse storage, vehicle load) is keyed by kind plus UUID
// and carries its own lock, so the occupancy check and update are atomic per
// resource while different resources proceed in parallel. Successful changes
// emit CapacityChanged events through an optional sink.
package capacityledger
