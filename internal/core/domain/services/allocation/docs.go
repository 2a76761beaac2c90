// Package allocation assigns pending orders to vehicles.
//
// The allocator is earliest-deadline-first greedy: orders sorted by latest
// delivery deadline, each placed on the vehicle whose route cost grows the
// least. Orders that fit nowhere are reported with a reason, never dropped.
package allocation
