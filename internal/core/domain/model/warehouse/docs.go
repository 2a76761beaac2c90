// Package warehouse contains the Warehouse aggregate.
//
// A warehouse tracks occupied storage (0 <= occupied <= maxCapacity) and
// exposes Reserve/Release operations that either fully apply or leave the
// state unchanged.
package warehouse
