package capacityledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var (
	// ErrInsufficientCapacity is returned when a reservation would push a
	// resource over its maximum capacity.
	ErrInsufficientCapacity = errors.New("insufficient capacity")

	// ErrNotReserved is returned when a release asks for more than is
	// currently occupied. A double release surfaces here instead of
	// silently going negative.
	ErrNotReserved = errors.New("cannot release more than is reserved")

	// ErrResourceNotRegistered is returned when operating on a resource the
	// ledger has never seen.
	ErrResourceNotRegistered = errors.New("resource is not registered in the ledger")
)

// Kind distinguishes the resource types the ledger tracks.
type Kind string

const (
	KindWarehouse Kind = "warehouse"
	KindVehicle   Kind = "vehicle"
)

// ResourceID identifies a capacity-bearing resource. The kind is part of the
// key so a warehouse and a vehicle sharing a UUID can never collide.
type ResourceID struct {
	Kind Kind
	ID   kernel.UUID
}

// String returns a human-readable representation of the resource key.
func (r ResourceID) String() string {
	return fmt.Sprintf("%s/%s", r.Kind, r.ID)
}

// Snapshot reports a resource's occupancy at a point in time.
type Snapshot struct {
	Resource ResourceID
	Occupied int
	Max      int
}

// CapacityChanged is emitted after every successful reserve or release.
// Delta is positive for reservations and negative for releases.
type CapacityChanged struct {
	Resource ResourceID
	Delta    int
	Occupied int
	Max      int
}

// EventSink receives capacity change notifications. Implementations must be
// safe for concurrent use; the ledger calls the sink while holding the
// per-resource lock so ordering per resource matches the applied changes.
type EventSink interface {
	PublishCapacityChanged(ctx context.Context, event CapacityChanged)
}

// resource is one tracked capacity account. Its mutex serializes all
// occupancy changes for the key, which is what keeps concurrent reserves
// from jointly exceeding max.
type resource struct {
	mu       sync.Mutex
	occupied int
	max      int
}

// Ledger is an in-memory capacity account over warehouses and vehicles.
// It is the single authority the planning cycle consults before committing
// an assignment, so checks and updates must be atomic per resource.
//
// Concurrency model: a read-write mutex guards the registry map, and each
// registered resource carries its own mutex. Operations on different
// resources proceed in parallel; operations on the same resource are
// strictly serialized.
type Ledger struct {
	mu        sync.RWMutex
	resources map[ResourceID]*resource
	sink      EventSink
}

// NewLedger creates an empty Ledger. The sink may be nil, in which case
// change events are dropped.
func NewLedger(sink EventSink) *Ledger {
	return &Ledger{
		resources: make(map[ResourceID]*resource),
		sink:      sink,
	}
}

// Register adds a resource to the ledger or refreshes its limits if it is
// already present. Occupied must respect 0 <= occupied <= max.
func (l *Ledger) Register(id ResourceID, max int, occupied int) error {
	if err := id.ID.Validate(); err != nil {
		return err
	}
	if max <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("max is invalid",
			fmt.Errorf("%d is not greater than 0", max))
	}
	if occupied < 0 || occupied > max {
		return errs.NewValueIsOutOfRangeError("occupied", occupied, 0, max)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.resources[id]; ok {
		existing.mu.Lock()
		existing.max = max
		existing.occupied = occupied
		existing.mu.Unlock()
		return nil
	}

	l.resources[id] = &resource{occupied: occupied, max: max}
	return nil
}

// Registered reports whether the resource is known to the ledger.
func (l *Ledger) Registered(id ResourceID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.resources[id]
	return ok
}

// Reserve atomically occupies the given amount on a resource.
//
// Returns ErrInsufficientCapacity if the amount does not fit, leaving the
// resource unchanged. Two concurrent reserves can never jointly exceed max:
// the check and the update happen under the resource's lock.
func (l *Ledger) Reserve(ctx context.Context, id ResourceID, amount int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	res, err := l.lookup(id)
	if err != nil {
		return err
	}

	res.mu.Lock()
	defer res.mu.Unlock()

	if res.occupied+amount > res.max {
		return fmt.Errorf("%w: %s occupied %d + %d exceeds max %d",
			ErrInsufficientCapacity, id, res.occupied, amount, res.max)
	}

	res.occupied += amount
	l.publish(ctx, CapacityChanged{
		Resource: id,
		Delta:    amount,
		Occupied: res.occupied,
		Max:      res.max,
	})
	return nil
}

// Release atomically frees the given amount on a resource.
//
// Returns ErrNotReserved if the amount exceeds what is occupied, leaving the
// resource unchanged.
func (l *Ledger) Release(ctx context.Context, id ResourceID, amount int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	res, err := l.lookup(id)
	if err != nil {
		return err
	}

	res.mu.Lock()
	defer res.mu.Unlock()

	if amount > res.occupied {
		return fmt.Errorf("%w: %s occupied %d, asked to release %d",
			ErrNotReserved, id, res.occupied, amount)
	}

	res.occupied -= amount
	l.publish(ctx, CapacityChanged{
		Resource: id,
		Delta:    -amount,
		Occupied: res.occupied,
		Max:      res.max,
	})
	return nil
}

// Snapshot returns the resource's current occupancy.
func (l *Ledger) Snapshot(id ResourceID) (Snapshot, error) {
	res, err := l.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}

	res.mu.Lock()
	defer res.mu.Unlock()

	return Snapshot{Resource: id, Occupied: res.occupied, Max: res.max}, nil
}

// lookup resolves a resource under the registry read lock.
func (l *Ledger) lookup(id ResourceID) (*resource, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	res, ok := l.resources[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotRegistered, id)
	}
	return res, nil
}

// publish forwards an event to the sink if one is configured.
func (l *Ledger) publish(ctx context.Context, event CapacityChanged) {
	if l.sink == nil {
		return
	}
	l.sink.PublishCapacityChanged(ctx, event)
}
