package capacityledger_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services/capacityledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures published events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []capacityledger.CapacityChanged
}

func (r *recordingSink) PublishCapacityChanged(_ context.Context, event capacityledger.CapacityChanged) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingSink) all() []capacityledger.CapacityChanged {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]capacityledger.CapacityChanged(nil), r.events...)
}

func warehouseResource() capacityledger.ResourceID {
	return capacityledger.ResourceID{Kind: capacityledger.KindWarehouse, ID: kernel.NewUUID()}
}

func TestLedger_Register(t *testing.T) {
	t.Run("registers_resource", func(t *testing.T) {
		ledger := capacityledger.NewLedger(nil)
		id := warehouseResource()

		require.NoError(t, ledger.Register(id, 100, 40))

		assert.True(t, ledger.Registered(id))
		snapshot, err := ledger.Snapshot(id)
		require.NoError(t, err)
		assert.Equal(t, 40, snapshot.Occupied)
		assert.Equal(t, 100, snapshot.Max)
	})

	t.Run("refreshes_existing_resource", func(t *testing.T) {
		ledger := capacityledger.NewLedger(nil)
		id := warehouseResource()
		require.NoError(t, ledger.Register(id, 100, 40))

		require.NoError(t, ledger.Register(id, 200, 10))

		snapshot, err := ledger.Snapshot(id)
		require.NoError(t, err)
		assert.Equal(t, 10, snapshot.Occupied)
		assert.Equal(t, 200, snapshot.Max)
	})

	t.Run("rejects_occupied_above_max", func(t *testing.T) {
		ledger := capacityledger.NewLedger(nil)

		require.Error(t, ledger.Register(warehouseResource(), 100, 101))
	})

	t.Run("rejects_non_positive_max", func(t *testing.T) {
		ledger := capacityledger.NewLedger(nil)

		require.Error(t, ledger.Register(warehouseResource(), 0, 0))
	})
}

func TestLedger_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("reserve_within_capacity", func(t *testing.T) {
		ledger := capacityledger.NewLedger(nil)
		id := warehouseResource()
		require.NoError(t, ledger.Register(id, 100, 0))

		require.NoError(t, ledger.Reserve(ctx, id, 60))
		require.NoError(t, ledger.Reserve(ctx, id, 40))

		snapshot, err := ledger.Snapshot(id)
		require.NoError(t, err)
		assert.Equal(t, 100, snapshot.Occupied)
	})

	t.Run("insufficient_capacity_keeps_state", func(t *testing.T) {
		ledger := capacityledger.NewLedger(nil)
		id := warehouseResource()
		require.NoError(t, ledger.Register(id, 100, 90))

		err := ledger.Reserve(ctx, id, 20)

		require.ErrorIs(t, err, capacityledger.ErrInsufficientCapacity)
		snapshot, snapErr := ledger.Snapshot(id)
		require.NoError(t, snapErr)
		assert.Equal(t, 90, snapshot.Occupied)
	})

	t.Run("unregistered_resource", func(t *testing.T) {
		ledger := capacityledger.NewLedger(nil)

		err := ledger.Reserve(ctx, warehouseResource(), 10)

		require.ErrorIs(t, err, capacityledger.ErrResourceNotRegistered)
	})

	t.Run("cancelled_context", func(t *testing.T) {
		ledger := capacityledger.NewLedger(nil)
		id := warehouseResource()
		require.NoError(t, ledger.Register(id, 100, 0))

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		require.Error(t, ledger.Reserve(cancelled, id, 10))
	})
}

func TestLedger_Release(t *testing.T) {
	ctx := context.Background()

	t.Run("round_trip_restores_occupied", func(t *testing.T) {
		ledger := capacityledger.NewLedger(nil)
		id := warehouseResource()
		require.NoError(t, ledger.Register(id, 100, 30))

		require.NoError(t, ledger.Reserve(ctx, id, 50))
		require.NoError(t, ledger.Release(ctx, id, 50))

		snapshot, err := ledger.Snapshot(id)
		require.NoError(t, err)
		assert.Equal(t, 30, snapshot.Occupied)
	})

	t.Run("double_release_is_an_error", func(t *testing.T) {
		ledger := capacityledger.NewLedger(nil)
		id := warehouseResource()
		require.NoError(t, ledger.Register(id, 100, 0))
		require.NoError(t, ledger.Reserve(ctx, id, 40))
		require.NoError(t, ledger.Release(ctx, id, 40))

		err := ledger.Release(ctx, id, 40)

		require.ErrorIs(t, err, capacityledger.ErrNotReserved)
		snapshot, snapErr := ledger.Snapshot(id)
		require.NoError(t, snapErr)
		assert.Equal(t, 0, snapshot.Occupied)
	})
}

func TestLedger_Events(t *testing.T) {
	ctx := context.Background()

	t.Run("successful_changes_emit_events", func(t *testing.T) {
		sink := &recordingSink{}
		ledger := capacityledger.NewLedger(sink)
		id := warehouseResource()
		require.NoError(t, ledger.Register(id, 100, 0))

		require.NoError(t, ledger.Reserve(ctx, id, 30))
		require.NoError(t, ledger.Release(ctx, id, 10))

		events := sink.all()
		require.Len(t, events, 2)
		assert.Equal(t, 30, events[0].Delta)
		assert.Equal(t, 30, events[0].Occupied)
		assert.Equal(t, -10, events[1].Delta)
		assert.Equal(t, 20, events[1].Occupied)
	})

	t.Run("failed_reserve_emits_nothing", func(t *testing.T) {
		sink := &recordingSink{}
		ledger := capacityledger.NewLedger(sink)
		id := warehouseResource()
		require.NoError(t, ledger.Register(id, 10, 0))

		require.Error(t, ledger.Reserve(ctx, id, 11))

		assert.Empty(t, sink.all())
	})
}

// TestLedger_ConcurrentInterleaving hammers one resource with parallel
// reserves and releases and checks the invariant 0 <= occupied <= max
// is never violated and the final occupancy matches the applied deltas.
func TestLedger_ConcurrentInterleaving(t *testing.T) {
	ctx := context.Background()
	ledger := capacityledger.NewLedger(nil)
	id := warehouseResource()
	const max = 50
	require.NoError(t, ledger.Register(id, max, 0))

	const workers = 16
	const opsPerWorker = 200

	var applied sync.Map // worker -> net delta
	var wg sync.WaitGroup

	for worker := range workers {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(worker)))
			net := 0
			for range opsPerWorker {
				amount := rng.Intn(10) + 1
				if rng.Intn(2) == 0 {
					if ledger.Reserve(ctx, id, amount) == nil {
						net += amount
					}
				} else {
					if ledger.Release(ctx, id, amount) == nil {
						net -= amount
					}
				}

				snapshot, err := ledger.Snapshot(id)
				if err != nil {
					t.Error(err)
					return
				}
				if snapshot.Occupied < 0 || snapshot.Occupied > max {
					t.Errorf("invariant violated: occupied %d outside [0, %d]", snapshot.Occupied, max)
					return
				}
			}
			applied.Store(worker, net)
		}(worker)
	}

	wg.Wait()

	expected := 0
	applied.Range(func(_, value any) bool {
		expected += value.(int)
		return true
	})

	snapshot, err := ledger.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, expected, snapshot.Occupied)
	assert.GreaterOrEqual(t, snapshot.Occupied, 0)
	assert.LessOrEqual(t, snapshot.Occupied, max)
}
