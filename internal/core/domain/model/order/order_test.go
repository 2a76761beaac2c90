package order_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow(t *testing.T) kernel.TimeWindow {
	t.Helper()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	window, err := kernel.NewTimeWindow(base, base.Add(6*time.Hour))
	require.NoError(t, err)
	return window
}

func testDestination(t *testing.T) kernel.GeoLocation {
	t.Helper()
	loc, err := kernel.NewGeoLocation(12.9716, 77.5946)
	require.NoError(t, err)
	return loc
}

func createTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testDestination(t), 100, testWindow(t))
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_valid_order", func(t *testing.T) {
		id := kernel.NewUUID()
		warehouseID := kernel.NewUUID()

		o, err := order.NewOrder(id, warehouseID, testDestination(t), 100, testWindow(t))

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.WarehouseID().IsEqual(warehouseID))
		assert.Equal(t, 100, o.Weight())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Vehicle())
		require.NoError(t, o.Validate())
	})

	t.Run("rejects_invalid_id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.NewUUID(), testDestination(t), 100, testWindow(t))

		require.Error(t, err)
	})

	t.Run("rejects_invalid_warehouse_id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.UUID{}, testDestination(t), 100, testWindow(t))

		require.Error(t, err)
	})

	t.Run("rejects_unconstructed_destination", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.GeoLocation{}, 100, testWindow(t))

		require.Error(t, err)
	})

	t.Run("rejects_non_positive_weight", func(t *testing.T) {
		for _, weight := range []int{0, -1} {
			_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testDestination(t), weight, testWindow(t))
			require.Error(t, err)
		}
	})

	t.Run("rejects_unconstructed_window", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testDestination(t), 100, kernel.TimeWindow{})

		require.Error(t, err)
	})

	t.Run("aggregates_multiple_errors", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.NewUUID(), testDestination(t), -5, testWindow(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID")
		assert.Contains(t, err.Error(), "weight")
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_assigned_order", func(t *testing.T) {
		vehicleID := kernel.NewUUID()

		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), testDestination(t),
			50, testWindow(t), order.Assigned, &vehicleID)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Vehicle())
		assert.True(t, o.Vehicle().IsEqual(vehicleID))
	})

	t.Run("restores_unassigned_order", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), testDestination(t),
			50, testWindow(t), order.Pending, nil)

		require.NoError(t, err)
		assert.Nil(t, o.Vehicle())
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), testDestination(t),
			50, testWindow(t), order.Unknown, nil)

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("nil_order_is_invalid", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("zero_value_is_invalid", func(t *testing.T) {
		o := &order.Order{}

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Assign(t *testing.T) {
	t.Run("assigns_pending_order", func(t *testing.T) {
		o := createTestOrder(t)
		vehicleID := kernel.NewUUID()

		err := o.Assign(vehicleID)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Vehicle())
		assert.True(t, o.Vehicle().IsEqual(vehicleID))
	})

	t.Run("allows_reassignment", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))
		second := kernel.NewUUID()

		err := o.Assign(second)

		require.NoError(t, err)
		assert.True(t, o.Vehicle().IsEqual(second))
	})

	t.Run("rejects_invalid_vehicle_id", func(t *testing.T) {
		o := createTestOrder(t)

		err := o.Assign(kernel.UUID{})

		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("rejects_assignment_after_departure", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))
		require.NoError(t, o.MarkInTransit())

		err := o.Assign(kernel.NewUUID())

		require.Error(t, err)
		assert.Equal(t, order.InTransit, o.Status())
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("full_happy_path", func(t *testing.T) {
		o := createTestOrder(t)

		require.NoError(t, o.Assign(kernel.NewUUID()))
		require.NoError(t, o.MarkInTransit())
		require.NoError(t, o.MarkDelivered())

		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("cannot_depart_before_assignment", func(t *testing.T) {
		o := createTestOrder(t)

		require.Error(t, o.MarkInTransit())
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("cannot_deliver_before_departure", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))

		require.Error(t, o.MarkDelivered())
		assert.Equal(t, order.Assigned, o.Status())
	})

	t.Run("fail_from_any_non_terminal_status", func(t *testing.T) {
		o := createTestOrder(t)

		require.NoError(t, o.MarkFailed())
		assert.Equal(t, order.Failed, o.Status())
	})

	t.Run("cannot_fail_delivered_order", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))
		require.NoError(t, o.MarkInTransit())
		require.NoError(t, o.MarkDelivered())

		require.Error(t, o.MarkFailed())
		assert.Equal(t, order.Delivered, o.Status())
	})
}

func TestOrder_IsEqual(t *testing.T) {
	t.Run("same_id_is_equal", func(t *testing.T) {
		id := kernel.NewUUID()
		a, err := order.RestoreOrder(id, kernel.NewUUID(), testDestination(t), 10, testWindow(t), order.Pending, nil)
		require.NoError(t, err)
		b, err := order.RestoreOrder(id, kernel.NewUUID(), testDestination(t), 20, testWindow(t), order.Pending, nil)
		require.NoError(t, err)

		assert.True(t, a.IsEqual(b))
	})

	t.Run("different_id_is_not_equal", func(t *testing.T) {
		a := createTestOrder(t)
		b := createTestOrder(t)

		assert.False(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(nil))
	})
}
