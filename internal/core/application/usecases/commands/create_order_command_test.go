package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	warehouseID := kernel.NewUUID()
	destination := testLocation(t, 12.99, 77.60)
	window := testWindow(t, testBaseTime(), 8)

	cmd, err := commands.NewCreateOrderCommand(id, warehouseID, destination, 25, window)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, warehouseID, cmd.WarehouseID())
	assert.Equal(t, destination, cmd.Destination())
	assert.Equal(t, 25, cmd.Weight())
	assert.Equal(t, window, cmd.Window())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCreateOrderCommand(invalidID, kernel.NewUUID(),
		testLocation(t, 12.99, 77.60), 25, testWindow(t, testBaseTime(), 8))
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidWeight(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		testLocation(t, 12.99, 77.60), 0, testWindow(t, testBaseTime(), 8))
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrWeightIsInvalid)
}

func TestNewCreateOrderCommand_NegativeWeight(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		testLocation(t, 12.99, 77.60), -5, testWindow(t, testBaseTime(), 8))
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrWeightIsInvalid)
}
