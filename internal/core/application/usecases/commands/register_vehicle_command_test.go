package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterVehicleCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	warehouseID := kernel.NewUUID()
	location := testLocation(t, 12.97, 77.59)
	availability := testWindow(t, testBaseTime(), 12)

	cmd, err := commands.NewRegisterVehicleCommand(id, "Van 1", warehouseID, 100,
		location, availability)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.VehicleID())
	assert.Equal(t, "Van 1", cmd.Name())
	assert.Equal(t, warehouseID, cmd.WarehouseID())
	assert.Equal(t, 100, cmd.Capacity())
	assert.Equal(t, location, cmd.Location())
	assert.Equal(t, availability, cmd.Availability())
}

func TestNewRegisterVehicleCommand_InvalidCapacity(t *testing.T) {
	_, err := commands.NewRegisterVehicleCommand(kernel.NewUUID(), "Van 1",
		kernel.NewUUID(), 0, testLocation(t, 12.97, 77.59), testWindow(t, testBaseTime(), 12))
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCapacityIsInvalid)
}

func TestNewRegisterVehicleCommand_InvalidVehicleID(t *testing.T) {
	_, err := commands.NewRegisterVehicleCommand(kernel.UUID{}, "Van 1",
		kernel.NewUUID(), 100, testLocation(t, 12.97, 77.59), testWindow(t, testBaseTime(), 12))
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
