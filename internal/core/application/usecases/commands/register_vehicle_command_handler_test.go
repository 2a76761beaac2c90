package commands_test

import (
	"errors"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func registerVehicleCommand(t *testing.T) commands.RegisterVehicleCommand {
	t.Helper()
	cmd, err := commands.NewRegisterVehicleCommand(kernel.NewUUID(), "Truck 7",
		kernel.NewUUID(), 120, testLocation(t, 12.97, 77.59), testWindow(t, testBaseTime(), 12))
	require.NoError(t, err)
	return cmd
}

func TestRegisterVehicleCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := registerVehicleCommand(t)

	vehicleRepo := new(MockVehicleRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		vehicleRepo.On("Add", ctx, mock.AnythingOfType("*vehicle.Vehicle")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockVehicleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterVehicleCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	vehicleRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	added := vehicleRepo.Calls[0].Arguments[1].(*vehicle.Vehicle)
	assert.Equal(t, cmd.VehicleID(), added.ID())
	assert.Equal(t, 120, added.Capacity())
	assert.Equal(t, 0, added.CurrentLoad())
}

func TestRegisterVehicleCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RegisterVehicleCommand{} // not constructed properly

	factory := new(MockVehicleUoWFactory)
	handler := commands.NewRegisterVehicleCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRegisterVehicleCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestRegisterVehicleCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := registerVehicleCommand(t)

	vehicleRepo := new(MockVehicleRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		vehicleRepo.On("Add", ctx, mock.AnythingOfType("*vehicle.Vehicle")).
			Return(errors.New("insert error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockVehicleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterVehicleCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "insert error")
	uow.AssertNotCalled(t, "Commit", ctx)
}
