package commands_test

import (
	"errors"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/warehouse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func registerWarehouseCommand(t *testing.T) commands.RegisterWarehouseCommand {
	t.Helper()
	cmd, err := commands.NewRegisterWarehouseCommand(kernel.NewUUID(), "North Hub",
		testLocation(t, 13.01, 77.55), 500)
	require.NoError(t, err)
	return cmd
}

func TestRegisterWarehouseCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := registerWarehouseCommand(t)

	warehouseRepo := new(MockWarehouseRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WarehouseRepository").Return(warehouseRepo).Once(),
		warehouseRepo.On("Add", ctx, mock.AnythingOfType("*warehouse.Warehouse")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockWarehouseUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterWarehouseCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	warehouseRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	added := warehouseRepo.Calls[0].Arguments[1].(*warehouse.Warehouse)
	assert.Equal(t, cmd.WarehouseID(), added.ID())
	assert.Equal(t, 500, added.MaxCapacity())
	assert.Equal(t, 0, added.Occupied())
}

func TestRegisterWarehouseCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RegisterWarehouseCommand{} // not constructed properly

	factory := new(MockWarehouseUoWFactory)
	handler := commands.NewRegisterWarehouseCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRegisterWarehouseCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestRegisterWarehouseCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := registerWarehouseCommand(t)

	warehouseRepo := new(MockWarehouseRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WarehouseRepository").Return(warehouseRepo).Once(),
		warehouseRepo.On("Add", ctx, mock.AnythingOfType("*warehouse.Warehouse")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockWarehouseUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterWarehouseCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
}
