package commands

import (
	"context"

	"logistics/internal/core/domain/model/warehouse"
)

// RegisterWarehouseCommandHandler handles storage facility registration.
type RegisterWarehouseCommandHandler struct {
	uowFactory WarehouseUoWFactory
}

// NewRegisterWarehouseCommandHandler creates a handler for warehouse registration.
func NewRegisterWarehouseCommandHandler(uowFactory WarehouseUoWFactory) RegisterWarehouseCommandHandler {
	return RegisterWarehouseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the warehouse registration command.
func (h *RegisterWarehouseCommandHandler) Handle(ctx context.Context, cmd RegisterWarehouseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	newWarehouse, err := warehouse.NewWarehouse(cmd.WarehouseID(), cmd.Name(),
		cmd.Location(), cmd.MaxCapacity())
	if err != nil {
		return err
	}

	if err = uow.WarehouseRepository().Add(ctx, newWarehouse); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
