package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrPlanLogisticsCommandIsNotConstructed = errors.New(
		"PlanLogisticsCommand must be created via NewPlanLogisticsCommand constructor",
	)
	ErrDepartAtIsRequired = errors.New("departAt is required")
)

// PlanLogisticsCommand requests one planning cycle: allocate pending orders
// to vehicles, reserve capacity and create shipments.
//
// An optional order filter restricts the cycle to specific pending orders;
// an empty filter plans everything pending.
type PlanLogisticsCommand struct { //nolint:recvcheck //using for validation
	departAt time.Time
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewPlanLogisticsCommand creates a planning cycle command.
// departAt is when vehicles are assumed to leave; orderIDs may be empty.
func NewPlanLogisticsCommand(departAt time.Time, orderIDs []kernel.UUID) (PlanLogisticsCommand, error) {
	planCommand := PlanLogisticsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		planCommand.setDepartAt(departAt),
		planCommand.setOrderIDs(orderIDs),
	); err != nil {
		return PlanLogisticsCommand{}, err
	}

	return planCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanLogisticsCommand) Validate() error {
	return c.guard.Validate(ErrPlanLogisticsCommandIsNotConstructed)
}

// DepartAt returns the assumed departure time for the cycle.
func (c PlanLogisticsCommand) DepartAt() time.Time {
	return c.departAt
}

// OrderIDs returns the optional order filter. Empty means plan all pending.
func (c PlanLogisticsCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}

func (c *PlanLogisticsCommand) setDepartAt(departAt time.Time) error {
	if departAt.IsZero() {
		return ErrDepartAtIsRequired
	}

	c.departAt = departAt
	return nil
}

func (c *PlanLogisticsCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = append([]kernel.UUID(nil), orderIDs...)
	return nil
}
