package commands

import (
	"context"
	"time"
)

// ResolveIncidentCommandHandler closes open incidents. Resolving an already
// resolved incident is an error, not a no-op, so dispatch tooling notices
// double handling.
type ResolveIncidentCommandHandler struct {
	uowFactory IncidentUoWFactory
	now        func() time.Time
}

// NewResolveIncidentCommandHandler creates a handler for incident resolution.
func NewResolveIncidentCommandHandler(uowFactory IncidentUoWFactory) ResolveIncidentCommandHandler {
	return ResolveIncidentCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the resolve command.
func (h *ResolveIncidentCommandHandler) Handle(ctx context.Context, cmd ResolveIncidentCommand) error {
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

	aggregate, err := uow.IncidentRepository().Get(ctx, cmd.IncidentID())
	if err != nil {
		return err
	}

	if err = aggregate.Resolve(h.now()); err != nil {
		return err
	}

	if err = uow.IncidentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
