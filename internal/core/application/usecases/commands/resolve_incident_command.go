package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrResolveIncidentCommandIsNotConstructed = errors.New(
		"ResolveIncidentCommand must be created via NewResolveIncidentCommand constructor",
	)
)

// ResolveIncidentCommand represents a dispatcher closing an incident after
// the recovery steps were carried out.
type ResolveIncidentCommand struct { //nolint:recvcheck //using for validation
	incidentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResolveIncidentCommand creates a command to resolve an incident.
func NewResolveIncidentCommand(incidentID kernel.UUID) (ResolveIncidentCommand, error) {
	resolveCommand := ResolveIncidentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := resolveCommand.setIncidentID(incidentID); err != nil {
		return ResolveIncidentCommand{}, err
	}

	return resolveCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveIncidentCommand) Validate() error {
	return c.guard.Validate(ErrResolveIncidentCommandIsNotConstructed)
}

// IncidentID returns the incident to resolve.
func (c ResolveIncidentCommand) IncidentID() kernel.UUID {
	return c.incidentID
}

func (c *ResolveIncidentCommand) setIncidentID(incidentID kernel.UUID) error {
	if err := incidentID.Validate(); err != nil {
		return err
	}

	c.incidentID = incidentID
	return nil
}
