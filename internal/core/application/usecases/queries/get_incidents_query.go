package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrGetIncidentsQueryIsNotConstructed = errors.New(
		"GetIncidentsQuery must be created via NewGetIncidentsQuery or NewGetOpenIncidentsQuery",
	)
)

// GetIncidentsQuery retrieves reported incidents, oldest first. The open-only
// variant excludes resolved incidents, which is what dispatcher boards poll for.
type GetIncidentsQuery struct {
	openOnly bool

	guard guard.ConstructorGuard
}

// NewGetIncidentsQuery creates a query to retrieve every incident.
func NewGetIncidentsQuery() GetIncidentsQuery {
	return GetIncidentsQuery{guard: guard.NewConstructorGuard()}
}

// NewGetOpenIncidentsQuery creates a query restricted to incidents that still
// need dispatcher attention.
func NewGetOpenIncidentsQuery() GetIncidentsQuery {
	return GetIncidentsQuery{openOnly: true, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through a constructor.
func (q GetIncidentsQuery) Validate() error {
	return q.guard.Validate(ErrGetIncidentsQueryIsNotConstructed)
}

// OpenOnly reports whether resolved incidents are excluded.
func (q GetIncidentsQuery) OpenOnly() bool {
	return q.openOnly
}

// GetIncidentsQueryResponse represents one incident with the guidance a
// dispatcher needs to act on it. ResolvedAt is zero while the incident is open.
type GetIncidentsQueryResponse struct {
	ID           kernel.UUID
	ShipmentID   kernel.UUID
	IncidentType string
	Description  string
	Severity     string
	DelayMinutes int
	Status       string
	ReportedAt   time.Time
	ResolvedAt   time.Time
}
