package queries

import (
	"context"
	"database/sql"
	"time"

	"logistics/internal/core/domain/model/incident"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetIncidentsQueryHandler retrieves incident rows from the database.
type GetIncidentsQueryHandler struct {
	db *gorm.DB
}

// NewGetIncidentsQueryHandler creates a handler for incident queries.
// Requires a GORM database connection for query execution.
func NewGetIncidentsQueryHandler(db *gorm.DB) GetIncidentsQueryHandler {
	return GetIncidentsQueryHandler{db: db}
}

// Handle executes the query. Open-only queries exclude resolved incidents.
// Results are sorted by report time, oldest first.
func (h GetIncidentsQueryHandler) Handle(
	ctx context.Context,
	query GetIncidentsQuery,
) ([]GetIncidentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			id,
			shipment_id,
			incident_type,
			description,
			severity,
			delay_minutes,
			status,
			reported_at,
			resolved_at
		FROM incidents
	`
	args := make([]any, 0, 1)
	if query.OpenOnly() {
		sqlText += `
		WHERE status = ?
		`
		args = append(args, string(incident.StatusOpen))
	}
	sqlText += `
		ORDER BY reported_at
	`

	incidents := make([]GetIncidentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var incidentResp GetIncidentsQueryResponse
		var id, shipmentID uuid.UUID
		var reportedAt time.Time
		var resolvedAt sql.NullTime

		err = rows.Scan(
			&id,
			&shipmentID,
			&incidentResp.IncidentType,
			&incidentResp.Description,
			&incidentResp.Severity,
			&incidentResp.DelayMinutes,
			&incidentResp.Status,
			&reportedAt,
			&resolvedAt,
		)
		if err != nil {
			return nil, err
		}

		incidentResp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		incidentResp.ShipmentID, err = kernel.UUIDFromBytes(shipmentID[:])
		if err != nil {
			return nil, err
		}
		incidentResp.ReportedAt = reportedAt
		if resolvedAt.Valid {
			incidentResp.ResolvedAt = resolvedAt.Time
		}

		incidents = append(incidents, incidentResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return incidents, nil
}
