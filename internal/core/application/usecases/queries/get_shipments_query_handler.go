package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentsQueryHandler retrieves shipment tracking rows from the database.
type GetShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentsQueryHandler creates a handler for shipment tracking queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentsQueryHandler(db *gorm.DB) GetShipmentsQueryHandler {
	return GetShipmentsQueryHandler{db: db}
}

// Handle executes the query. Active-only queries exclude Delivered and
// Failed shipments. Results are sorted by placement time, oldest first.
func (h GetShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentsQuery,
) ([]GetShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_id,
			vehicle_id,
			stage,
			placed_at,
			failure_reason,
			verified_by
		FROM shipments
	`
	args := make([]any, 0, 2)
	if query.ActiveOnly() {
		sql += `
		WHERE stage NOT IN (?, ?)
		`
		args = append(args, shipment.StageDelivered, shipment.StageFailed)
	}
	sql += `
		ORDER BY placed_at
	`

	shipments := make([]GetShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var shipmentResp GetShipmentsQueryResponse
		var id, orderID, vehicleID uuid.UUID
		var stage int
		var placedAt time.Time

		err = rows.Scan(
			&id,
			&orderID,
			&vehicleID,
			&stage,
			&placedAt,
			&shipmentResp.FailureReason,
			&shipmentResp.VerifiedBy,
		)
		if err != nil {
			return nil, err
		}

		shipmentResp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		shipmentResp.OrderID, err = kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return nil, err
		}
		shipmentResp.VehicleID, err = kernel.UUIDFromBytes(vehicleID[:])
		if err != nil {
			return nil, err
		}

		shipmentResp.Stage = shipment.Stage(stage).String()
		shipmentResp.PlacedAt = placedAt

		shipments = append(shipments, shipmentResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
