package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler retrieves the unplanned order backlog from the
// database. Uses direct SQL for read performance in the CQRS pattern.
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingOrdersQueryHandler creates a handler for backlog queries.
// Requires a GORM database connection for query execution.
func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all pending orders.
// Results are sorted by the delivery deadline, most urgent first.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			warehouse_id,
			destination_lat,
			destination_lng,
			weight,
			window_earliest,
			window_latest
		FROM orders
		WHERE status = ?
		ORDER BY window_latest
	`, order.Pending).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetPendingOrdersQueryResponse
		var id, warehouseID uuid.UUID
		var lat, lng float64
		var earliest, latest time.Time

		err = rows.Scan(
			&id,
			&warehouseID,
			&lat,
			&lng,
			&orderResp.Weight,
			&earliest,
			&latest,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		originID, idErr := kernel.UUIDFromBytes(warehouseID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.WarehouseID = originID

		destination, locErr := kernel.NewGeoLocation(lat, lng)
		if locErr != nil {
			return nil, locErr
		}
		orderResp.Destination = destination

		window, winErr := kernel.NewTimeWindow(earliest, latest)
		if winErr != nil {
			return nil, winErr
		}
		orderResp.Window = window

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
