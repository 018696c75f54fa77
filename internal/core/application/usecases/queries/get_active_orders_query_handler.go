package queries

import (
	"context"
	"database/sql"
	"time"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads a tenant's in-flight orders.
// Uses direct SQL for optimal read performance in the CQRS pattern; the
// driver display name is resolved with a join rather than stored on the
// order row.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are newest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_name,
			o.phone,
			o.address,
			o.status,
			o.driver_id,
			COALESCE(d.name, ''),
			o.total,
			o.destination_lat,
			o.destination_lng,
			o.created_at
		FROM orders o
		LEFT JOIN drivers d ON d.id = o.driver_id AND d.tenant_id = o.tenant_id
		WHERE o.tenant_id = ? AND o.status NOT IN (?, ?)
		ORDER BY o.created_at DESC
	`, query.TenantID().String(), order.Delivered.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var driverID uuid.NullUUID
		var lat, lng sql.NullFloat64
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&resp.CustomerName,
			&resp.Phone,
			&resp.Address,
			&resp.Status,
			&driverID,
			&resp.DriverName,
			&resp.Total,
			&lat,
			&lng,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.CreatedAt = createdAt

		if driverID.Valid {
			assigned, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.DriverID = &assigned
		}

		if lat.Valid && lng.Valid {
			resp.DestinationLat = &lat.Float64
			resp.DestinationLng = &lng.Float64
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
