package queries

import (
	"context"
	"database/sql"

	"gasexpress/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriversQueryHandler reads a tenant's fleet from the database.
type GetDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetDriversQueryHandler creates a handler for fleet retrieval queries.
func NewGetDriversQueryHandler(db *gorm.DB) GetDriversQueryHandler {
	return GetDriversQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by name for stable output.
func (h GetDriversQueryHandler) Handle(
	ctx context.Context,
	query GetDriversQuery,
) ([]GetDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]GetDriversQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			status,
			lat,
			lng
		FROM drivers
		WHERE tenant_id = ?
		ORDER BY name
	`, query.TenantID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetDriversQueryResponse
		var id uuid.UUID
		var lat, lng sql.NullFloat64

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Status,
			&lat,
			&lng,
		)
		if err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = driverID

		if lat.Valid && lng.Valid {
			resp.Lat = &lat.Float64
			resp.Lng = &lng.Float64
		}

		drivers = append(drivers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
