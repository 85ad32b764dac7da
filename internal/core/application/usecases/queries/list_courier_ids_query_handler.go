package queries

import (
	"context"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
)

// ListCourierIDsQueryHandler reads the courier id list from the database.
type ListCourierIDsQueryHandler struct {
	db *gorm.DB
}

// NewListCourierIDsQueryHandler creates a handler for courier id listing.
func NewListCourierIDsQueryHandler(db *gorm.DB) ListCourierIDsQueryHandler {
	return ListCourierIDsQueryHandler{db: db}
}

// Handle executes the query. Returns identifiers sorted ascending.
func (h ListCourierIDsQueryHandler) Handle(
	ctx context.Context,
	query ListCourierIDsQuery,
) ([]kernel.CourierID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id
		FROM couriers
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]kernel.CourierID, 0)
	for rows.Next() {
		var raw int64
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, idErr := kernel.NewCourierID(raw)
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
