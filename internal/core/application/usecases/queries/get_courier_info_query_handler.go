package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// GetCourierInfoQueryHandler assembles a courier's read model straight
// from the database. Rating and earnings are derived here rather than
// stored; reads are not serialized with writes, slightly stale figures
// relative to the newest completion are acceptable.
type GetCourierInfoQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierInfoQueryHandler creates a handler for courier info queries.
func NewGetCourierInfoQueryHandler(db *gorm.DB) GetCourierInfoQueryHandler {
	return GetCourierInfoQueryHandler{db: db}
}

// Handle executes the query for one courier.
// Returns errs.ObjectNotFoundError when the courier does not exist.
func (h GetCourierInfoQueryHandler) Handle(
	ctx context.Context,
	query GetCourierInfoQuery,
) (GetCourierInfoQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierInfoQueryResponse{}, err
	}

	courierID := query.CourierID().Int64()

	var transport string
	err := h.db.WithContext(ctx).Raw(`
		SELECT transport
		FROM couriers
		WHERE id = ?
	`, courierID).Row().Scan(&transport)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return GetCourierInfoQueryResponse{}, errs.NewObjectNotFoundError("courierId", courierID)
	}
	if err != nil {
		return GetCourierInfoQueryResponse{}, err
	}

	transportType, err := kernel.TransportTypeFromString(transport)
	if err != nil {
		return GetCourierInfoQueryResponse{}, err
	}

	response := GetCourierInfoQueryResponse{
		CourierID: query.CourierID(),
		Transport: transportType,
	}

	if response.Regions, err = h.loadRegions(ctx, courierID); err != nil {
		return GetCourierInfoQueryResponse{}, err
	}
	if response.WorkingHours, err = h.loadWorkingHours(ctx, courierID); err != nil {
		return GetCourierInfoQueryResponse{}, err
	}
	if response.Rating, err = h.loadRating(ctx, courierID); err != nil {
		return GetCourierInfoQueryResponse{}, err
	}
	if response.Earnings, err = h.loadEarnings(ctx, courierID); err != nil {
		return GetCourierInfoQueryResponse{}, err
	}

	return response, nil
}

func (h GetCourierInfoQueryHandler) loadRegions(ctx context.Context, courierID int64) ([]kernel.RegionID, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT region_id
		FROM courier_regions
		WHERE courier_id = ?
		ORDER BY region_id
	`, courierID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regions := make([]kernel.RegionID, 0)
	for rows.Next() {
		var raw int64
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}
		region, regionErr := kernel.NewRegionID(raw)
		if regionErr != nil {
			return nil, regionErr
		}
		regions = append(regions, region)
	}

	return regions, rows.Err()
}

func (h GetCourierInfoQueryHandler) loadWorkingHours(ctx context.Context, courierID int64) ([]kernel.TimeWindow, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT w.start_sec, w.end_sec
		FROM courier_working_hours cwh
		JOIN time_windows w ON w.id = cwh.window_id
		WHERE cwh.courier_id = ?
		ORDER BY w.start_sec, w.end_sec
	`, courierID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]kernel.TimeWindow, 0)
	for rows.Next() {
		var start, end int
		if err = rows.Scan(&start, &end); err != nil {
			return nil, err
		}
		window, windowErr := kernel.NewTimeWindow(start, end)
		if windowErr != nil {
			return nil, windowErr
		}
		windows = append(windows, window)
	}

	return windows, rows.Err()
}

func (h GetCourierInfoQueryHandler) loadRating(ctx context.Context, courierID int64) (float64, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT o.region_id, AVG(o.completion_duration)
		FROM orders o
		JOIN runs r ON r.id = o.run_id
		WHERE r.courier_id = ? AND o.delivered
		GROUP BY o.region_id
	`, courierID).Rows()
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	means := make(map[kernel.RegionID]float64)
	for rows.Next() {
		var raw int64
		var mean float64
		if err = rows.Scan(&raw, &mean); err != nil {
			return 0, err
		}
		region, regionErr := kernel.NewRegionID(raw)
		if regionErr != nil {
			return 0, regionErr
		}
		means[region] = mean
	}
	if err = rows.Err(); err != nil {
		return 0, err
	}

	return services.Rating(means), nil
}

func (h GetCourierInfoQueryHandler) loadEarnings(ctx context.Context, courierID int64) (int64, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT transport
		FROM runs
		WHERE courier_id = ? AND completed
	`, courierID).Rows()
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	transports := make([]kernel.TransportType, 0)
	for rows.Next() {
		var raw string
		if err = rows.Scan(&raw); err != nil {
			return 0, err
		}
		transport, transportErr := kernel.TransportTypeFromString(raw)
		if transportErr != nil {
			return 0, transportErr
		}
		transports = append(transports, transport)
	}
	if err = rows.Err(); err != nil {
		return 0, err
	}

	return services.Earnings(transports), nil
}
