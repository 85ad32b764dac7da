package courierrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/adapters/out/postgres/refrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	refs    *refrepo.GormRefRepository
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		refs:    refrepo.NewGormRefRepository(db),
		tracker: tracker,
	}
}

// Add saves a new courier to the database. A taken identifier surfaces as
// errs.ObjectAlreadyExistsError.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("courierId", aggregate.ID().Int64(), err)
		}
		return err
	}

	if err := r.saveLinks(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing courier and rewrites its region and working
// hour links.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	courierID := aggregate.ID().Int64()
	if err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID).Delete(&CourierRegionDTO{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID).Delete(&CourierWorkingHourDTO{}).Error; err != nil {
		return err
	}

	if err := r.saveLinks(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier by ID with its regions and working hours.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.CourierID) (*courier.Courier, error) {
	var dto CourierDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("courierId", id.Int64())
	}
	if err != nil {
		return nil, err
	}

	transport, err := kernel.TransportTypeFromString(dto.Transport)
	if err != nil {
		return nil, err
	}

	regions, err := r.loadRegions(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	workingHours, err := r.loadWorkingHours(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, transport, regions, workingHours)
}

// GetAllIDs retrieves the identifiers of every registered courier.
func (r *GormCourierRepository) GetAllIDs(ctx context.Context) ([]kernel.CourierID, error) {
	var raw []int64
	if err := r.db.WithContext(ctx).
		Model(&CourierDTO{}).Order("id").Pluck("id", &raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.CourierID, 0, len(raw))
	for _, v := range raw {
		id, err := kernel.NewCourierID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *GormCourierRepository) saveLinks(ctx context.Context, aggregate *courier.Courier) error {
	courierID := aggregate.ID().Int64()

	for _, region := range aggregate.Regions() {
		if err := r.refs.EnsureRegion(ctx, region); err != nil {
			return err
		}
		link := CourierRegionDTO{CourierID: courierID, RegionID: region.Int32()}
		if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
			return err
		}
	}

	for _, window := range aggregate.WorkingHours() {
		windowID, err := r.refs.EnsureWindow(ctx, window)
		if err != nil {
			return err
		}
		link := CourierWorkingHourDTO{CourierID: courierID, WindowID: windowID}
		if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *GormCourierRepository) loadRegions(ctx context.Context, courierID int64) ([]kernel.RegionID, error) {
	var raw []int64
	if err := r.db.WithContext(ctx).
		Model(&CourierRegionDTO{}).
		Where("courier_id = ?", courierID).
		Order("region_id").
		Pluck("region_id", &raw).Error; err != nil {
		return nil, err
	}

	regions := make([]kernel.RegionID, 0, len(raw))
	for _, v := range raw {
		region, err := kernel.NewRegionID(v)
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}

	return regions, nil
}

func (r *GormCourierRepository) loadWorkingHours(ctx context.Context, courierID int64) ([]kernel.TimeWindow, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
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
