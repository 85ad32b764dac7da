package runrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/run"
	"dispatch/internal/pkg/errs"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormRunRepository creates a new GORM run repository.
func NewGormRunRepository(db *gorm.DB, tracker aggregateTracker) *GormRunRepository {
	return &GormRunRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new run to the database.
func (r *GormRunRepository) Add(ctx context.Context, aggregate *run.Run) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing run's clock and completion state.
func (r *GormRunRepository) Update(ctx context.Context, aggregate *run.Run) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("runId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a run by ID.
func (r *GormRunRepository) Get(ctx context.Context, id kernel.UUID) (*run.Run, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RunDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("runId", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenByCourier retrieves the courier's open run, if any.
func (r *GormRunRepository) GetOpenByCourier(ctx context.Context, courierID kernel.CourierID) (*run.Run, error) {
	var dto RunDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ? AND completed = ?", courierID.Int64(), false).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("courierId", courierID.Int64())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a run emptied by reconciliation.
func (r *GormRunRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&RunDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("runId", id.String())
	}

	return nil
}

func toDomain(dto RunDTO) (*run.Run, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.NewCourierID(dto.CourierID)
	if err != nil {
		return nil, err
	}
	transport, err := kernel.TransportTypeFromString(dto.Transport)
	if err != nil {
		return nil, err
	}

	return run.RestoreRun(id, courierID, transport, dto.AssignedAt, dto.LastEventAt, dto.Completed)
}
