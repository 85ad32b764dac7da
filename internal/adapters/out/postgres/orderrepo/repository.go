package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/adapters/out/postgres/refrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	refs    *refrepo.GormRefRepository
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		refs:    refrepo.NewGormRefRepository(db),
		tracker: tracker,
	}
}

// Add saves a new order to the database. A taken identifier surfaces as
// errs.ObjectAlreadyExistsError.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if err := r.refs.EnsureRegion(ctx, aggregate.Region()); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("orderId", aggregate.ID().Int64(), err)
		}
		return err
	}

	for _, window := range aggregate.DeliveryHours() {
		windowID, err := r.refs.EnsureWindow(ctx, window)
		if err != nil {
			return err
		}
		link := OrderDeliveryHourDTO{OrderID: dto.ID, WindowID: windowID}
		if err = r.db.WithContext(ctx).Create(&link).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order's delivery state and run attachment.
// Delivery windows never change after creation, the links stay put.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID().Int64())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its delivery windows.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("orderId", id.Int64())
	}
	if err != nil {
		return nil, err
	}

	return r.toDomain(ctx, dto)
}

// GetAllUnassigned retrieves undelivered orders without a run attachment.
func (r *GormOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("delivered = ? AND run_id IS NULL", false).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(ctx, dtos)
}

// GetAllByRun retrieves the orders attached to the given run.
func (r *GormOrderRepository) GetAllByRun(ctx context.Context, runID kernel.UUID) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID.Bytes()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(ctx, dtos)
}

func (r *GormOrderRepository) toDomainAll(ctx context.Context, dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := r.toDomain(ctx, dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

func (r *GormOrderRepository) toDomain(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	id, err := kernel.NewOrderID(dto.ID)
	if err != nil {
		return nil, err
	}
	region, err := kernel.NewRegionID(int64(dto.RegionID))
	if err != nil {
		return nil, err
	}

	deliveryHours, err := r.loadDeliveryHours(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	var runID *kernel.UUID
	if dto.RunID != nil {
		restored, uuidErr := kernel.UUIDFromBytes((*dto.RunID)[:])
		if uuidErr != nil {
			return nil, uuidErr
		}
		runID = &restored
	}

	return order.RestoreOrder(
		id,
		dto.Weight,
		region,
		deliveryHours,
		dto.Delivered,
		dto.CompletedAt,
		dto.CompletionDuration,
		runID,
	)
}

func (r *GormOrderRepository) loadDeliveryHours(ctx context.Context, orderID int64) ([]kernel.TimeWindow, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT w.start_sec, w.end_sec
		FROM order_delivery_hours odh
		JOIN time_windows w ON w.id = odh.window_id
		WHERE odh.order_id = ?
		ORDER BY w.start_sec, w.end_sec
	`, orderID).Rows()
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
