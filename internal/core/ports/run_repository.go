package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/run"
)

// RunRepository defines the persistence contract for delivery run aggregates.
type RunRepository interface {
	// Add persists a new run aggregate to storage.
	Add(ctx context.Context, aggregate *run.Run) error

	// Update persists changes to an existing run aggregate.
	Update(ctx context.Context, aggregate *run.Run) error

	// Get retrieves a run aggregate by its identifier.
	// Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*run.Run, error)

	// GetOpenByCourier retrieves the courier's open run.
	// A courier has at most one open run at a time.
	// Returns errs.ObjectNotFoundError when the courier has none.
	GetOpenByCourier(ctx context.Context, courierID kernel.CourierID) (*run.Run, error)

	// Delete removes a run that lost all of its orders during
	// reconciliation. Only open runs are ever deleted.
	Delete(ctx context.Context, id kernel.UUID) error
}
