package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Returns errs.ObjectAlreadyExistsError when the identifier is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// its delivery state and run attachment.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier, with delivery
	// windows. Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// GetAllUnassigned retrieves undelivered orders not attached to any run.
	// This is the candidate pool for assignment.
	GetAllUnassigned(ctx context.Context) ([]*order.Order, error)

	// GetAllByRun retrieves the orders attached to the given run,
	// delivered ones included.
	GetAllByRun(ctx context.Context, runID kernel.UUID) ([]*order.Order, error)
}
