// Package ports defines repository interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// Returns errs.ObjectAlreadyExistsError when the identifier is taken.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its identifier, with regions
	// and working hours. Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.CourierID) (*courier.Courier, error)

	// GetAllIDs retrieves the identifiers of all registered couriers.
	// Used by the assignment sweep to iterate the fleet.
	GetAllIDs(ctx context.Context) ([]kernel.CourierID, error)
}
