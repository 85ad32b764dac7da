package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCompleteOrderCommandIsNotConstructed = errors.New(
		"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
	)
	ErrCompletedAtIsRequired = errors.New("completedAt is required")
)

// CompleteOrderCommand represents a request to mark one order of a
// courier's open run as delivered at a given instant.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	courierID   kernel.CourierID
	orderID     kernel.OrderID
	completedAt time.Time

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to complete an order. The
// timestamp is normalized to UTC; the boundary is responsible for
// rejecting zone-less input before it gets here.
func NewCompleteOrderCommand(
	courierID kernel.CourierID,
	orderID kernel.OrderID,
	completedAt time.Time,
) (CompleteOrderCommand, error) {
	if completedAt.IsZero() {
		return CompleteOrderCommand{}, ErrCompletedAtIsRequired
	}

	return CompleteOrderCommand{
		courierID:   courierID,
		orderID:     orderID,
		completedAt: completedAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// CourierID returns the identifier of the courier completing the order.
func (c CompleteOrderCommand) CourierID() kernel.CourierID {
	return c.courierID
}

// OrderID returns the identifier of the order being completed.
func (c CompleteOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// CompletedAt returns the completion instant in UTC.
func (c CompleteOrderCommand) CompletedAt() time.Time {
	return c.completedAt
}
