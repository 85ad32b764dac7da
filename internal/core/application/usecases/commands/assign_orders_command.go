package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrdersCommandIsNotConstructed = errors.New(
	"AssignOrdersCommand must be created via NewAssignOrdersCommand constructor",
)

// AssignOrdersCommand represents a request to open a delivery run for one
// courier, packing unassigned orders into it.
type AssignOrdersCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.CourierID

	guard guard.ConstructorGuard
}

// NewAssignOrdersCommand creates a command to assign orders to a courier.
func NewAssignOrdersCommand(courierID kernel.CourierID) AssignOrdersCommand {
	return AssignOrdersCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AssignOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrdersCommandIsNotConstructed)
}

// CourierID returns the identifier of the courier being assigned.
func (c AssignOrdersCommand) CourierID() kernel.CourierID {
	return c.courierID
}

// AssignResult reports the outcome of an assignment. Assigned false means
// "no run": the courier has no working windows or nothing fits. That is an
// expected outcome, not an error.
type AssignResult struct {
	Assigned bool
	RunID    kernel.UUID
	OrderIDs []kernel.OrderID
}
