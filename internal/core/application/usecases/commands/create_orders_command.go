package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrdersCommandIsNotConstructed = errors.New(
		"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
	)
	ErrOrdersAreRequired      = errors.New("at least one order is required")
	ErrDuplicateOrderID       = errors.New("duplicate order id in batch")
	ErrOrderDraftIsIncomplete = errors.New("order draft requires at least one delivery window")
)

// OrderDraft is one order of a creation batch: identifier, weight, region
// and delivery windows, parsed into domain values by the caller. Weight
// range checks happen in the order aggregate during handling.
type OrderDraft struct {
	orderID       kernel.OrderID
	weight        float64
	region        kernel.RegionID
	deliveryHours []kernel.TimeWindow
}

// NewOrderDraft creates a draft for one order of the batch.
func NewOrderDraft(
	orderID kernel.OrderID,
	weight float64,
	region kernel.RegionID,
	deliveryHours []kernel.TimeWindow,
) (OrderDraft, error) {
	if len(deliveryHours) == 0 {
		return OrderDraft{}, ErrOrderDraftIsIncomplete
	}
	for _, window := range deliveryHours {
		if err := window.Validate(); err != nil {
			return OrderDraft{}, err
		}
	}

	return OrderDraft{
		orderID:       orderID,
		weight:        weight,
		region:        region,
		deliveryHours: deliveryHours,
	}, nil
}

// OrderID returns the draft's order identifier.
func (d OrderDraft) OrderID() kernel.OrderID {
	return d.orderID
}

// Weight returns the draft's weight in kilograms.
func (d OrderDraft) Weight() float64 {
	return d.weight
}

// Region returns the draft's delivery region.
func (d OrderDraft) Region() kernel.RegionID {
	return d.region
}

// DeliveryHours returns the draft's delivery windows.
func (d OrderDraft) DeliveryHours() []kernel.TimeWindow {
	return d.deliveryHours
}

// CreateOrdersCommand represents a request to create a batch of orders.
// The batch is all-or-nothing: one malformed order or one identifier
// collision rejects the whole batch.
type CreateOrdersCommand struct { //nolint:recvcheck //using for validation
	drafts []OrderDraft

	guard guard.ConstructorGuard
}

// NewCreateOrdersCommand creates a command to register a batch of orders.
// The batch must be non-empty and free of duplicate identifiers.
func NewCreateOrdersCommand(drafts []OrderDraft) (CreateOrdersCommand, error) {
	command := CreateOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setDrafts(drafts); err != nil {
		return CreateOrdersCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}

// Drafts returns the order drafts of the batch.
func (c CreateOrdersCommand) Drafts() []OrderDraft {
	return c.drafts
}

func (c *CreateOrdersCommand) setDrafts(drafts []OrderDraft) error {
	if len(drafts) == 0 {
		return ErrOrdersAreRequired
	}

	seen := make(map[kernel.OrderID]struct{}, len(drafts))
	for _, draft := range drafts {
		if _, ok := seen[draft.OrderID()]; ok {
			return ErrDuplicateOrderID
		}
		seen[draft.OrderID()] = struct{}{}
	}

	c.drafts = drafts
	return nil
}
