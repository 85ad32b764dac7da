package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Weight bounds for a single order, inclusive.
const (
	MinWeight = 0.01
	MaxWeight = 50.0
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderAlreadyDelivered is returned when mutating a delivered order.
	// Delivered orders are immutable and excluded from all further matching.
	ErrOrderAlreadyDelivered = errors.New("order is already delivered")

	// ErrOrderAlreadyAssigned is returned when attaching an order that is
	// already held by a different delivery run.
	ErrOrderAlreadyAssigned = errors.New("order is already attached to a delivery run")

	// ErrDeliveryHoursAreRequired is returned when creating an order
	// without any delivery window.
	ErrDeliveryHoursAreRequired = errs.NewValueIsRequiredError("deliveryHours")
)

// Order represents a delivery order. It is the aggregate root managing the
// order lifecycle from creation through run attachment to completion.
//
// Order follows these invariants:
//   - Weight is within [0.01, 50] inclusive
//   - At least one delivery window is present
//   - The order belongs to at most one open delivery run at a time
//   - Once delivered the order is immutable: the completion timestamp and
//     duration are set exactly once
type Order struct {
	// id is the unique identifier for the order
	id kernel.OrderID

	// weight is the order weight counted against run capacity
	weight float64

	// region is the delivery region
	region kernel.RegionID

	// deliveryHours are the acceptable delivery windows
	deliveryHours []kernel.TimeWindow

	// delivered marks the order as completed
	delivered bool

	// completedAt is the completion timestamp (UTC), set on delivery
	completedAt *time.Time

	// completionDuration is the time in whole seconds between the run's
	// previous event and this order's completion, set once on delivery
	completionDuration *int64

	// runID references the delivery run currently holding the order
	runID *kernel.UUID

	// guard ensures the order was created via NewOrder
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order with validation. This is the only way to
// create a valid unassigned Order.
func NewOrder(
	id kernel.OrderID,
	weight float64,
	region kernel.RegionID,
	deliveryHours []kernel.TimeWindow,
) (*Order, error) {
	order := &Order{
		id:     id,
		region: region,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setWeight(weight),
		order.setDeliveryHours(deliveryHours),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// including its delivery state and run attachment.
func RestoreOrder(
	id kernel.OrderID,
	weight float64,
	region kernel.RegionID,
	deliveryHours []kernel.TimeWindow,
	delivered bool,
	completedAt *time.Time,
	completionDuration *int64,
	runID *kernel.UUID,
) (*Order, error) {
	order, err := NewOrder(id, weight, region, deliveryHours)
	if err != nil {
		return nil, err
	}

	order.delivered = delivered
	if completedAt != nil {
		utc := completedAt.UTC()
		order.completedAt = &utc
	}
	if completionDuration != nil {
		duration := *completionDuration
		order.completionDuration = &duration
	}
	if runID != nil {
		if err = runID.Validate(); err != nil {
			return nil, err
		}
		id := *runID
		order.runID = &id
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// Weight returns the order weight counted against run capacity.
func (o *Order) Weight() float64 {
	return o.weight
}

// Region returns the order's delivery region.
func (o *Order) Region() kernel.RegionID {
	return o.region
}

// DeliveryHours returns the acceptable delivery windows.
// The returned slice is a copy to prevent external modification.
func (o *Order) DeliveryHours() []kernel.TimeWindow {
	out := make([]kernel.TimeWindow, len(o.deliveryHours))
	copy(out, o.deliveryHours)
	return out
}

// Delivered reports whether the order has been completed.
func (o *Order) Delivered() bool {
	return o.delivered
}

// CompletedAt returns the completion timestamp, or nil while undelivered.
func (o *Order) CompletedAt() *time.Time {
	if o.completedAt == nil {
		return nil
	}
	t := *o.completedAt
	return &t
}

// CompletionDuration returns the completion duration in seconds, or nil
// while undelivered.
func (o *Order) CompletionDuration() *int64 {
	if o.completionDuration == nil {
		return nil
	}
	d := *o.completionDuration
	return &d
}

// RunID returns the delivery run currently holding the order, or nil when
// the order is unassigned.
func (o *Order) RunID() *kernel.UUID {
	if o.runID == nil {
		return nil
	}
	id := *o.runID
	return &id
}

// IsAssigned reports whether the order is attached to a delivery run.
func (o *Order) IsAssigned() bool {
	return o.runID != nil
}

// AssignToRun attaches the order to a delivery run.
// Attaching to the run it already belongs to is a no-op; attaching a
// delivered order or one held by another run is an error.
func (o *Order) AssignToRun(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}
	if o.delivered {
		return ErrOrderAlreadyDelivered
	}
	if o.runID != nil {
		if o.runID.IsEqual(runID) {
			return nil
		}
		return ErrOrderAlreadyAssigned
	}

	o.runID = &runID
	return nil
}

// Detach releases the order from its delivery run, making it eligible for
// future assignment to any courier. Detaching a delivered order is an
// error; detaching an unassigned order is a no-op.
func (o *Order) Detach() error {
	if o.delivered {
		return ErrOrderAlreadyDelivered
	}

	o.runID = nil
	return nil
}

// Complete marks the order as delivered at the given timestamp.
// The completion duration is the elapsed time since the run's previous
// event. Both timestamps are normalized to UTC. The completion data is
// set exactly once: completing a delivered order is an error.
func (o *Order) Complete(completedAt, since time.Time) error {
	if o.delivered {
		return ErrOrderAlreadyDelivered
	}

	utc := completedAt.UTC()
	duration := int64(utc.Sub(since.UTC()).Seconds())

	o.delivered = true
	o.completedAt = &utc
	o.completionDuration = &duration
	return nil
}

func (o *Order) setWeight(weight float64) error {
	if weight < MinWeight || weight > MaxWeight {
		return errs.NewValueIsOutOfRangeError("weight", weight, MinWeight, MaxWeight)
	}

	o.weight = weight
	return nil
}

func (o *Order) setDeliveryHours(deliveryHours []kernel.TimeWindow) error {
	if len(deliveryHours) == 0 {
		return ErrDeliveryHoursAreRequired
	}
	for _, window := range deliveryHours {
		if err := window.Validate(); err != nil {
			return err
		}
	}

	out := make([]kernel.TimeWindow, len(deliveryHours))
	copy(out, deliveryHours)
	o.deliveryHours = out
	return nil
}
