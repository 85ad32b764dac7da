package run

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrRunIsNotConstructed is returned when using an improperly initialized Run.
	ErrRunIsNotConstructed = errors.New("Run must be created via NewRun constructor")

	// ErrRunAlreadyCompleted is returned when mutating a completed run.
	// Completed is a terminal state.
	ErrRunAlreadyCompleted = errors.New("delivery run is already completed")

	// ErrCompletionNotAfterLastEvent is the ordering violation: completions
	// within a run must carry strictly increasing timestamps.
	ErrCompletionNotAfterLastEvent = errors.New("completion time must be strictly after the run's last event time")
)

// Run represents a delivery run: the batch of orders assigned to one
// courier by a single assignment, closed when every order in it is
// delivered.
//
// Key business rules:
//   - A courier has at most one open run at any time (enforced by the
//     application layer and a storage constraint, not by this aggregate)
//   - The transport type is snapshotted at assignment time; earnings for
//     the run use this snapshot even if the courier later changes vehicle
//   - The last event time starts at the assignment time and advances to
//     each completion timestamp; completions are strictly monotonic
type Run struct {
	// id uniquely identifies the run
	id kernel.UUID
	// courierID is the courier the run belongs to
	courierID kernel.CourierID
	// transport is the courier's transport type captured at assignment
	transport kernel.TransportType
	// assignedAt is the run creation timestamp (UTC)
	assignedAt time.Time
	// lastEventAt is the assignment time or the latest completion (UTC)
	lastEventAt time.Time
	// completed marks the run as closed
	completed bool
	// guard ensures the run was properly constructed
	guard guard.ConstructorGuard
}

// NewRun creates an open delivery run for a courier at the given
// assignment time. The last event time starts at the assignment time and
// the courier's current transport type is snapshotted.
func NewRun(
	courierID kernel.CourierID,
	transport kernel.TransportType,
	assignedAt time.Time,
) (*Run, error) {
	if err := transport.Validate(); err != nil {
		return nil, err
	}

	utc := assignedAt.UTC()
	return &Run{
		id:          kernel.NewUUID(),
		courierID:   courierID,
		transport:   transport,
		assignedAt:  utc,
		lastEventAt: utc,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreRun reconstructs a Run aggregate from persistent storage.
func RestoreRun(
	id kernel.UUID,
	courierID kernel.CourierID,
	transport kernel.TransportType,
	assignedAt time.Time,
	lastEventAt time.Time,
	completed bool,
) (*Run, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := transport.Validate(); err != nil {
		return nil, err
	}

	return &Run{
		id:          id,
		courierID:   courierID,
		transport:   transport,
		assignedAt:  assignedAt.UTC(),
		lastEventAt: lastEventAt.UTC(),
		completed:   completed,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Run was properly constructed via NewRun.
func (r *Run) Validate() error {
	if r == nil {
		return ErrRunIsNotConstructed
	}
	return r.guard.Validate(ErrRunIsNotConstructed)
}

// ID returns the unique identifier of the run.
func (r *Run) ID() kernel.UUID {
	return r.id
}

// CourierID returns the courier the run belongs to.
func (r *Run) CourierID() kernel.CourierID {
	return r.courierID
}

// Transport returns the transport type snapshotted at assignment time.
func (r *Run) Transport() kernel.TransportType {
	return r.transport
}

// AssignedAt returns the run creation timestamp.
func (r *Run) AssignedAt() time.Time {
	return r.assignedAt
}

// LastEventAt returns the assignment time or the latest completion time.
func (r *Run) LastEventAt() time.Time {
	return r.lastEventAt
}

// Completed reports whether the run is closed.
func (r *Run) Completed() bool {
	return r.completed
}

// AdvanceTo moves the run's completion clock to the given timestamp.
// The timestamp must be strictly later than the current last event time;
// otherwise ErrCompletionNotAfterLastEvent is returned and the clock is
// left unchanged.
func (r *Run) AdvanceTo(completedAt time.Time) error {
	if r.completed {
		return ErrRunAlreadyCompleted
	}

	utc := completedAt.UTC()
	if !utc.After(r.lastEventAt) {
		return ErrCompletionNotAfterLastEvent
	}

	r.lastEventAt = utc
	return nil
}

// Close marks the run as completed. Called when the last order in the run
// is delivered. Closing an already-completed run is an error.
func (r *Run) Close() error {
	if r.completed {
		return ErrRunAlreadyCompleted
	}

	r.completed = true
	return nil
}
