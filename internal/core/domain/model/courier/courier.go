package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")

// Courier represents a delivery courier in the system. It is an aggregate
// root that manages courier identity, transport, region memberships, and
// working hours.
//
// Key responsibilities:
//   - Holding the transport type that determines carrying capacity and
//     earnings efficiency via static lookup
//   - Answering eligibility questions during order matching (weight limit,
//     region membership, working-hours overlap)
//   - Applying attribute patches; any patch must be followed by delivery
//     run reconciliation in the application layer
//
// Business rules:
//   - Transport type must be foot, bike or car
//   - Region memberships are a set: duplicates collapse, order of first
//     appearance is preserved
//   - A courier may have zero working windows; such a courier exists but
//     never receives an assignment
type Courier struct {
	// id uniquely identifies the courier
	id kernel.CourierID
	// transport determines capacity and earnings efficiency
	transport kernel.TransportType
	// regions are the regions the courier serves
	regions []kernel.RegionID
	// workingHours are the courier's working-time windows
	workingHours []kernel.TimeWindow
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified attributes.
// This is the only way to create a valid Courier instance.
//
// All attributes are validated; regions are deduplicated preserving the
// order of first appearance. An empty working-hours set is allowed: the
// courier simply never matches any order until hours are set.
func NewCourier(
	id kernel.CourierID,
	transport kernel.TransportType,
	regions []kernel.RegionID,
	workingHours []kernel.TimeWindow,
) (*Courier, error) {
	courier := &Courier{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.ChangeTransport(transport),
		courier.SetRegions(regions),
		courier.SetWorkingHours(workingHours),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
// The restored courier behaves identically to one created through
// NewCourier; the same validation applies.
func RestoreCourier(
	id kernel.CourierID,
	transport kernel.TransportType,
	regions []kernel.RegionID,
	workingHours []kernel.TimeWindow,
) (*Courier, error) {
	return NewCourier(id, transport, regions, workingHours)
}

// Validate checks if the Courier was properly constructed via NewCourier.
// The zero value of Courier is invalid and fails this validation.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id == other.id
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.CourierID {
	return c.id
}

// Transport returns the courier's current transport type.
func (c *Courier) Transport() kernel.TransportType {
	return c.transport
}

// Capacity returns the maximum total order weight the courier can carry,
// derived from the transport type.
func (c *Courier) Capacity() float64 {
	return c.transport.Capacity()
}

// Regions returns the courier's region memberships.
// The returned slice is a copy to prevent external modification.
func (c *Courier) Regions() []kernel.RegionID {
	out := make([]kernel.RegionID, len(c.regions))
	copy(out, c.regions)
	return out
}

// WorkingHours returns the courier's working-time windows.
// The returned slice is a copy to prevent external modification.
func (c *Courier) WorkingHours() []kernel.TimeWindow {
	out := make([]kernel.TimeWindow, len(c.workingHours))
	copy(out, c.workingHours)
	return out
}

// HasWorkingHours reports whether the courier has at least one working
// window. A courier without working hours never receives an assignment.
func (c *Courier) HasWorkingHours() bool {
	return len(c.workingHours) > 0
}

// ChangeTransport switches the courier to a new transport type.
// Capacity and earnings efficiency change with it; already-created runs
// keep the transport type snapshotted at assignment time.
func (c *Courier) ChangeTransport(transport kernel.TransportType) error {
	if err := transport.Validate(); err != nil {
		return err
	}

	c.transport = transport
	return nil
}

// SetRegions replaces the courier's region memberships.
// Duplicates collapse; order of first appearance is preserved.
func (c *Courier) SetRegions(regions []kernel.RegionID) error {
	deduped := make([]kernel.RegionID, 0, len(regions))
	seen := make(map[kernel.RegionID]struct{}, len(regions))
	for _, region := range regions {
		if _, ok := seen[region]; ok {
			continue
		}
		seen[region] = struct{}{}
		deduped = append(deduped, region)
	}

	c.regions = deduped
	return nil
}

// SetWorkingHours replaces the courier's working-time windows.
// Every window must be a properly constructed TimeWindow.
func (c *Courier) SetWorkingHours(workingHours []kernel.TimeWindow) error {
	for _, window := range workingHours {
		if err := window.Validate(); err != nil {
			return err
		}
	}

	out := make([]kernel.TimeWindow, len(workingHours))
	copy(out, workingHours)
	c.workingHours = out
	return nil
}

// CanCarry reports whether a single order of the given weight is within
// the transport's weight ceiling.
func (c *Courier) CanCarry(weight float64) bool {
	return weight <= c.Capacity()
}

// ServesRegion reports whether the courier is a member of the given region.
func (c *Courier) ServesRegion(region kernel.RegionID) bool {
	for _, r := range c.regions {
		if r == region {
			return true
		}
	}
	return false
}

// WorksDuring reports whether any of the courier's working windows
// overlaps any of the given delivery windows.
func (c *Courier) WorksDuring(deliveryHours []kernel.TimeWindow) bool {
	return kernel.AnyWindowsOverlap(c.workingHours, deliveryHours)
}
