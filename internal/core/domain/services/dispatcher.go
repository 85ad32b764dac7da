package services

import (
	"sort"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

// Dispatcher is a domain service responsible for matching unassigned
// orders to a courier and for re-evaluating a run's membership after a
// courier attribute change.
//
// Matching happens in two stages:
//   - SelectCandidates filters the order pool by the courier's
//     constraints: per-order weight ceiling, region membership, and
//     working-hours overlap
//   - Pack greedily fills the courier's carrying capacity from the
//     candidates, heaviest first
//
// The packer is a deliberate best-effort heuristic, not a combinatorial
// optimizer: it guarantees the capacity invariant, not a weight-optimal
// subset.
type Dispatcher struct{}

// NewDispatcher creates a new Dispatcher instance.
func NewDispatcher() Dispatcher {
	return Dispatcher{}
}

// SelectCandidates filters the order pool down to orders the courier is
// eligible to deliver. An order qualifies when it is undelivered,
// unassigned, within the transport's weight ceiling, in one of the
// courier's regions, and at least one of its delivery windows overlaps
// at least one of the courier's working windows.
//
// The result carries no ordering guarantee; ordering is imposed by Pack.
func (d Dispatcher) SelectCandidates(c *courier.Courier, pool []*order.Order) ([]*order.Order, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]*order.Order, 0, len(pool))
	for _, o := range pool {
		if err := o.Validate(); err != nil {
			return nil, err
		}

		if o.Delivered() || o.IsAssigned() {
			continue
		}
		if !d.fits(c, o) {
			continue
		}

		candidates = append(candidates, o)
	}

	return candidates, nil
}

// Pack greedily selects a subset of candidates whose total weight does
// not exceed the capacity. Candidates are sorted by weight descending
// (stable, so equal weights keep their prior relative order) and an order
// that would exceed the remaining capacity is skipped, not a stopping
// point: a later, lighter order may still fit.
//
// Returns an empty list when no candidate fits; the caller treats that as
// "no assignment possible".
func (d Dispatcher) Pack(candidates []*order.Order, capacity float64) []*order.Order {
	sorted := make([]*order.Order, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight() > sorted[j].Weight()
	})

	packed := make([]*order.Order, 0, len(sorted))
	total := 0.0
	for _, o := range sorted {
		if total+o.Weight() > capacity {
			continue
		}
		total += o.Weight()
		packed = append(packed, o)
	}

	return packed
}

// ReconcileRun re-evaluates a run's currently held orders against the
// courier's new attributes. Only the held undelivered orders are
// considered: reconciliation never adds orders to an existing run, it
// only removes ones that no longer fit. Delivered orders are never
// touched.
//
// Returns the undelivered orders to keep and the ones to detach.
func (d Dispatcher) ReconcileRun(
	c *courier.Courier,
	held []*order.Order,
) (keep, detach []*order.Order, err error) {
	if err = c.Validate(); err != nil {
		return nil, nil, err
	}

	undelivered := make([]*order.Order, 0, len(held))
	for _, o := range held {
		if err = o.Validate(); err != nil {
			return nil, nil, err
		}
		if o.Delivered() {
			continue
		}
		undelivered = append(undelivered, o)
	}

	stillFitting := make([]*order.Order, 0, len(undelivered))
	for _, o := range undelivered {
		if d.fits(c, o) {
			stillFitting = append(stillFitting, o)
		}
	}

	keep = d.Pack(stillFitting, c.Capacity())

	kept := make(map[*order.Order]struct{}, len(keep))
	for _, o := range keep {
		kept[o] = struct{}{}
	}
	detach = make([]*order.Order, 0, len(undelivered)-len(keep))
	for _, o := range undelivered {
		if _, ok := kept[o]; !ok {
			detach = append(detach, o)
		}
	}

	return keep, detach, nil
}

// fits checks the courier-side constraints shared by candidate selection
// and reconciliation: weight ceiling, region membership, window overlap.
func (d Dispatcher) fits(c *courier.Courier, o *order.Order) bool {
	return c.CanCarry(o.Weight()) &&
		c.ServesRegion(o.Region()) &&
		c.WorksDuring(o.DeliveryHours())
}
