// Package order provides the Order aggregate for the dispatch engine.
//
// An order carries a weight, a delivery region, and one or more delivery
// windows. During matching an order can be attached to a courier's
// delivery run; completion marks it delivered, records the completion
// timestamp and duration, and makes it immutable.
//
// Key business rules:
//   - Weight must be within [0.01, 50] inclusive
//   - At least one delivery window is required
//   - An order belongs to at most one open delivery run at a time
//   - A delivered order never re-enters matching
package order
