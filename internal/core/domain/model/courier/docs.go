// Package courier provides the Courier aggregate for the dispatch engine.
//
// A courier is described by a transport type (foot, bike or car), a set of
// region memberships, and a set of working-time windows. The transport type
// determines carrying capacity and earnings efficiency through a static
// lookup; regions and windows drive order matching.
//
// Key business rules:
//   - Couriers must have a valid non-negative identifier and a known
//     transport type
//   - Region memberships behave as a set
//   - Updating transport, regions or working hours invalidates the
//     courier's open delivery run contents; callers must reconcile the run
//     after applying a patch
//
// The package follows Domain-Driven Design principles, providing rich
// domain behavior, encapsulation, and validation to ensure business rules
// are enforced.
package courier
