// Package services provides domain services that coordinate business rules
// spanning multiple aggregates of the dispatch system.
//
// The package includes:
//   - Dispatcher: candidate filtering, greedy capacity packing and run
//     reconciliation after courier profile changes
//   - Rating / Earnings: pure scoring functions over delivery statistics
//
// Domain services hold no state of their own; they take aggregates as
// arguments and leave persistence to the application layer.
package services
