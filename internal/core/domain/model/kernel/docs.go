// Package kernel provides core domain primitives for the dispatch engine.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for delivery run identifiers
//   - CourierID, OrderID, RegionID: bounded numeric identifiers
//   - TimeWindow: A time-of-day interval with the overlap predicate used
//     for courier/order matching
//   - TransportType: The foot/bike/car enumeration carrying capacity and
//     earnings efficiency lookups
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// safe for concurrent use.
package kernel
