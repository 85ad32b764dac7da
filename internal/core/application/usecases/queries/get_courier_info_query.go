// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierInfoQueryIsNotConstructed = errors.New(
	"GetCourierInfoQuery must be created via NewGetCourierInfoQuery constructor",
)

// GetCourierInfoQuery retrieves a courier's profile together with the
// derived rating and earnings figures.
type GetCourierInfoQuery struct {
	courierID kernel.CourierID

	guard guard.ConstructorGuard
}

// NewGetCourierInfoQuery creates a query for one courier's info.
func NewGetCourierInfoQuery(courierID kernel.CourierID) GetCourierInfoQuery {
	return GetCourierInfoQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetCourierInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierInfoQueryIsNotConstructed)
}

// CourierID returns the identifier of the queried courier.
func (q GetCourierInfoQuery) CourierID() kernel.CourierID {
	return q.courierID
}

// GetCourierInfoQueryResponse is the read model for one courier. Rating is
// services.NoRating while the courier has no delivered orders; Earnings
// covers completed runs only, at the transport rate snapshotted per run.
type GetCourierInfoQueryResponse struct {
	CourierID    kernel.CourierID
	Transport    kernel.TransportType
	Regions      []kernel.RegionID
	WorkingHours []kernel.TimeWindow
	Rating       float64
	Earnings     int64
}
