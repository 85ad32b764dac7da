package kernel

import (
	"math"

	"dispatch/internal/pkg/errs"
)

// Courier and order identifiers arrive with the input and must be
// non-negative 63-bit integers; region identifiers are bounded by a signed
// 32-bit integer. The bounds match the storage column types.

// CourierID identifies a courier.
type CourierID int64

// NewCourierID validates and returns a courier identifier.
func NewCourierID(id int64) (CourierID, error) {
	if id < 0 {
		return 0, errs.NewValueIsOutOfRangeError("courierId", id, 0, int64(math.MaxInt64))
	}
	return CourierID(id), nil
}

// Int64 returns the raw identifier value.
func (id CourierID) Int64() int64 {
	return int64(id)
}

// OrderID identifies an order.
type OrderID int64

// NewOrderID validates and returns an order identifier.
func NewOrderID(id int64) (OrderID, error) {
	if id < 0 {
		return 0, errs.NewValueIsOutOfRangeError("orderId", id, 0, int64(math.MaxInt64))
	}
	return OrderID(id), nil
}

// Int64 returns the raw identifier value.
func (id OrderID) Int64() int64 {
	return int64(id)
}

// RegionID identifies a delivery region. Regions are opaque: the engine
// only cares about membership, never about geometry.
type RegionID int32

// NewRegionID validates and returns a region identifier.
func NewRegionID(id int64) (RegionID, error) {
	if id < 0 || id > math.MaxInt32 {
		return 0, errs.NewValueIsOutOfRangeError("regionId", id, 0, int64(math.MaxInt32))
	}
	return RegionID(id), nil
}

// Int32 returns the raw identifier value.
func (id RegionID) Int32() int32 {
	return int32(id)
}
