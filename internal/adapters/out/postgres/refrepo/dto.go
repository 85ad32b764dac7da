// Package refrepo persists the shared reference rows orders and couriers
// point at: delivery regions and time windows. Both are created on first
// use with an insert-or-fetch-on-conflict pattern, so concurrent writers
// hitting the same region or window never fail on the unique constraint.
package refrepo

// RegionDTO represents a delivery region row. The identifier is the
// natural key supplied by clients.
type RegionDTO struct {
	ID int32 `gorm:"primaryKey"`
}

// TableName overrides GORM's default naming to use "regions".
func (RegionDTO) TableName() string {
	return "regions"
}

// TimeWindowDTO represents a deduplicated time window row, keyed by its
// (start, end) bounds in seconds since midnight.
type TimeWindowDTO struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	StartSec int   `gorm:"not null;uniqueIndex:idx_time_window_bounds"`
	EndSec   int   `gorm:"not null;uniqueIndex:idx_time_window_bounds"`
}

// TableName overrides GORM's default naming to use "time_windows".
func (TimeWindowDTO) TableName() string {
	return "time_windows"
}
