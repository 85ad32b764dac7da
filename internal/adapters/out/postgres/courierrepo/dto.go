// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence. Couriers reference regions and time windows by
// identifier through join tables; the aggregate itself stores no object
// graph.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
)

// CourierDTO represents the courier row.
type CourierDTO struct {
	ID        int64  `gorm:"primaryKey"`
	Transport string `gorm:"type:varchar(16);not null"`
}

// TableName overrides GORM's default naming to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

// CourierRegionDTO links a courier to a served region.
type CourierRegionDTO struct {
	CourierID int64 `gorm:"primaryKey"`
	RegionID  int32 `gorm:"primaryKey"`
}

// TableName overrides GORM's default naming to use "courier_regions".
func (CourierRegionDTO) TableName() string {
	return "courier_regions"
}

// CourierWorkingHourDTO links a courier to a deduplicated time window row.
type CourierWorkingHourDTO struct {
	CourierID int64 `gorm:"primaryKey"`
	WindowID  int64 `gorm:"primaryKey"`
}

// TableName overrides GORM's default naming to use "courier_working_hours".
func (CourierWorkingHourDTO) TableName() string {
	return "courier_working_hours"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:        aggregate.ID().Int64(),
		Transport: aggregate.Transport().String(),
	}
}
