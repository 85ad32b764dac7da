// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. An order references its region and delivery
// windows by identifier and, while attached, its run by uuid.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/order"
)

// OrderDTO represents the order row, including delivery state.
type OrderDTO struct {
	ID                 int64      `gorm:"primaryKey"`
	Weight             float64    `gorm:"not null"`
	RegionID           int32      `gorm:"not null;index"`
	Delivered          bool       `gorm:"not null;index"`
	CompletedAt        *time.Time `gorm:""`
	CompletionDuration *int64     `gorm:""`
	RunID              *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderDeliveryHourDTO links an order to a deduplicated time window row.
type OrderDeliveryHourDTO struct {
	OrderID  int64 `gorm:"primaryKey"`
	WindowID int64 `gorm:"primaryKey"`
}

// TableName overrides GORM's default naming to use "order_delivery_hours".
func (OrderDeliveryHourDTO) TableName() string {
	return "order_delivery_hours"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:        aggregate.ID().Int64(),
		Weight:    aggregate.Weight(),
		RegionID:  aggregate.Region().Int32(),
		Delivered: aggregate.Delivered(),
	}

	if completedAt := aggregate.CompletedAt(); completedAt != nil {
		dto.CompletedAt = completedAt
	}
	if duration := aggregate.CompletionDuration(); duration != nil {
		dto.CompletionDuration = duration
	}
	if runID := aggregate.RunID(); runID != nil {
		raw := runID.Bytes()
		dto.RunID = &raw
	}

	return dto
}
