// Package runrepo provides data transfer objects and mapping functions
// for delivery run persistence. The row snapshots the courier's transport
// type at assignment time; earnings derivation depends on that snapshot
// staying immutable.
package runrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/run"
)

// RunDTO represents the delivery run row.
type RunDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID   int64     `gorm:"not null;index"`
	Transport   string    `gorm:"type:varchar(16);not null"`
	AssignedAt  time.Time `gorm:"not null"`
	LastEventAt time.Time `gorm:"not null"`
	Completed   bool      `gorm:"not null;index"`
}

// TableName overrides GORM's default naming to use "runs".
func (RunDTO) TableName() string {
	return "runs"
}

func fromDomain(aggregate *run.Run) RunDTO {
	return RunDTO{
		ID:          aggregate.ID().Bytes(),
		CourierID:   aggregate.CourierID().Int64(),
		Transport:   aggregate.Transport().String(),
		AssignedAt:  aggregate.AssignedAt(),
		LastEventAt: aggregate.LastEventAt(),
		Completed:   aggregate.Completed(),
	}
}
