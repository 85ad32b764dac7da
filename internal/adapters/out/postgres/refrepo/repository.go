package refrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dispatch/internal/core/domain/model/kernel"
)

// GormRefRepository implements create-or-find for regions and time windows.
type GormRefRepository struct {
	db *gorm.DB
}

// NewGormRefRepository creates a new GORM reference-data repository.
func NewGormRefRepository(db *gorm.DB) *GormRefRepository {
	return &GormRefRepository{db: db}
}

// EnsureRegion makes sure the region row exists. A concurrent insert of
// the same region is not an error.
func (r *GormRefRepository) EnsureRegion(ctx context.Context, region kernel.RegionID) error {
	dto := RegionDTO{ID: region.Int32()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

// EnsureWindow makes sure the window row exists and returns its surrogate
// id. On conflict the existing row's id is fetched, so racing writers
// converge on the same row.
func (r *GormRefRepository) EnsureWindow(ctx context.Context, window kernel.TimeWindow) (int64, error) {
	dto := TimeWindowDTO{StartSec: window.Start(), EndSec: window.End()}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.WithContext(ctx).Raw(`
		SELECT id
		FROM time_windows
		WHERE start_sec = ? AND end_sec = ?
	`, window.Start(), window.End()).Row().Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}
