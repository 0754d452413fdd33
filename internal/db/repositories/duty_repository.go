package repositories

import (
	"context"
	"time"

	"southern-cross/frms/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// DutyRepository handles duty_records table operations
type DutyRepository struct {
	db *gormlib.DB
}

func NewDutyRepository(db *gormlib.DB) *DutyRepository {
	return &DutyRepository{db: db}
}

// Insert stores a single duty record
func (r *DutyRepository) Insert(ctx context.Context, duty *gorm.DutyRecord) error {
	return r.db.WithContext(ctx).Create(duty).Error
}

// BatchInsert stores multiple duty records
func (r *DutyRepository) BatchInsert(ctx context.Context, duties []gorm.DutyRecord) error {
	return r.db.WithContext(ctx).CreateInBatches(duties, 100).Error
}

// FindByPilot returns all duty records for a pilot, newest first
func (r *DutyRepository) FindByPilot(ctx context.Context, pilotID string) ([]gorm.DutyRecord, error) {
	var duties []gorm.DutyRecord
	err := r.db.WithContext(ctx).
		Where("pilot_id = ?", pilotID).
		Order("sign_on DESC").
		Find(&duties).Error
	return duties, err
}

// FindByPilotSince returns duty records for a pilot with sign-on at or after
// the given instant, oldest first
func (r *DutyRepository) FindByPilotSince(ctx context.Context, pilotID string, since time.Time) ([]gorm.DutyRecord, error) {
	var duties []gorm.DutyRecord
	err := r.db.WithContext(ctx).
		Where("pilot_id = ? AND sign_on >= ?", pilotID, since).
		Order("sign_on ASC").
		Find(&duties).Error
	return duties, err
}

// FindLatest returns the most recent duty record for a pilot, or nil
func (r *DutyRepository) FindLatest(ctx context.Context, pilotID string) (*gorm.DutyRecord, error) {
	var duty gorm.DutyRecord
	err := r.db.WithContext(ctx).
		Where("pilot_id = ?", pilotID).
		Order("sign_off DESC").
		First(&duty).Error
	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &duty, nil
}

// FindOverlapping returns duty records for a pilot overlapping the span
func (r *DutyRepository) FindOverlapping(ctx context.Context, pilotID string, from, to time.Time) ([]gorm.DutyRecord, error) {
	var duties []gorm.DutyRecord
	err := r.db.WithContext(ctx).
		Where("pilot_id = ? AND sign_on < ? AND sign_off > ?", pilotID, to, from).
		Find(&duties).Error
	return duties, err
}
