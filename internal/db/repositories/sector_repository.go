package repositories

import (
	"context"

	"southern-cross/frms/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// SectorRepository handles flight_sectors table operations
type SectorRepository struct {
	db *gormlib.DB
}

func NewSectorRepository(db *gormlib.DB) *SectorRepository {
	return &SectorRepository{db: db}
}

// Insert stores a single sector
func (r *SectorRepository) Insert(ctx context.Context, sector *gorm.FlightSector) error {
	return r.db.WithContext(ctx).Create(sector).Error
}

// BatchInsert stores multiple sectors
func (r *SectorRepository) BatchInsert(ctx context.Context, sectors []gorm.FlightSector) error {
	return r.db.WithContext(ctx).CreateInBatches(sectors, 100).Error
}

// FindByPilot returns all sectors for a pilot, newest flying date first
func (r *SectorRepository) FindByPilot(ctx context.Context, pilotID string) ([]gorm.FlightSector, error) {
	var sectors []gorm.FlightSector
	err := r.db.WithContext(ctx).
		Where("pilot_id = ?", pilotID).
		Order("date DESC").
		Find(&sectors).Error
	return sectors, err
}

// FindByPilotSinceDate returns sectors flown on or after the given date
// string, oldest first
func (r *SectorRepository) FindByPilotSinceDate(ctx context.Context, pilotID, sinceDate string) ([]gorm.FlightSector, error) {
	var sectors []gorm.FlightSector
	err := r.db.WithContext(ctx).
		Where("pilot_id = ? AND date >= ?", pilotID, sinceDate).
		Order("date ASC").
		Find(&sectors).Error
	return sectors, err
}

// FindMatching returns sectors for a pilot on a date between the given
// airports. Used to detect duplicates on import.
func (r *SectorRepository) FindMatching(ctx context.Context, pilotID, date, departure, arrival string) ([]gorm.FlightSector, error) {
	var sectors []gorm.FlightSector
	err := r.db.WithContext(ctx).
		Where("pilot_id = ? AND date = ? AND UPPER(departure) = UPPER(?) AND UPPER(arrival) = UPPER(?)",
			pilotID, date, departure, arrival).
		Find(&sectors).Error
	return sectors, err
}
