package gorm

import "time"

// DutyRecord is the persisted form of a computed duty period.
type DutyRecord struct {
	ID               string    `gorm:"type:uuid;primaryKey"`
	PilotID          string    `gorm:"index;not null"`
	Date             time.Time `gorm:"index;not null"`
	DutyType         string    `gorm:"not null"`
	CrewComplement   string    `gorm:"not null"`
	RestFacility     string    `gorm:"not null"`
	SignOn           time.Time `gorm:"not null"`
	SignOff          time.Time `gorm:"not null"`
	FlightTime       float64   `gorm:"not null"`
	NightTime        float64
	SectorCount      int
	IsInternational  bool
	HomeBaseTimeZone string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (DutyRecord) TableName() string {
	return "duty_records"
}
