package gorm

import "time"

// FlightSector is an imported logbook sector as flown.
type FlightSector struct {
	ID                 string `gorm:"type:uuid;primaryKey"`
	PilotID            string `gorm:"index;not null"`
	Date               string `gorm:"type:varchar(10);index;not null"`
	Departure          string `gorm:"not null"`
	Arrival            string `gorm:"not null"`
	BlockTime          float64
	SimTime            float64
	Captain            string
	FirstOfficer       string
	SecondOfficer      string
	IsPositioning      bool
	ScheduledDeparture time.Time
	ActualArrival      time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (FlightSector) TableName() string {
	return "flight_sectors"
}
