package models

import "time"

// DutyRecord is a single sign-on to sign-off period for a crew member.
// All instants are absolute; local interpretation always happens in the
// home-base zone, never the device zone.
type DutyRecord struct {
	ID               string         `json:"id,omitempty"`
	Date             time.Time      `json:"date"`
	DutyType         DutyType       `json:"duty_type"`
	CrewComplement   CrewComplement `json:"crew_complement"`
	RestFacility     RestFacility   `json:"rest_facility"`
	SignOn           time.Time      `json:"sign_on"`
	SignOff          time.Time      `json:"sign_off"`
	FlightTime       float64        `json:"flight_time"`
	NightTime        float64        `json:"night_time"`
	SectorCount      int            `json:"sector_count"`
	IsInternational  bool           `json:"is_international"`
	HomeBaseTimeZone string         `json:"home_base_time_zone,omitempty"`
}

// DutyHours returns the duty period length in hours.
func (d DutyRecord) DutyHours() float64 {
	return d.SignOff.Sub(d.SignOn).Hours()
}

// IsValid reports whether the record is usable: sign-off after sign-on
// and flight time within the duty span.
// Invalid records are skipped by aggregation, never fatal.
func (d DutyRecord) IsValid() bool {
	if !d.SignOff.After(d.SignOn) {
		return false
	}
	if d.FlightTime < 0 || d.FlightTime > d.DutyHours() {
		return false
	}
	return true
}

// LocalDate returns the local calendar day of the sign-on in the given zone,
// truncated to midnight.
func (d DutyRecord) LocalDate(loc *time.Location) time.Time {
	local := d.SignOn.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// FlightSectorSummary is the minimal projection of a flown or scheduled
// sector used for flight-time aggregation. Flight time attributes to the
// sector's own flying date, which can differ from the duty date on
// multi-day patterns.
type FlightSectorSummary struct {
	Date               string    `json:"date"` // YYYY-MM-DD, local flying date
	BlockTime          float64   `json:"block_time"`
	SimTime            float64   `json:"sim_time"`
	Captain            string    `json:"captain"`
	FirstOfficer       string    `json:"first_officer"`
	SecondOfficer      string    `json:"second_officer"`
	IsPositioning      bool      `json:"is_positioning"`
	Departure          string    `json:"departure"`
	Arrival            string    `json:"arrival"`
	ScheduledDeparture time.Time `json:"scheduled_departure"`
	ActualArrival      time.Time `json:"actual_arrival"`
}

// SectorDateLayout is the wire format for FlightSectorSummary.Date.
const SectorDateLayout = "2006-01-02"
