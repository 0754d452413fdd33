package models

import "time"

// CumulativeTotals holds the rolling-window sums and streak counters for a
// crew member as of a reference instant. Recomputed fresh per query, never
// persisted.
type CumulativeTotals struct {
	AsOf time.Time `json:"as_of"`

	FlightTime7Days   float64 `json:"flight_time_7_days"`
	FlightTimePeriod  float64 `json:"flight_time_period"`
	FlightPeriodDays  int     `json:"flight_period_days"` // 28 or 30, fleet dependent
	FlightTime365Days float64 `json:"flight_time_365_days"`

	DutyTime7Days  float64 `json:"duty_time_7_days"`
	DutyTime14Days float64 `json:"duty_time_14_days"`

	DaysOffInPeriod int `json:"days_off_in_period"`

	ConsecutiveDutyDays    int `json:"consecutive_duty_days"`
	ConsecutiveEarlyStarts int `json:"consecutive_early_starts"`
	ConsecutiveLateNights  int `json:"consecutive_late_nights"`
	DutyDaysIn11Days       int `json:"duty_days_in_11_days"`

	// SectorSourced reports whether flight-time sums came from the sector
	// list (attributed by flying date) or fell back to duty records
	// (attributed by duty date). The two sources can legitimately disagree
	// on multi-day patterns.
	SectorSourced bool `json:"sector_sourced"`
}
