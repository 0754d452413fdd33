package models

import "time"

// SignOnLimitRow is one row of the wide-body sign-on-time-dependent limit
// table, emitted so a caller can present the full matrix rather than a
// single selected row.
type SignOnLimitRow struct {
	Window        string       `json:"window"`
	WindowStart   string       `json:"window_start"` // HH:MM local
	WindowEnd     string       `json:"window_end"`
	RestFacility  RestFacility `json:"rest_facility"`
	MaxDutyHours  float64      `json:"max_duty_hours"`
	MaxFlightTime float64      `json:"max_flight_time"`
	MaxSectors    int          `json:"max_sectors"`
}

// MBTTRequirement is the minimum base turnaround requirement after a trip.
// When RequiredLocalNights is non-zero any hours-only figure is discarded.
type MBTTRequirement struct {
	RequiredLocalNights int      `json:"required_local_nights"`
	RequiredHours       float64  `json:"required_hours"`
	Reasons             []string `json:"reasons"`
}

// MaximumNextDuty is the permitted envelope for the next duty period.
type MaximumNextDuty struct {
	MaxDutyPeriod    float64    `json:"max_duty_period"`
	MaxFlightTime    float64    `json:"max_flight_time"`
	MaxSectors       int        `json:"max_sectors"`
	MinimumRestHours float64    `json:"minimum_rest_hours"`
	EarliestSignOn   *time.Time `json:"earliest_sign_on,omitempty"`
	Restrictions     []string   `json:"restrictions"`
	LimitType        LimitType  `json:"limit_type"`

	// SignOnLimits is populated for the wide-body fleet only.
	SignOnLimits []SignOnLimitRow `json:"sign_on_limits,omitempty"`

	// BaseTurnaround is attached when trip context is supplied (wide-body).
	BaseTurnaround *MBTTRequirement `json:"base_turnaround,omitempty"`
}
