package rules

import "southern-cross/frms/internal/models"

// FleetCaps are the rolling-window cumulative limits for a fleet.
type FleetCaps struct {
	FlightPeriodDays     int     // flight-time period window: 28 short-haul, 30 wide-body
	FlightTime7DayCap    float64 // enforced as a hard cap on wide-body only
	FlightTimePeriodCap  float64
	FlightTime365DayCap  float64
	DutyTime7DayCap      float64
	DutyTime14DayCap     float64
	Enforce7DayFlightCap bool
}

// NearExhaustionThresholdHours triggers a textual restriction when remaining
// headroom under any rolling window drops below it.
const NearExhaustionThresholdHours = 20.0

// Short-haul streak ceilings. These flag textual restrictions, not hard stops.
const (
	MaxConsecutiveDutyDays    = 6
	MaxDutyDaysIn11Days       = 9
	MaxConsecutiveEarlyStarts = 4
	MaxConsecutiveLateNights  = 4
)

var fleetCaps = map[models.Fleet]FleetCaps{
	models.FleetShortHaul: {
		FlightPeriodDays:     28,
		FlightTime7DayCap:    35,
		FlightTimePeriodCap:  100,
		FlightTime365DayCap:  1000,
		DutyTime7DayCap:      60,
		DutyTime14DayCap:     100,
		Enforce7DayFlightCap: false,
	},
	models.FleetWideBody: {
		FlightPeriodDays:     30,
		FlightTime7DayCap:    35,
		FlightTimePeriodCap:  100,
		FlightTime365DayCap:  1000,
		DutyTime7DayCap:      60,
		DutyTime14DayCap:     100,
		Enforce7DayFlightCap: true,
	},
}

// CapsFor returns the rolling-window caps for the fleet. Unknown fleets get
// the short-haul set, the stricter default.
func CapsFor(fleet models.Fleet) FleetCaps {
	if caps, ok := fleetCaps[fleet]; ok {
		return caps
	}
	return fleetCaps[models.FleetShortHaul]
}
