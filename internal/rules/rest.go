package rules

import (
	"math"

	"southern-cross/frms/internal/models"
)

// restBand maps a duty-hour ceiling to a flat rest requirement.
type restBand struct {
	DutyUpToHours float64
	RestHours     float64
}

// Wide-body rest requirement table, keyed by crew complement. Bands are
// scanned in order; the first band whose ceiling covers the duty applies.
var wideBodyRestBands = map[models.CrewComplement][]restBand{
	models.CrewTwoPilot: {
		{DutyUpToHours: 11, RestHours: 10},
		{DutyUpToHours: math.MaxFloat64, RestHours: 12},
	},
	models.CrewThreePilot: {
		{DutyUpToHours: 16, RestHours: 12},
		{DutyUpToHours: math.MaxFloat64, RestHours: 24},
	},
	models.CrewFourPilot: {
		{DutyUpToHours: 16, RestHours: 14},
		{DutyUpToHours: math.MaxFloat64, RestHours: 24},
	},
}

// Relevant-sector (>18h planned duty) fixed rest values, independent of the
// formula. Pre-duty rest is common; post-duty rest depends on complement.
const RelevantSectorDutyHours = 18.0
const RelevantSectorPreRestHours = 22.0

var relevantSectorPostRest = map[models.CrewComplement]float64{
	models.CrewTwoPilot:   30,
	models.CrewThreePilot: 30,
	models.CrewFourPilot:  27,
}

// ShortHaulMinimumRest implements the short-haul rest formula:
// rest = max(duty, 10) up to 12 hours of duty, then 12 + 1.5h per hour of
// duty beyond 12. Augmented crews floor at 24 hours once duty exceeds 16.
func ShortHaulMinimumRest(crew models.CrewComplement, dutyHours float64) float64 {
	var rest float64
	if dutyHours <= 12 {
		rest = math.Max(dutyHours, 10.0)
	} else {
		rest = 12.0 + 1.5*(dutyHours-12)
	}
	if crew.IsAugmented() && dutyHours > 16 {
		rest = math.Max(rest, 24.0)
	}
	return rest
}

// WideBodyMinimumRest reads the rest-requirement table for the complement.
// Two-pilot crews that exceeded 11 hours of duty or 8 hours of flight use the
// formula variant instead: +1 hour per 15 minutes or part thereof beyond 11
// hours of duty, in whole 15-minute increments. Duties planned over 18 hours
// take the fixed relevant-sector post-duty rest.
func WideBodyMinimumRest(crew models.CrewComplement, dutyHours, flightHours float64) float64 {
	if dutyHours > RelevantSectorDutyHours {
		return relevantSectorPostRest[crew]
	}

	if crew == models.CrewTwoPilot && (dutyHours > 11 || flightHours > 8) {
		excess := math.Max(0, dutyHours-11)
		return 10 + math.Ceil(excess*60/15)/4
	}

	bands := wideBodyRestBands[crew]
	for _, band := range bands {
		if dutyHours <= band.DutyUpToHours {
			return band.RestHours
		}
	}
	// Bands always terminate with an unbounded ceiling.
	return bands[len(bands)-1].RestHours
}

// MinimumRest dispatches to the fleet-specific rest rule.
func MinimumRest(fleet models.Fleet, crew models.CrewComplement, dutyHours, flightHours float64) float64 {
	if fleet == models.FleetWideBody {
		return WideBodyMinimumRest(crew, dutyHours, flightHours)
	}
	return ShortHaulMinimumRest(crew, dutyHours)
}

// MBTT tiers: required local nights (or hours when no nights apply) at home
// base after a trip, by days away.
type MBTTTier struct {
	DaysAwayUpTo int
	Nights       int
	Hours        float64
}

var MBTTTiers = []MBTTTier{
	{DaysAwayUpTo: 1, Nights: 0, Hours: 12},
	{DaysAwayUpTo: 4, Nights: 1},
	{DaysAwayUpTo: 8, Nights: 2},
	{DaysAwayUpTo: 12, Nights: 3},
	{DaysAwayUpTo: math.MaxInt, Nights: 4},
}

// Credited-hours overrides: nights floors that replace an hours-based figure.
type MBTTHoursOverride struct {
	CreditedHoursOver float64
	MinNights         int
}

var MBTTHoursOverrides = []MBTTHoursOverride{
	{CreditedHoursOver: 20, MinNights: 2},
	{CreditedHoursOver: 40, MinNights: 3},
	{CreditedHoursOver: 60, MinNights: 4},
}
