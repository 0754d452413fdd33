package models

// Fleet identifies which rule set applies to a crew member.
type Fleet string

const (
	FleetShortHaul Fleet = "short_haul"
	FleetWideBody  Fleet = "wide_body"
)

// CrewComplement is the number of pilots rostered for a duty.
type CrewComplement string

const (
	CrewTwoPilot   CrewComplement = "two_pilot"
	CrewThreePilot CrewComplement = "three_pilot"
	CrewFourPilot  CrewComplement = "four_pilot"
)

// IsAugmented reports whether the complement carries relief pilots.
func (c CrewComplement) IsAugmented() bool {
	return c == CrewThreePilot || c == CrewFourPilot
}

// AllCrewComplements enumerates the complement tiers, used for rule table validation.
var AllCrewComplements = []CrewComplement{CrewTwoPilot, CrewThreePilot, CrewFourPilot}

// RestFacility is the in-flight sleeping accommodation standard available on the aircraft.
type RestFacility string

const (
	RestFacilityNone   RestFacility = "none"
	RestFacilityClass1 RestFacility = "class1"
	RestFacilityClass2 RestFacility = "class2"
	RestFacilityMixed  RestFacility = "mixed"
)

var AllRestFacilities = []RestFacility{RestFacilityNone, RestFacilityClass1, RestFacilityClass2, RestFacilityMixed}

// DutyType distinguishes operating crew from deadheading (positioning) crew.
type DutyType string

const (
	DutyTypeOperating   DutyType = "operating"
	DutyTypeDeadheading DutyType = "deadheading"
)

// LimitType selects between the stricter pre-roster planning limits and the
// looser in-day operational limits.
type LimitType string

const (
	LimitTypePlanning    LimitType = "planning"
	LimitTypeOperational LimitType = "operational"
)

var AllLimitTypes = []LimitType{LimitTypePlanning, LimitTypeOperational}

// DutyTimeClass classifies a completed duty by when it sat on the home-base clock.
type DutyTimeClass string

const (
	DutyTimeNormal      DutyTimeClass = "normal"
	DutyTimeLateNight   DutyTimeClass = "late_night"
	DutyTimeBackOfClock DutyTimeClass = "back_of_clock"
)
