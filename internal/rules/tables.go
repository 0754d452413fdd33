package rules

import (
	"fmt"

	"southern-cross/frms/internal/models"
)

// LimitEntry is one immutable row of the fleet limit matrix.
type LimitEntry struct {
	MaxDutyHours  float64
	MaxFlightTime float64
	MaxSectors    int
	PreRestHours  float64
	PostRestHours float64
	Notes         string
	SectorCaveat  string
}

type shortHaulKey struct {
	Crew models.CrewComplement
	Rest models.RestFacility
	Type models.LimitType
}

type wideBodyKey struct {
	Crew   models.CrewComplement
	Rest   models.RestFacility
	Window string
	Type   models.LimitType
}

// Tables is the complete, immutable rule set for both fleets. Built once by
// Load, validated for totality, then shared read-only across all calls.
type Tables struct {
	shortHaul map[shortHaulKey]LimitEntry
	wideBody  map[wideBodyKey]LimitEntry
}

// Load builds the rule tables and verifies every valid key resolves.
// A gap here is a table defect, not a runtime condition, so Load refuses to
// hand out an incomplete rule set.
func Load() (*Tables, error) {
	t := &Tables{
		shortHaul: buildShortHaulTable(),
		wideBody:  buildWideBodyTable(),
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustLoad is Load for wiring paths where a broken table should stop startup.
func MustLoad() *Tables {
	t, err := Load()
	if err != nil {
		panic("rules: " + err.Error())
	}
	return t
}

// ShortHaulLimits resolves the short-haul limit row. The boolean follows the
// comma-ok convention; after a successful Load it is always true for valid
// enum values.
func (t *Tables) ShortHaulLimits(crew models.CrewComplement, rest models.RestFacility, lt models.LimitType) (LimitEntry, bool) {
	e, ok := t.shortHaul[shortHaulKey{Crew: crew, Rest: rest, Type: lt}]
	return e, ok
}

// WideBodyLimits resolves the wide-body limit row for a sign-on window.
func (t *Tables) WideBodyLimits(crew models.CrewComplement, rest models.RestFacility, window string, lt models.LimitType) (LimitEntry, bool) {
	e, ok := t.wideBody[wideBodyKey{Crew: crew, Rest: rest, Window: window, Type: lt}]
	return e, ok
}

// WideBodyBaseLimits resolves the wide-body row unadjusted for sign-on time
// (the morning window carries the base figures).
func (t *Tables) WideBodyBaseLimits(crew models.CrewComplement, rest models.RestFacility, lt models.LimitType) (LimitEntry, bool) {
	return t.WideBodyLimits(crew, rest, "morning", lt)
}

// Limits resolves the base limit row for the fleet.
func (t *Tables) Limits(fleet models.Fleet, crew models.CrewComplement, rest models.RestFacility, lt models.LimitType) (LimitEntry, bool) {
	if fleet == models.FleetWideBody {
		return t.WideBodyBaseLimits(crew, rest, lt)
	}
	return t.ShortHaulLimits(crew, rest, lt)
}

func (t *Tables) validate() error {
	for _, crew := range models.AllCrewComplements {
		for _, rest := range models.AllRestFacilities {
			for _, lt := range models.AllLimitTypes {
				if _, ok := t.ShortHaulLimits(crew, rest, lt); !ok {
					return fmt.Errorf("short-haul table missing entry for %s/%s/%s", crew, rest, lt)
				}
				for _, w := range SignOnWindows {
					if _, ok := t.WideBodyLimits(crew, rest, w.Name, lt); !ok {
						return fmt.Errorf("wide-body table missing entry for %s/%s/%s/%s", crew, rest, w.Name, lt)
					}
				}
			}
		}
	}
	return nil
}

// shortHaulRow fills the entry for every rest facility in the list, keeping
// the builder close to how the limits read in the operations manual.
func shortHaulRow(m map[shortHaulKey]LimitEntry, crew models.CrewComplement, rests []models.RestFacility, lt models.LimitType, e LimitEntry) {
	for _, rest := range rests {
		m[shortHaulKey{Crew: crew, Rest: rest, Type: lt}] = e
	}
}

var everyRest = models.AllRestFacilities

func buildShortHaulTable() map[shortHaulKey]LimitEntry {
	m := make(map[shortHaulKey]LimitEntry)

	// Two-pilot limits do not vary by rest facility: there is no in-flight
	// relief without an augmenting pilot.
	shortHaulRow(m, models.CrewTwoPilot, everyRest, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 12, MaxFlightTime: 8, MaxSectors: 6, PreRestHours: 10, PostRestHours: 10})
	shortHaulRow(m, models.CrewTwoPilot, everyRest, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 13, MaxFlightTime: 9, MaxSectors: 7, PreRestHours: 10, PostRestHours: 10,
			Notes: "operational extension at captain's discretion"})

	noFacility := []models.RestFacility{models.RestFacilityNone}
	class2OrMixed := []models.RestFacility{models.RestFacilityClass2, models.RestFacilityMixed}
	class1 := []models.RestFacility{models.RestFacilityClass1}

	shortHaulRow(m, models.CrewThreePilot, noFacility, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 14, MaxFlightTime: 11, MaxSectors: 4, PreRestHours: 12, PostRestHours: 12,
			SectorCaveat: "seat rest only; sectors over 4 require a rest facility"})
	shortHaulRow(m, models.CrewThreePilot, noFacility, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 15, MaxFlightTime: 12, MaxSectors: 5, PreRestHours: 12, PostRestHours: 12,
			SectorCaveat: "seat rest only; sectors over 4 require a rest facility"})
	shortHaulRow(m, models.CrewThreePilot, class2OrMixed, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 15, MaxFlightTime: 12, MaxSectors: 3, PreRestHours: 12, PostRestHours: 12})
	shortHaulRow(m, models.CrewThreePilot, class2OrMixed, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 16, MaxFlightTime: 13, MaxSectors: 4, PreRestHours: 12, PostRestHours: 12})
	shortHaulRow(m, models.CrewThreePilot, class1, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 16, MaxFlightTime: 13, MaxSectors: 3, PreRestHours: 12, PostRestHours: 14})
	shortHaulRow(m, models.CrewThreePilot, class1, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 17, MaxFlightTime: 14, MaxSectors: 4, PreRestHours: 12, PostRestHours: 14})

	shortHaulRow(m, models.CrewFourPilot, noFacility, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 14, MaxFlightTime: 11, MaxSectors: 4, PreRestHours: 12, PostRestHours: 12,
			SectorCaveat: "seat rest only; sectors over 4 require a rest facility"})
	shortHaulRow(m, models.CrewFourPilot, noFacility, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 15, MaxFlightTime: 12, MaxSectors: 5, PreRestHours: 12, PostRestHours: 12,
			SectorCaveat: "seat rest only; sectors over 4 require a rest facility"})
	shortHaulRow(m, models.CrewFourPilot, class2OrMixed, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 16, MaxFlightTime: 13, MaxSectors: 2, PreRestHours: 12, PostRestHours: 14})
	shortHaulRow(m, models.CrewFourPilot, class2OrMixed, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 17, MaxFlightTime: 14, MaxSectors: 3, PreRestHours: 12, PostRestHours: 14})
	shortHaulRow(m, models.CrewFourPilot, class1, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 18, MaxFlightTime: 15, MaxSectors: 2, PreRestHours: 14, PostRestHours: 16})
	shortHaulRow(m, models.CrewFourPilot, class1, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 20, MaxFlightTime: 16, MaxSectors: 3, PreRestHours: 14, PostRestHours: 16})

	return m
}

// windowDutyAdjustment shaves duty time off the base row for unfavourable
// sign-on windows.
func windowDutyAdjustment(window string) float64 {
	switch window {
	case "early":
		return 0.5
	case "night":
		return 1.0
	default:
		return 0
	}
}

func buildWideBodyTable() map[wideBodyKey]LimitEntry {
	base := make(map[shortHaulKey]LimitEntry)

	shortHaulRow(base, models.CrewTwoPilot, everyRest, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 11, MaxFlightTime: 9.5, MaxSectors: 4, PreRestHours: 10, PostRestHours: 10})
	shortHaulRow(base, models.CrewTwoPilot, everyRest, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 12, MaxFlightTime: 10.5, MaxSectors: 5, PreRestHours: 10, PostRestHours: 10})

	noFacility := []models.RestFacility{models.RestFacilityNone}
	class2OrMixed := []models.RestFacility{models.RestFacilityClass2, models.RestFacilityMixed}
	class1 := []models.RestFacility{models.RestFacilityClass1}

	shortHaulRow(base, models.CrewThreePilot, noFacility, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 16, MaxFlightTime: 13, MaxSectors: 3, PreRestHours: 12, PostRestHours: 12})
	shortHaulRow(base, models.CrewThreePilot, noFacility, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 17, MaxFlightTime: 14, MaxSectors: 4, PreRestHours: 12, PostRestHours: 12})
	shortHaulRow(base, models.CrewThreePilot, class2OrMixed, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 17, MaxFlightTime: 14, MaxSectors: 3, PreRestHours: 12, PostRestHours: 14})
	shortHaulRow(base, models.CrewThreePilot, class2OrMixed, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 18, MaxFlightTime: 15, MaxSectors: 3, PreRestHours: 12, PostRestHours: 14})
	shortHaulRow(base, models.CrewThreePilot, class1, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 18, MaxFlightTime: 15, MaxSectors: 2, PreRestHours: 12, PostRestHours: 14})
	shortHaulRow(base, models.CrewThreePilot, class1, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 19, MaxFlightTime: 16, MaxSectors: 3, PreRestHours: 12, PostRestHours: 14})

	shortHaulRow(base, models.CrewFourPilot, noFacility, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 16, MaxFlightTime: 13, MaxSectors: 3, PreRestHours: 12, PostRestHours: 12})
	shortHaulRow(base, models.CrewFourPilot, noFacility, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 17, MaxFlightTime: 14, MaxSectors: 4, PreRestHours: 12, PostRestHours: 12})
	shortHaulRow(base, models.CrewFourPilot, class2OrMixed, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 18, MaxFlightTime: 15, MaxSectors: 2, PreRestHours: 12, PostRestHours: 14})
	shortHaulRow(base, models.CrewFourPilot, class2OrMixed, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 19, MaxFlightTime: 16, MaxSectors: 3, PreRestHours: 12, PostRestHours: 14})
	shortHaulRow(base, models.CrewFourPilot, class1, models.LimitTypePlanning,
		LimitEntry{MaxDutyHours: 20, MaxFlightTime: 16, MaxSectors: 2, PreRestHours: 14, PostRestHours: 16})
	shortHaulRow(base, models.CrewFourPilot, class1, models.LimitTypeOperational,
		LimitEntry{MaxDutyHours: 22, MaxFlightTime: 17, MaxSectors: 2, PreRestHours: 14, PostRestHours: 16})

	m := make(map[wideBodyKey]LimitEntry)
	for key, entry := range base {
		for _, w := range SignOnWindows {
			adjusted := entry
			adjusted.MaxDutyHours -= windowDutyAdjustment(w.Name)
			m[wideBodyKey{Crew: key.Crew, Rest: key.Rest, Window: w.Name, Type: key.Type}] = adjusted
		}
	}
	return m
}
