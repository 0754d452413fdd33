package rules

import (
	"testing"

	"southern-cross/frms/internal/models"
)

// Every valid (crew, rest facility, limit type) combination must resolve for
// both fleets; a miss is a table defect, so Load must refuse it.
func TestLoad_TablesAreTotal(t *testing.T) {
	tables, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	for _, crew := range models.AllCrewComplements {
		for _, rest := range models.AllRestFacilities {
			for _, lt := range models.AllLimitTypes {
				if _, ok := tables.ShortHaulLimits(crew, rest, lt); !ok {
					t.Errorf("short-haul lookup failed for %s/%s/%s", crew, rest, lt)
				}
				for _, w := range SignOnWindows {
					if _, ok := tables.WideBodyLimits(crew, rest, w.Name, lt); !ok {
						t.Errorf("wide-body lookup failed for %s/%s/%s/%s", crew, rest, w.Name, lt)
					}
				}
			}
		}
	}
}

func TestShortHaulLimits_TwoPilotIgnoresRestFacility(t *testing.T) {
	tables := MustLoad()

	ref, _ := tables.ShortHaulLimits(models.CrewTwoPilot, models.RestFacilityNone, models.LimitTypePlanning)
	for _, rest := range models.AllRestFacilities {
		e, ok := tables.ShortHaulLimits(models.CrewTwoPilot, rest, models.LimitTypePlanning)
		if !ok {
			t.Fatalf("missing two-pilot entry for %s", rest)
		}
		if e != ref {
			t.Errorf("two-pilot entry for %s differs from baseline: %+v vs %+v", rest, e, ref)
		}
	}

	if ref.MaxDutyHours != 12 || ref.MaxFlightTime != 8 || ref.MaxSectors != 6 {
		t.Errorf("unexpected two-pilot planning limits: %+v", ref)
	}
}

func TestLimits_OperationalNeverTighterThanPlanning(t *testing.T) {
	tables := MustLoad()

	for _, fleet := range []models.Fleet{models.FleetShortHaul, models.FleetWideBody} {
		for _, crew := range models.AllCrewComplements {
			for _, rest := range models.AllRestFacilities {
				plan, _ := tables.Limits(fleet, crew, rest, models.LimitTypePlanning)
				ops, _ := tables.Limits(fleet, crew, rest, models.LimitTypeOperational)

				if ops.MaxDutyHours < plan.MaxDutyHours {
					t.Errorf("%s %s/%s: operational duty %v below planning %v",
						fleet, crew, rest, ops.MaxDutyHours, plan.MaxDutyHours)
				}
				if ops.MaxFlightTime < plan.MaxFlightTime {
					t.Errorf("%s %s/%s: operational flight %v below planning %v",
						fleet, crew, rest, ops.MaxFlightTime, plan.MaxFlightTime)
				}
			}
		}
	}
}

func TestWideBodyLimits_NightWindowShavesDuty(t *testing.T) {
	tables := MustLoad()

	morning, _ := tables.WideBodyLimits(models.CrewTwoPilot, models.RestFacilityNone, "morning", models.LimitTypePlanning)
	night, _ := tables.WideBodyLimits(models.CrewTwoPilot, models.RestFacilityNone, "night", models.LimitTypePlanning)
	early, _ := tables.WideBodyLimits(models.CrewTwoPilot, models.RestFacilityNone, "early", models.LimitTypePlanning)

	if got, want := morning.MaxDutyHours-night.MaxDutyHours, 1.0; got != want {
		t.Errorf("night adjustment = %v, want %v", got, want)
	}
	if got, want := morning.MaxDutyHours-early.MaxDutyHours, 0.5; got != want {
		t.Errorf("early adjustment = %v, want %v", got, want)
	}
	if night.MaxFlightTime != morning.MaxFlightTime {
		t.Errorf("flight time should not vary by window: %v vs %v", night.MaxFlightTime, morning.MaxFlightTime)
	}
}

func TestCapsFor(t *testing.T) {
	short := CapsFor(models.FleetShortHaul)
	wide := CapsFor(models.FleetWideBody)

	if short.FlightPeriodDays != 28 {
		t.Errorf("short-haul period days = %d, want 28", short.FlightPeriodDays)
	}
	if wide.FlightPeriodDays != 30 {
		t.Errorf("wide-body period days = %d, want 30", wide.FlightPeriodDays)
	}
	if short.Enforce7DayFlightCap {
		t.Error("short-haul should not enforce the 7-day flight cap")
	}
	if !wide.Enforce7DayFlightCap {
		t.Error("wide-body must enforce the 7-day flight cap")
	}

	// Unknown fleet falls back to the stricter short-haul set.
	if CapsFor(models.Fleet("unknown")) != short {
		t.Error("unknown fleet should resolve to short-haul caps")
	}
}
