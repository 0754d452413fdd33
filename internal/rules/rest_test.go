package rules

import (
	"math"
	"testing"

	"southern-cross/frms/internal/models"
)

func TestShortHaulMinimumRest_FormulaBands(t *testing.T) {
	cases := []struct {
		duty float64
		want float64
	}{
		{8, 10},    // floor of 10 applies
		{10, 10},
		{11.5, 11.5}, // rest matches duty above the floor
		{12, 12},
		{13, 13.5}, // 12 + 1.5*(13-12)
		{14, 15},
		{16, 18},
	}

	for _, tc := range cases {
		got := ShortHaulMinimumRest(models.CrewTwoPilot, tc.duty)
		if got != tc.want {
			t.Errorf("ShortHaulMinimumRest(two_pilot, %v) = %v, want %v", tc.duty, got, tc.want)
		}
	}
}

func TestShortHaulMinimumRest_MonotonicInDuty(t *testing.T) {
	prev := 0.0
	for duty := 1.0; duty <= 20; duty += 0.25 {
		rest := ShortHaulMinimumRest(models.CrewTwoPilot, duty)
		if rest < prev {
			t.Fatalf("rest decreased at duty %v: %v < %v", duty, rest, prev)
		}
		prev = rest
	}
}

func TestShortHaulMinimumRest_AugmentedFloor(t *testing.T) {
	// Below 16 hours of duty the augmented floor is inactive.
	if got := ShortHaulMinimumRest(models.CrewThreePilot, 15); got != 16.5 {
		t.Errorf("three-pilot 15h duty rest = %v, want 16.5", got)
	}
	// Beyond 16 hours augmented crews floor at 24.
	if got := ShortHaulMinimumRest(models.CrewThreePilot, 16.5); got != 24 {
		t.Errorf("three-pilot 16.5h duty rest = %v, want 24", got)
	}
	if got := ShortHaulMinimumRest(models.CrewFourPilot, 17); got != 24 {
		t.Errorf("four-pilot 17h duty rest = %v, want 24", got)
	}
	// Two-pilot crews never pick up the augmented floor.
	if got := ShortHaulMinimumRest(models.CrewTwoPilot, 17); got != 19.5 {
		t.Errorf("two-pilot 17h duty rest = %v, want 19.5", got)
	}
}

func TestWideBodyMinimumRest_TableBands(t *testing.T) {
	if got := WideBodyMinimumRest(models.CrewTwoPilot, 10, 7); got != 10 {
		t.Errorf("two-pilot 10h duty rest = %v, want 10", got)
	}
	if got := WideBodyMinimumRest(models.CrewThreePilot, 14, 11); got != 12 {
		t.Errorf("three-pilot 14h duty rest = %v, want 12", got)
	}
	if got := WideBodyMinimumRest(models.CrewFourPilot, 15, 12); got != 14 {
		t.Errorf("four-pilot 15h duty rest = %v, want 14", got)
	}
	if got := WideBodyMinimumRest(models.CrewThreePilot, 17, 13); got != 24 {
		t.Errorf("three-pilot 17h duty rest = %v, want 24", got)
	}
}

func TestWideBodyMinimumRest_TwoPilotFormula(t *testing.T) {
	// 13 hours of duty: rest = 10 + ceil((13-11)*60/15)/4, verified against
	// the formula rather than a fixed constant.
	duty := 13.0
	want := 10 + math.Ceil((duty-11)*60/15)/4
	if got := WideBodyMinimumRest(models.CrewTwoPilot, duty, 7); got != want {
		t.Errorf("two-pilot 13h duty rest = %v, want %v", got, want)
	}

	// Part of a 15-minute increment rounds up to the whole increment.
	duty = 11.1
	want = 10 + math.Ceil((duty-11)*60/15)/4
	if got := WideBodyMinimumRest(models.CrewTwoPilot, duty, 7); got != want {
		t.Errorf("two-pilot 11.1h duty rest = %v, want %v", got, want)
	}

	// Flight time over 8 hours triggers the formula even under 11h duty.
	if got := WideBodyMinimumRest(models.CrewTwoPilot, 10.5, 8.5); got != 10 {
		t.Errorf("two-pilot 10.5h duty / 8.5h flight rest = %v, want 10 (formula with zero excess)", got)
	}
}

func TestWideBodyMinimumRest_RelevantSector(t *testing.T) {
	if got := WideBodyMinimumRest(models.CrewFourPilot, 19, 16); got != 27 {
		t.Errorf("four-pilot relevant-sector rest = %v, want 27", got)
	}
	if got := WideBodyMinimumRest(models.CrewThreePilot, 18.5, 15); got != 30 {
		t.Errorf("three-pilot relevant-sector rest = %v, want 30", got)
	}
}

func TestMinimumRest_FleetDispatch(t *testing.T) {
	if got := MinimumRest(models.FleetShortHaul, models.CrewTwoPilot, 12, 8); got != 12 {
		t.Errorf("short-haul dispatch = %v, want 12", got)
	}
	if got := MinimumRest(models.FleetWideBody, models.CrewThreePilot, 14, 11); got != 12 {
		t.Errorf("wide-body dispatch = %v, want 12", got)
	}
}
