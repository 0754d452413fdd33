package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"southern-cross/frms/internal/constants"
	"southern-cross/frms/internal/models"
	"southern-cross/frms/internal/rules"
)

func TestMaxDutyService_Calculate_BaseLimitsUntouchedByZeroTotals(t *testing.T) {
	svc := NewMaxDutyService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	result, err := svc.Calculate(context.Background(), nil, models.CumulativeTotals{},
		models.LimitTypePlanning, models.CrewTwoPilot, models.RestFacilityNone)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.MaxDutyPeriod != 12 {
		t.Errorf("Expected 12 hour duty limit, got %.1f", result.MaxDutyPeriod)
	}
	if result.MaxFlightTime != 8 {
		t.Errorf("Expected 8 hour flight limit, got %.1f", result.MaxFlightTime)
	}
	if result.MaxSectors != 6 {
		t.Errorf("Expected 6 sectors, got %d", result.MaxSectors)
	}
	if result.EarliestSignOn != nil {
		t.Error("Expected no earliest sign-on without a previous duty")
	}
	if len(result.Restrictions) != 0 {
		t.Errorf("Expected no restrictions, got %v", result.Restrictions)
	}
}

func TestMaxDutyService_Calculate_RestAfterTwelveHourDuty(t *testing.T) {
	svc := NewMaxDutyService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	previous := dutyOn(time.Date(2026, 3, 9, 0, 0, 0, 0, testZone), 10, 12, 7)

	result, err := svc.Calculate(context.Background(), &previous, models.CumulativeTotals{},
		models.LimitTypePlanning, models.CrewTwoPilot, models.RestFacilityNone)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.MinimumRestHours != 12 {
		t.Errorf("Expected 12 hours minimum rest after a 12 hour duty, got %.1f", result.MinimumRestHours)
	}
	want := time.Date(2026, 3, 10, 10, 0, 0, 0, testZone)
	if result.EarliestSignOn == nil || !result.EarliestSignOn.Equal(want) {
		t.Errorf("Expected earliest sign-on %v, got %v", want, result.EarliestSignOn)
	}
}

func TestMaxDutyService_Calculate_HeadroomClampsAndWarns(t *testing.T) {
	svc := NewMaxDutyService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	totals := models.CumulativeTotals{FlightTimePeriod: 95}

	result, err := svc.Calculate(context.Background(), nil, totals,
		models.LimitTypePlanning, models.CrewTwoPilot, models.RestFacilityNone)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.MaxFlightTime != 5 {
		t.Errorf("Expected flight time clamped to 5 hours of headroom, got %.1f", result.MaxFlightTime)
	}
	found := false
	for _, r := range result.Restrictions {
		if strings.Contains(r, "28-day flight time") && strings.Contains(r, "nearly exhausted") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a near-exhaustion restriction, got %v", result.Restrictions)
	}
}

func TestMaxDutyService_Calculate_ExhaustedWindowClampsToZero(t *testing.T) {
	svc := NewMaxDutyService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	totals := models.CumulativeTotals{FlightTime365Days: 1010}

	result, err := svc.Calculate(context.Background(), nil, totals,
		models.LimitTypePlanning, models.CrewTwoPilot, models.RestFacilityNone)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.MaxFlightTime != 0 {
		t.Errorf("Expected flight time clamped to zero, got %.1f", result.MaxFlightTime)
	}
}

func TestMaxDutyService_Calculate_BackOfClockPushesSignOnToTen(t *testing.T) {
	svc := NewMaxDutyService(wideBodyConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	// A 02:00 to 16:00 duty overlaps the back-of-clock band by three hours.
	// Rest comes to 13 hours, landing at 05:00 next day, pushed to 10:00.
	previous := dutyOn(time.Date(2026, 3, 9, 0, 0, 0, 0, testZone), 2, 14, 9)

	result, err := svc.Calculate(context.Background(), &previous, models.CumulativeTotals{},
		models.LimitTypePlanning, models.CrewTwoPilot, models.RestFacilityNone)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.MinimumRestHours != 13 {
		t.Errorf("Expected 13 hours minimum rest, got %.1f", result.MinimumRestHours)
	}
	want := time.Date(2026, 3, 10, 10, 0, 0, 0, testZone)
	if result.EarliestSignOn == nil || !result.EarliestSignOn.Equal(want) {
		t.Errorf("Expected earliest sign-on pushed to %v, got %v", want, result.EarliestSignOn)
	}
	found := false
	for _, r := range result.Restrictions {
		if strings.Contains(r, "back of clock") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a back-of-clock restriction, got %v", result.Restrictions)
	}
}

func TestMaxDutyService_Calculate_WideBodySignOnLimitRows(t *testing.T) {
	svc := NewMaxDutyService(wideBodyConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	result, err := svc.Calculate(context.Background(), nil, models.CumulativeTotals{},
		models.LimitTypePlanning, models.CrewTwoPilot, models.RestFacilityNone)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.SignOnLimits) != 16 {
		t.Fatalf("Expected 16 sign-on limit rows, got %d", len(result.SignOnLimits))
	}
	for _, row := range result.SignOnLimits {
		if row.Window == "night" && row.RestFacility == models.RestFacilityNone {
			if row.MaxDutyHours != 10 {
				t.Errorf("Expected night-window duty limit of 10 hours, got %.1f", row.MaxDutyHours)
			}
		}
	}
}

func TestMaxDutyService_Calculate_StreakRestrictionsShortHaulOnly(t *testing.T) {
	totals := models.CumulativeTotals{ConsecutiveDutyDays: 6, ConsecutiveEarlyStarts: 4}

	shSvc := NewMaxDutyService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})
	shResult, err := shSvc.Calculate(context.Background(), nil, totals,
		models.LimitTypePlanning, models.CrewTwoPilot, models.RestFacilityNone)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(shResult.Restrictions) != 2 {
		t.Errorf("Expected 2 short-haul streak restrictions, got %v", shResult.Restrictions)
	}

	wbSvc := NewMaxDutyService(wideBodyConfig(), rules.MustLoad(), &mockTimezoneLookup{})
	wbResult, err := wbSvc.Calculate(context.Background(), nil, totals,
		models.LimitTypePlanning, models.CrewTwoPilot, models.RestFacilityNone)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(wbResult.Restrictions) != 0 {
		t.Errorf("Expected no wide-body streak restrictions, got %v", wbResult.Restrictions)
	}
}

func TestMaxDutyService_Calculate_UnknownCrewIsIntegrityError(t *testing.T) {
	svc := NewMaxDutyService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	_, err := svc.Calculate(context.Background(), nil, models.CumulativeTotals{},
		models.LimitTypePlanning, models.CrewComplement("five_pilot"), models.RestFacilityNone)
	if err == nil {
		t.Fatal("Expected an error for an unknown crew complement")
	}
	var engineErr *EngineError
	if !errors.As(err, &engineErr) || engineErr.Code != constants.ErrCodeRuleTableIntegrity {
		t.Errorf("Expected a rule table integrity error, got %v", err)
	}
}
