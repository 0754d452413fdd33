package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"southern-cross/frms/internal/models"
	"southern-cross/frms/internal/rules"
)

func TestComplianceService_CheckCompliance_Compliant(t *testing.T) {
	svc := NewComplianceService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	proposed := dutyOn(time.Date(2026, 3, 10, 0, 0, 0, 0, testZone), 8, 8, 5)

	result := svc.CheckCompliance(context.Background(), proposed, nil, models.CumulativeTotals{})

	if result.Status != models.ComplianceCompliant {
		t.Errorf("Expected compliant, got %s with %v", result.Status, result.Violations)
	}
}

func TestComplianceService_CheckCompliance_RestViolation(t *testing.T) {
	svc := NewComplianceService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	previous := dutyOn(time.Date(2026, 3, 9, 0, 0, 0, 0, testZone), 10, 12, 7)
	// Sign-on 8 hours after sign-off, against a 12 hour minimum.
	proposed := dutyOn(time.Date(2026, 3, 10, 0, 0, 0, 0, testZone), 6, 8, 5)

	result := svc.CheckCompliance(context.Background(), proposed, &previous, models.CumulativeTotals{})

	if result.Status != models.ComplianceViolation {
		t.Fatalf("Expected violation, got %s", result.Status)
	}
	found := false
	for _, v := range result.Violations {
		if strings.Contains(v, "rest before sign-on") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a rest violation, got %v", result.Violations)
	}
}

func TestComplianceService_CheckCompliance_DutyWindowViolation(t *testing.T) {
	svc := NewComplianceService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	proposed := dutyOn(time.Date(2026, 3, 10, 0, 0, 0, 0, testZone), 8, 8, 5)
	totals := models.CumulativeTotals{DutyTime7Days: 55}

	result := svc.CheckCompliance(context.Background(), proposed, nil, totals)

	if result.Status != models.ComplianceViolation {
		t.Fatalf("Expected violation, got %s", result.Status)
	}
	found := false
	for _, v := range result.Violations {
		if strings.Contains(v, "7 days") && strings.Contains(v, "duty time") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a 7-day duty cap violation, got %v", result.Violations)
	}
}

func TestComplianceService_CheckCompliance_StreakCeilingWarnsOnly(t *testing.T) {
	svc := NewComplianceService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	// A filed duty at the streak ceiling is advisory, not a hard stop.
	proposed := dutyOn(time.Date(2026, 3, 10, 0, 0, 0, 0, testZone), 8, 4, 2)
	totals := models.CumulativeTotals{ConsecutiveDutyDays: 6}

	result := svc.CheckCompliance(context.Background(), proposed, nil, totals)

	if result.Status != models.ComplianceWarning {
		t.Fatalf("Expected warning for a seventh consecutive duty day, got %s with %v", result.Status, result.Violations)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "consecutive duty days") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a consecutive-duty-days warning, got %v", result.Warnings)
	}
}

func TestComplianceService_CheckWhatIfScenario_StreakCeilingBlocks(t *testing.T) {
	svc := NewComplianceService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	scenario := models.WhatIfScenario{
		SignOn:              time.Date(2026, 3, 10, 8, 0, 0, 0, testZone),
		EstimatedDutyHours:  8,
		EstimatedFlightTime: 5,
		SectorCount:         2,
		CrewComplement:      models.CrewTwoPilot,
		RestFacility:        models.RestFacilityNone,
	}
	totals := models.CumulativeTotals{ConsecutiveDutyDays: 6}

	result, err := svc.CheckWhatIfScenario(context.Background(), scenario, nil, totals)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Status != models.ComplianceViolation {
		t.Errorf("Expected violation for a seventh consecutive duty day, got %s", result.Status)
	}
}

func TestComplianceService_CheckWhatIfScenario_WarningBand(t *testing.T) {
	svc := NewComplianceService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	// Morning sign-on against the 12 hour planning limit: 11 hours sits
	// inside the 10 percent warning band.
	scenario := models.WhatIfScenario{
		SignOn:              time.Date(2026, 3, 10, 8, 0, 0, 0, testZone),
		EstimatedDutyHours:  11,
		EstimatedFlightTime: 7,
		SectorCount:         4,
		CrewComplement:      models.CrewTwoPilot,
		RestFacility:        models.RestFacilityNone,
	}

	result, err := svc.CheckWhatIfScenario(context.Background(), scenario, nil, models.CumulativeTotals{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Status != models.ComplianceWarning {
		t.Fatalf("Expected warning, got %s with %v", result.Status, result.Violations)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "within 10%") {
		t.Errorf("Expected a warning-band message, got %v", result.Warnings)
	}
}

func TestComplianceService_CheckWhatIfScenario_NightSignOnShavesLimit(t *testing.T) {
	svc := NewComplianceService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	// A night sign-on drops the short-haul planning limit from 12 to 11.
	scenario := models.WhatIfScenario{
		SignOn:              time.Date(2026, 3, 10, 21, 0, 0, 0, testZone),
		EstimatedDutyHours:  11.5,
		EstimatedFlightTime: 7,
		SectorCount:         4,
		CrewComplement:      models.CrewTwoPilot,
		RestFacility:        models.RestFacilityNone,
	}

	result, err := svc.CheckWhatIfScenario(context.Background(), scenario, nil, models.CumulativeTotals{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Status != models.ComplianceViolation {
		t.Errorf("Expected violation against the shaved limit, got %s", result.Status)
	}
}

func TestComplianceService_CheckWhatIfScenario_WideBodyWindowRow(t *testing.T) {
	svc := NewComplianceService(wideBodyConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	// An early sign-on selects the early-window row: 11 - 0.5 = 10.5 hours.
	scenario := models.WhatIfScenario{
		SignOn:              time.Date(2026, 3, 10, 5, 30, 0, 0, testZone),
		EstimatedDutyHours:  10.6,
		EstimatedFlightTime: 8,
		SectorCount:         2,
		CrewComplement:      models.CrewTwoPilot,
		RestFacility:        models.RestFacilityNone,
	}

	result, err := svc.CheckWhatIfScenario(context.Background(), scenario, nil, models.CumulativeTotals{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Status != models.ComplianceViolation {
		t.Errorf("Expected violation against the early-window row, got %s", result.Status)
	}
}

func TestComplianceService_CheckWhatIfScenario_EarliestSignOn(t *testing.T) {
	svc := NewComplianceService(shortHaulConfig(), rules.MustLoad(), &mockTimezoneLookup{})

	previous := dutyOn(time.Date(2026, 3, 9, 0, 0, 0, 0, testZone), 10, 12, 7)
	// Earliest permissible sign-on is 10:00 the next day; 08:00 is too early.
	scenario := models.WhatIfScenario{
		SignOn:              time.Date(2026, 3, 10, 8, 0, 0, 0, testZone),
		EstimatedDutyHours:  8,
		EstimatedFlightTime: 5,
		SectorCount:         2,
		CrewComplement:      models.CrewTwoPilot,
		RestFacility:        models.RestFacilityNone,
	}

	result, err := svc.CheckWhatIfScenario(context.Background(), scenario, &previous, models.CumulativeTotals{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Status != models.ComplianceViolation {
		t.Fatalf("Expected violation, got %s", result.Status)
	}
	found := false
	for _, v := range result.Violations {
		if strings.Contains(v, "earliest permissible sign-on") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected an earliest sign-on violation, got %v", result.Violations)
	}
}
