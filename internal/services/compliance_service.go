package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"southern-cross/frms/internal/constants"
	"southern-cross/frms/internal/models"
	"southern-cross/frms/internal/rules"
)

// What-if duty estimates within this fraction of the table limit get a
// warning rather than a pass.
const whatIfDutyWarningRatio = 0.9

// ComplianceService verifies proposed duties against rolling-window caps,
// minimum rest and streak ceilings, and evaluates hypothetical scenarios.
type ComplianceService struct {
	cfg    models.FRMSConfiguration
	tables *rules.Tables
	tz     TimezoneLookup
}

func NewComplianceService(cfg models.FRMSConfiguration, tables *rules.Tables, tz TimezoneLookup) *ComplianceService {
	return &ComplianceService{cfg: cfg, tables: tables, tz: tz}
}

// CheckCompliance validates a fully specified proposed duty against the
// pilot's current totals and, when given, the rest since the previous duty.
func (s *ComplianceService) CheckCompliance(ctx context.Context, proposed models.DutyRecord, previous *models.DutyRecord, totals models.CumulativeTotals) models.ComplianceResult {
	caps := rules.CapsFor(s.cfg.Fleet)

	var violations, warnings []string

	violations = append(violations, flightWindowViolations(caps, totals, proposed.FlightTime)...)
	violations = append(violations, dutyWindowViolations(caps, totals, proposed.DutyHours())...)

	if previous != nil {
		minRest := rules.MinimumRest(s.cfg.Fleet, previous.CrewComplement, previous.DutyHours(), previous.FlightTime)
		actualRest := proposed.SignOn.Sub(previous.SignOff).Hours()
		if actualRest < minRest {
			violations = append(violations,
				fmt.Sprintf("rest before sign-on is %.1f hours, minimum required is %.1f hours", actualRest, minRest))
		}
	}

	// Streak ceilings are advisory for a filed duty; only the what-if path
	// treats them as blocking.
	if s.cfg.Fleet == models.FleetShortHaul {
		warnings = append(warnings, streakCeilingMessages(totals)...)
	}

	return complianceResult(violations, warnings)
}

// CheckWhatIfScenario evaluates a hypothetical duty described by estimates
// rather than a full record. Duty estimates inside the warning band produce
// a warning instead of a violation.
func (s *ComplianceService) CheckWhatIfScenario(ctx context.Context, scenario models.WhatIfScenario, previous *models.DutyRecord, totals models.CumulativeTotals) (models.ComplianceResult, error) {
	home := s.homeLocation(ctx)
	caps := rules.CapsFor(s.cfg.Fleet)

	entry, err := s.scenarioLimits(scenario, home)
	if err != nil {
		return models.ComplianceResult{}, err
	}

	var violations, warnings []string

	switch {
	case scenario.EstimatedDutyHours > entry.MaxDutyHours:
		violations = append(violations,
			fmt.Sprintf("estimated duty of %.1f hours exceeds the %.1f hour limit", scenario.EstimatedDutyHours, entry.MaxDutyHours))
	case scenario.EstimatedDutyHours >= whatIfDutyWarningRatio*entry.MaxDutyHours:
		warnings = append(warnings,
			fmt.Sprintf("estimated duty of %.1f hours is within 10%% of the %.1f hour limit", scenario.EstimatedDutyHours, entry.MaxDutyHours))
	}

	if scenario.EstimatedFlightTime > entry.MaxFlightTime {
		violations = append(violations,
			fmt.Sprintf("estimated flight time of %.1f hours exceeds the %.1f hour limit", scenario.EstimatedFlightTime, entry.MaxFlightTime))
	}
	if scenario.SectorCount > entry.MaxSectors {
		violations = append(violations,
			fmt.Sprintf("%d sectors exceeds the limit of %d", scenario.SectorCount, entry.MaxSectors))
	}

	if previous != nil {
		minRest := rules.MinimumRest(s.cfg.Fleet, previous.CrewComplement, previous.DutyHours(), previous.FlightTime)
		earliest := previous.SignOff.Add(time.Duration(math.Round(minRest*60)) * time.Minute)
		if rules.ClassifyDutyTime(previous.SignOn, previous.SignOff, home) == models.DutyTimeBackOfClock {
			earliest = pushToTenLocal(earliest, home)
		}
		if scenario.SignOn.Before(earliest) {
			violations = append(violations,
				fmt.Sprintf("sign-on at %s is before the earliest permissible sign-on %s",
					scenario.SignOn.In(home).Format("2006-01-02 15:04"),
					earliest.In(home).Format("2006-01-02 15:04")))
		}
	}

	violations = append(violations, flightWindowViolations(caps, totals, scenario.EstimatedFlightTime)...)
	violations = append(violations, dutyWindowViolations(caps, totals, scenario.EstimatedDutyHours)...)

	if s.cfg.Fleet == models.FleetShortHaul {
		violations = append(violations, streakCeilingMessages(totals)...)
	}

	return complianceResult(violations, warnings), nil
}

// scenarioLimits resolves the planning-limit entry for the scenario. Wide
// body selects by the sign-on window; short haul applies the window duty
// adjustment to the single planning row.
func (s *ComplianceService) scenarioLimits(scenario models.WhatIfScenario, home *time.Location) (rules.LimitEntry, error) {
	if s.cfg.Fleet == models.FleetWideBody {
		window := rules.WindowForSignOn(scenario.SignOn, home)
		entry, ok := s.tables.WideBodyLimits(scenario.CrewComplement, scenario.RestFacility, window.Name, models.LimitTypePlanning)
		if !ok {
			return rules.LimitEntry{}, &EngineError{
				Code:    constants.ErrCodeRuleTableIntegrity,
				Message: fmt.Sprintf("no wide-body entry for %s/%s/%s", scenario.CrewComplement, scenario.RestFacility, window.Name),
			}
		}
		return entry, nil
	}

	entry, ok := s.tables.ShortHaulLimits(scenario.CrewComplement, scenario.RestFacility, models.LimitTypePlanning)
	if !ok {
		return rules.LimitEntry{}, &EngineError{
			Code:    constants.ErrCodeRuleTableIntegrity,
			Message: fmt.Sprintf("no short-haul entry for %s/%s", scenario.CrewComplement, scenario.RestFacility),
		}
	}
	window := rules.WindowForSignOn(scenario.SignOn, home)
	entry.MaxDutyHours -= shortHaulWindowAdjustment(window.Name)
	return entry, nil
}

// Early and night sign-ons shave the short-haul duty limit.
func shortHaulWindowAdjustment(window string) float64 {
	switch window {
	case "early":
		return 0.5
	case "night":
		return 1.0
	}
	return 0
}

func flightWindowViolations(caps rules.FleetCaps, totals models.CumulativeTotals, added float64) []string {
	var out []string
	if caps.Enforce7DayFlightCap && totals.FlightTime7Days+added > caps.FlightTime7DayCap {
		out = append(out, fmt.Sprintf("flight time would reach %.1f hours in 7 days, over the %.1f hour cap",
			totals.FlightTime7Days+added, caps.FlightTime7DayCap))
	}
	if totals.FlightTimePeriod+added > caps.FlightTimePeriodCap {
		out = append(out, fmt.Sprintf("flight time would reach %.1f hours in %d days, over the %.1f hour cap",
			totals.FlightTimePeriod+added, caps.FlightPeriodDays, caps.FlightTimePeriodCap))
	}
	if totals.FlightTime365Days+added > caps.FlightTime365DayCap {
		out = append(out, fmt.Sprintf("flight time would reach %.1f hours in 365 days, over the %.1f hour cap",
			totals.FlightTime365Days+added, caps.FlightTime365DayCap))
	}
	return out
}

func dutyWindowViolations(caps rules.FleetCaps, totals models.CumulativeTotals, added float64) []string {
	var out []string
	if totals.DutyTime7Days+added > caps.DutyTime7DayCap {
		out = append(out, fmt.Sprintf("duty time would reach %.1f hours in 7 days, over the %.1f hour cap",
			totals.DutyTime7Days+added, caps.DutyTime7DayCap))
	}
	if totals.DutyTime14Days+added > caps.DutyTime14DayCap {
		out = append(out, fmt.Sprintf("duty time would reach %.1f hours in 14 days, over the %.1f hour cap",
			totals.DutyTime14Days+added, caps.DutyTime14DayCap))
	}
	return out
}

func streakCeilingMessages(totals models.CumulativeTotals) []string {
	var out []string
	if totals.ConsecutiveDutyDays >= rules.MaxConsecutiveDutyDays {
		out = append(out, fmt.Sprintf("another duty day would exceed %d consecutive duty days", rules.MaxConsecutiveDutyDays))
	}
	if totals.DutyDaysIn11Days >= rules.MaxDutyDaysIn11Days {
		out = append(out, fmt.Sprintf("another duty day would exceed %d duty days in 11 days", rules.MaxDutyDaysIn11Days))
	}
	return out
}

func complianceResult(violations, warnings []string) models.ComplianceResult {
	result := models.ComplianceResult{
		Violations: violations,
		Warnings:   warnings,
	}
	switch {
	case len(violations) > 0:
		result.Status = models.ComplianceViolation
	case len(warnings) > 0:
		result.Status = models.ComplianceWarning
	default:
		result.Status = models.ComplianceCompliant
	}
	return result
}

func (s *ComplianceService) homeLocation(ctx context.Context) *time.Location {
	if loc, ok := s.tz.Location(ctx, s.cfg.HomeBase); ok {
		return loc
	}
	return DefaultHomeBaseZone
}
