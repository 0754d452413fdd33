package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"southern-cross/frms/internal/models"
)

var testZone = time.FixedZone("AEST", 10*3600)

// Mock TimezoneLookup
type mockTimezoneLookup struct {
	locationFunc   func(ctx context.Context, code string) (*time.Location, bool)
	australianFunc func(ctx context.Context, code string) bool
	convertFunc    func(ctx context.Context, code string) string
	offsetFunc     func(ctx context.Context, code string, at time.Time) (float64, bool)
}

func (m *mockTimezoneLookup) Location(ctx context.Context, code string) (*time.Location, bool) {
	if m.locationFunc != nil {
		return m.locationFunc(ctx, code)
	}
	return testZone, true
}

func (m *mockTimezoneLookup) IsAustralianAirport(ctx context.Context, code string) bool {
	if m.australianFunc != nil {
		return m.australianFunc(ctx, code)
	}
	return strings.HasPrefix(code, "Y")
}

func (m *mockTimezoneLookup) ConvertToICAO(ctx context.Context, code string) string {
	if m.convertFunc != nil {
		return m.convertFunc(ctx, code)
	}
	return code
}

func (m *mockTimezoneLookup) GetTimezoneOffsetHours(ctx context.Context, code string, at time.Time) (float64, bool) {
	if m.offsetFunc != nil {
		return m.offsetFunc(ctx, code, at)
	}
	return 10, true
}

func shortHaulConfig() models.FRMSConfiguration {
	return models.FRMSConfiguration{
		Fleet:               models.FleetShortHaul,
		HomeBase:            "YSSY",
		SignOnLeadMinutes:   60,
		SignOffTrailMinutes: 15,
	}
}

func wideBodyConfig() models.FRMSConfiguration {
	cfg := shortHaulConfig()
	cfg.Fleet = models.FleetWideBody
	return cfg
}

// dutyOn builds a valid two-pilot operating duty starting at the given local
// hour on the given local midnight.
func dutyOn(day time.Time, startHour, durHours int, flight float64) models.DutyRecord {
	signOn := day.Add(time.Duration(startHour) * time.Hour)
	return models.DutyRecord{
		DutyType:       models.DutyTypeOperating,
		CrewComplement: models.CrewTwoPilot,
		RestFacility:   models.RestFacilityNone,
		SignOn:         signOn,
		SignOff:        signOn.Add(time.Duration(durHours) * time.Hour),
		FlightTime:     flight,
		SectorCount:    2,
	}
}

func TestCumulativeService_Calculate_DutyWindows(t *testing.T) {
	svc := NewCumulativeService(shortHaulConfig(), &mockTimezoneLookup{})
	asOf := time.Date(2026, 3, 10, 14, 0, 0, 0, testZone)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, testZone)

	// Today, the edge of the 7-day window, and a day inside 14 days only.
	duties := []models.DutyRecord{
		dutyOn(today, 8, 8, 5),
		dutyOn(today.AddDate(0, 0, -6), 8, 6, 4),
		dutyOn(today.AddDate(0, 0, -10), 8, 7, 5),
	}

	totals := svc.Calculate(context.Background(), duties, nil, asOf)

	if totals.DutyTime7Days != 14 {
		t.Errorf("Expected 14 duty hours in 7 days, got %.1f", totals.DutyTime7Days)
	}
	if totals.DutyTime14Days != 21 {
		t.Errorf("Expected 21 duty hours in 14 days, got %.1f", totals.DutyTime14Days)
	}
	if totals.SectorSourced {
		t.Error("Expected duty-sourced flight time with no sectors")
	}
	if totals.FlightTime7Days != 9 {
		t.Errorf("Expected 9 flight hours in 7 days from duties, got %.1f", totals.FlightTime7Days)
	}
}

func TestCumulativeService_Calculate_WindowNesting(t *testing.T) {
	svc := NewCumulativeService(shortHaulConfig(), &mockTimezoneLookup{})
	asOf := time.Date(2026, 3, 10, 14, 0, 0, 0, testZone)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, testZone)

	var duties []models.DutyRecord
	var sectors []models.FlightSectorSummary
	for back := 0; back < 120; back += 5 {
		day := today.AddDate(0, 0, -back)
		duties = append(duties, dutyOn(day, 9, 8, 6))
		sectors = append(sectors, models.FlightSectorSummary{
			Date:      day.Format(models.SectorDateLayout),
			BlockTime: 6,
			Departure: "YSSY",
			Arrival:   "YMML",
		})
	}

	totals := svc.Calculate(context.Background(), duties, sectors, asOf)

	if !totals.SectorSourced {
		t.Error("Expected sector-sourced flight time")
	}
	if totals.FlightTime7Days > totals.FlightTimePeriod {
		t.Errorf("7-day total %.1f exceeds period total %.1f", totals.FlightTime7Days, totals.FlightTimePeriod)
	}
	if totals.FlightTimePeriod > totals.FlightTime365Days {
		t.Errorf("Period total %.1f exceeds 365-day total %.1f", totals.FlightTimePeriod, totals.FlightTime365Days)
	}
	if totals.DutyTime7Days > totals.DutyTime14Days {
		t.Errorf("7-day duty %.1f exceeds 14-day duty %.1f", totals.DutyTime7Days, totals.DutyTime14Days)
	}
}

func TestCumulativeService_Calculate_PositioningExcluded(t *testing.T) {
	svc := NewCumulativeService(shortHaulConfig(), &mockTimezoneLookup{})
	asOf := time.Date(2026, 3, 10, 14, 0, 0, 0, testZone)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, testZone)

	sectors := []models.FlightSectorSummary{
		{Date: today.Format(models.SectorDateLayout), BlockTime: 4},
		{Date: today.Format(models.SectorDateLayout), BlockTime: 2, IsPositioning: true},
	}

	totals := svc.Calculate(context.Background(), []models.DutyRecord{dutyOn(today, 8, 8, 4)}, sectors, asOf)

	if totals.FlightTime7Days != 4 {
		t.Errorf("Expected positioning excluded, got %.1f flight hours", totals.FlightTime7Days)
	}
}

func TestCumulativeService_Calculate_GapResetsStreaks(t *testing.T) {
	svc := NewCumulativeService(shortHaulConfig(), &mockTimezoneLookup{})
	asOf := time.Date(2026, 3, 10, 14, 0, 0, 0, testZone)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, testZone)

	duties := []models.DutyRecord{
		dutyOn(today.AddDate(0, 0, -3), 8, 8, 5),
		dutyOn(today.AddDate(0, 0, -4), 8, 8, 5),
		dutyOn(today.AddDate(0, 0, -5), 8, 8, 5),
	}

	totals := svc.Calculate(context.Background(), duties, nil, asOf)

	if totals.ConsecutiveDutyDays != 0 {
		t.Errorf("Expected a 3-day gap to zero the streak, got %d", totals.ConsecutiveDutyDays)
	}
	if totals.DutyDaysIn11Days != 3 {
		t.Errorf("Expected 3 duty days in 11 days, got %d", totals.DutyDaysIn11Days)
	}
}

func TestCumulativeService_Calculate_StreaksSurviveDSTFallBack(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		t.Fatalf("Failed to load Australia/Sydney: %v", err)
	}
	svc := NewCumulativeService(shortHaulConfig(), &mockTimezoneLookup{
		locationFunc: func(ctx context.Context, code string) (*time.Location, bool) {
			return sydney, true
		},
	})

	// Daylight saving ends 2026-04-05 in Sydney, making that local day 25
	// hours long. Duties on the 4th and 5th are still consecutive with an
	// asOf on the 6th.
	duties := []models.DutyRecord{
		dutyOn(time.Date(2026, 4, 4, 0, 0, 0, 0, sydney), 8, 8, 5),
		dutyOn(time.Date(2026, 4, 5, 0, 0, 0, 0, sydney), 8, 8, 5),
	}
	asOf := time.Date(2026, 4, 6, 10, 0, 0, 0, sydney)

	totals := svc.Calculate(context.Background(), duties, nil, asOf)

	if totals.ConsecutiveDutyDays != 2 {
		t.Errorf("Expected 2 consecutive duty days across the transition, got %d", totals.ConsecutiveDutyDays)
	}
}

func TestCumulativeService_Calculate_ConsecutiveStreaks(t *testing.T) {
	svc := NewCumulativeService(shortHaulConfig(), &mockTimezoneLookup{})
	asOf := time.Date(2026, 3, 10, 14, 0, 0, 0, testZone)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, testZone)

	// Two early starts, then a normal start that breaks the early streak.
	// The second duty two days back shares its day and must not double-count.
	duties := []models.DutyRecord{
		dutyOn(today, 6, 8, 5),
		dutyOn(today.AddDate(0, 0, -1), 6, 8, 5),
		dutyOn(today.AddDate(0, 0, -2), 9, 8, 5),
		dutyOn(today.AddDate(0, 0, -2), 19, 2, 1),
	}

	totals := svc.Calculate(context.Background(), duties, nil, asOf)

	if totals.ConsecutiveDutyDays != 3 {
		t.Errorf("Expected 3 consecutive duty days, got %d", totals.ConsecutiveDutyDays)
	}
	if totals.ConsecutiveEarlyStarts != 2 {
		t.Errorf("Expected 2 consecutive early starts, got %d", totals.ConsecutiveEarlyStarts)
	}
}

func TestCumulativeService_Calculate_Idempotent(t *testing.T) {
	svc := NewCumulativeService(shortHaulConfig(), &mockTimezoneLookup{})
	asOf := time.Date(2026, 3, 10, 14, 0, 0, 0, testZone)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, testZone)

	duties := []models.DutyRecord{
		dutyOn(today, 8, 9, 6),
		dutyOn(today.AddDate(0, 0, -1), 8, 9, 6),
	}

	first := svc.Calculate(context.Background(), duties, nil, asOf)
	second := svc.Calculate(context.Background(), duties, nil, asOf)

	if first != second {
		t.Errorf("Expected identical totals on repeated calculation: %+v vs %+v", first, second)
	}
}

func TestCumulativeService_Calculate_SkipsInvalidDuties(t *testing.T) {
	svc := NewCumulativeService(shortHaulConfig(), &mockTimezoneLookup{})
	asOf := time.Date(2026, 3, 10, 14, 0, 0, 0, testZone)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, testZone)

	bad := dutyOn(today, 8, 4, 9) // flight time exceeds the duty span
	duties := []models.DutyRecord{dutyOn(today, 14, 4, 3), bad}

	totals := svc.Calculate(context.Background(), duties, nil, asOf)

	if totals.DutyTime7Days != 4 {
		t.Errorf("Expected invalid duty skipped, got %.1f duty hours", totals.DutyTime7Days)
	}
}
