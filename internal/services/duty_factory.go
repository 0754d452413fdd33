package services

import (
	"context"
	"strings"
	"time"

	"southern-cross/frms/internal/constants"
	"southern-cross/frms/internal/models"
)

// Positioning sectors between two Australian airports use a shortened
// sign-on lead.
const australiaPositioningLeadMinutes = 30

// DutyFactory derives duty records from raw flight sectors, applying the
// configured sign-on and sign-off margins.
type DutyFactory struct {
	cfg models.FRMSConfiguration
	tz  TimezoneLookup
}

func NewDutyFactory(cfg models.FRMSConfiguration, tz TimezoneLookup) *DutyFactory {
	return &DutyFactory{cfg: cfg, tz: tz}
}

// CreateDutyFromSector builds a DutyRecord for a single flown sector.
// Positioning counts as duty, not flight, so its flight time is zero.
func (f *DutyFactory) CreateDutyFromSector(ctx context.Context, sector models.FlightSectorSummary) (*models.DutyRecord, error) {
	if sector.ScheduledDeparture.IsZero() || sector.ActualArrival.IsZero() {
		return nil, &EngineError{
			Code:    constants.ErrCodeInvalidInput,
			Message: "sector is missing departure or arrival times",
		}
	}
	if !sector.ActualArrival.After(sector.ScheduledDeparture) {
		return nil, &EngineError{
			Code:    constants.ErrCodeInvalidInput,
			Message: "sector arrival is not after departure",
		}
	}

	home := f.homeLocation(ctx)

	dep := f.tz.ConvertToICAO(ctx, sector.Departure)
	arr := f.tz.ConvertToICAO(ctx, sector.Arrival)
	domestic := f.tz.IsAustralianAirport(ctx, dep) && f.tz.IsAustralianAirport(ctx, arr)

	lead := f.cfg.SignOnLeadMinutes
	if sector.IsPositioning && domestic {
		lead = australiaPositioningLeadMinutes
	}

	signOn := sector.ScheduledDeparture.Add(-time.Duration(lead) * time.Minute)
	signOff := sector.ActualArrival.Add(time.Duration(f.cfg.SignOffTrailMinutes) * time.Minute)

	duty := &models.DutyRecord{
		Date:             dateOf(signOn, home),
		DutyType:         models.DutyTypeOperating,
		CrewComplement:   inferCrewComplement(sector),
		RestFacility:     models.RestFacilityNone,
		SignOn:           signOn,
		SignOff:          signOff,
		FlightTime:       sector.BlockTime,
		NightTime:        nightHours(signOn, signOff, home),
		SectorCount:      1,
		IsInternational:  !domestic,
		HomeBaseTimeZone: home.String(),
	}

	if sector.IsPositioning {
		duty.DutyType = models.DutyTypeDeadheading
		// Positioning counts as duty, not flight.
		duty.FlightTime = 0
	}

	return duty, nil
}

// inferCrewComplement reads the crew fields of the sector. An empty second
// officer field means a two-pilot crew; a slash-separated pair of second
// officers means four pilots.
func inferCrewComplement(sector models.FlightSectorSummary) models.CrewComplement {
	so := strings.TrimSpace(sector.SecondOfficer)
	switch {
	case so == "":
		return models.CrewTwoPilot
	case strings.Contains(so, "/"):
		return models.CrewFourPilot
	default:
		return models.CrewThreePilot
	}
}

// nightHours sums the overlap with the 23:00 to 05:30 local band across
// every local day the span touches.
func nightHours(signOn, signOff time.Time, loc *time.Location) float64 {
	local := signOn.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	// The tail of the band wrapping over from the previous midnight.
	total := overlapHours(signOn, signOff, day, day.Add(5*time.Hour+30*time.Minute))

	for !day.After(signOff.In(loc)) {
		bandStart := day.Add(23 * time.Hour)
		bandEnd := day.AddDate(0, 0, 1).Add(5*time.Hour + 30*time.Minute)
		total += overlapHours(signOn, signOff, bandStart, bandEnd)
		day = day.AddDate(0, 0, 1)
	}
	return total
}

func overlapHours(aStart, aEnd, bStart, bEnd time.Time) float64 {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours()
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func (f *DutyFactory) homeLocation(ctx context.Context) *time.Location {
	if loc, ok := f.tz.Location(ctx, f.cfg.HomeBase); ok {
		return loc
	}
	return DefaultHomeBaseZone
}
