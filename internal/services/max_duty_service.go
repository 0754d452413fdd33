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

// MaxDutyService produces the permitted envelope for a crew member's next
// duty: maximum duty and flight time, sector limit, minimum rest, earliest
// sign-on and any active restrictions.
type MaxDutyService struct {
	cfg    models.FRMSConfiguration
	tables *rules.Tables
	tz     TimezoneLookup
}

func NewMaxDutyService(cfg models.FRMSConfiguration, tables *rules.Tables, tz TimezoneLookup) *MaxDutyService {
	return &MaxDutyService{cfg: cfg, tables: tables, tz: tz}
}

// Calculate builds the MaximumNextDuty envelope. The rule-table lookup must
// always succeed for a loaded table; a miss is reported as a configuration
// integrity error, not a recoverable input error.
func (s *MaxDutyService) Calculate(
	ctx context.Context,
	previous *models.DutyRecord,
	totals models.CumulativeTotals,
	limitType models.LimitType,
	crew models.CrewComplement,
	rest models.RestFacility,
) (*models.MaximumNextDuty, error) {

	entry, ok := s.tables.Limits(s.cfg.Fleet, crew, rest, limitType)
	if !ok {
		return nil, &EngineError{
			Code:    constants.ErrCodeRuleTableIntegrity,
			Message: fmt.Sprintf("no limit entry for %s/%s/%s/%s", s.cfg.Fleet, crew, rest, limitType),
		}
	}

	home := s.homeLocation(ctx)
	caps := rules.CapsFor(s.cfg.Fleet)

	result := &models.MaximumNextDuty{
		MaxDutyPeriod:    entry.MaxDutyHours,
		MaxFlightTime:    entry.MaxFlightTime,
		MaxSectors:       entry.MaxSectors,
		MinimumRestHours: entry.PreRestHours,
		Restrictions:     []string{},
		LimitType:        limitType,
	}

	if previous != nil {
		minRest := rules.MinimumRest(s.cfg.Fleet, previous.CrewComplement, previous.DutyHours(), previous.FlightTime)
		result.MinimumRestHours = minRest

		earliest := previous.SignOff.Add(time.Duration(math.Round(minRest*60)) * time.Minute)

		if rules.ClassifyDutyTime(previous.SignOn, previous.SignOff, home) == models.DutyTimeBackOfClock {
			earliest = pushToTenLocal(earliest, home)
			if s.cfg.Fleet == models.FleetWideBody {
				result.Restrictions = append(result.Restrictions,
					"previous duty was back of clock: sign-on not before 10:00 local")
			}
		}
		result.EarliestSignOn = &earliest
	}

	if s.cfg.Fleet == models.FleetShortHaul {
		result.Restrictions = append(result.Restrictions, streakRestrictions(totals)...)
	}

	// Constrain by remaining headroom under the rolling windows, clamped to
	// non-negative. Near-exhaustion emits a textual restriction.
	flightRemaining := []headroom{
		{remaining: caps.FlightTimePeriodCap - totals.FlightTimePeriod,
			label: fmt.Sprintf("%d-day flight time", caps.FlightPeriodDays)},
		{remaining: caps.FlightTime365DayCap - totals.FlightTime365Days,
			label: "365-day flight time"},
	}
	if caps.Enforce7DayFlightCap {
		flightRemaining = append(flightRemaining, headroom{
			remaining: caps.FlightTime7DayCap - totals.FlightTime7Days,
			label:     "7-day flight time",
		})
	}
	dutyRemaining := []headroom{
		{remaining: caps.DutyTime7DayCap - totals.DutyTime7Days, label: "7-day duty time"},
		{remaining: caps.DutyTime14DayCap - totals.DutyTime14Days, label: "14-day duty time"},
	}

	for _, h := range flightRemaining {
		result.MaxFlightTime = math.Min(result.MaxFlightTime, math.Max(0, h.remaining))
		if h.remaining < rules.NearExhaustionThresholdHours {
			result.Restrictions = append(result.Restrictions,
				fmt.Sprintf("%s limit nearly exhausted: %.1f hours remaining", h.label, math.Max(0, h.remaining)))
		}
	}
	for _, h := range dutyRemaining {
		result.MaxDutyPeriod = math.Min(result.MaxDutyPeriod, math.Max(0, h.remaining))
		if h.remaining < rules.NearExhaustionThresholdHours {
			result.Restrictions = append(result.Restrictions,
				fmt.Sprintf("%s limit nearly exhausted: %.1f hours remaining", h.label, math.Max(0, h.remaining)))
		}
	}

	if s.cfg.Fleet == models.FleetWideBody {
		rows, err := s.signOnLimitRows(crew, limitType)
		if err != nil {
			return nil, err
		}
		result.SignOnLimits = rows
	}

	return result, nil
}

type headroom struct {
	remaining float64
	label     string
}

func streakRestrictions(totals models.CumulativeTotals) []string {
	var out []string
	if totals.ConsecutiveDutyDays >= rules.MaxConsecutiveDutyDays {
		out = append(out, fmt.Sprintf("%d consecutive duty days reached: a day off is required", totals.ConsecutiveDutyDays))
	}
	if totals.DutyDaysIn11Days >= rules.MaxDutyDaysIn11Days {
		out = append(out, fmt.Sprintf("%d duty days in the last 11 days reached the limit", totals.DutyDaysIn11Days))
	}
	if totals.ConsecutiveEarlyStarts >= rules.MaxConsecutiveEarlyStarts {
		out = append(out, fmt.Sprintf("%d consecutive early starts reached: no further early start permitted", totals.ConsecutiveEarlyStarts))
	}
	if totals.ConsecutiveLateNights >= rules.MaxConsecutiveLateNights {
		out = append(out, fmt.Sprintf("%d consecutive late-night duties reached: no further late-night duty permitted", totals.ConsecutiveLateNights))
	}
	return out
}

// signOnLimitRows emits the complete wide-body sign-on-window table so a
// caller can present the full matrix rather than a single selected row.
func (s *MaxDutyService) signOnLimitRows(crew models.CrewComplement, limitType models.LimitType) ([]models.SignOnLimitRow, error) {
	var rows []models.SignOnLimitRow
	for _, w := range rules.SignOnWindows {
		for _, rest := range models.AllRestFacilities {
			entry, ok := s.tables.WideBodyLimits(crew, rest, w.Name, limitType)
			if !ok {
				return nil, &EngineError{
					Code:    constants.ErrCodeRuleTableIntegrity,
					Message: fmt.Sprintf("no wide-body entry for %s/%s/%s/%s", crew, rest, w.Name, limitType),
				}
			}
			rows = append(rows, models.SignOnLimitRow{
				Window:        w.Name,
				WindowStart:   w.StartClock(),
				WindowEnd:     w.EndClock(),
				RestFacility:  rest,
				MaxDutyHours:  entry.MaxDutyHours,
				MaxFlightTime: entry.MaxFlightTime,
				MaxSectors:    entry.MaxSectors,
			})
		}
	}
	return rows, nil
}

// pushToTenLocal moves an instant forward to 10:00 local if it falls earlier
// on its calculated day. Never moves backward.
func pushToTenLocal(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	ten := time.Date(local.Year(), local.Month(), local.Day(), 10, 0, 0, 0, loc)
	if local.Before(ten) {
		return ten
	}
	return t
}

func (s *MaxDutyService) homeLocation(ctx context.Context) *time.Location {
	if loc, ok := s.tz.Location(ctx, s.cfg.HomeBase); ok {
		return loc
	}
	return DefaultHomeBaseZone
}
