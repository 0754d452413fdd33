package services

import (
	"context"
	"sort"
	"time"

	"southern-cross/frms/internal/logging"
	"southern-cross/frms/internal/models"
	"southern-cross/frms/internal/rules"
)

// CumulativeService computes rolling-window totals and streak counters from
// duty and flight history. It holds only immutable configuration and the
// timezone collaborator, so it is safe for concurrent use.
type CumulativeService struct {
	cfg models.FRMSConfiguration
	tz  TimezoneLookup
}

func NewCumulativeService(cfg models.FRMSConfiguration, tz TimezoneLookup) *CumulativeService {
	return &CumulativeService{cfg: cfg, tz: tz}
}

// HomeLocation resolves the home-base zone once per calculation. A lookup
// miss falls back to the fixed default zone rather than failing.
func (s *CumulativeService) HomeLocation(ctx context.Context) *time.Location {
	if loc, ok := s.tz.Location(ctx, s.cfg.HomeBase); ok {
		return loc
	}
	return DefaultHomeBaseZone
}

// Calculate computes CumulativeTotals as of the reference instant. Flight
// time prefers the sector list, attributed by each sector's own flying date;
// with no sectors it falls back to duty-record flight time by duty date.
// Invalid records are skipped and logged, never fatal.
func (s *CumulativeService) Calculate(ctx context.Context, duties []models.DutyRecord, sectors []models.FlightSectorSummary, asOf time.Time) models.CumulativeTotals {
	home := s.HomeLocation(ctx)
	caps := rules.CapsFor(s.cfg.Fleet)

	local := asOf.In(home)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, home)
	endOfToday := today.AddDate(0, 0, 1)

	windowStart := func(days int) time.Time {
		return today.AddDate(0, 0, -(days - 1))
	}
	inWindow := func(t, start time.Time) bool {
		return !t.Before(start) && t.Before(endOfToday)
	}

	totals := models.CumulativeTotals{
		AsOf:             asOf,
		FlightPeriodDays: caps.FlightPeriodDays,
	}

	start7 := windowStart(7)
	start11 := windowStart(11)
	start14 := windowStart(14)
	startPeriod := windowStart(caps.FlightPeriodDays)
	start365 := windowStart(365)

	valid := duties[:0:0]
	for _, d := range duties {
		if !d.IsValid() {
			logging.Warn("skipping invalid duty record",
				"duty_id", d.ID,
				"sign_on", d.SignOn,
				"sign_off", d.SignOff,
			)
			continue
		}
		valid = append(valid, d)
	}

	periodDutyDays := make(map[time.Time]bool)
	elevenDayDutyDays := make(map[time.Time]bool)

	for _, d := range valid {
		day := d.LocalDate(home)
		if inWindow(day, start7) {
			totals.DutyTime7Days += d.DutyHours()
		}
		if inWindow(day, start14) {
			totals.DutyTime14Days += d.DutyHours()
		}
		if inWindow(day, startPeriod) {
			periodDutyDays[day] = true
		}
		if inWindow(day, start11) {
			elevenDayDutyDays[day] = true
		}
	}

	if len(sectors) > 0 {
		totals.SectorSourced = true
		for _, sec := range sectors {
			if sec.IsPositioning {
				continue
			}
			day, err := time.ParseInLocation(models.SectorDateLayout, sec.Date, home)
			if err != nil {
				logging.Warn("skipping sector with unparseable date",
					"date", sec.Date,
					"departure", sec.Departure,
				)
				continue
			}
			if inWindow(day, start7) {
				totals.FlightTime7Days += sec.BlockTime
			}
			if inWindow(day, startPeriod) {
				totals.FlightTimePeriod += sec.BlockTime
			}
			if inWindow(day, start365) {
				totals.FlightTime365Days += sec.BlockTime
			}
		}
	} else {
		// Fallback attribution by duty date. Less precise for multi-day
		// patterns than the sector path above.
		for _, d := range valid {
			day := d.LocalDate(home)
			if inWindow(day, start7) {
				totals.FlightTime7Days += d.FlightTime
			}
			if inWindow(day, startPeriod) {
				totals.FlightTimePeriod += d.FlightTime
			}
			if inWindow(day, start365) {
				totals.FlightTime365Days += d.FlightTime
			}
		}
	}

	totals.DaysOffInPeriod = caps.FlightPeriodDays - len(periodDutyDays)
	totals.DutyDaysIn11Days = len(elevenDayDutyDays)

	marks := buildDutyDayMarks(valid, home)
	totals.ConsecutiveDutyDays, totals.ConsecutiveEarlyStarts, totals.ConsecutiveLateNights = foldStreaks(marks, today)

	return totals
}

// dutyDayMark is one distinct local duty day with its streak flags. Multiple
// duties on the same local day collapse into a single mark.
type dutyDayMark struct {
	Day        time.Time
	EarlyStart bool
	LateNight  bool
}

func buildDutyDayMarks(duties []models.DutyRecord, home *time.Location) []dutyDayMark {
	byDay := make(map[time.Time]*dutyDayMark)
	for _, d := range duties {
		day := d.LocalDate(home)
		mark, ok := byDay[day]
		if !ok {
			mark = &dutyDayMark{Day: day}
			byDay[day] = mark
		}
		if rules.IsEarlyStart(d.SignOn, home) {
			mark.EarlyStart = true
		}
		switch rules.ClassifyDutyTime(d.SignOn, d.SignOff, home) {
		case models.DutyTimeLateNight, models.DutyTimeBackOfClock:
			mark.LateNight = true
		}
	}

	marks := make([]dutyDayMark, 0, len(byDay))
	for _, mark := range byDay {
		marks = append(marks, *mark)
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].Day.Before(marks[j].Day) })
	return marks
}

// foldStreaks walks the date-sorted, deduplicated duty days backward from
// the most recent one. A gap of more than one calendar day between the most
// recent duty day and today zeroes every streak. The early-start and
// late-night streaks count leading consecutive days (most recent first)
// carrying the respective flag.
func foldStreaks(marks []dutyDayMark, today time.Time) (dutyDays, earlyStarts, lateNights int) {
	if len(marks) == 0 {
		return 0, 0, 0
	}

	// Calendar-day comparison; a wall-clock duration would misjudge the gap
	// on daylight-saving transition days, where a local day is 23 or 25 hours.
	last := marks[len(marks)-1]
	if last.Day.AddDate(0, 0, 1).Before(today) {
		return 0, 0, 0
	}

	chain := []dutyDayMark{last}
	prev := last.Day
	for i := len(marks) - 2; i >= 0; i-- {
		if !marks[i].Day.Equal(prev.AddDate(0, 0, -1)) {
			break
		}
		chain = append(chain, marks[i])
		prev = marks[i].Day
	}

	dutyDays = len(chain)
	for _, mark := range chain {
		if !mark.EarlyStart {
			break
		}
		earlyStarts++
	}
	for _, mark := range chain {
		if !mark.LateNight {
			break
		}
		lateNights++
	}
	return dutyDays, earlyStarts, lateNights
}
