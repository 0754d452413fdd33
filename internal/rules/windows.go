package rules

import (
	"time"

	"southern-cross/frms/internal/models"
)

// SignOnWindow is a contiguous local clock range used to select
// sign-on-time-dependent limits. Start and End are minutes of the local day,
// inclusive; a window with Start > End wraps across midnight.
type SignOnWindow struct {
	Name  string
	Start int
	End   int
}

// The defined sign-on windows in home-base local time. The night window
// wraps: 20:00 through 04:59 the next morning.
var SignOnWindows = []SignOnWindow{
	{Name: "early", Start: 5 * 60, End: 7*60 - 1},
	{Name: "morning", Start: 7 * 60, End: 13*60 - 1},
	{Name: "afternoon", Start: 13 * 60, End: 20*60 - 1},
	{Name: "night", Start: 20 * 60, End: 5*60 - 1},
}

// Contains reports whether the minute-of-day falls inside the window,
// handling the midnight wrap (an hour of 01 is inside a 2000-0459 window
// even though numerically smaller than the window start).
func (w SignOnWindow) Contains(minuteOfDay int) bool {
	if w.Start <= w.End {
		return minuteOfDay >= w.Start && minuteOfDay <= w.End
	}
	return minuteOfDay >= w.Start || minuteOfDay <= w.End
}

// StartClock renders the window start as HH:MM.
func (w SignOnWindow) StartClock() string {
	return clock(w.Start)
}

// EndClock renders the window end as HH:MM.
func (w SignOnWindow) EndClock() string {
	return clock(w.End)
}

func clock(minuteOfDay int) string {
	h := minuteOfDay / 60
	m := minuteOfDay % 60
	return time.Date(0, 1, 1, h, m, 0, 0, time.UTC).Format("15:04")
}

// WindowForSignOn classifies a sign-on instant into its local-start-time
// window using the home-base zone.
func WindowForSignOn(signOn time.Time, loc *time.Location) SignOnWindow {
	local := signOn.In(loc)
	minute := local.Hour()*60 + local.Minute()
	for _, w := range SignOnWindows {
		if w.Contains(minute) {
			return w
		}
	}
	// Windows cover the full day; validated by test.
	return SignOnWindows[0]
}

// Bands for duty time-class detection, in home-base local minutes.
const (
	lateNightBandStart = 23 * 60            // 23:00
	lateNightBandEnd   = 5*60 + 30          // 05:30 next day
	backOfClockStart   = 1 * 60             // 01:00
	backOfClockEnd     = 5 * 60             // 04:59 inclusive
	backOfClockMinimum = 2 * time.Hour      // continuous time in band
	EarlyStartCutoff   = 7 * 60             // sign-on before 07:00 local
)

// ClassifyDutyTime classifies a completed duty in home-base local time.
// Back-of-clock takes precedence over late-night: a duty with at least two
// continuous hours inside the 0100-0459 band triggers next-duty sign-on
// restrictions.
func ClassifyDutyTime(signOn, signOff time.Time, loc *time.Location) models.DutyTimeClass {
	if !signOff.After(signOn) {
		return models.DutyTimeNormal
	}

	on := signOn.In(loc)
	off := signOff.In(loc)

	// Walk each local day the duty may touch, starting the day before
	// sign-on so wrapped bands anchored on the previous evening are seen.
	day := time.Date(on.Year(), on.Month(), on.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	lastDay := time.Date(off.Year(), off.Month(), off.Day(), 0, 0, 0, 0, loc)

	backOfClock := false
	lateNight := false

	for !day.After(lastDay) {
		bocFrom := day.Add(time.Duration(backOfClockStart) * time.Minute)
		bocTo := day.Add(time.Duration(backOfClockEnd) * time.Minute)
		if overlap(on, off, bocFrom, bocTo) >= backOfClockMinimum {
			backOfClock = true
		}

		// Late-night band runs 23:00 this day to 05:30 the next.
		lateFrom := day.Add(time.Duration(lateNightBandStart) * time.Minute)
		lateEnd := day.AddDate(0, 0, 1).Add(time.Duration(lateNightBandEnd) * time.Minute)
		if overlap(on, off, lateFrom, lateEnd) > 0 {
			lateNight = true
		}

		day = day.AddDate(0, 0, 1)
	}

	if backOfClock {
		return models.DutyTimeBackOfClock
	}
	if lateNight {
		return models.DutyTimeLateNight
	}
	return models.DutyTimeNormal
}

// IsEarlyStart reports whether the sign-on falls before 07:00 home-base local.
func IsEarlyStart(signOn time.Time, loc *time.Location) bool {
	local := signOn.In(loc)
	return local.Hour()*60+local.Minute() < EarlyStartCutoff
}

func overlap(aFrom, aTo, bFrom, bTo time.Time) time.Duration {
	from := aFrom
	if bFrom.After(from) {
		from = bFrom
	}
	to := aTo
	if bTo.Before(to) {
		to = bTo
	}
	if !to.After(from) {
		return 0
	}
	return to.Sub(from)
}
