package rules

import (
	"testing"
	"time"

	"southern-cross/frms/internal/models"
)

var sydney = time.FixedZone("AEST", 10*3600)

func localTime(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, sydney)
}

func TestSignOnWindows_CoverEveryMinute(t *testing.T) {
	for minute := 0; minute < 24*60; minute++ {
		matches := 0
		for _, w := range SignOnWindows {
			if w.Contains(minute) {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("minute %04d matched %d windows, want exactly 1", minute, matches)
		}
	}
}

func TestWindowForSignOn_WrapAroundMidnight(t *testing.T) {
	cases := []struct {
		hh, mm int
		want   string
	}{
		{5, 0, "early"},
		{6, 59, "early"},
		{7, 0, "morning"},
		{12, 59, "morning"},
		{13, 0, "afternoon"},
		{19, 59, "afternoon"},
		{20, 0, "night"},
		{23, 30, "night"},
		// An hour of 01 is inside the 2000-0459 window even though it is
		// numerically smaller than the window start.
		{1, 0, "night"},
		{4, 59, "night"},
	}

	for _, tc := range cases {
		got := WindowForSignOn(localTime(2025, time.March, 10, tc.hh, tc.mm), sydney)
		if got.Name != tc.want {
			t.Errorf("WindowForSignOn(%02d:%02d) = %s, want %s", tc.hh, tc.mm, got.Name, tc.want)
		}
	}
}

func TestClassifyDutyTime(t *testing.T) {
	cases := []struct {
		name    string
		signOn  time.Time
		signOff time.Time
		want    models.DutyTimeClass
	}{
		{
			name:    "daytime duty is normal",
			signOn:  localTime(2025, time.March, 10, 8, 0),
			signOff: localTime(2025, time.March, 10, 18, 0),
			want:    models.DutyTimeNormal,
		},
		{
			name:    "evening duty touching the late band",
			signOn:  localTime(2025, time.March, 10, 16, 0),
			signOff: localTime(2025, time.March, 10, 23, 30),
			want:    models.DutyTimeLateNight,
		},
		{
			name:    "two continuous hours inside 0100-0459 is back of clock",
			signOn:  localTime(2025, time.March, 10, 0, 30),
			signOff: localTime(2025, time.March, 10, 3, 30),
			want:    models.DutyTimeBackOfClock,
		},
		{
			name:    "brief brush with the band stays late night",
			signOn:  localTime(2025, time.March, 9, 20, 0),
			signOff: localTime(2025, time.March, 10, 2, 0),
			want:    models.DutyTimeLateNight,
		},
		{
			name:    "overnight duty spanning the whole band",
			signOn:  localTime(2025, time.March, 9, 22, 0),
			signOff: localTime(2025, time.March, 10, 6, 0),
			want:    models.DutyTimeBackOfClock,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyDutyTime(tc.signOn, tc.signOff, sydney)
			if got != tc.want {
				t.Errorf("ClassifyDutyTime = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestIsEarlyStart(t *testing.T) {
	if !IsEarlyStart(localTime(2025, time.March, 10, 6, 59), sydney) {
		t.Error("06:59 local should be an early start")
	}
	if IsEarlyStart(localTime(2025, time.March, 10, 7, 0), sydney) {
		t.Error("07:00 local should not be an early start")
	}

	// The cutoff is evaluated in home-base local time, not the instant's zone.
	utcInstant := time.Date(2025, time.March, 9, 20, 30, 0, 0, time.UTC) // 06:30 AEST
	if !IsEarlyStart(utcInstant, sydney) {
		t.Error("20:30 UTC is 06:30 AEST and should be an early start")
	}
}
