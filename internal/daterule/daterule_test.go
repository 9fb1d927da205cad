package daterule

import (
	"testing"
	"time"
)

func TestDaysInMonthLeapYear(t *testing.T) {
	if got := DaysInMonth(2024, time.February); got != 29 {
		t.Errorf("DaysInMonth(2024, Feb) = %d, want 29", got)
	}
	if got := DaysInMonth(2023, time.February); got != 28 {
		t.Errorf("DaysInMonth(2023, Feb) = %d, want 28", got)
	}
}

func TestResolveDayBareNumber(t *testing.T) {
	if got := ResolveDay(2024, time.June, 15, 0, false, false); got != 15 {
		t.Errorf("bare day 15 = %d, want 15", got)
	}
}

func TestResolveDayLastWeekdayWhenMonthEndAlreadyMatches(t *testing.T) {
	// March 31, 2024 falls on a Sunday already, so lastSun should resolve
	// to the month-end anchor itself with no backward adjustment.
	got := ResolveDay(2024, time.March, -1, time.Sunday, true, false)
	if got != 31 {
		t.Errorf("lastSun March 2024 = %d, want 31", got)
	}
}

func TestResolveDayLastWeekdayRequiringBackwardsAdjustment(t *testing.T) {
	// October 31, 2024 is a Thursday; the last Sunday is the 27th.
	got := ResolveDay(2024, time.October, -1, time.Sunday, true, false)
	if got != 27 {
		t.Errorf("lastSun October 2024 = %d, want 27", got)
	}
}

func TestResolveDayOnOrAfter(t *testing.T) {
	// Sun>=8 in March 2024: March 8 is a Friday, so it rolls to the 10th.
	got := ResolveDay(2024, time.March, 8, time.Sunday, true, true)
	if got != 10 {
		t.Errorf("Sun>=8 March 2024 = %d, want 10", got)
	}
}

func TestResolveDayOnOrBefore(t *testing.T) {
	// Sun<=25 in March 2024: March 25 is a Monday, so it rolls back to the 24th.
	got := ResolveDay(2024, time.March, 25, time.Sunday, true, false)
	if got != 24 {
		t.Errorf("Sun<=25 March 2024 = %d, want 24", got)
	}
}

func TestResolveDayOnOrAfterExactMatch(t *testing.T) {
	// When the anchor day is already the target weekday, no adjustment occurs.
	got := ResolveDay(2024, time.March, 10, time.Sunday, true, true)
	if got != 10 {
		t.Errorf("Sun>=10 March 2024 = %d, want 10 (already a Sunday)", got)
	}
}
