// Package daterule resolves the tzdata day-of-month-and-weekday grammar
// (a signed day-of-month indicator plus an optional weekday qualifier)
// against a concrete calendar year. Both the window builder (to order
// rules chronologically) and the transition compiler (to materialize
// cutover instants) need this resolution, so it lives in one place.
package daterule

import "time"

// DaysInMonth returns the number of days in the given proleptic Gregorian
// month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ResolveDay resolves a rule's day-of-month indicator (and optional
// weekday qualifier) to a concrete day of the given month and year.
//
// A negative indicator anchors to the end of the month: the starting day
// is monthLength+1+indicator (indicator == -1 is the last day of the
// month, as in "lastSun"). A positive indicator anchors to that literal
// day of month ("Sun>=25", "Sun<=25", or a bare day number).
//
// When a weekday qualifier is present, the starting day is adjusted to the
// nearest matching weekday: forwards (>=) when adjustForwards is true,
// backwards (<=) otherwise. "lastXxx" is adjustForwards=false from the
// month-end anchor.
func ResolveDay(year int, month time.Month, indicator int, weekday time.Weekday, hasWeekday, adjustForwards bool) int {
	monthLen := DaysInMonth(year, month)
	var start int
	if indicator < 0 {
		start = monthLen + 1 + indicator
	} else {
		start = indicator
	}
	if !hasWeekday {
		return start
	}
	if adjustForwards {
		return adjustFwd(year, month, start, weekday)
	}
	return adjustBack(year, month, start, weekday)
}

func adjustFwd(year int, month time.Month, day int, weekday time.Weekday) int {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
	delta := (int(weekday) - int(d) + 7) % 7
	return day + delta
}

func adjustBack(year int, month time.Month, day int, weekday time.Weekday) int {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
	delta := (int(d) - int(weekday) + 7) % 7
	return day - delta
}
