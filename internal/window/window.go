// Package window implements the Window Builder: it accepts standard-offset
// windows, fixed savings, and recurring rules for one region, validates
// their ordering, and tidies "forever" rules into a form the transition
// compiler can walk window by window.
package window

import (
	"time"

	"github.com/tzbuild/tzcat/tzdata"
)

// LocalDateTime is a plain calendar value with no attached zone: a
// proleptic Gregorian date plus a count of seconds since midnight on that
// date (which may be 86400, representing the literal end of the day before
// normalization). It is ordered lexicographically by (year, month, day,
// seconds), which is exactly the ordering windows and rules are compared
// by before any UTC offset is known.
type LocalDateTime struct {
	Year    int
	Month   time.Month
	Day     int
	Seconds int
}

// MaxLocalDateTime is the sentinel used by a "forever" window; it compares
// greater than any date a real rule or zone UNTIL line can express.
var MaxLocalDateTime = LocalDateTime{Year: 1<<31 - 1, Month: time.December, Day: 31, Seconds: 86400}

// MinLocalDateTime is the sentinel the transition compiler starts its
// running window-start cursor at; it compares less than any real date.
var MinLocalDateTime = LocalDateTime{Year: -(1 << 31), Month: time.January, Day: 1, Seconds: 0}

// Compare returns -1, 0, or 1 as d is before, equal to, or after o.
func (d LocalDateTime) Compare(o LocalDateTime) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	case d.Day != o.Day:
		return cmpInt(d.Day, o.Day)
	default:
		return cmpInt(d.Seconds, o.Seconds)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// WindowEndKind distinguishes a bounded window (ends at a local date-time)
// from the one "forever" window that must terminate a region's windows.
type WindowEndKind uint8

const (
	EndAt WindowEndKind = iota
	EndForever
)

// WindowEnd is the sum type `WindowEnd::{At(LocalDateTime, TimeDefinition), Forever}`.
type WindowEnd struct {
	Kind       WindowEndKind
	At         LocalDateTime
	Definition tzdata.TimeDefinition
}

func endAt(at LocalDateTime, def tzdata.TimeDefinition) WindowEnd {
	return WindowEnd{Kind: EndAt, At: at, Definition: def}
}

func endForever() WindowEnd {
	return WindowEnd{Kind: EndForever, At: MaxLocalDateTime, Definition: tzdata.Wall}
}

func (e WindowEnd) isForever() bool { return e.Kind == EndForever }

// Rule is one concrete, single-year occurrence of a recurring rule,
// expanded from a RuleLine's [startYear, endYear] span or from a last-rule
// during the tidy pass.
type Rule struct {
	Year                int
	Month               time.Month
	DayOfMonthIndicator int // signed 1..31 or -1..-28
	DayOfWeek           time.Weekday
	HasDayOfWeek        bool
	AdjustForwards      bool
	Time                tzdata.ClockTime
	SavingsSeconds      int
}

// LastRule is a rule whose endYear is MAX: the recurring tail of a zone's
// rules, still open-ended when the window is emitted. StartYear is mutated
// in place by the tidy pass as years are peeled off into the ordinary Rule
// list.
type LastRule struct {
	StartYear           tzdata.YearBound
	Month               time.Month
	DayOfMonthIndicator int
	DayOfWeek           time.Weekday
	HasDayOfWeek        bool
	AdjustForwards      bool
	Time                tzdata.ClockTime
	SavingsSeconds      int
}

// Window is one interval of constant standard offset: either a fixed
// savings amount applies throughout, or a list of recurring rules (plus,
// possibly, a still-open last-rule pair) does.
type Window struct {
	StandardOffset int
	End            WindowEnd

	HasFixedSavings bool
	FixedSavings    int

	Rules     []Rule
	LastRules []LastRule
}

func (w *Window) isForever() bool { return w.End.isForever() }

func (w *Window) ruleCount() int { return len(w.Rules) + len(w.LastRules) }
