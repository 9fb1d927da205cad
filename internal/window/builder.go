package window

import (
	"time"

	"github.com/tzbuild/tzcat/tzdata"
)

// Builder accumulates the windows of one region's zone definition in
// order, validating as each is added. It is single-use: build one
// region's windows, hand the result to the transition compiler, discard.
type Builder struct {
	windows []*Window
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Windows returns the windows added so far, in order.
func (b *Builder) Windows() []*Window { return b.windows }

func (b *Builder) last() *Window {
	if len(b.windows) == 0 {
		return nil
	}
	return b.windows[len(b.windows)-1]
}

// AddWindow opens a new bounded window ending at until (interpreted per
// def). until must be strictly greater than the previous window's until.
func (b *Builder) AddWindow(standardOffset int, until LocalDateTime, def tzdata.TimeDefinition) error {
	if prev := b.last(); prev != nil {
		if prev.isForever() {
			return stateErr("addWindow", "cannot add a window after the forever window")
		}
		if until.Compare(prev.End.At) <= 0 {
			return stateErr("addWindow", "until must strictly exceed the previous window's until")
		}
	}
	b.windows = append(b.windows, &Window{StandardOffset: standardOffset, End: endAt(until, def)})
	return nil
}

// AddWindowForever opens the final, open-ended window. Only one may exist
// and it must be the last window added.
func (b *Builder) AddWindowForever(standardOffset int) error {
	if prev := b.last(); prev != nil && prev.isForever() {
		return stateErr("addWindowForever", "a forever window has already been added")
	}
	b.windows = append(b.windows, &Window{StandardOffset: standardOffset, End: endForever()})
	return nil
}

// SetFixedSavingsToWindow records a fixed savings amount for the current
// window. It fails if the window already carries any rule.
func (b *Builder) SetFixedSavingsToWindow(seconds int) error {
	w := b.last()
	if w == nil {
		return stateErr("setFixedSavingsToWindow", "no window has been added yet")
	}
	if w.ruleCount() > 0 {
		return stateErr("setFixedSavingsToWindow", "window already has rules")
	}
	w.HasFixedSavings = true
	w.FixedSavings = seconds
	return nil
}

// AddRuleToWindow adds a recurring rule to the current window. A rule
// whose endYear is tzdata.Max becomes a last-rule; otherwise it is
// expanded into one concrete Rule per year in [startYear, endYear].
func (b *Builder) AddRuleToWindow(
	startYear, endYear tzdata.YearBound,
	month time.Month,
	dayOfMonthIndicator int,
	dayOfWeek time.Weekday,
	hasDayOfWeek, adjustForwards bool,
	t tzdata.ClockTime,
	savingsSeconds int,
) error {
	w := b.last()
	if w == nil {
		return stateErr("addRuleToWindow", "no window has been added yet")
	}
	if w.HasFixedSavings {
		return stateErr("addRuleToWindow", "window already has fixed savings")
	}
	if dayOfMonthIndicator == 0 || dayOfMonthIndicator < -28 || dayOfMonthIndicator > 31 {
		return semanticErr("dayOfMonthIndicator %d out of range [-28,31]\\{0}", dayOfMonthIndicator)
	}
	if t.EndOfDay && t.Seconds != 0 {
		return semanticErr("endOfDay rule must have time of day 00:00, got %d seconds", t.Seconds)
	}
	if w.ruleCount() >= 2000 {
		return stateErr("addRuleToWindow", "window already holds 2000 rules")
	}

	if endYear.Kind == tzdata.YearMax {
		w.LastRules = append(w.LastRules, LastRule{
			StartYear:           startYear,
			Month:               month,
			DayOfMonthIndicator: dayOfMonthIndicator,
			DayOfWeek:           dayOfWeek,
			HasDayOfWeek:        hasDayOfWeek,
			AdjustForwards:      adjustForwards,
			Time:                t,
			SavingsSeconds:      savingsSeconds,
		})
		return nil
	}

	if startYear.Kind != tzdata.YearFinite || endYear.Kind != tzdata.YearFinite {
		return semanticErr("bounded rule requires finite FROM/TO years, got %s..%s", startYear, endYear)
	}
	for y := startYear.Year; y <= endYear.Year; y++ {
		w.Rules = append(w.Rules, Rule{
			Year:                y,
			Month:               month,
			DayOfMonthIndicator: dayOfMonthIndicator,
			DayOfWeek:           dayOfWeek,
			HasDayOfWeek:        hasDayOfWeek,
			AdjustForwards:      adjustForwards,
			Time:                t,
			SavingsSeconds:      savingsSeconds,
		})
	}
	return nil
}

// AddSingleYearRuleToWindow is the convenience overload for a rule that
// applies in exactly one year.
func (b *Builder) AddSingleYearRuleToWindow(
	year int,
	month time.Month,
	dayOfMonthIndicator int,
	dayOfWeek time.Weekday,
	hasDayOfWeek, adjustForwards bool,
	t tzdata.ClockTime,
	savingsSeconds int,
) error {
	return b.AddRuleToWindow(tzdata.Finite(year), tzdata.Finite(year), month, dayOfMonthIndicator, dayOfWeek, hasDayOfWeek, adjustForwards, t, savingsSeconds)
}
