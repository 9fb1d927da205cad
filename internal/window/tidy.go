package window

import (
	"sort"

	"github.com/tzbuild/tzcat/internal/daterule"
	"github.com/tzbuild/tzcat/tzdata"
)

// Tidy runs the tidy pass for this window: it resolves any still-open
// last-rules into concrete yearly Rule occurrences up to a cap, leaving at
// most the recurring tail the transition compiler needs, then sorts both
// rule lists into presentation order.
//
// maxLastRuleStartYear is shared across all windows of one region and is
// threaded through by the caller (the transition compiler) in window
// order; windowStartYear is the year of the running loopWindowStart at the
// point this window is reached.
func (w *Window) Tidy(maxLastRuleStartYear *tzdata.YearBound, windowStartYear int) error {
	if len(w.LastRules) == 1 {
		return stateErr("tidy", "window has exactly one last-rule; last-rules come in on/off pairs")
	}

	switch {
	case w.isForever():
		capYear := max2(*maxLastRuleStartYear, tzdata.Finite(windowStartYear)).AddOne()
		for i := range w.LastRules {
			w.expandLastRule(&w.LastRules[i], capYear)
			w.LastRules[i].StartYear = capYear.AddOne()
		}
		if capYear.Kind == tzdata.YearMax {
			w.LastRules = nil
		} else {
			*maxLastRuleStartYear = maxLastRuleStartYear.AddOne()
		}
	default:
		// Only a window that itself carried a last-rule pair, now cut short
		// by the next window starting, needs to poison maxLastRuleStartYear:
		// that family's true continuation is unknowable, so a later forever
		// window's same-shaped tail must not be trusted either. An ordinary
		// bounded window with no last-rules of its own (the common
		// "LMT/fixed window before the zone adopts its permanent rule" shape)
		// must leave maxLastRuleStartYear untouched, or it would wrongly
		// collapse the next forever window's recurring tail to nothing.
		hadLastRules := len(w.LastRules) > 0
		windowEndYear := tzdata.Finite(w.End.At.Year + 1)
		for i := range w.LastRules {
			w.expandLastRule(&w.LastRules[i], windowEndYear)
		}
		w.LastRules = nil
		if hadLastRules {
			*maxLastRuleStartYear = tzdata.Max
		}
	}

	sort.SliceStable(w.Rules, func(i, j int) bool { return ruleLess(w.Rules[i], w.Rules[j]) })
	// Stable: two last-rules commonly end up with the same capped StartYear
	// (e.g. an on/off pair), and the compiler threads savings across them in
	// this order, so ties must keep their original on/off source order.
	sort.SliceStable(w.LastRules, func(i, j int) bool {
		return w.LastRules[i].StartYear.Less(w.LastRules[j].StartYear)
	})

	if len(w.Rules) == 0 && len(w.LastRules) == 0 && !w.HasFixedSavings {
		w.HasFixedSavings = true
		w.FixedSavings = 0
	}
	return nil
}

// expandLastRule materializes one concrete Rule per year from lr's current
// start year through through (inclusive, when through is finite).
func (w *Window) expandLastRule(lr *LastRule, through tzdata.YearBound) {
	if lr.StartYear.Kind == tzdata.YearMax {
		return
	}
	start := lr.StartYear.Year
	end := through.Resolve(start, start)
	for y := start; y <= end; y++ {
		w.Rules = append(w.Rules, Rule{
			Year:                y,
			Month:               lr.Month,
			DayOfMonthIndicator: lr.DayOfMonthIndicator,
			DayOfWeek:           lr.DayOfWeek,
			HasDayOfWeek:        lr.HasDayOfWeek,
			AdjustForwards:      lr.AdjustForwards,
			Time:                lr.Time,
			SavingsSeconds:      lr.SavingsSeconds,
		})
	}
}

func max2(a, b tzdata.YearBound) tzdata.YearBound {
	if a.Greater(b) {
		return a
	}
	return b
}

// ruleLess orders rules by (year, month, resolved local date, time), as
// the tidy pass requires.
func ruleLess(a, b Rule) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	da := daterule.ResolveDay(a.Year, a.Month, a.DayOfMonthIndicator, a.DayOfWeek, a.HasDayOfWeek, a.AdjustForwards)
	db := daterule.ResolveDay(b.Year, b.Month, b.DayOfMonthIndicator, b.DayOfWeek, b.HasDayOfWeek, b.AdjustForwards)
	if da != db {
		return da < db
	}
	return a.Time.Seconds < b.Time.Seconds
}
