// Package compile implements the Transition Compiler: given a region's
// fully-built windows, it walks them in order and emits the historical
// standard-offset and wall-offset transition series plus the recurring
// tail of TransitionRules that governs dates past the last windows.
package compile

import (
	"time"

	"github.com/tzbuild/tzcat/internal/daterule"
	"github.com/tzbuild/tzcat/internal/window"
	"github.com/tzbuild/tzcat/tzdata"
)

const maxLastRules = 15

// Compile runs the transition compiler pipeline over one region's windows,
// already populated by a window.Builder.
func Compile(windows []*window.Window) (ZoneRules, error) {
	if len(windows) == 0 {
		return ZoneRules{}, stateErr("no windows added")
	}

	first := windows[0]
	loopStandardOffset := first.StandardOffset
	loopSavings := 0
	if first.HasFixedSavings {
		loopSavings = first.FixedSavings
	}
	loopWindowStart := window.MinLocalDateTime
	loopWindowOffset := first.StandardOffset + loopSavings

	standardTransitions := []int64{}
	standardOffsets := []int{loopStandardOffset}
	wallTransitions := []int64{}
	wallOffsets := []int{loopWindowOffset}
	var lastRules []TransitionRule

	maxLastRuleStartYear := tzdata.Min

	for _, w := range windows {
		if err := w.Tidy(&maxLastRuleStartYear, loopWindowStart.Year); err != nil {
			return ZoneRules{}, err
		}

		windowStartInstant := toEpoch(loopWindowStart, loopStandardOffset)

		effectiveSavings := loopSavings
		if w.HasFixedSavings {
			effectiveSavings = w.FixedSavings
		} else {
			running := loopSavings
			for _, r := range w.Rules {
				epoch, _, _ := materializeRuleTransition(w.StandardOffset, running, r)
				if epoch <= windowStartInstant {
					running = r.SavingsSeconds
				}
			}
			effectiveSavings = running
		}

		if loopStandardOffset != w.StandardOffset {
			standardTransitions = append(standardTransitions, windowStartInstant)
			standardOffsets = append(standardOffsets, w.StandardOffset)
			loopStandardOffset = w.StandardOffset
		}

		effectiveWallOffset := loopStandardOffset + effectiveSavings
		if effectiveWallOffset != loopWindowOffset {
			wallTransitions = append(wallTransitions, windowStartInstant)
			wallOffsets = append(wallOffsets, effectiveWallOffset)
			loopWindowOffset = effectiveWallOffset
		}

		loopSavings = effectiveSavings

		forever := w.End.Kind == window.EndForever
		for _, r := range w.Rules {
			epoch, offsetBefore, offsetAfter := materializeRuleTransition(w.StandardOffset, loopSavings, r)
			if epoch < windowStartInstant {
				continue
			}
			if !forever {
				endInstant := toEpoch(w.End.At, endOffsetFor(w.End.Definition, w.StandardOffset, loopSavings))
				if epoch >= endInstant {
					continue
				}
			}
			if offsetBefore == offsetAfter {
				continue
			}
			wallTransitions = append(wallTransitions, epoch)
			wallOffsets = append(wallOffsets, offsetAfter)
			loopWindowOffset = offsetAfter
			loopSavings = r.SavingsSeconds
		}

		for _, lr := range w.LastRules {
			day, hasDoW, dow, endOfDay := canonicalizeLastRule(lr.Month, lr.DayOfMonthIndicator, lr.HasDayOfWeek, lr.DayOfWeek, lr.Time.EndOfDay)
			lastRules = append(lastRules, TransitionRule{
				Month:               lr.Month,
				DayOfMonthIndicator: day,
				DayOfWeek:           dow,
				HasDayOfWeek:        hasDoW,
				TimeOfDaySeconds:    lr.Time.Seconds,
				EndOfDay:            endOfDay,
				TimeDefinition:      lr.Time.Definition,
				StandardOffset:      w.StandardOffset,
				OffsetBefore:        w.StandardOffset + loopSavings,
				OffsetAfter:         w.StandardOffset + lr.SavingsSeconds,
			})
			loopSavings = lr.SavingsSeconds
		}

		loopWindowOffset = w.StandardOffset + loopSavings
		loopWindowStart = w.End.At
	}

	if len(lastRules) > maxLastRules {
		return ZoneRules{}, stateErr("region has %d last rules, more than the %d maximum", len(lastRules), maxLastRules)
	}

	return ZoneRules{
		StandardTransitions:       standardTransitions,
		StandardOffsets:           standardOffsets,
		SavingsInstantTransitions: wallTransitions,
		WallOffsets:               wallOffsets,
		LastRules:                 lastRules,
	}, nil
}

func endOffsetFor(def tzdata.TimeDefinition, standardOffset, savings int) int {
	switch def {
	case tzdata.Wall:
		return standardOffset + savings
	case tzdata.Standard:
		return standardOffset
	default: // tzdata.UTC
		return 0
	}
}

// materializeRuleTransition resolves one expanded rule occurrence to a
// concrete instant, following §4.D's cutover-date and time-definition
// rules.
func materializeRuleTransition(standardOffset, savingsBefore int, r window.Rule) (epoch int64, offsetBefore, offsetAfter int) {
	day := daterule.ResolveDay(r.Year, r.Month, r.DayOfMonthIndicator, r.DayOfWeek, r.HasDayOfWeek, r.AdjustForwards)
	ldt := window.LocalDateTime{Year: r.Year, Month: r.Month, Day: day, Seconds: r.Time.Seconds}
	if r.Time.EndOfDay {
		ldt = addOneDay(ldt)
	}

	offsetBefore = standardOffset + savingsBefore
	offsetAfter = standardOffset + r.SavingsSeconds

	resolveOffset := endOffsetFor(r.Time.Definition, standardOffset, savingsBefore)
	epoch = toEpoch(ldt, resolveOffset)
	return epoch, offsetBefore, offsetAfter
}

func toEpoch(ldt window.LocalDateTime, offsetSeconds int) int64 {
	t := time.Date(ldt.Year, ldt.Month, ldt.Day, 0, 0, ldt.Seconds, 0, time.UTC)
	return t.Unix() - int64(offsetSeconds)
}

func addOneDay(ldt window.LocalDateTime) window.LocalDateTime {
	t := time.Date(ldt.Year, ldt.Month, ldt.Day+1, 0, 0, ldt.Seconds, 0, time.UTC)
	return window.LocalDateTime{Year: t.Year(), Month: t.Month(), Day: t.Day(), Seconds: ldt.Seconds}
}
