package tzcat

import (
	"time"

	"github.com/tzbuild/tzcat/tzdata"
)

// LeapSecondEntry is one validated entry of a bestLeapSeconds table: a
// calendar date and the correction applied at its final second.
type LeapSecondEntry struct {
	Year       int
	Month      time.Month
	Day        int
	Adjustment int8 // +1 (second added) or -1 (second skipped)
}

func (e LeapSecondEntry) compareDate(o LeapSecondEntry) int {
	switch {
	case e.Year != o.Year:
		return cmpInt(e.Year, o.Year)
	case e.Month != o.Month:
		return cmpInt(int(e.Month), int(o.Month))
	default:
		return cmpInt(e.Day, o.Day)
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

// validateLeapLine turns a raw parsed Leap record into a LeapSecondEntry,
// enforcing the stationary/time-of-day invariants spec.md requires: a
// rolling scheme is always fatal, and the correction must land at the
// correct second within its minute.
func validateLeapLine(l tzdata.LeapLine) (LeapSecondEntry, error) {
	if l.Mode != tzdata.Stationary {
		return LeapSecondEntry{}, semanticErr("leap %d-%s-%d: only stationary (S) leap seconds are supported", l.Year, l.Month, l.Day)
	}
	switch l.Corr {
	case tzdata.LeapAdded:
		if l.Hour != 23 || l.Minute != 59 || l.Second != 60 {
			return LeapSecondEntry{}, semanticErr("leap %d-%s-%d: added leap second must fall at 23:59:60, got %02d:%02d:%02d", l.Year, l.Month, l.Day, l.Hour, l.Minute, l.Second)
		}
		return LeapSecondEntry{Year: l.Year, Month: l.Month, Day: l.Day, Adjustment: 1}, nil
	case tzdata.LeapSkipped:
		if l.Hour != 23 || l.Minute != 59 || l.Second != 59 {
			return LeapSecondEntry{}, semanticErr("leap %d-%s-%d: skipped leap second must fall at 23:59:59, got %02d:%02d:%02d", l.Year, l.Month, l.Day, l.Hour, l.Minute, l.Second)
		}
		return LeapSecondEntry{Year: l.Year, Month: l.Month, Day: l.Day, Adjustment: -1}, nil
	default:
		return LeapSecondEntry{}, semanticErr("leap %d-%s-%d: unrecognized correction", l.Year, l.Month, l.Day)
	}
}

// selectBestLeapSeconds picks the table whose last date is maximal across
// versions; ties keep the later (last-seen) version, per spec.md §4.G.
func selectBestLeapSeconds(tables [][]LeapSecondEntry) []LeapSecondEntry {
	var best []LeapSecondEntry
	var bestLast LeapSecondEntry
	haveBest := false
	for _, t := range tables {
		if len(t) == 0 {
			continue
		}
		last := t[len(t)-1]
		if !haveBest || last.compareDate(bestLast) >= 0 {
			best, bestLast, haveBest = t, last, true
		}
	}
	return best
}
