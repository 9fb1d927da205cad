package compile

import (
	"time"

	"github.com/tzbuild/tzcat/tzdata"
)

// Transition is a single, historical, discrete change in UTC offset.
type Transition struct {
	EpochSecond  int64
	OffsetBefore int
	OffsetAfter  int
}

// TransitionRule is a recurring cutover rule that continues indefinitely
// past the last historical transition: the "last rules" of a region.
type TransitionRule struct {
	Month               time.Month
	DayOfMonthIndicator int
	DayOfWeek           time.Weekday
	HasDayOfWeek        bool
	TimeOfDaySeconds    int
	EndOfDay            bool
	TimeDefinition      tzdata.TimeDefinition
	StandardOffset      int
	OffsetBefore        int
	OffsetAfter         int
}

// ZoneRules is the compiled output for one region: the historical
// standard-offset and wall-offset transition series, plus the recurring
// tail that governs dates past the last historical transition.
//
// StandardTransitions/StandardOffsets and SavingsInstantTransitions/
// WallOffsets are parallel "N transitions, N+1 offsets" arrays: offset i
// applies from transition i-1 (or the beginning of time, for i==0) up to
// transition i.
type ZoneRules struct {
	StandardTransitions       []int64
	StandardOffsets           []int
	SavingsInstantTransitions []int64
	WallOffsets               []int
	LastRules                 []TransitionRule
}

// Equal reports whether two ZoneRules are structurally identical — the
// identity the deduplicator collapses on.
func (z ZoneRules) Equal(o ZoneRules) bool {
	return int64SliceEqual(z.StandardTransitions, o.StandardTransitions) &&
		intSliceEqual(z.StandardOffsets, o.StandardOffsets) &&
		int64SliceEqual(z.SavingsInstantTransitions, o.SavingsInstantTransitions) &&
		intSliceEqual(z.WallOffsets, o.WallOffsets) &&
		lastRulesEqual(z.LastRules, o.LastRules)
}

func int64SliceEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lastRulesEqual(a, b []TransitionRule) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
