package compile

import (
	"testing"
	"time"

	"github.com/tzbuild/tzcat/internal/window"
	"github.com/tzbuild/tzcat/tzdata"
)

func buildWindows(t *testing.T, build func(b *window.Builder)) []*window.Window {
	t.Helper()
	b := window.NewBuilder()
	build(b)
	return b.Windows()
}

// Scenario 1: a single cutover from +01:00 to +02:00 at 1950-01-01 01:00 standard.
func TestSingleCutover(t *testing.T) {
	windows := buildWindows(t, func(b *window.Builder) {
		until := window.LocalDateTime{Year: 1950, Month: time.January, Day: 1, Seconds: 3600}
		if err := b.AddWindow(3600, until, tzdata.Standard); err != nil {
			t.Fatal(err)
		}
		if err := b.AddWindowForever(7200); err != nil {
			t.Fatal(err)
		}
	})

	zr, err := Compile(windows)
	if err != nil {
		t.Fatal(err)
	}

	wantEpoch := time.Date(1950, time.January, 1, 0, 0, 3600, 0, time.UTC).Unix() - 3600

	if len(zr.StandardTransitions) != 1 || zr.StandardTransitions[0] != wantEpoch {
		t.Fatalf("StandardTransitions = %v, want [%d]", zr.StandardTransitions, wantEpoch)
	}
	if got := zr.StandardOffsets; len(got) != 2 || got[0] != 3600 || got[1] != 7200 {
		t.Fatalf("StandardOffsets = %v, want [3600 7200]", got)
	}
	if len(zr.SavingsInstantTransitions) != 1 || zr.SavingsInstantTransitions[0] != wantEpoch {
		t.Fatalf("SavingsInstantTransitions = %v, want [%d]", zr.SavingsInstantTransitions, wantEpoch)
	}
	if got := zr.WallOffsets; len(got) != 2 || got[0] != 3600 || got[1] != 7200 {
		t.Fatalf("WallOffsets = %v, want [3600 7200]", got)
	}
}

// Scenario 2: Europe/London 2000+, fixed std +00:00 forever with a last-rule
// on/off pair. Governed entirely by the recurring tail.
func TestLondonLastRulePair(t *testing.T) {
	on := tzdata.ClockTime{Seconds: 3600, Definition: tzdata.Wall}
	off := tzdata.ClockTime{Seconds: 3600, Definition: tzdata.Wall}
	windows := buildWindows(t, func(b *window.Builder) {
		if err := b.AddWindowForever(0); err != nil {
			t.Fatal(err)
		}
		if err := b.AddRuleToWindow(tzdata.Finite(1981), tzdata.Max, time.March, -1, time.Sunday, true, false, on, 3600); err != nil {
			t.Fatal(err)
		}
		if err := b.AddRuleToWindow(tzdata.Finite(1996), tzdata.Max, time.October, -1, time.Sunday, true, false, off, 0); err != nil {
			t.Fatal(err)
		}
	})

	zr, err := Compile(windows)
	if err != nil {
		t.Fatal(err)
	}

	if len(zr.StandardTransitions) != 0 {
		t.Fatalf("expected no historical standard-offset transitions, got %v", zr.StandardTransitions)
	}
	if len(zr.LastRules) != 2 {
		t.Fatalf("got %d last rules, want 2", len(zr.LastRules))
	}

	var march, oct TransitionRule
	for _, lr := range zr.LastRules {
		switch lr.Month {
		case time.March:
			march = lr
		case time.October:
			oct = lr
		}
	}
	if march.Month != time.March || march.DayOfMonthIndicator != 31-6 {
		t.Errorf("march rule = %+v, want canonicalized day-of-month indicator %d", march, 31-6)
	}
	if march.OffsetBefore != 0 || march.OffsetAfter != 3600 {
		t.Errorf("march rule offsets = %d -> %d, want 0 -> 3600", march.OffsetBefore, march.OffsetAfter)
	}
	if oct.Month != time.October || oct.DayOfMonthIndicator != 31-6 {
		t.Errorf("october rule = %+v, want canonicalized day-of-month indicator %d", oct, 31-6)
	}
	if oct.OffsetBefore != 3600 || oct.OffsetAfter != 0 {
		t.Errorf("october rule offsets = %d -> %d, want 3600 -> 0", oct.OffsetBefore, oct.OffsetAfter)
	}
}

// A zone with real history before its permanent rule (the ordinary
// "LMT/fixed window, then an indefinite DST rule pair" shape almost every
// region actually has) must still carry its recurring tail: a preceding
// window with no last-rules of its own must not be mistaken for one whose
// family was cut short.
func TestRecurringTailSurvivesPrecedingRulelessWindow(t *testing.T) {
	on := tzdata.ClockTime{Seconds: 3600, Definition: tzdata.Wall}
	off := tzdata.ClockTime{Seconds: 3600, Definition: tzdata.Wall}
	windows := buildWindows(t, func(b *window.Builder) {
		until := window.LocalDateTime{Year: 1916, Month: time.May, Day: 21}
		if err := b.AddWindow(0, until, tzdata.Wall); err != nil {
			t.Fatal(err)
		}
		if err := b.SetFixedSavingsToWindow(0); err != nil {
			t.Fatal(err)
		}
		if err := b.AddWindowForever(0); err != nil {
			t.Fatal(err)
		}
		if err := b.AddRuleToWindow(tzdata.Finite(1981), tzdata.Max, time.March, -1, time.Sunday, true, false, on, 3600); err != nil {
			t.Fatal(err)
		}
		if err := b.AddRuleToWindow(tzdata.Finite(1996), tzdata.Max, time.October, -1, time.Sunday, true, false, off, 0); err != nil {
			t.Fatal(err)
		}
	})

	zr, err := Compile(windows)
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.LastRules) != 2 {
		t.Fatalf("got %d last rules, want 2 (the recurring on/off pair must survive)", len(zr.LastRules))
	}
}

// Scenario 3: Africa/Cairo 2010, two same-day transitions: a gap at noon, an
// overlap at 23:00.
func TestCairoSameDayDoubleTransition(t *testing.T) {
	gapTime := tzdata.ClockTime{Seconds: 12 * 3600, Definition: tzdata.Standard}
	overlapTime := tzdata.ClockTime{Seconds: 23 * 3600, Definition: tzdata.Standard}
	windows := buildWindows(t, func(b *window.Builder) {
		if err := b.AddWindowForever(7200); err != nil {
			t.Fatal(err)
		}
		if err := b.AddSingleYearRuleToWindow(2010, time.September, 10, 0, false, false, gapTime, 3600); err != nil {
			t.Fatal(err)
		}
		if err := b.AddSingleYearRuleToWindow(2010, time.September, 10, 0, false, false, overlapTime, 0); err != nil {
			t.Fatal(err)
		}
	})

	zr, err := Compile(windows)
	if err != nil {
		t.Fatal(err)
	}

	if len(zr.SavingsInstantTransitions) != 2 {
		t.Fatalf("got %d wall transitions, want 2", len(zr.SavingsInstantTransitions))
	}
	if zr.WallOffsets[0] != 7200 || zr.WallOffsets[1] != 7200+3600 || zr.WallOffsets[2] != 7200 {
		t.Fatalf("WallOffsets = %v, want [7200 10800 7200] (gap then overlap)", zr.WallOffsets)
	}
	if zr.SavingsInstantTransitions[0] >= zr.SavingsInstantTransitions[1] {
		t.Fatalf("transitions not strictly ordered: %v", zr.SavingsInstantTransitions)
	}
}

// Scenario 4: Jordan-style end-of-day rollover. A last-rule at 00:00
// endOfDay on the last Thursday of March is rewritten to the Friday
// immediately following, with endOfDay cleared.
func TestJordanEndOfDayRolloverCanonicalization(t *testing.T) {
	day, hasDoW, dow, endOfDay := canonicalizeLastRule(time.March, -1, true, time.Thursday, true)
	if endOfDay {
		t.Fatalf("expected endOfDay to be cleared")
	}
	if !hasDoW || dow != time.Friday {
		t.Fatalf("expected weekday bumped to Friday, got hasDoW=%v dow=%v", hasDoW, dow)
	}
	wantDay := monthMaxLength(time.March) - 6 + 1
	if day != wantDay {
		t.Fatalf("day = %d, want %d", day, wantDay)
	}
}

func TestCanonicalizeLastRuleLeavesFebruaryDynamic(t *testing.T) {
	day, _, _, _ := canonicalizeLastRule(time.February, -1, true, time.Sunday, false)
	if day != -1 {
		t.Fatalf("February last-rules must keep a dynamic negative indicator, got %d", day)
	}
}

func TestCompileRejectsEmptyWindowList(t *testing.T) {
	if _, err := Compile(nil); err == nil {
		t.Fatal("expected StateError for no windows")
	}
}

func TestCompileRejectsTooManyLastRules(t *testing.T) {
	b := window.NewBuilder()
	if err := b.AddWindowForever(0); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 16; i += 2 {
		year := 1980 + i
		on := tzdata.ClockTime{Seconds: 3600, Definition: tzdata.Wall}
		off := tzdata.ClockTime{Seconds: 3600, Definition: tzdata.Wall}
		if err := b.AddRuleToWindow(tzdata.Finite(year), tzdata.Max, time.March, 1, time.Monday, true, true, on, 3600); err != nil {
			t.Fatal(err)
		}
		if err := b.AddRuleToWindow(tzdata.Finite(year+1), tzdata.Max, time.October, 1, time.Monday, true, true, off, 0); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := Compile(b.Windows()); err == nil {
		t.Fatal("expected StateError: more than 15 last rules")
	}
}
