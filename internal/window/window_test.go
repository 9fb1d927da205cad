package window

import (
	"testing"
	"time"

	"github.com/tzbuild/tzcat/tzdata"
)

func TestAddWindowRejectsNonIncreasingUntil(t *testing.T) {
	b := NewBuilder()
	d1 := LocalDateTime{Year: 1950, Month: time.January, Day: 1}
	if err := b.AddWindow(3600, d1, tzdata.Wall); err != nil {
		t.Fatal(err)
	}
	if err := b.AddWindow(3600, d1, tzdata.Wall); err == nil {
		t.Fatal("expected StateError for non-increasing until")
	}
}

func TestAddWindowForeverMustBeLast(t *testing.T) {
	b := NewBuilder()
	if err := b.AddWindowForever(3600); err != nil {
		t.Fatal(err)
	}
	if err := b.AddWindow(3600, LocalDateTime{Year: 2000, Month: time.January, Day: 1}, tzdata.Wall); err == nil {
		t.Fatal("expected StateError adding a window after forever")
	}
}

func TestSetFixedSavingsRejectsIfRulesPresent(t *testing.T) {
	b := NewBuilder()
	if err := b.AddWindowForever(3600); err != nil {
		t.Fatal(err)
	}
	if err := b.AddSingleYearRuleToWindow(2000, time.March, 1, 0, false, false, tzdata.ClockTime{}, 3600); err != nil {
		t.Fatal(err)
	}
	if err := b.SetFixedSavingsToWindow(0); err == nil {
		t.Fatal("expected StateError: window already has rules")
	}
}

func TestAddRuleToWindowRejectsOutOfRangeDayIndicator(t *testing.T) {
	b := NewBuilder()
	if err := b.AddWindowForever(3600); err != nil {
		t.Fatal(err)
	}
	if err := b.AddSingleYearRuleToWindow(2000, time.March, 0, 0, false, false, tzdata.ClockTime{}, 3600); err == nil {
		t.Fatal("expected SemanticError for dayOfMonthIndicator == 0")
	}
	if err := b.AddSingleYearRuleToWindow(2000, time.March, 32, 0, false, false, tzdata.ClockTime{}, 3600); err == nil {
		t.Fatal("expected SemanticError for dayOfMonthIndicator == 32")
	}
}

func TestAddRuleToWindowRejectsEndOfDayWithNonMidnight(t *testing.T) {
	b := NewBuilder()
	if err := b.AddWindowForever(3600); err != nil {
		t.Fatal(err)
	}
	bad := tzdata.ClockTime{Seconds: 3600, EndOfDay: true}
	if err := b.AddSingleYearRuleToWindow(2000, time.March, 1, 0, false, false, bad, 3600); err == nil {
		t.Fatal("expected SemanticError: endOfDay requires 00:00")
	}
}

func TestTidyRejectsSingleLastRule(t *testing.T) {
	b := NewBuilder()
	if err := b.AddWindowForever(0); err != nil {
		t.Fatal(err)
	}
	if err := b.AddRuleToWindow(tzdata.Finite(1981), tzdata.Max, time.March, -1, time.Sunday, true, false,
		tzdata.ClockTime{Seconds: 3600, Definition: tzdata.UTC}, 3600); err != nil {
		t.Fatal(err)
	}
	w := b.Windows()[0]
	maxLastRuleStartYear := tzdata.Min
	if err := w.Tidy(&maxLastRuleStartYear, 1950); err == nil {
		t.Fatal("expected StateError: window has exactly one last-rule")
	}
}

func TestTidyExpandsLastRulePairInForeverWindow(t *testing.T) {
	b := NewBuilder()
	if err := b.AddWindowForever(0); err != nil {
		t.Fatal(err)
	}
	on := tzdata.ClockTime{Seconds: 3600, Definition: tzdata.UTC}
	off := tzdata.ClockTime{Seconds: 3600, Definition: tzdata.UTC}
	if err := b.AddRuleToWindow(tzdata.Finite(1981), tzdata.Max, time.March, -1, time.Sunday, true, false, on, 3600); err != nil {
		t.Fatal(err)
	}
	if err := b.AddRuleToWindow(tzdata.Finite(1996), tzdata.Max, time.October, -1, time.Sunday, true, false, off, 0); err != nil {
		t.Fatal(err)
	}
	w := b.Windows()[0]
	maxLastRuleStartYear := tzdata.Min
	if err := w.Tidy(&maxLastRuleStartYear, 2005); err != nil {
		t.Fatal(err)
	}
	if len(w.LastRules) != 2 {
		t.Fatalf("got %d last rules after tidy, want 2 (the recurring on/off pair)", len(w.LastRules))
	}
	if len(w.Rules) == 0 {
		t.Fatalf("expected some concrete rules expanded up to the cap year")
	}
	for i := 1; i < len(w.Rules); i++ {
		if ruleLess(w.Rules[i], w.Rules[i-1]) {
			t.Fatalf("rules not sorted: %+v before %+v", w.Rules[i-1], w.Rules[i])
		}
	}
}

func TestTidySetsZeroSavingsWhenWindowHasNothing(t *testing.T) {
	b := NewBuilder()
	if err := b.AddWindowForever(3600); err != nil {
		t.Fatal(err)
	}
	w := b.Windows()[0]
	maxLastRuleStartYear := tzdata.Min
	if err := w.Tidy(&maxLastRuleStartYear, 2000); err != nil {
		t.Fatal(err)
	}
	if !w.HasFixedSavings || w.FixedSavings != 0 {
		t.Fatalf("expected fixed savings 0, got %+v", w)
	}
}

func TestTidyLeavesRecurringTailAfterPrecedingRulelessWindow(t *testing.T) {
	b := NewBuilder()
	if err := b.AddWindow(0, LocalDateTime{Year: 1916, Month: time.May, Day: 21}, tzdata.Wall); err != nil {
		t.Fatal(err)
	}
	if err := b.SetFixedSavingsToWindow(0); err != nil {
		t.Fatal(err)
	}
	if err := b.AddWindowForever(0); err != nil {
		t.Fatal(err)
	}
	on := tzdata.ClockTime{Seconds: 3600, Definition: tzdata.Wall}
	off := tzdata.ClockTime{Seconds: 3600, Definition: tzdata.Wall}
	if err := b.AddRuleToWindow(tzdata.Finite(1981), tzdata.Max, time.March, -1, time.Sunday, true, false, on, 3600); err != nil {
		t.Fatal(err)
	}
	if err := b.AddRuleToWindow(tzdata.Finite(1996), tzdata.Max, time.October, -1, time.Sunday, true, false, off, 0); err != nil {
		t.Fatal(err)
	}

	windows := b.Windows()
	maxLastRuleStartYear := tzdata.Min
	if err := windows[0].Tidy(&maxLastRuleStartYear, -(1 << 30)); err != nil {
		t.Fatal(err)
	}
	if err := windows[1].Tidy(&maxLastRuleStartYear, 1916); err != nil {
		t.Fatal(err)
	}
	if len(windows[1].LastRules) != 2 {
		t.Fatalf("a rule-less fixed-savings window before the forever window must not collapse its recurring tail: got %d last rules, want 2", len(windows[1].LastRules))
	}
}

func TestLocalDateTimeCompare(t *testing.T) {
	a := LocalDateTime{Year: 1999, Month: time.December, Day: 31, Seconds: 86400}
	b := LocalDateTime{Year: 2000, Month: time.January, Day: 1, Seconds: 0}
	if a.Compare(b) >= 0 {
		t.Fatalf("expected a < b")
	}
	if MaxLocalDateTime.Compare(b) <= 0 {
		t.Fatalf("expected MaxLocalDateTime > b")
	}
}
