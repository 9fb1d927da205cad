package tzcat

import (
	"bytes"
	"fmt"
	"time"

	"github.com/tzbuild/tzcat/internal/compile"
	"github.com/tzbuild/tzcat/internal/daterule"
	"github.com/tzbuild/tzcat/internal/window"
	"github.com/tzbuild/tzcat/tzdata"
)

// zoneBlock is one zone's full continuation chain, in file order: the
// header Zone line followed by zero or more continuation lines.
type zoneBlock struct {
	name  string
	lines []tzdata.ZoneLine
}

// versionModel is everything parsed for one tzdata version, before any
// zone has been compiled: rule families keyed by name, zones in file
// order, and the raw link lines.
type versionModel struct {
	ruleFamilies map[string][]tzdata.RuleLine
	zones        []zoneBlock
	links        []tzdata.LinkLine
}

func buildVersionModel(sources []Source) (*versionModel, error) {
	vm := &versionModel{ruleFamilies: make(map[string][]tzdata.RuleLine)}
	for _, src := range sources {
		f, err := tzdata.Parse(src.Name, bytes.NewReader(src.Data))
		if err != nil {
			return nil, err
		}
		for _, r := range f.RuleLines {
			vm.ruleFamilies[r.Name] = append(vm.ruleFamilies[r.Name], r)
		}
		for _, zl := range f.ZoneLines {
			if !zl.Continuation {
				vm.zones = append(vm.zones, zoneBlock{name: zl.Name, lines: []tzdata.ZoneLine{zl}})
				continue
			}
			if len(vm.zones) == 0 {
				return nil, fmt.Errorf("%s: continuation line with no open zone", src.Name)
			}
			last := &vm.zones[len(vm.zones)-1]
			last.lines = append(last.lines, zl)
		}
		vm.links = append(vm.links, f.LinkLines...)
	}
	return vm, nil
}

// buildZoneRules walks one zone's continuation chain through a
// window.Builder and runs the transition compiler over the result.
func buildZoneRules(zoneName string, lines []tzdata.ZoneLine, ruleFamilies map[string][]tzdata.RuleLine) (compile.ZoneRules, error) {
	b := window.NewBuilder()
	for _, zl := range lines {
		if zl.UntilSet {
			until := untilLocalDateTime(zl.UntilYear, zl.UntilMonth, zl.UntilDay, zl.UntilTime)
			if err := b.AddWindow(zl.StdOffset, until, zl.UntilTime.Definition); err != nil {
				return compile.ZoneRules{}, fmt.Errorf("zone %q: %w", zoneName, err)
			}
		} else {
			if err := b.AddWindowForever(zl.StdOffset); err != nil {
				return compile.ZoneRules{}, fmt.Errorf("zone %q: %w", zoneName, err)
			}
		}

		switch zl.Rules.Form {
		case tzdata.ZoneRulesNone:
			if err := b.SetFixedSavingsToWindow(0); err != nil {
				return compile.ZoneRules{}, fmt.Errorf("zone %q: %w", zoneName, err)
			}
		case tzdata.ZoneRulesFixed:
			if err := b.SetFixedSavingsToWindow(zl.Rules.Fixed); err != nil {
				return compile.ZoneRules{}, fmt.Errorf("zone %q: %w", zoneName, err)
			}
		case tzdata.ZoneRulesByName:
			family, ok := ruleFamilies[zl.Rules.Name]
			if !ok {
				return compile.ZoneRules{}, nameErr("zone %q references unknown rule name %q", zoneName, zl.Rules.Name)
			}
			for _, r := range family {
				err := b.AddRuleToWindow(r.From, r.To, r.Month, r.On.Num, r.On.Weekday, r.On.HasWeekday(), r.On.AdjustForwards, r.At, r.Save)
				if err != nil {
					return compile.ZoneRules{}, fmt.Errorf("zone %q: rule %q: %w", zoneName, r.Name, err)
				}
			}
		}
	}
	return compile.Compile(b.Windows())
}

// untilLocalDateTime resolves a zone continuation's UNTIL column to a
// LocalDateTime, applying the same end-of-day rollover the transition
// compiler applies to rule occurrences (see internal/compile's
// materializeRuleTransition/addOneDay).
func untilLocalDateTime(year int, month time.Month, day tzdata.DaySpec, clock tzdata.ClockTime) window.LocalDateTime {
	d := daterule.ResolveDay(year, month, day.Num, day.Weekday, day.HasWeekday(), day.AdjustForwards)
	ldt := window.LocalDateTime{Year: year, Month: month, Day: d, Seconds: clock.Seconds}
	if clock.EndOfDay {
		ldt = addOneDay(ldt)
	}
	return ldt
}

func addOneDay(ldt window.LocalDateTime) window.LocalDateTime {
	t := time.Date(ldt.Year, ldt.Month, ldt.Day+1, 0, 0, ldt.Seconds, 0, time.UTC)
	return window.LocalDateTime{Year: t.Year(), Month: t.Month(), Day: t.Day(), Seconds: ldt.Seconds}
}

// resolveLinks assigns each link alias the ZoneRules of its real zone,
// following one further link hop when the real zone is itself an alias
// not yet present in regionRules.
func resolveLinks(regionRules map[string]compile.ZoneRules, links []tzdata.LinkLine) error {
	realOf := make(map[string]string, len(links))
	for _, l := range links {
		if _, dup := realOf[l.Alias]; dup {
			return semanticErr("duplicate link alias %q", l.Alias)
		}
		realOf[l.Alias] = l.Real
	}
	for alias, real := range realOf {
		if zr, ok := regionRules[real]; ok {
			regionRules[alias] = zr
			continue
		}
		hop, ok := realOf[real]
		if !ok {
			return nameErr("link %q -> %q: real zone not found", alias, real)
		}
		zr, ok := regionRules[hop]
		if !ok {
			return nameErr("link %q -> %q -> %q: real zone not found after one indirection", alias, real, hop)
		}
		regionRules[alias] = zr
	}
	return nil
}

// syntheticIDs names the fixed-offset region ids the driver never keeps in
// the region map: a consumer reconstructs them directly from a zero/fixed
// UTC offset instead.
var syntheticIDs = []string{"UTC", "GMT", "GMT0", "GMT+0", "GMT-0"}

func dropSyntheticIDs(regionRules map[string]compile.ZoneRules) {
	for _, id := range syntheticIDs {
		delete(regionRules, id)
	}
}
