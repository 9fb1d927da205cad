package catalog

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/tzbuild/tzcat/internal/compile"
	"github.com/tzbuild/tzcat/tzdata"
)

const maxLastRules = 15

// WriteRuleBlob encodes one compiled region's ZoneRules per §4.F.1.
func WriteRuleBlob(w io.Writer, zr compile.ZoneRules) error {
	if len(zr.LastRules) > maxLastRules {
		return fmt.Errorf("catalog: %d last rules exceeds the %d maximum", len(zr.LastRules), maxLastRules)
	}

	if err := binary.Write(w, order, int32(len(zr.StandardTransitions))); err != nil {
		return err
	}
	for _, t := range zr.StandardTransitions {
		if err := writeEpochPacked(w, t); err != nil {
			return err
		}
	}
	if len(zr.StandardOffsets) != len(zr.StandardTransitions)+1 {
		return fmt.Errorf("catalog: %d standard offsets, want %d", len(zr.StandardOffsets), len(zr.StandardTransitions)+1)
	}
	for _, o := range zr.StandardOffsets {
		if err := writeOffsetPacked(w, o); err != nil {
			return err
		}
	}

	if err := binary.Write(w, order, int32(len(zr.SavingsInstantTransitions))); err != nil {
		return err
	}
	for _, t := range zr.SavingsInstantTransitions {
		if err := writeEpochPacked(w, t); err != nil {
			return err
		}
	}
	if len(zr.WallOffsets) != len(zr.SavingsInstantTransitions)+1 {
		return fmt.Errorf("catalog: %d wall offsets, want %d", len(zr.WallOffsets), len(zr.SavingsInstantTransitions)+1)
	}
	for _, o := range zr.WallOffsets {
		if err := writeOffsetPacked(w, o); err != nil {
			return err
		}
	}

	if err := binary.Write(w, order, uint8(len(zr.LastRules))); err != nil {
		return err
	}
	for _, lr := range zr.LastRules {
		if err := writeTransitionRule(w, lr); err != nil {
			return err
		}
	}
	return nil
}

// ReadRuleBlob decodes one ZoneRules blob per §4.F.1.
func ReadRuleBlob(r io.Reader) (compile.ZoneRules, error) {
	var zr compile.ZoneRules

	var stdCount int32
	if err := binary.Read(r, order, &stdCount); err != nil {
		return zr, fmt.Errorf("catalog: read stdTransitionCount: %w", err)
	}
	zr.StandardTransitions = make([]int64, stdCount)
	for i := range zr.StandardTransitions {
		t, err := readEpochPacked(r)
		if err != nil {
			return zr, err
		}
		zr.StandardTransitions[i] = t
	}
	zr.StandardOffsets = make([]int, stdCount+1)
	for i := range zr.StandardOffsets {
		o, err := readOffsetPacked(r)
		if err != nil {
			return zr, err
		}
		zr.StandardOffsets[i] = o
	}

	var savCount int32
	if err := binary.Read(r, order, &savCount); err != nil {
		return zr, fmt.Errorf("catalog: read savingsTransitionCount: %w", err)
	}
	zr.SavingsInstantTransitions = make([]int64, savCount)
	for i := range zr.SavingsInstantTransitions {
		t, err := readEpochPacked(r)
		if err != nil {
			return zr, err
		}
		zr.SavingsInstantTransitions[i] = t
	}
	zr.WallOffsets = make([]int, savCount+1)
	for i := range zr.WallOffsets {
		o, err := readOffsetPacked(r)
		if err != nil {
			return zr, err
		}
		zr.WallOffsets[i] = o
	}

	var lastCount uint8
	if err := binary.Read(r, order, &lastCount); err != nil {
		return zr, fmt.Errorf("catalog: read lastRuleCount: %w", err)
	}
	if lastCount > maxLastRules {
		return zr, fmt.Errorf("catalog: lastRuleCount %d exceeds the %d maximum", lastCount, maxLastRules)
	}
	zr.LastRules = make([]compile.TransitionRule, lastCount)
	for i := range zr.LastRules {
		lr, err := readTransitionRule(r)
		if err != nil {
			return zr, err
		}
		zr.LastRules[i] = lr
	}
	return zr, nil
}

func writeTransitionRule(w io.Writer, r compile.TransitionRule) error {
	if err := binary.Write(w, order, uint8(r.Month)); err != nil {
		return err
	}
	if err := binary.Write(w, order, int8(r.DayOfMonthIndicator)); err != nil {
		return err
	}
	dow := uint8(0)
	if r.HasDayOfWeek {
		dow = uint8(r.DayOfWeek) + 1
	}
	if err := binary.Write(w, order, dow); err != nil {
		return err
	}
	if err := binary.Write(w, order, int32(r.TimeOfDaySeconds)); err != nil {
		return err
	}
	if err := binary.Write(w, order, r.EndOfDay); err != nil {
		return err
	}
	if err := binary.Write(w, order, uint8(r.TimeDefinition)); err != nil {
		return err
	}
	if err := writeOffsetPacked(w, r.StandardOffset); err != nil {
		return err
	}
	if err := writeOffsetPacked(w, r.OffsetBefore); err != nil {
		return err
	}
	return writeOffsetPacked(w, r.OffsetAfter)
}

func readTransitionRule(r io.Reader) (compile.TransitionRule, error) {
	var out compile.TransitionRule

	var month uint8
	if err := binary.Read(r, order, &month); err != nil {
		return out, fmt.Errorf("catalog: read rule month: %w", err)
	}
	out.Month = time.Month(month)

	var day int8
	if err := binary.Read(r, order, &day); err != nil {
		return out, fmt.Errorf("catalog: read rule day: %w", err)
	}
	out.DayOfMonthIndicator = int(day)

	var dow uint8
	if err := binary.Read(r, order, &dow); err != nil {
		return out, fmt.Errorf("catalog: read rule weekday: %w", err)
	}
	if dow != 0 {
		out.HasDayOfWeek = true
		out.DayOfWeek = time.Weekday(dow - 1)
	}

	var tod int32
	if err := binary.Read(r, order, &tod); err != nil {
		return out, fmt.Errorf("catalog: read rule time-of-day: %w", err)
	}
	out.TimeOfDaySeconds = int(tod)

	if err := binary.Read(r, order, &out.EndOfDay); err != nil {
		return out, fmt.Errorf("catalog: read rule endOfDay: %w", err)
	}

	var def uint8
	if err := binary.Read(r, order, &def); err != nil {
		return out, fmt.Errorf("catalog: read rule time-definition: %w", err)
	}
	out.TimeDefinition = tzdata.TimeDefinition(def)

	var err error
	if out.StandardOffset, err = readOffsetPacked(r); err != nil {
		return out, err
	}
	if out.OffsetBefore, err = readOffsetPacked(r); err != nil {
		return out, err
	}
	if out.OffsetAfter, err = readOffsetPacked(r); err != nil {
		return out, err
	}
	return out, nil
}
