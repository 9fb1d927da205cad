// Package dedup implements the Deduplicator: a process-scoped identity map
// used to collapse value-equal offsets, instants, recurring transition rules
// and whole rule blobs into canonical, shared instances. The driver applies
// it to each compiled ZoneRules (see Deduplicator.InternRules); the parser,
// window builder, transition compiler and encoder do not use it. One
// Deduplicator is carried across an entire compile run (all versions) to
// maximize sharing.
package dedup

import (
	"fmt"

	"github.com/tzbuild/tzcat/internal/compile"
	"github.com/tzbuild/tzcat/internal/window"
)

// Table interns comparable values of one kind: insert on miss, return the
// canonical (first-seen) representative on hit.
type Table[K comparable] struct {
	m map[K]K
}

// NewTable returns an empty interning table.
func NewTable[K comparable]() *Table[K] {
	return &Table[K]{m: make(map[K]K)}
}

// Intern returns the canonical instance equal to k, inserting k itself if
// this is the first time an equal value has been seen.
func (t *Table[K]) Intern(k K) K {
	if v, ok := t.m[k]; ok {
		return v
	}
	t.m[k] = k
	return k
}

// Len reports the number of distinct values interned so far.
func (t *Table[K]) Len() int { return len(t.m) }

// RuleBlobs interns compile.ZoneRules values. ZoneRules holds slices, so it
// cannot be a map key directly; entries are bucketed by a cheap structural
// fingerprint and compared for real with ZoneRules.Equal within a bucket.
type RuleBlobs struct {
	byKey map[string][]*compile.ZoneRules
	all   []*compile.ZoneRules
}

// NewRuleBlobs returns an empty rule-blob table.
func NewRuleBlobs() *RuleBlobs {
	return &RuleBlobs{byKey: make(map[string][]*compile.ZoneRules)}
}

// Intern returns the canonical *ZoneRules structurally equal to zr,
// registering zr as canonical if no such blob exists yet.
func (r *RuleBlobs) Intern(zr compile.ZoneRules) *compile.ZoneRules {
	key := blobKey(zr)
	for _, cand := range r.byKey[key] {
		if cand.Equal(zr) {
			return cand
		}
	}
	canon := &zr
	r.byKey[key] = append(r.byKey[key], canon)
	r.all = append(r.all, canon)
	return canon
}

// All returns every distinct rule blob interned so far, in first-seen order.
func (r *RuleBlobs) All() []*compile.ZoneRules { return r.all }

// Len reports the number of distinct rule blobs interned so far.
func (r *RuleBlobs) Len() int { return len(r.all) }

// blobKey is a cheap fingerprint, not a full identity: two structurally
// different blobs may collide on it, so Intern always falls back to
// ZoneRules.Equal within the bucket it names.
func blobKey(zr compile.ZoneRules) string {
	return fmt.Sprintf("%d:%d:%d:%d:%d",
		len(zr.StandardTransitions), len(zr.StandardOffsets),
		len(zr.SavingsInstantTransitions), len(zr.WallOffsets), len(zr.LastRules))
}

// Deduplicator aggregates one interning table per leaf kind the catalog
// shares across regions and versions: interned strings (region and rule
// names), offsets, instants, dates, recurring transition rules, and whole
// rule blobs. InternRules fills Offsets, Instants, LastRules and RuleBlobs;
// nothing in this module fills Strings or Dates.
type Deduplicator struct {
	Strings   *Table[string]
	Offsets   *Table[int]
	Instants  *Table[int64]
	Dates     *Table[window.LocalDateTime]
	LastRules *Table[compile.TransitionRule]
	RuleBlobs *RuleBlobs
}

// New returns a fresh Deduplicator with all tables empty, ready to be
// threaded through one compile run.
func New() *Deduplicator {
	return &Deduplicator{
		Strings:   NewTable[string](),
		Offsets:   NewTable[int](),
		Instants:  NewTable[int64](),
		Dates:     NewTable[window.LocalDateTime](),
		LastRules: NewTable[compile.TransitionRule](),
		RuleBlobs: NewRuleBlobs(),
	}
}

// InternRules canonicalizes a whole compiled ZoneRules blob, interning each
// transition, offset, and last-rule into this Deduplicator's tables along
// the way so that shared sub-values across regions collapse too.
func (d *Deduplicator) InternRules(zr compile.ZoneRules) *compile.ZoneRules {
	for i, v := range zr.StandardTransitions {
		zr.StandardTransitions[i] = d.Instants.Intern(v)
	}
	for i, v := range zr.StandardOffsets {
		zr.StandardOffsets[i] = d.Offsets.Intern(v)
	}
	for i, v := range zr.SavingsInstantTransitions {
		zr.SavingsInstantTransitions[i] = d.Instants.Intern(v)
	}
	for i, v := range zr.WallOffsets {
		zr.WallOffsets[i] = d.Offsets.Intern(v)
	}
	for i, v := range zr.LastRules {
		zr.LastRules[i] = d.LastRules.Intern(v)
	}
	return d.RuleBlobs.Intern(zr)
}
