// Package tzcat is the Driver: it wires one compile pipeline
// (tzdata -> internal/window -> internal/compile) per tzdata version,
// aggregates the results across however many versions are being built in
// one run, and assembles a catalog.Catalog ready for encoding.
package tzcat

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/tzbuild/tzcat/catalog"
	"github.com/tzbuild/tzcat/internal/compile"
	"github.com/tzbuild/tzcat/internal/dedup"
	"github.com/tzbuild/tzcat/tzdata"
)

// Source is one named tzdata input stream: a source file's basename
// ("europe", "northamerica", ...) and its raw contents.
type Source struct {
	Name string
	Data []byte
}

// VersionInput is everything one version's compile needs: its label, its
// tzdata source files in declared order, and an optional leap-seconds
// file.
type VersionInput struct {
	Label       string
	Sources     []Source
	LeapSeconds []byte // nil if this version carries no leap-seconds file
}

// CompileVersion runs the per-version pipeline described in spec.md's
// Driver section: parse every source file, compile a ZoneRules per
// concrete zone id, resolve links, and drop the synthetic fixed-offset
// ids. It returns the region map and, if a leap-seconds stream was
// supplied, the validated leap-second table.
func CompileVersion(logger Logger, label string, sources []Source, leapStream []byte) (map[string]compile.ZoneRules, []LeapSecondEntry, error) {
	if logger == nil {
		logger = NopLogger{}
	}
	logger.Printf("compiling version %s (%d source files)", label, len(sources))

	vm, err := buildVersionModel(sources)
	if err != nil {
		return nil, nil, fmt.Errorf("version %s: %w", label, err)
	}

	regionRules := make(map[string]compile.ZoneRules, len(vm.zones))
	for _, zb := range vm.zones {
		zr, err := buildZoneRules(zb.name, zb.lines, vm.ruleFamilies)
		if err != nil {
			return nil, nil, fmt.Errorf("version %s: %w", label, err)
		}
		regionRules[zb.name] = zr
	}

	if err := resolveLinks(regionRules, vm.links); err != nil {
		return nil, nil, fmt.Errorf("version %s: %w", label, err)
	}
	dropSyntheticIDs(regionRules)

	var leapSeconds []LeapSecondEntry
	if leapStream != nil {
		leapFile, err := tzdata.Parse(label+"/leapseconds", bytes.NewReader(leapStream))
		if err != nil {
			return nil, nil, fmt.Errorf("version %s: %w", label, err)
		}
		for _, l := range leapFile.LeapLines {
			entry, err := validateLeapLine(l)
			if err != nil {
				return nil, nil, fmt.Errorf("version %s: %w", label, err)
			}
			leapSeconds = append(leapSeconds, entry)
		}
		sort.Slice(leapSeconds, func(i, j int) bool { return leapSeconds[i].compareDate(leapSeconds[j]) < 0 })
	}

	logger.Printf("version %s: %d regions, %d leap seconds", label, len(regionRules), len(leapSeconds))
	return regionRules, leapSeconds, nil
}

// compiledVersion is one version's compiled output, held only long enough
// to aggregate across all versions in a run.
type compiledVersion struct {
	label       string
	regionRules map[string]compile.ZoneRules
	leapSeconds []LeapSecondEntry
}

// BuildCatalog compiles every version, then computes the union of region
// ids (sorted), the union of distinct ZoneRules (deduplicated), and the
// bestLeapSeconds table, per spec.md §4.G. The leap-second table has no
// slot in the §4.F wire format, so it is returned alongside the catalog
// rather than embedded in it; a caller wanting it persisted writes it out
// separately.
func BuildCatalog(logger Logger, versions []VersionInput) (catalog.Catalog, []LeapSecondEntry, error) {
	if logger == nil {
		logger = NopLogger{}
	}

	compiled := make([]compiledVersion, 0, len(versions))
	allRegions := make(map[string]struct{})
	for _, v := range versions {
		rr, ls, err := CompileVersion(logger, v.Label, v.Sources, v.LeapSeconds)
		if err != nil {
			return catalog.Catalog{}, nil, err
		}
		compiled = append(compiled, compiledVersion{label: v.Label, regionRules: rr, leapSeconds: ls})
		for name := range rr {
			allRegions[name] = struct{}{}
		}
	}

	regions := make([]string, 0, len(allRegions))
	for name := range allRegions {
		regions = append(regions, name)
	}
	sort.Strings(regions)
	regionIndex := make(map[string]int, len(regions))
	for i, name := range regions {
		regionIndex[name] = i
	}

	dd := dedup.New()
	blobIndex := make(map[*compile.ZoneRules]int)
	var blobs []compile.ZoneRules

	versionLabels := make([]string, len(compiled))
	assignments := make([][]catalog.RegionRule, len(compiled))
	for vi, cv := range compiled {
		versionLabels[vi] = cv.label

		names := make([]string, 0, len(cv.regionRules))
		for name := range cv.regionRules {
			names = append(names, name)
		}
		sort.Strings(names)

		pairs := make([]catalog.RegionRule, 0, len(names))
		for _, name := range names {
			canon := dd.InternRules(cv.regionRules[name])
			idx, ok := blobIndex[canon]
			if !ok {
				idx = len(blobs)
				blobs = append(blobs, *canon)
				blobIndex[canon] = idx
			}
			pairs = append(pairs, catalog.RegionRule{RegionIndex: uint16(regionIndex[name]), RulesIndex: uint16(idx)})
		}
		assignments[vi] = pairs
	}

	leapTables := make([][]LeapSecondEntry, len(compiled))
	for i, cv := range compiled {
		leapTables[i] = cv.leapSeconds
	}
	best := selectBestLeapSeconds(leapTables)

	logger.Printf("catalog: %d versions, %d regions, %d distinct rule blobs", len(versionLabels), len(regions), len(blobs))

	return catalog.Catalog{
		Versions:    versionLabels,
		Regions:     regions,
		Blobs:       blobs,
		Assignments: assignments,
	}, best, nil
}
