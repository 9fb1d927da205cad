package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tzbuild/tzcat/catalog"
	"github.com/tzbuild/tzcat/internal/tzcatconfig"
)

const fixtureEurope = `
Rule	EU	1981	max	-	Mar	lastSun	 1:00u	1:00	S
Rule	EU	1996	max	-	Oct	lastSun	 1:00u	0	-

Zone	Europe/Paris	0:09:21	-	LMT	1911
			1:00	EU	CE%sT
`

func writeVersionDir(t *testing.T, root, label string) {
	t.Helper()
	dir := filepath.Join(root, label)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "europe"), []byte(fixtureEurope), 0o640); err != nil {
		t.Fatal(err)
	}
}

func TestRunCompileWritesReadableCatalog(t *testing.T) {
	root := t.TempDir()
	writeVersionDir(t, root, "2024a")

	out := t.TempDir()
	cfg := &tzcatconfig.Config{DataDir: root, OutputDir: out, Files: []string{"europe"}}
	if err := runCompile(cfg); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(out, "tzdata.catalog"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cat, err := catalog.Read(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Versions) != 1 || cat.Versions[0] != "2024a" {
		t.Fatalf("Versions = %v, want [2024a]", cat.Versions)
	}
	if len(cat.Regions) != 1 || cat.Regions[0] != "Europe/Paris" {
		t.Fatalf("Regions = %v, want [Europe/Paris]", cat.Regions)
	}
}

func TestRunCompileRejectsEmptyDataDir(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	cfg := &tzcatconfig.Config{DataDir: root, OutputDir: out, Files: []string{"europe"}}
	if err := runCompile(cfg); err == nil {
		t.Fatal("expected an error for a data dir with no version subdirectories")
	}
}

func TestCountDistinctBlobs(t *testing.T) {
	pairs := []catalog.RegionRule{{RegionIndex: 0, RulesIndex: 1}, {RegionIndex: 1, RulesIndex: 1}, {RegionIndex: 2, RulesIndex: 2}}
	if got := countDistinctBlobs(pairs); got != 2 {
		t.Fatalf("countDistinctBlobs = %d, want 2", got)
	}
}
