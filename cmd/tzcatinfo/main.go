package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tzbuild/tzcat/catalog"
	"github.com/tzbuild/tzcat/internal/compile"
)

var (
	regionFlag  = flag.String("region", "", "Only print the named region's ZoneRules")
	verboseFlag = flag.Bool("v", false, "Print every historical transition instead of just counts")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tzcatinfo <catalog file> [-region Europe/Paris] [-v]")
		os.Exit(1)
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Println("reading file:", err)
		os.Exit(1)
	}
	defer f.Close()

	cat, err := catalog.Read(f)
	if err != nil {
		fmt.Println("decoding:", err)
		os.Exit(1)
	}

	printCatalog(cat)
}

func printCatalog(c catalog.Catalog) {
	fmt.Println("Catalog")
	fmt.Printf("  versions (%d) = %v\n", len(c.Versions), c.Versions)
	fmt.Printf("  regions (%d)\n", len(c.Regions))
	fmt.Printf("  rule blobs (%d)\n", len(c.Blobs))
	fmt.Println()

	for vi, label := range c.Versions {
		fmt.Printf("Version %s\n", label)
		for _, rr := range c.Assignments[vi] {
			region := c.Regions[rr.RegionIndex]
			if *regionFlag != "" && region != *regionFlag {
				continue
			}
			printZoneRules(region, c.Blobs[rr.RulesIndex])
		}
		fmt.Println()
	}
}

func printZoneRules(region string, zr compile.ZoneRules) {
	fmt.Printf("  %s\n", region)
	fmt.Printf("    standard offsets (%d) = %v\n", len(zr.StandardOffsets), zr.StandardOffsets)
	fmt.Printf("    wall offsets (%d) = %v\n", len(zr.WallOffsets), zr.WallOffsets)
	fmt.Printf("    last rules (%d)\n", len(zr.LastRules))
	for _, lr := range zr.LastRules {
		fmt.Printf("      %s\n", formatLastRule(lr))
	}
	if *verboseFlag {
		printTransitions("standard", zr.StandardTransitions)
		printTransitions("wall", zr.SavingsInstantTransitions)
	}
}

func formatLastRule(lr compile.TransitionRule) string {
	return fmt.Sprintf("%s day-indicator=%d offset %s -> %s",
		lr.Month, lr.DayOfMonthIndicator, time.Duration(lr.OffsetBefore)*time.Second, time.Duration(lr.OffsetAfter)*time.Second)
}

func printTransitions(label string, epochSeconds []int64) {
	fmt.Printf("    %s transitions (%d)\n", label, len(epochSeconds))
	for _, t := range epochSeconds {
		fmt.Printf("      %s (%d)\n", time.Unix(t, 0).UTC().Format(time.RFC1123), t)
	}
}
