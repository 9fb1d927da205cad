package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"

	"github.com/tzbuild/tzcat/catalog"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		return fmt.Errorf("Usage: tzcatdiff <catalog file A> <catalog file B>")
	}

	a, err := readCatalog(args[0])
	if err != nil {
		return err
	}
	b, err := readCatalog(args[1])
	if err != nil {
		return err
	}

	if diff := cmp.Diff(a, b); diff != "" {
		fmt.Println("catalogs are different: -A +B")
		fmt.Println(diff)
	} else {
		fmt.Println("catalogs are identical")
	}
	return nil
}

func readCatalog(path string) (catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Catalog{}, err
	}
	defer f.Close()
	return catalog.Read(f)
}
