// Command tzcat compiles a directory (or archive) of tzdata versions into
// a single binary catalog, per spec.md's Driver contract.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tzbuild/tzcat"
	"github.com/tzbuild/tzcat/catalog"
	"github.com/tzbuild/tzcat/internal/tzcatconfig"
	"github.com/tzbuild/tzcat/tzdb/sourceset"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tzcat: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tzcat",
		Short:        "Compile IANA tzdata releases into a tzcat binary catalog",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path")
	cmd.PersistentFlags().String("data-dir", "", "Directory of VERSION/ subdirectories, or a tzdata-VERSION.tar.gz archive")
	cmd.PersistentFlags().StringP("out", "o", "", "Output directory for the compiled catalog")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose build logging")

	cmd.AddCommand(newCompileCmd(), newVersionsCmd(), newConfigCmd(), newVersionCmd())
	return cmd
}

func loadConfig(cmd *cobra.Command) (*tzcatconfig.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := tzcatconfig.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.OutputDir = out
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Compile one or more tzdata versions into a catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runCompile(cfg)
		},
	}
}

func runCompile(cfg *tzcatconfig.Config) error {
	buildID := uuid.New().String()
	var logger tzcat.Logger = tzcat.NopLogger{}
	if cfg.Verbose {
		logger = tzcat.StdLogger{L: log.New(os.Stderr, "tzcat["+buildID[:8]+"] ", log.LstdFlags)}
	}

	versions, err := readVersions(cfg)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		return fmt.Errorf("no tzdata versions found under %q", cfg.DataDir)
	}

	cat, leapSeconds, err := tzcat.BuildCatalog(logger, versions)
	if err != nil {
		return fmt.Errorf("compiling catalog: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o750); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	catalogPath := filepath.Join(cfg.OutputDir, "tzdata.catalog")
	f, err := os.Create(catalogPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", catalogPath, err)
	}
	defer f.Close()
	if err := cat.Write(f); err != nil {
		return fmt.Errorf("writing %s: %w", catalogPath, err)
	}

	if len(leapSeconds) > 0 {
		if err := writeLeapSecondsSidecar(filepath.Join(cfg.OutputDir, "tzdata.leapseconds.yaml"), leapSeconds); err != nil {
			return err
		}
	}

	fmt.Printf("wrote %s: %d versions, %d regions, %d rule blobs\n",
		catalogPath, len(cat.Versions), len(cat.Regions), len(cat.Blobs))
	return nil
}

// readVersions resolves cfg.DataDir into an ordered list of tzcat.VersionInput,
// either from a single tzdata-VERSION.tar.gz archive or a directory of
// already-unpacked VERSION/ subdirectories.
func readVersions(cfg *tzcatconfig.Config) ([]tzcat.VersionInput, error) {
	info, err := os.Stat(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data dir: %w", err)
	}

	if !info.IsDir() {
		f, err := os.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening archive: %w", err)
		}
		defer f.Close()
		v, err := sourceset.ReadArchive(f)
		if err != nil {
			return nil, fmt.Errorf("reading archive: %w", err)
		}
		return []tzcat.VersionInput{versionInputFromSet(v)}, nil
	}

	labels, err := sourceset.DiscoverVersions(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("discovering versions: %w", err)
	}

	inputs := make([]tzcat.VersionInput, 0, len(labels))
	for _, label := range labels {
		v, err := sourceset.ReadVersionDir(filepath.Join(cfg.DataDir, label), label, cfg.Files)
		if err != nil {
			return nil, fmt.Errorf("reading version %s: %w", label, err)
		}
		inputs = append(inputs, versionInputFromSet(v))
	}
	return inputs, nil
}

func versionInputFromSet(v *sourceset.Version) tzcat.VersionInput {
	names := make([]string, 0, len(v.Files))
	for name := range v.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	sources := make([]tzcat.Source, 0, len(names))
	for _, name := range names {
		sources = append(sources, tzcat.Source{Name: name, Data: v.Files[name]})
	}
	return tzcat.VersionInput{Label: v.Label, Sources: sources, LeapSeconds: v.LeapSecondsFile}
}

func writeLeapSecondsSidecar(path string, entries []tzcat.LeapSecondEntry) error {
	type leapYAML struct {
		Date       string `yaml:"date"`
		Adjustment int    `yaml:"adjustment"`
	}
	out := make([]leapYAML, len(entries))
	for i, e := range entries {
		out[i] = leapYAML{
			Date:       fmt.Sprintf("%04d-%02d-%02d", e.Year, int(e.Month), e.Day),
			Adjustment: int(e.Adjustment),
		}
	}
	b, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling leap seconds: %w", err)
	}
	if err := os.WriteFile(path, b, 0o640); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func newVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions <catalog file>",
		Short: "List the versions and region counts in a compiled catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening catalog: %w", err)
			}
			defer f.Close()
			cat, err := catalog.Read(f)
			if err != nil {
				return fmt.Errorf("reading catalog: %w", err)
			}
			for i, v := range cat.Versions {
				fmt.Printf("%s\t%d regions\t%d rule blobs referenced\n", v, len(cat.Assignments[i]), countDistinctBlobs(cat.Assignments[i]))
			}
			return nil
		},
	}
	return cmd
}

func countDistinctBlobs(pairs []catalog.RegionRule) int {
	seen := make(map[uint16]struct{}, len(pairs))
	for _, p := range pairs {
		seen[p.RulesIndex] = struct{}{}
	}
	return len(seen)
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tzcat configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE: func(c *cobra.Command, args []string) error {
				cfg, err := loadConfig(c)
				if err != nil {
					return err
				}
				return cfg.Set(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all configuration values",
			RunE: func(c *cobra.Command, _ []string) error {
				cfg, err := loadConfig(c)
				if err != nil {
					return err
				}
				cfg.List()
				return nil
			},
		},
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Run: func(_ *cobra.Command, _ []string) {
			if strings.TrimSpace(date) == "" {
				fmt.Printf("tzcat %s\n", version)
			} else {
				fmt.Printf("tzcat %s (%s) built %s\n", version, commit, date)
			}
		},
	}
}
