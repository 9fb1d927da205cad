// Package tzcatconfig loads cmd/tzcat's configuration file and binds it
// against flags and environment variables, the way tempus's
// internal/config package does for its own CLI.
package tzcatconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is cmd/tzcat's persistent configuration: where to find tzdata
// version directories/archives, which source files to read per version,
// where to write the compiled catalog, and whether to log verbosely.
type Config struct {
	DataDir   string   `mapstructure:"data_dir" json:"data_dir"`
	OutputDir string   `mapstructure:"output_dir" json:"output_dir"`
	Files     []string `mapstructure:"files" json:"files"`
	Verbose   bool     `mapstructure:"verbose" json:"verbose"`
}

var defaultConfig = Config{
	DataDir:   ".",
	OutputDir: ".",
	Files:     nil, // nil means tzdb/sourceset.DefaultFiles()
	Verbose:   false,
}

// Load reads config.yaml from the tzcat config directory (see getConfigDir;
// typically ~/.config/tzcat), or from the current directory if none is found
// there. A non-empty configFile replaces that search: only the named file is
// read. When the search finds no config file, defaults apply; a configFile
// that cannot be read is an error.
func Load(configFile string) (*Config, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(configDir)
		viper.AddConfigPath(".")
	}

	viper.SetDefault("data_dir", defaultConfig.DataDir)
	viper.SetDefault("output_dir", defaultConfig.OutputDir)
	viper.SetDefault("files", defaultConfig.Files)
	viper.SetDefault("verbose", defaultConfig.Verbose)

	viper.SetEnvPrefix("tzcat")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Set sets a configuration value in memory and persists it to disk.
func (c *Config) Set(key, value string) error {
	switch key {
	case "data_dir":
		c.DataDir = value
	case "output_dir":
		c.OutputDir = value
	case "verbose":
		c.Verbose = value == "true"
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return c.Save()
}

// List prints all configuration values to stdout.
func (c *Config) List() {
	fmt.Printf("data_dir: %s\n", c.DataDir)
	fmt.Printf("output_dir: %s\n", c.OutputDir)
	fmt.Printf("files: %s\n", strings.Join(c.Files, ","))
	fmt.Printf("verbose: %v\n", c.Verbose)
}

// Save persists the current in-memory configuration to disk as YAML.
func (c *Config) Save() error {
	configDir, err := getConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return err
	}
	viper.Set("data_dir", c.DataDir)
	viper.Set("output_dir", c.OutputDir)
	viper.Set("files", c.Files)
	viper.Set("verbose", c.Verbose)
	return viper.WriteConfigAs(filepath.Join(configDir, "config.yaml"))
}

func getConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tzcat"), nil
	}
	if base, err := os.UserConfigDir(); err == nil && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "tzcat"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tzcat"), nil
}
