package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults of the global flags, read from a YAML file:
//
//	api: http://localhost:8000
//	cache: ${HOME}/.cache/dash
//
// Environment variables are expanded.
type Config struct {
	API   string `yaml:"api"`
	Cache string `yaml:"cache"`
}

var configFile = flag.String("config", defaultConfigFile(), "YAML configuration `file` of the global flags")

func defaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dash", "config.yaml")
}

// LoadConfig reads a configuration file. A missing file is an empty configuration.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyConfig sets the global flags that are not on the command line from
// the -config file. It must be called after flag.Parse.
func ApplyConfig(f *flag.FlagSet) error {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return err
	}
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if cfg.API != "" && !set["api"] && os.Getenv(EnvAPI) == "" {
		*apiURL = cfg.API
	}
	if cfg.Cache != "" && !set["cache"] {
		*cacheDir = cfg.Cache
	}
	return nil
}
