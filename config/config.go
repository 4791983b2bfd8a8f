package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/optfixture/fixture"
	"github.com/rustyeddy/optfixture/manifest"
)

// StartLayout is the format of dataset.start.
const StartLayout = "2006-01-02 15:04"

// Config represents a complete generator configuration
type Config struct {
	Dataset  DatasetConfig  `json:"dataset" yaml:"dataset"`
	Ranges   fixture.Ranges `json:"ranges" yaml:"ranges"`
	Manifest ManifestConfig `json:"manifest" yaml:"manifest"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// DatasetConfig describes the tree to produce
type DatasetConfig struct {
	Root        string `json:"root" yaml:"root"`
	Start       string `json:"start" yaml:"start"` // "2024-05-02 09:30", read as UTC
	Days        int    `json:"days" yaml:"days"`
	FilesPerDay int    `json:"files_per_day" yaml:"files_per_day"`
	RowsPerFile int    `json:"rows_per_file" yaml:"rows_per_file"`
	Seed        int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// ManifestConfig selects where written files are cataloged
type ManifestConfig struct {
	Type string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// MetricsConfig enables a Prometheus textfile export after each run
type MetricsConfig struct {
	Textfile string `json:"textfile,omitempty" yaml:"textfile,omitempty"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// StartTime parses Start in UTC.
func (d DatasetConfig) StartTime() (time.Time, error) {
	return time.ParseInLocation(StartLayout, strings.TrimSpace(d.Start), time.UTC)
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths and JSON otherwise
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.Dataset.StartTime(); err != nil {
		return fmt.Errorf("dataset.start must look like %q: %w", StartLayout, err)
	}
	if _, err := c.Options(); err != nil {
		return err
	}
	switch c.Manifest.Type {
	case "", manifest.TypeNone:
	case manifest.TypeCSV, manifest.TypeSQLite:
		if c.Manifest.Path == "" {
			return fmt.Errorf("manifest.path required for %s type", c.Manifest.Type)
		}
	default:
		return fmt.Errorf("manifest.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Options converts the dataset section into generator options.
func (c *Config) Options() (fixture.Options, error) {
	start, err := c.Dataset.StartTime()
	if err != nil {
		return fixture.Options{}, fmt.Errorf("dataset.start: %w", err)
	}
	opts := fixture.Options{
		Root:        c.Dataset.Root,
		Start:       start,
		Days:        c.Dataset.Days,
		FilesPerDay: c.Dataset.FilesPerDay,
		RowsPerFile: c.Dataset.RowsPerFile,
		Ranges:      c.Ranges,
		Seed:        c.Dataset.Seed,
	}
	if err := opts.Validate(); err != nil {
		return fixture.Options{}, fmt.Errorf("dataset: %w", err)
	}
	return opts, nil
}

// Default returns the configuration that reproduces the stock dataset
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Root:        fixture.DefaultRoot,
			Start:       fixture.DefaultStart.Format(StartLayout),
			Days:        fixture.DefaultDays,
			FilesPerDay: fixture.DefaultFilesPerDay,
			RowsPerFile: fixture.DefaultRowsPerFile,
		},
		Ranges: fixture.DefaultRanges(),
		Manifest: ManifestConfig{
			Type: manifest.TypeNone,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
