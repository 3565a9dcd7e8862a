package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Scan    ScanConfig    `yaml:"scan" envconfig:"SCAN"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// ScanConfig controls table-region detection. The defaults reproduce the
// canonical markers; overrides exist so differently-labelled workbooks can
// be processed without a rebuild.
type ScanConfig struct {
	HeaderMarker       string   `yaml:"header_marker" envconfig:"HEADER_MARKER" validate:"required"`
	EndMarker          string   `yaml:"end_marker" envconfig:"END_MARKER" validate:"required"`
	HeaderSearchRows   int      `yaml:"header_search_rows" envconfig:"HEADER_SEARCH_ROWS" validate:"min=1"`
	TerminatorKeywords []string `yaml:"terminator_keywords" envconfig:"TERMINATOR_KEYWORDS" validate:"min=1,dive,required"`
}

// OutputConfig controls the combined workbook write.
type OutputConfig struct {
	FileName string `yaml:"file_name" envconfig:"FILE_NAME" validate:"required,endswith=.xlsx"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			HeaderMarker:       "Sl. No.",
			EndMarker:          "Sample",
			HeaderSearchRows:   20,
			TerminatorKeywords: []string{"total", "summary"},
		},
		Output: OutputConfig{
			FileName: "combined_output.xlsx",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/combiner.log",
		},
	}
}

// Load builds the configuration by layering sources: built-in defaults,
// then an optional YAML config file, then environment variables with the
// XLC prefix. The result is validated before being returned.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := findConfigFile(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("XLC", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// loadFromFile overlays configuration from a YAML file onto cfg.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// findConfigFile returns the path of the first config file found in the
// conventional locations, or "" when none exists.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}
