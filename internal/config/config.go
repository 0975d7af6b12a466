package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Sanitize   SanitizeConfig   `mapstructure:"sanitize"`
	Rename     RenameConfig     `mapstructure:"rename"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ExtractionConfig struct {
	MaxPages   int    `mapstructure:"max_pages"`
	DateFormat string `mapstructure:"date_format"`
}

type SanitizeConfig struct {
	NormalizeUnicode     bool   `mapstructure:"normalize_unicode"`
	ReplaceSpaces        bool   `mapstructure:"replace_spaces"`
	MaxLength            int    `mapstructure:"max_length"`
	CaseStyle            string `mapstructure:"case_style"`
	ConflictResolution   bool   `mapstructure:"conflict_resolution"`
	ConflictSuffixFormat string `mapstructure:"conflict_suffix_format"`
}

type RenameConfig struct {
	DryRun bool `mapstructure:"dry_run"`
}

type LoggingConfig struct {
	Quiet   bool `mapstructure:"quiet"`
	Verbose bool `mapstructure:"verbose"`
}

func Default() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			MaxPages:   3,
			DateFormat: "20060102_150405",
		},
		Sanitize: SanitizeConfig{
			NormalizeUnicode:     true,
			ReplaceSpaces:        false,
			MaxLength:            255,
			CaseStyle:            "",
			ConflictResolution:   true,
			ConflictSuffixFormat: "(%d)",
		},
		Rename: RenameConfig{
			DryRun: false,
		},
		Logging: LoggingConfig{
			Quiet:   false,
			Verbose: false,
		},
	}
}

func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return cfg, fmt.Errorf("error finding home directory: %w", err)
			}
			configHome = filepath.Join(home, ".config")
		}

		configDir := filepath.Join(configHome, "fastrenamer")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")

		// Create config directory if it doesn't exist
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return cfg, fmt.Errorf("error creating config directory: %w", err)
		}
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FASTRENAMER")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is not an error, we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return cfg, nil
}

func (c *Config) CreateExampleConfig(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	exampleContent := `# fastrenamer configuration file

[extraction]
# Pages scanned when naming from PDF content
max_pages = 3

# Go reference layout for image capture timestamps
# (20060102_150405 renders as YYYYMMDD_HHMMSS)
date_format = "20060102_150405"

[sanitize]
# Fold accented characters to their ASCII base form
normalize_unicode = true

# Replace literal spaces with underscores
replace_spaces = false

# Maximum filename length in characters
max_length = 255

# Case normalization for the stem: "", lower, upper, title, sentence
case_style = ""

# Automatically resolve name collisions in the target directory
conflict_resolution = true

# fmt template for collision suffixes; photo.jpg -> photo(1).jpg
conflict_suffix_format = "(%d)"

[rename]
# Plan only by default; require an explicit apply
dry_run = false

[logging]
quiet = false
verbose = false
`

	return os.WriteFile(configPath, []byte(exampleContent), 0644)
}
