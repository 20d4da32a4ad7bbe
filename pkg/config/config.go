package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete elfdevice configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (ELFDEVICE_*)
//  3. Configuration file (YAML or TOML)
//  4. Default values (lowest priority)
//
// Store Configuration Pattern:
// Input sources and result stores are pluggable. Each section carries a Type
// and one option map per implementation; only the map matching Type is
// decoded, by the factory for that implementation.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Inputs selects where puzzle input files are read from
	Inputs InputsConfig `mapstructure:"inputs" yaml:"inputs"`

	// Solvers holds the puzzle parameters
	Solvers SolversConfig `mapstructure:"solvers" yaml:"solvers"`

	// Results selects where answers are recorded
	Results ResultsConfig `mapstructure:"results" yaml:"results"`

	// Metrics controls Prometheus metrics and Pushgateway delivery
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" yaml:"output" validate:"required"`
}

// InputsConfig specifies the input source.
//
// The Type field determines which source implementation is used.
// Only the corresponding type-specific configuration section is used.
type InputsConfig struct {
	// Type specifies which input source implementation to use
	// Valid values: filesystem, memory, s3
	Type string `mapstructure:"type" yaml:"type" validate:"required,oneof=filesystem memory s3"`

	// Filesystem contains filesystem-specific configuration (path)
	Filesystem map[string]any `mapstructure:"filesystem" yaml:"filesystem"`

	// Memory contains memory-specific configuration (files: list of name/content)
	Memory map[string]any `mapstructure:"memory" yaml:"memory,omitempty"`

	// S3 contains S3-specific configuration
	S3 map[string]any `mapstructure:"s3" yaml:"s3"`

	// Files maps each puzzle name to its input file name in the source
	Files map[string]string `mapstructure:"files" yaml:"files" validate:"dive,keys,required,endkeys,required"`
}

// SolversConfig holds the parameters the puzzles are solved with.
type SolversConfig struct {
	// DeviceCapacity is the total disk space of the device, in bytes
	DeviceCapacity uint64 `mapstructure:"device_capacity" yaml:"device_capacity" validate:"gt=0"`

	// RequiredFree is the free space the update needs, in bytes
	RequiredFree uint64 `mapstructure:"required_free" yaml:"required_free" validate:"gt=0"`

	// SmallDirThreshold is the inclusive size limit of a "small" directory
	SmallDirThreshold uint64 `mapstructure:"small_dir_threshold" yaml:"small_dir_threshold" validate:"gt=0"`

	// TopElves is how many of the best-stocked elves are summed
	TopElves int `mapstructure:"top_elves" yaml:"top_elves" validate:"gte=1"`

	// PacketMarker is the start-of-packet marker length
	PacketMarker int `mapstructure:"packet_marker" yaml:"packet_marker" validate:"gte=1"`

	// MessageMarker is the start-of-message marker length
	MessageMarker int `mapstructure:"message_marker" yaml:"message_marker" validate:"gte=1"`
}

// ResultsConfig specifies the result store.
type ResultsConfig struct {
	// Type specifies which result store implementation to use
	// Valid values: memory, badger
	Type string `mapstructure:"type" yaml:"type" validate:"required,oneof=memory badger"`

	// Memory contains memory-specific configuration (currently none)
	Memory map[string]any `mapstructure:"memory" yaml:"memory,omitempty"`

	// Badger contains BadgerDB-specific configuration
	Badger map[string]any `mapstructure:"badger" yaml:"badger"`
}

// MetricsConfig controls metrics collection.
type MetricsConfig struct {
	// Enabled turns on Prometheus metrics collection
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// PushURL is the Pushgateway base URL; required when enabled
	PushURL string `mapstructure:"push_url" yaml:"push_url" validate:"omitempty,url"`

	// Job is the Pushgateway job label
	Job string `mapstructure:"job" yaml:"job"`
}

// envKeys are the scalar keys viper binds to ELFDEVICE_* variables even
// when the config file does not mention them.
var envKeys = []string{
	"logging.level",
	"logging.format",
	"logging.output",
	"inputs.type",
	"solvers.device_capacity",
	"solvers.required_free",
	"solvers.small_dir_threshold",
	"solvers.top_elves",
	"solvers.packet_marker",
	"solvers.message_marker",
	"results.type",
	"metrics.enabled",
	"metrics.push_url",
	"metrics.job",
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (ELFDEVICE_*)
//  2. Configuration file
//  3. Default values
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: Configuration loading or validation error
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if err := setupViper(v, configPath); err != nil {
		return nil, err
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) error {
	// Example: ELFDEVICE_SOLVERS_TOP_ELVES=3
	v.SetEnvPrefix("ELFDEVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default location: $XDG_CONFIG_HOME/elfdevice/config.{yaml,toml}
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	return nil
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found is acceptable - use defaults
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to the
// current directory if the home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "elfdevice")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "elfdevice")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// ConfigExists checks if a config file exists at the default location.
func ConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() string {
	return getConfigDir()
}
