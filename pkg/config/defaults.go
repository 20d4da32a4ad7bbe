package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Device and puzzle constants used when the configuration leaves them unset.
const (
	DefaultDeviceCapacity    uint64 = 70_000_000
	DefaultRequiredFree      uint64 = 30_000_000
	DefaultSmallDirThreshold uint64 = 100_000
	DefaultTopElves                 = 3
	DefaultPacketMarker             = 4
	DefaultMessageMarker            = 14
	DefaultMetricsJob               = "elfdevice"
)

// DefaultInputFiles maps each puzzle to the input file name it is read
// from when inputs.files does not override it.
var DefaultInputFiles = map[string]string{
	"calories":   "day01.txt",
	"strategy":   "day02.txt",
	"rucksack":   "day03.txt",
	"sections":   "day04.txt",
	"crates":     "day05.txt",
	"signal":     "day06.txt",
	"filesystem": "day07.txt",
}

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
//   - Store-specific defaults are handled by the factories
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyInputsDefaults(&cfg.Inputs)
	applySolversDefaults(&cfg.Solvers)
	applyResultsDefaults(&cfg.Results)
	applyMetricsDefaults(&cfg.Metrics)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyInputsDefaults sets input source defaults.
func applyInputsDefaults(cfg *InputsConfig) {
	if cfg.Type == "" {
		cfg.Type = "filesystem"
	}

	if cfg.Filesystem == nil {
		cfg.Filesystem = make(map[string]any)
	}
	if cfg.S3 == nil {
		cfg.S3 = make(map[string]any)
	}

	// Filled for every type so a generated config documents all options
	if _, ok := cfg.Filesystem["path"]; !ok {
		cfg.Filesystem["path"] = "inputs"
	}
	if _, ok := cfg.S3["region"]; !ok {
		cfg.S3["region"] = "us-east-1"
	}
	if _, ok := cfg.S3["key_prefix"]; !ok {
		cfg.S3["key_prefix"] = "inputs/"
	}

	if cfg.Files == nil {
		cfg.Files = make(map[string]string, len(DefaultInputFiles))
	}
	for puzzle, file := range DefaultInputFiles {
		if _, ok := cfg.Files[puzzle]; !ok {
			cfg.Files[puzzle] = file
		}
	}
}

// applySolversDefaults sets puzzle parameter defaults.
func applySolversDefaults(cfg *SolversConfig) {
	if cfg.DeviceCapacity == 0 {
		cfg.DeviceCapacity = DefaultDeviceCapacity
	}
	if cfg.RequiredFree == 0 {
		cfg.RequiredFree = DefaultRequiredFree
	}
	if cfg.SmallDirThreshold == 0 {
		cfg.SmallDirThreshold = DefaultSmallDirThreshold
	}
	if cfg.TopElves == 0 {
		cfg.TopElves = DefaultTopElves
	}
	if cfg.PacketMarker == 0 {
		cfg.PacketMarker = DefaultPacketMarker
	}
	if cfg.MessageMarker == 0 {
		cfg.MessageMarker = DefaultMessageMarker
	}
}

// applyResultsDefaults sets result store defaults.
func applyResultsDefaults(cfg *ResultsConfig) {
	if cfg.Type == "" {
		cfg.Type = "memory"
	}

	if cfg.Badger == nil {
		cfg.Badger = make(map[string]any)
	}
	if _, ok := cfg.Badger["db_path"]; !ok {
		cfg.Badger["db_path"] = filepath.Join(getDataDir(), "results")
	}
}

// applyMetricsDefaults sets metrics defaults.
func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Job == "" {
		cfg.Job = DefaultMetricsJob
	}
}

// getDataDir returns $XDG_DATA_HOME/elfdevice, ~/.local/share/elfdevice, or
// the current directory as a last resort.
func getDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "elfdevice")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "elfdevice")
}

// GetDefaultConfig returns a Config with all default values applied.
//
// This is useful for generating sample configuration files or for testing.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
