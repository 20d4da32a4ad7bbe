package config

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_StructTags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		tag    string
	}{
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "oneof"},
		{"log output", func(c *Config) { c.Logging.Output = "" }, "required"},
		{"input type", func(c *Config) { c.Inputs.Type = "ftp" }, "oneof"},
		{"results type", func(c *Config) { c.Results.Type = "postgres" }, "oneof"},
		{"zero capacity", func(c *Config) { c.Solvers.DeviceCapacity = 0 }, "gt"},
		{"zero required free", func(c *Config) { c.Solvers.RequiredFree = 0 }, "gt"},
		{"zero threshold", func(c *Config) { c.Solvers.SmallDirThreshold = 0 }, "gt"},
		{"zero top elves", func(c *Config) { c.Solvers.TopElves = 0 }, "gte"},
		{"negative marker", func(c *Config) { c.Solvers.PacketMarker = -1 }, "gte"},
		{"bad push url", func(c *Config) { c.Metrics.PushURL = "not a url" }, "url"},
		{"empty input file", func(c *Config) { c.Inputs.Files["signal"] = "" }, "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), "'"+tt.tag+"'") {
				t.Errorf("Expected '%s' validation error, got: %v", tt.tag, err)
			}
		})
	}
}

func TestValidate_RequiredFreeExceedsCapacity(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Solvers.DeviceCapacity = 100
	cfg.Solvers.RequiredFree = 101

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "exceeds device_capacity") {
		t.Errorf("Unexpected error: %v", err)
	}

	cfg.Solvers.RequiredFree = 100
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected required_free == device_capacity to be valid, got: %v", err)
	}
}

func TestValidate_MetricsRequirePushURL(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Metrics.Enabled = true

	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "push_url") {
		t.Fatalf("Expected push_url error, got: %v", err)
	}

	cfg.Metrics.PushURL = "http://localhost:9091"
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected valid metrics config, got: %v", err)
	}
}

func TestValidate_UnknownPuzzle(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Inputs.Files["day08"] = "day08.txt"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected error for unknown puzzle")
	}
	if !strings.Contains(err.Error(), `"day08"`) {
		t.Errorf("Expected error naming the puzzle, got: %v", err)
	}
}
