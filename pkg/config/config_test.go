package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: "debug"

inputs:
  type: "memory"
  files:
    filesystem: "terminal.txt"

solvers:
  required_free: 8000000
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected normalized level 'DEBUG', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Inputs.Type != "memory" {
		t.Errorf("Expected input type 'memory', got %q", cfg.Inputs.Type)
	}
	if cfg.Inputs.Files["filesystem"] != "terminal.txt" {
		t.Errorf("Expected filesystem input 'terminal.txt', got %q", cfg.Inputs.Files["filesystem"])
	}
	if cfg.Inputs.Files["calories"] != "day01.txt" {
		t.Errorf("Expected default calories input 'day01.txt', got %q", cfg.Inputs.Files["calories"])
	}
	if cfg.Solvers.RequiredFree != 8000000 {
		t.Errorf("Expected required_free 8000000, got %d", cfg.Solvers.RequiredFree)
	}
	if cfg.Solvers.DeviceCapacity != DefaultDeviceCapacity {
		t.Errorf("Expected default device_capacity %d, got %d", DefaultDeviceCapacity, cfg.Solvers.DeviceCapacity)
	}
	if cfg.Results.Type != "memory" {
		t.Errorf("Expected default results type 'memory', got %q", cfg.Results.Type)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// An explicit path keeps the user's own config out of the test
	tmpDir := t.TempDir()
	nonExistentPath := filepath.Join(tmpDir, "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Expected no error with missing config file, got: %v", err)
	}

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Inputs.Type != "filesystem" {
		t.Errorf("Expected default input type 'filesystem', got %q", cfg.Inputs.Type)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	configContent := `
logging:
  level: INFO
  invalid yaml here [[[
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("Expected error with invalid YAML, got nil")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
solvers:
  device_capacity: 1000
  required_free: 2000
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("Expected validation error when required_free exceeds device_capacity")
	}
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[logging]
level = "WARN"
format = "json"

[solvers]
top_elves = 1
packet_marker = 5

[results]
type = "badger"

[results.badger]
in_memory = true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load TOML config: %v", err)
	}

	if cfg.Logging.Level != "WARN" {
		t.Errorf("Expected level 'WARN', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected format 'json', got %q", cfg.Logging.Format)
	}
	if cfg.Solvers.TopElves != 1 {
		t.Errorf("Expected top_elves 1, got %d", cfg.Solvers.TopElves)
	}
	if cfg.Solvers.PacketMarker != 5 {
		t.Errorf("Expected packet_marker 5, got %d", cfg.Solvers.PacketMarker)
	}
	if cfg.Results.Type != "badger" {
		t.Errorf("Expected results type 'badger', got %q", cfg.Results.Type)
	}
	if cfg.Results.Badger["in_memory"] != true {
		t.Errorf("Expected badger in_memory true, got %v", cfg.Results.Badger["in_memory"])
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ELFDEVICE_LOGGING_LEVEL", "error")
	t.Setenv("ELFDEVICE_SOLVERS_TOP_ELVES", "2")
	t.Setenv("ELFDEVICE_SOLVERS_DEVICE_CAPACITY", "90000000")
	t.Setenv("ELFDEVICE_RESULTS_TYPE", "badger")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "ERROR" {
		t.Errorf("Expected level 'ERROR' from env, got %q", cfg.Logging.Level)
	}
	if cfg.Solvers.TopElves != 2 {
		t.Errorf("Expected top_elves 2 from env, got %d", cfg.Solvers.TopElves)
	}
	if cfg.Solvers.DeviceCapacity != 90000000 {
		t.Errorf("Expected device_capacity 90000000 from env, got %d", cfg.Solvers.DeviceCapacity)
	}
	if cfg.Results.Type != "badger" {
		t.Errorf("Expected results type 'badger' from env, got %q", cfg.Results.Type)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("solvers:\n  message_marker: 10\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("ELFDEVICE_SOLVERS_MESSAGE_MARKER", "12")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Solvers.MessageMarker != 12 {
		t.Errorf("Expected message_marker 12 from env, got %d", cfg.Solvers.MessageMarker)
	}
}

func TestGetDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := GetDefaultConfigPath()

	if !filepath.IsAbs(path) {
		t.Errorf("Expected absolute path, got %q", path)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("Expected filename 'config.yaml', got %q", filepath.Base(path))
	}
}

func TestGetConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	if dir := GetConfigDir(); dir != filepath.Join(xdg, "elfdevice") {
		t.Errorf("Expected %q, got %q", filepath.Join(xdg, "elfdevice"), dir)
	}
}

func TestConfigExists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if ConfigExists() {
		t.Fatal("Expected no config in a fresh directory")
	}
	if _, err := InitConfig(false); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if !ConfigExists() {
		t.Fatal("Expected config to exist after InitConfig")
	}
}
