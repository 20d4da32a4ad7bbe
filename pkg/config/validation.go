package config

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
//
// Note: Log level normalization is handled in ApplyDefaults, not here.
// Validation accepts both uppercase and lowercase log levels.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	if err := validateCustomRules(cfg); err != nil {
		return err
	}

	return nil
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	if cfg.Solvers.RequiredFree > cfg.Solvers.DeviceCapacity {
		return fmt.Errorf("solvers: required_free (%d) exceeds device_capacity (%d)",
			cfg.Solvers.RequiredFree, cfg.Solvers.DeviceCapacity)
	}

	if cfg.Metrics.Enabled && cfg.Metrics.PushURL == "" {
		return fmt.Errorf("metrics: enabled is true but push_url is empty")
	}

	// Unknown puzzle names are almost always typos
	puzzles := make([]string, 0, len(cfg.Inputs.Files))
	for puzzle := range cfg.Inputs.Files {
		puzzles = append(puzzles, puzzle)
	}
	sort.Strings(puzzles)
	for _, puzzle := range puzzles {
		if _, ok := DefaultInputFiles[puzzle]; !ok {
			return fmt.Errorf("inputs.files: unknown puzzle %q", puzzle)
		}
	}

	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
