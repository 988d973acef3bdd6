package config

import "fmt"

// RuntimeOverrides holds configuration values that can be overridden at
// runtime via CLI flags.
type RuntimeOverrides struct {
	ActiveModel *string
	MaxTokens   *int
	Temperature *float64
	PromptsFile *string
	NoCache     *bool
	LogLevel    *string
	LogFile     *string
}

// NewWithOverrides loads the configuration and applies any runtime
// overrides on top.
func NewWithOverrides(overrides *RuntimeOverrides) (*ConfigSchema, error) {
	cfg, err := New()
	if err != nil {
		return nil, err
	}

	if overrides == nil {
		return cfg, nil
	}

	if overrides.ActiveModel != nil {
		if _, exists := cfg.Models[*overrides.ActiveModel]; !exists {
			return nil, fmt.Errorf("model %q not found in configuration", *overrides.ActiveModel)
		}
		cfg.ActiveModel = *overrides.ActiveModel
	}

	active := cfg.Models[cfg.ActiveModel]
	if overrides.MaxTokens != nil {
		active.MaxTokens = *overrides.MaxTokens
	}
	if overrides.Temperature != nil {
		active.Temperature = *overrides.Temperature
	}
	cfg.Models[cfg.ActiveModel] = active

	if overrides.PromptsFile != nil {
		cfg.PromptsFile = *overrides.PromptsFile
	}
	if overrides.NoCache != nil && *overrides.NoCache {
		cfg.Cache.Enabled = false
	}
	if overrides.LogLevel != nil {
		cfg.Log.LogLevel = *overrides.LogLevel
	}
	if overrides.LogFile != nil {
		cfg.Log.LogFile = *overrides.LogFile
	}

	return cfg, nil
}
