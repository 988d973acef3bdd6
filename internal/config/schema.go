package config

import "fmt"

// Model describes one configured language model.
type Model struct {
	Provider    string  `mapstructure:"provider" yaml:"provider" json:"provider" validate:"required,oneof=openai anthropic googleai ollama"`
	Name        string  `mapstructure:"name" yaml:"name" json:"name" validate:"required"`
	MaxTokens   int     `mapstructure:"maxTokens" yaml:"maxTokens" json:"maxTokens" validate:"gte=0"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature" json:"temperature" validate:"gte=0,lte=2"`
	BaseURL     string  `mapstructure:"baseUrl" yaml:"baseUrl" json:"baseUrl,omitempty"`
}

// Cache controls the response cache.
type Cache struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
}

// History controls recording of tutoring exchanges.
type History struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
}

// Log controls application logging.
type Log struct {
	LogLevel string `mapstructure:"logLevel" yaml:"logLevel" json:"logLevel" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`
	LogFile  string `mapstructure:"logFile" yaml:"logFile" json:"logFile,omitempty"`
}

// ConfigSchema is the fully merged application configuration.
type ConfigSchema struct {
	Models      map[string]Model `mapstructure:"models" yaml:"models" json:"models" validate:"required,dive"`
	ActiveModel string           `mapstructure:"activeModel" yaml:"activeModel" json:"activeModel" validate:"required"`
	PromptsFile string           `mapstructure:"promptsFile" yaml:"promptsFile" json:"promptsFile,omitempty"`
	DBPath      string           `mapstructure:"dbPath" yaml:"dbPath" json:"dbPath,omitempty"`
	Cache       Cache            `mapstructure:"cache" yaml:"cache" json:"cache"`
	History     History          `mapstructure:"history" yaml:"history" json:"history"`
	Log         Log              `mapstructure:"log" yaml:"log" json:"log"`
}

// Active returns the model configuration selected by ActiveModel.
func (c *ConfigSchema) Active() (Model, error) {
	model, ok := c.Models[c.ActiveModel]
	if !ok {
		return Model{}, fmt.Errorf("activeModel %q is not a configured model", c.ActiveModel)
	}
	return model, nil
}
