// Package config loads the application configuration. Values merge in
// precedence order: embedded defaults, then the global config file
// ($XDG_CONFIG_HOME/nbcoach/nbcoach.yaml), then a local .nbcoach.yaml,
// then NBCOACH_* environment variables.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaultConfig []byte

const (
	appDirName     = "nbcoach"
	globalFileName = "nbcoach.yaml"
	localFileName  = ".nbcoach.yaml"
	defaultDBName  = "nbcoach.db"
)

// New loads and validates the merged configuration.
func New() (*ConfigSchema, error) {
	loadEnv()

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return nil, fmt.Errorf("failed to read default config: %w", err)
	}

	for _, path := range configFilePaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to merge config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("NBCOACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg ConfigSchema
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DBPath == "" {
		path, err := defaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the schema rules plus the cross-field constraint that
// activeModel names a configured model.
func (c *ConfigSchema) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	if _, err := c.Active(); err != nil {
		return err
	}
	return nil
}

// configFilePaths returns candidate config files, lowest precedence
// first.
func configFilePaths() []string {
	var paths []string

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		if home, err := os.UserHomeDir(); err == nil {
			xdgConfig = filepath.Join(home, ".config")
		}
	}
	if xdgConfig != "" {
		paths = append(paths, filepath.Join(xdgConfig, appDirName, globalFileName))
	}

	paths = append(paths, localFileName)
	return paths
}

func defaultDBPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appDirName, defaultDBName), nil
}
