package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points every config source at a temp directory so tests do
// not pick up the developer's real config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HOME", dir)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestNewDefaults(t *testing.T) {
	isolate(t)

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if cfg.ActiveModel != "gpt-4o-mini" {
		t.Errorf("ActiveModel = %q, want gpt-4o-mini", cfg.ActiveModel)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should be enabled by default")
	}
	if cfg.DBPath == "" {
		t.Error("DBPath should resolve to a default location")
	}
	if !strings.Contains(cfg.DBPath, "nbcoach.db") {
		t.Errorf("DBPath = %q, want it to end in nbcoach.db", cfg.DBPath)
	}

	active, err := cfg.Active()
	if err != nil {
		t.Fatalf("Active() error = %v", err)
	}
	if active.Provider != "openai" {
		t.Errorf("active provider = %q, want openai", active.Provider)
	}
}

func TestNewMergesLocalConfig(t *testing.T) {
	dir := isolate(t)

	local := "activeModel: local\nlog:\n  logLevel: DEBUG\n"
	if err := os.WriteFile(filepath.Join(dir, localFileName), []byte(local), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if cfg.ActiveModel != "local" {
		t.Errorf("ActiveModel = %q, want local (from local config)", cfg.ActiveModel)
	}
	if cfg.Log.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want DEBUG", cfg.Log.LogLevel)
	}
	// Untouched defaults survive the merge.
	if _, ok := cfg.Models["gpt-4o-mini"]; !ok {
		t.Error("default models should survive a partial local config")
	}
}

func TestLocalOverridesGlobal(t *testing.T) {
	dir := isolate(t)

	globalDir := filepath.Join(dir, "config", appDirName)
	if err := os.MkdirAll(globalDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(globalDir, globalFileName), []byte("activeModel: claude-haiku\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, localFileName), []byte("activeModel: gemini-flash\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if cfg.ActiveModel != "gemini-flash" {
		t.Errorf("ActiveModel = %q, want gemini-flash (local beats global)", cfg.ActiveModel)
	}
}

func TestValidation(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name  string
		local string
	}{
		{
			name:  "unknown provider",
			local: "models:\n  bad:\n    provider: cohere\n    name: command\n",
		},
		{
			name:  "active model not configured",
			local: "activeModel: nonexistent\n",
		},
		{
			name:  "bad log level",
			local: "log:\n  logLevel: TRACE\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(filepath.Join(dir, localFileName), []byte(tt.local), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := New(); err == nil {
				t.Error("New() expected a validation error")
			}
		})
	}
}

func TestNewWithOverrides(t *testing.T) {
	isolate(t)

	model := "local"
	temp := 0.2
	noCache := true
	cfg, err := NewWithOverrides(&RuntimeOverrides{
		ActiveModel: &model,
		Temperature: &temp,
		NoCache:     &noCache,
	})
	if err != nil {
		t.Fatalf("NewWithOverrides() error = %v", err)
	}

	if cfg.ActiveModel != "local" {
		t.Errorf("ActiveModel = %q, want local", cfg.ActiveModel)
	}
	active, _ := cfg.Active()
	if active.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", active.Temperature)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled by the override")
	}

	t.Run("unknown model override", func(t *testing.T) {
		bad := "nope"
		if _, err := NewWithOverrides(&RuntimeOverrides{ActiveModel: &bad}); err == nil {
			t.Error("expected an error for an unknown model override")
		}
	})
}

func TestGenerateJSONSchema(t *testing.T) {
	schema, err := GenerateJSONSchema()
	if err != nil {
		t.Fatalf("GenerateJSONSchema() error = %v", err)
	}
	if schema.Title == "" {
		t.Error("schema title is empty")
	}
}
