package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadEnv loads API keys and other secrets from a .env file when one
// exists. Provider clients read the keys (OPENAI_API_KEY,
// ANTHROPIC_API_KEY, GEMINI_API_KEY) straight from the environment.
func loadEnv() {
	if err := godotenv.Load(); err == nil {
		return
	}
	if home, err := os.UserHomeDir(); err == nil {
		godotenv.Load(filepath.Join(home, ".nbcoach.env"))
	}
}
