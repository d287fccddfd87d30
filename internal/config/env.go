package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment. A missing file is fine; the real environment still applies.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// ApplyEnv overlays environment overrides on cfg. Only non-secret settings
// live here; API keys are resolved by the secrets package.
func ApplyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("MODEL_NAME")); v != "" {
		cfg.LLM.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("JOBINSIGHT_DATA_PATH")); v != "" {
		cfg.Data.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("JOBINSIGHT_ENV")); v != "" {
		cfg.App.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("JOBINSIGHT_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid JOBINSIGHT_PORT %q: %w", v, err)
		}
		cfg.App.Port = port
	}
	return nil
}
