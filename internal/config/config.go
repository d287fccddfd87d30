// internal/config/config.go
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port     int    `yaml:"port" json:"port"`
		DataDir  string `yaml:"data_dir" json:"data_dir"`
		Env      string `yaml:"env" json:"env"`
		LogLevel string `yaml:"log_level" json:"log_level"`
	} `yaml:"app" json:"app"`

	Data struct {
		Path string `yaml:"path" json:"path"`
	} `yaml:"data" json:"data"`

	Collect struct {
		APIURL         string   `yaml:"api_url" json:"api_url"`
		SnapshotIDs    []string `yaml:"snapshot_ids,omitempty" json:"snapshot_ids"`
		Format         string   `yaml:"format" json:"format"`
		RefreshMinutes int      `yaml:"refresh_minutes" json:"refresh_minutes"`
		ReqPerSec      float64  `yaml:"req_per_sec" json:"req_per_sec"`
		Burst          int      `yaml:"burst" json:"burst"`
		TimeoutSeconds int      `yaml:"timeout_seconds" json:"timeout_seconds"`
	} `yaml:"collect" json:"collect"`

	LLM LLMConfig `yaml:"llm" json:"llm"`
}

// LLMConfig carries the generation settings. The API key never lives in the
// YAML file; it is resolved through the secrets package.
type LLMConfig struct {
	Model           string  `yaml:"model" json:"model"`
	Temperature     float64 `yaml:"temperature" json:"temperature"`
	TopP            float64 `yaml:"top_p" json:"top_p"`
	TopK            int     `yaml:"top_k" json:"top_k"`
	MaxOutputTokens int     `yaml:"max_output_tokens" json:"max_output_tokens"`
	SystemPrompt    string  `yaml:"system_prompt" json:"system_prompt"`
}

// Default mirrors config/config.yml so a missing file still gives a runnable
// configuration.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.App.DataDir = "."
	cfg.App.Env = "production"
	cfg.App.LogLevel = "info"
	cfg.Data.Path = "data.json"
	cfg.Collect.APIURL = "https://api.brightdata.com/datasets/v3/snapshot"
	cfg.Collect.Format = "json"
	cfg.Collect.ReqPerSec = 1.0
	cfg.Collect.Burst = 2
	cfg.Collect.TimeoutSeconds = 120
	cfg.LLM = LLMConfig{
		Temperature:     1,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 8192,
	}
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// DataFile resolves data.path. Relative paths sit under app.data_dir, and a
// relative data_dir sits under root (the directory holding the user config).
func (c Config) DataFile(root string) string {
	if filepath.IsAbs(c.Data.Path) {
		return c.Data.Path
	}
	dir := c.App.DataDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return filepath.Join(dir, c.Data.Path)
}
