package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserConfigName is the file EnsureUserConfig manages inside the data dir.
const UserConfigName = "config.yml"

// EnsureUserConfig returns the path of the user's config.yml inside dataDir.
// On first run it seeds the file from defaultPath, or from Default() when that
// file is missing. A default file that does not parse is an error rather than
// a silently broken user config.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, UserConfigName)

	if _, err := os.Stat(userPath); err == nil {
		return userPath, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	seed, err := defaultConfigBytes(defaultPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}

	tmp := userPath + ".tmp"
	if err := os.WriteFile(tmp, seed, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, userPath); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return userPath, nil
}

func defaultConfigBytes(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return yaml.Marshal(Default())
	}
	if err != nil {
		return nil, err
	}
	var parsed Config
	if err := yaml.Unmarshal(b, &parsed); err != nil {
		return nil, fmt.Errorf("default config %s: %w", path, err)
	}
	return b, nil
}
