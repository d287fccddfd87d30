package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app's secrets in the OS keychain.
	KeyringService = "jobinsight"
)

// Secret names one credential: where it sits in the keychain and which
// environment variable can stand in for it.
type Secret struct {
	Account string
	EnvVar  string
}

var (
	DatasetToken = Secret{Account: "jobinsight:dataset:api_token", EnvVar: "API_TOKEN"}
	GoogleAPIKey = Secret{Account: "jobinsight:llm:google_api_key", EnvVar: "GOOGLE_API_KEY"}
)

var ErrNotFound = errors.New("secret not found")

// Get resolves a secret from the keychain first, then the environment.
func Get(s Secret) (string, error) {
	if strings.TrimSpace(s.Account) != "" {
		v, err := keyring.Get(KeyringService, s.Account)
		if err == nil && strings.TrimSpace(v) != "" {
			return v, nil
		}
	}
	if v := strings.TrimSpace(os.Getenv(s.EnvVar)); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s: %w (set it in keychain or via %s)", s.Account, ErrNotFound, s.EnvVar)
}

func Set(s Secret, value string) error {
	if strings.TrimSpace(s.Account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, s.Account, value)
}

func Delete(s Secret) error {
	if strings.TrimSpace(s.Account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, s.Account)
}

// ByName maps CLI names to secrets.
func ByName(name string) (Secret, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dataset", "api_token":
		return DatasetToken, true
	case "google", "google_api_key", "llm":
		return GoogleAPIKey, true
	default:
		return Secret{}, false
	}
}
