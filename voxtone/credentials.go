package voxtone

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/zalando/go-keyring"
)

const (
	keyringService = appName
	keyringUser    = "gemini"
	envAPIKey      = "GEMINI_API_KEY"
)

// Credential sources, as reported by "voxtone status".
const (
	sourceConfig  = "config"
	sourceEnv     = "env"
	sourceKeyring = "keyring"
	sourceNone    = "none"
)

func usableKey(k string) bool {
	k = strings.TrimSpace(k)
	return k != "" && k != apiKeyPlaceholder
}

// resolveAPIKey returns the API key and where it came from: the configured
// api_key (file or VOXTONE_API_KEY), then GEMINI_API_KEY, then the OS keyring.
func resolveAPIKey(configured string) (string, string) {
	if usableKey(configured) {
		return strings.TrimSpace(configured), sourceConfig
	}
	if v := os.Getenv(envAPIKey); usableKey(v) {
		return strings.TrimSpace(v), sourceEnv
	}
	v, err := keyring.Get(keyringService, keyringUser)
	switch {
	case err == nil && usableKey(v):
		return strings.TrimSpace(v), sourceKeyring
	case err != nil && !errors.Is(err, keyring.ErrNotFound):
		log.Debug("Keyring lookup failed", "err", err)
	}
	return "", sourceNone
}

func storeKeyringKey(key string) error {
	return keyring.Set(keyringService, keyringUser, strings.TrimSpace(key))
}

func deleteKeyringKey() (bool, error) {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
