package voxtone

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// resolveEnvPath picks the .env file: the --env flag, then VOXTONE_ENV, then
// .env next to the config file.
func resolveEnvPath(flagVal, configPath string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := os.Getenv("VOXTONE_ENV"); v != "" {
		return v
	}
	dir := strings.TrimSpace(filepath.Dir(configPath))
	if configPath == "" || dir == "" || dir == "." {
		return ".env"
	}
	return filepath.Join(dir, ".env")
}

// loadDotEnv exports the variables of path that are not already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDotEnv stores key=value in path, keeping the other entries.
func setDotEnv(path, key, value string) error {
	existing, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		existing = map[string]string{}
	}
	existing[key] = value

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := godotenv.Write(existing, path); err != nil {
		return err
	}
	return os.Chmod(path, 0o600)
}

// unsetDotEnv removes key from path if present.
func unsetDotEnv(path, key string) (bool, error) {
	existing, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if _, ok := existing[key]; !ok {
		return false, nil
	}
	delete(existing, key)
	return true, godotenv.Write(existing, path)
}
