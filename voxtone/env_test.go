package voxtone

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/joho/godotenv"
)

func TestResolveEnvPath(t *testing.T) {
	t.Setenv("VOXTONE_ENV", "")
	if got := resolveEnvPath("custom.env", "/etc/voxtone/voxtone.yml"); got != "custom.env" {
		t.Fatalf("flag not preferred: %q", got)
	}
	if got := resolveEnvPath("", "/etc/voxtone/voxtone.yml"); got != filepath.Join("/etc/voxtone", ".env") {
		t.Fatalf("config dir not used: %q", got)
	}
	if got := resolveEnvPath("", ""); got != ".env" {
		t.Fatalf("fallback = %q, want .env", got)
	}

	t.Setenv("VOXTONE_ENV", "/run/voxtone.env")
	if got := resolveEnvPath("", "/etc/voxtone/voxtone.yml"); got != "/run/voxtone.env" {
		t.Fatalf("VOXTONE_ENV not used: %q", got)
	}
}

func TestSetAndUnsetDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".env")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("OTHER=keep\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := setDotEnv(path, envAPIKey, "secret"); err != nil {
		t.Fatalf("setDotEnv: %v", err)
	}
	got, err := godotenv.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"OTHER": "keep", envAPIKey: "secret"}, got); diff != "" {
		t.Fatalf(".env (-want +got):\n%s", diff)
	}
	if info, err := os.Stat(path); err != nil || info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, %v; want 0600", info.Mode().Perm(), err)
	}

	removed, err := unsetDotEnv(path, envAPIKey)
	if err != nil || !removed {
		t.Fatalf("unsetDotEnv = %v, %v", removed, err)
	}
	removed, err = unsetDotEnv(path, envAPIKey)
	if err != nil || removed {
		t.Fatalf("second unsetDotEnv = %v, %v; want false, nil", removed, err)
	}
	got, _ = godotenv.Read(path)
	if diff := cmp.Diff(map[string]string{"OTHER": "keep"}, got); diff != "" {
		t.Fatalf(".env after unset (-want +got):\n%s", diff)
	}
}

func TestDotEnvMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv(missing) = %v", err)
	}
	if removed, err := unsetDotEnv(path, envAPIKey); err != nil || removed {
		t.Fatalf("unsetDotEnv(missing) = %v, %v", removed, err)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("VOXTONE_TEST_A=file\nVOXTONE_TEST_B=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VOXTONE_TEST_A", "process")
	t.Setenv("VOXTONE_TEST_B", "")
	os.Unsetenv("VOXTONE_TEST_B")

	if err := loadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("VOXTONE_TEST_A"); got != "process" {
		t.Fatalf("VOXTONE_TEST_A = %q, want process", got)
	}
	if got := os.Getenv("VOXTONE_TEST_B"); got != "file" {
		t.Fatalf("VOXTONE_TEST_B = %q, want file", got)
	}
}
