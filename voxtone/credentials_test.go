package voxtone

import (
	"testing"

	"github.com/zalando/go-keyring"
)

func TestResolveAPIKey(t *testing.T) {
	keyring.MockInit()
	t.Setenv(envAPIKey, "")

	if key, src := resolveAPIKey(""); key != "" || src != sourceNone {
		t.Fatalf("no key: got %q from %s", key, src)
	}
	if key, src := resolveAPIKey(apiKeyPlaceholder); key != "" || src != sourceNone {
		t.Fatalf("placeholder accepted: got %q from %s", key, src)
	}

	if err := storeKeyringKey("  from-keyring \n"); err != nil {
		t.Fatal(err)
	}
	if key, src := resolveAPIKey(""); key != "from-keyring" || src != sourceKeyring {
		t.Fatalf("keyring: got %q from %s", key, src)
	}

	t.Setenv(envAPIKey, "from-env")
	if key, src := resolveAPIKey(""); key != "from-env" || src != sourceEnv {
		t.Fatalf("env: got %q from %s", key, src)
	}
	if key, src := resolveAPIKey(" from-config "); key != "from-config" || src != sourceConfig {
		t.Fatalf("config: got %q from %s", key, src)
	}
}

func TestDeleteKeyringKey(t *testing.T) {
	keyring.MockInit()

	removed, err := deleteKeyringKey()
	if err != nil || removed {
		t.Fatalf("delete without key = %v, %v; want false, nil", removed, err)
	}
	if err := storeKeyringKey("k"); err != nil {
		t.Fatal(err)
	}
	removed, err = deleteKeyringKey()
	if err != nil || !removed {
		t.Fatalf("delete = %v, %v; want true, nil", removed, err)
	}
}

func TestMaskKey(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"abc":          "•••",
		"AIzaSyABCDEF": "••••••••CDEF",
	}
	for in, want := range tests {
		if got := maskKey(in); got != want {
			t.Errorf("maskKey(%q) = %q, want %q", in, got, want)
		}
	}
}
