package voxtone

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestLogFileRotatesToBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "voxtone.log")
	lf, err := openLogFile(path, 16)
	if err != nil {
		t.Fatal(err)
	}
	defer lf.Close()

	for _, line := range []string{"0123456789", "abcdefghij", "ABCDEFGHIJ"} {
		if _, err := lf.Write([]byte(line)); err != nil {
			t.Fatal(err)
		}
	}
	if got := readFile(t, path); got != "ABCDEFGHIJ" {
		t.Fatalf("log = %q, want the last write", got)
	}
	if got := readFile(t, path+".1"); got != "abcdefghij" {
		t.Fatalf("backup = %q, want the previous write only", got)
	}

	if err := lf.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := lf.Write([]byte("x")); !errors.Is(err, errLogClosed) {
		t.Fatalf("write after close: err = %v, want %v", err, errLogClosed)
	}
}

func TestLogFileOversizedWriteIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxtone.log")
	lf, err := openLogFile(path, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer lf.Close()

	if _, err := lf.Write([]byte("longer than the limit")); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "longer than the limit" {
		t.Fatalf("log = %q", got)
	}
	if _, err := os.Stat(path + ".1"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("unexpected backup, stat err = %v", err)
	}
}

func TestLogFileRotatesOversizedFileOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxtone.log")
	old := strings.Repeat("x", 32)
	if err := os.WriteFile(path, []byte(old), 0o644); err != nil {
		t.Fatal(err)
	}
	lf, err := openLogFile(path, 16)
	if err != nil {
		t.Fatal(err)
	}
	defer lf.Close()

	if got := readFile(t, path); got != "" {
		t.Fatalf("log = %q, want a fresh file", got)
	}
	if got := readFile(t, path+".1"); got != old {
		t.Fatalf("backup = %q, want the old contents", got)
	}
}

func TestSetupLogLevels(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	var buf bytes.Buffer
	closer, err := setupLog("", log.WarnLevel, &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closer()

	log.Info("hidden")
	log.Warn("shown", "key", "value")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestSetupLogToFile(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "voxtone.log")
	var buf bytes.Buffer
	closer, err := setupLog(path, log.DebugLevel, &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("to file")
	if err := closer(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("out received %q, want nothing", buf.String())
	}
	if got := readFile(t, path); !strings.Contains(got, `msg="to file"`) {
		t.Fatalf("log file = %q, want logfmt output", got)
	}
}
