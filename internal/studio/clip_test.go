package studio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"voxtone/internal/wav"
)

func TestClipSaveTo(t *testing.T) {
	data, err := wav.Encode(make([]byte, wav.SampleRate), wav.SampleRate)
	if err != nil {
		t.Fatal(err)
	}
	c := &Clip{
		ID:        "1714564800000",
		Voice:     "Puck",
		WAV:       data,
		CreatedAt: time.UnixMilli(1714564800000),
	}
	if c.Filename() != "speech-Puck-1714564800000.wav" {
		t.Fatalf("unexpected filename %s", c.Filename())
	}
	if c.Duration() != 500*time.Millisecond {
		t.Fatalf("unexpected duration %s", c.Duration())
	}

	dir := filepath.Join(t.TempDir(), "out")
	path, err := c.SaveTo(dir)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != filepath.Join(dir, c.Filename()) {
		t.Fatalf("unexpected path %s", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("saved file differs from clip")
	}
}

func TestHistoryPushEvicts(t *testing.T) {
	h := NewHistory(2)
	h.Push(HistoryItem{ID: "1"})
	h.Push(HistoryItem{ID: "2"})
	h.Push(HistoryItem{ID: "3"})
	items := h.Items()
	if h.Len() != 2 || items[0].ID != "3" || items[1].ID != "2" {
		t.Fatalf("unexpected items %+v", items)
	}
}
