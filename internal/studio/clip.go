package studio

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"voxtone/internal/catalog"
	"voxtone/internal/wav"
)

// Clip is one generated WAV file held in memory for the session.
type Clip struct {
	ID        string
	Voice     catalog.VoiceName
	WAV       []byte
	CreatedAt time.Time
}

// Filename is the download name of the clip: speech-{voice}-{unixMillis}.wav.
func (c *Clip) Filename() string {
	return fmt.Sprintf("speech-%s-%d.wav", c.Voice, c.CreatedAt.UnixMilli())
}

// Size returns the encoded size in bytes.
func (c *Clip) Size() int {
	return len(c.WAV)
}

// Duration returns the playback length.
func (c *Clip) Duration() time.Duration {
	secs, err := wav.Duration(c.WAV)
	if err != nil {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// SaveTo writes the clip into dir under its download name and returns the path.
func (c *Clip) SaveTo(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, c.Filename())
	if err := os.WriteFile(path, c.WAV, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
