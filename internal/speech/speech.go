// Package speech turns text into raw PCM audio through the Gemini speech
// models.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"voxtone/internal/catalog"
)

var (
	// ErrMissingAPIKey is returned by every call when no credential is configured.
	ErrMissingAPIKey = errors.New("API key is missing")
	// ErrNoAudio means the upstream answered without usable audio.
	ErrNoAudio = errors.New("no audio data received")
)

// BlockedError is returned when the upstream safety filter refused the prompt.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return "generation blocked by safety settings: " + e.Reason
}

// Request is one synthesis call: the text to read, the voice, and the style
// instruction placed ahead of it.
type Request struct {
	Text   string
	Voice  catalog.VoiceName
	Prompt string
}

// Synthesizer produces signed 16-bit little-endian mono PCM at wav.SampleRate.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) ([]byte, error)
}

// SynthesizerFunc adapts a function to Synthesizer.
type SynthesizerFunc func(ctx context.Context, req Request) ([]byte, error)

func (f SynthesizerFunc) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	return f(ctx, req)
}

// ComposePrompt places the style instruction ahead of the text. The model
// rejects system instructions together with audio output, so both travel in
// the same content part.
func ComposePrompt(stylePrompt, text string) string {
	return strings.TrimSpace(fmt.Sprintf(
		"%s\n\nDo not read the instructions above.\nRead the following text aloud:\n\n%s",
		stylePrompt, text,
	))
}
