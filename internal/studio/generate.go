package studio

import (
	"context"
	"strconv"
	"strings"

	"voxtone/internal/catalog"
	"voxtone/internal/speech"
	"voxtone/internal/wav"
)

// FlowState is the lifecycle of one generation flow.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowPending
	FlowSucceeded
	FlowFailed
)

func (f FlowState) String() string {
	switch f {
	case FlowIdle:
		return "idle"
	case FlowPending:
		return "pending"
	case FlowSucceeded:
		return "succeeded"
	case FlowFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	fallbackMainError    = "failed to generate audio"
	fallbackPreviewError = "failed to generate preview"
)

type flow struct {
	state FlowState
	err   string
}

// basePrompt resolves the selected style's prompt, falling back to the first
// preset. Callers hold s.mu.
func (s *Studio) basePrompt() string {
	if st, ok := catalog.FindStyle(s.styleName, s.customs); ok {
		return st.Prompt
	}
	return catalog.DefaultStyle().Prompt
}

// mainPrompt is basePrompt plus the manual instruction in manual mode.
// Callers hold s.mu.
func (s *Studio) mainPrompt() string {
	base := s.basePrompt()
	if s.mode == ModeManual {
		if manual := strings.TrimSpace(s.manual); manual != "" {
			return base + "\n\n" + manual
		}
	}
	return base
}

// Prompts returns the instruction the next main and preview generations would
// send.
func (s *Studio) Prompts() (main, preview string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mainPrompt(), s.basePrompt()
}

// CanGenerate reports whether a main generation may start now.
func (s *Studio) CanGenerate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.main.state != FlowPending && strings.TrimSpace(s.text) != ""
}

// CanPreview reports whether a preview may start now.
func (s *Studio) CanPreview() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview.state != FlowPending
}

// Generate synthesizes the current text with the selected voice and style. On
// success the clip becomes the current clip and is added to the history; on
// failure the flow records the error and earlier clips stay in place.
func (s *Studio) Generate(ctx context.Context) (*Clip, error) {
	s.mu.Lock()
	if s.main.state == FlowPending {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if strings.TrimSpace(s.text) == "" {
		s.mu.Unlock()
		return nil, ErrEmptyText
	}
	req := speech.Request{Text: s.text, Voice: s.voice, Prompt: s.mainPrompt()}
	item := HistoryItem{
		Text:      s.text,
		Voice:     s.voice,
		StyleName: s.styleName,
		Mode:      s.mode,
	}
	if s.mode == ModeManual {
		item.PromptText = s.manual
	}
	s.main = flow{state: FlowPending}
	s.mu.Unlock()
	s.notify(EventFlow)

	s.log.Debug("Main generation started", "voice", req.Voice, "style", item.StyleName, "mode", item.Mode)
	clip, err := s.synthesize(ctx, req)

	s.mu.Lock()
	if err != nil {
		s.main = flow{state: FlowFailed, err: errorMessage(err, fallbackMainError)}
		s.mu.Unlock()
		s.log.Warn("Main generation failed", "err", err)
		s.notify(EventFlow)
		return nil, err
	}
	s.main = flow{state: FlowSucceeded}
	s.current = clip
	item.ID = clip.ID
	item.Clip = clip
	item.CreatedAt = clip.CreatedAt
	s.history.Push(item)
	s.mu.Unlock()

	s.notify(EventFlow, EventHistory)
	return clip, nil
}

// Preview reads the canned preview sentence with the selected voice and the
// base style prompt; the manual instruction never applies. The previous
// preview clip is dropped when the flow starts.
func (s *Studio) Preview(ctx context.Context) (*Clip, error) {
	s.mu.Lock()
	if s.preview.state == FlowPending {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	req := speech.Request{Text: catalog.PreviewText, Voice: s.voice, Prompt: s.basePrompt()}
	s.preview = flow{state: FlowPending}
	s.previewClip = nil
	s.mu.Unlock()
	s.notify(EventFlow)

	clip, err := s.synthesize(ctx, req)

	s.mu.Lock()
	if err != nil {
		s.preview = flow{state: FlowFailed, err: errorMessage(err, fallbackPreviewError)}
		s.mu.Unlock()
		s.log.Warn("Preview generation failed", "err", err)
		s.notify(EventFlow)
		return nil, err
	}
	s.preview = flow{state: FlowSucceeded}
	s.previewClip = clip
	s.mu.Unlock()

	s.notify(EventFlow)
	return clip, nil
}

func (s *Studio) synthesize(ctx context.Context, req speech.Request) (*Clip, error) {
	pcm, err := s.synth.Synthesize(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := wav.Encode(pcm, wav.SampleRate)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &Clip{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Voice:     req.Voice,
		WAV:       data,
		CreatedAt: now,
	}, nil
}

func errorMessage(err error, fallback string) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
