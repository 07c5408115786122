package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"voxtone/internal/studio"
)

const statusMessageTimeout = 3 * time.Second

type generatedMsg struct {
	clip *studio.Clip
	err  error
}

type previewedMsg struct {
	clip *studio.Clip
	err  error
}

type savedMsg struct {
	path string
	err  error
}

type copiedMsg struct {
	path string
	err  error
}

type playedMsg struct {
	seq int
	err error
}

type (
	studioEventMsg   studio.Event
	storeChangedMsg  struct{ key string }
	watchStoppedMsg  struct{ err error }
	statusTimeoutMsg struct{ seq int }
)

func generateCmd(ctx context.Context, s *studio.Studio) tea.Cmd {
	return func() tea.Msg {
		clip, err := s.Generate(ctx)
		return generatedMsg{clip: clip, err: err}
	}
}

func previewCmd(ctx context.Context, s *studio.Studio) tea.Cmd {
	return func() tea.Msg {
		clip, err := s.Preview(ctx)
		return previewedMsg{clip: clip, err: err}
	}
}

func playCmd(p Player, data []byte, seq int) tea.Cmd {
	return func() tea.Msg {
		return playedMsg{seq: seq, err: p.Play(data)}
	}
}

func saveCmd(clip *studio.Clip, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := clip.SaveTo(dir)
		return savedMsg{path: path, err: err}
	}
}

func copyCmd(copyFn func(string) error, path string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{path: path, err: copyFn(path)}
	}
}

// waitForEvent forwards the next studio notification.
func waitForEvent(ch <-chan studio.Event) tea.Cmd {
	return func() tea.Msg {
		return studioEventMsg(<-ch)
	}
}

func watchCmd(ctx context.Context, w Watcher) tea.Cmd {
	return func() tea.Msg {
		key, err := w.Next(ctx)
		if err != nil {
			return watchStoppedMsg{err: err}
		}
		return storeChangedMsg{key: key}
	}
}

func statusTimeoutCmd(seq int) tea.Cmd {
	return tea.Tick(statusMessageTimeout, func(time.Time) tea.Msg {
		return statusTimeoutMsg{seq: seq}
	})
}
