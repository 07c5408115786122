package studio

import (
	"slices"

	"voxtone/internal/catalog"
)

// FlowStatus is the observable state of one flow.
type FlowStatus struct {
	State FlowState
	Err   string
}

// Snapshot is a consistent copy of the studio state for rendering.
type Snapshot struct {
	Text       string
	ManualText string
	Mode       Mode

	Gender       catalog.Gender
	Voice        catalog.VoiceName
	ActiveVoices []catalog.VoiceName
	Style        catalog.Style

	CustomStyles   []catalog.Style
	FavoriteVoices []string
	FavoriteStyles []string

	Main    FlowStatus
	Preview FlowStatus

	Current     *Clip
	PreviewClip *Clip
	History     []HistoryItem
}

// VoiceIsFavorite reports whether the selected voice is a favorite.
func (s Snapshot) VoiceIsFavorite() bool {
	return slices.Contains(s.FavoriteVoices, string(s.Voice))
}

// StyleIsFavorite reports whether the selected style is a favorite.
func (s Snapshot) StyleIsFavorite() bool {
	return slices.Contains(s.FavoriteStyles, s.Style.Name)
}

// Snapshot returns the current state.
func (s *Studio) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	style, ok := catalog.FindStyle(s.styleName, s.customs)
	if !ok {
		style = catalog.DefaultStyle()
	}
	return Snapshot{
		Text:           s.text,
		ManualText:     s.manual,
		Mode:           s.mode,
		Gender:         s.gender,
		Voice:          s.voice,
		ActiveVoices:   catalog.Voices(s.gender),
		Style:          style,
		CustomStyles:   slices.Clone(s.customs),
		FavoriteVoices: slices.Clone(s.favVoices),
		FavoriteStyles: slices.Clone(s.favStyles),
		Main:           FlowStatus{State: s.main.state, Err: s.main.err},
		Preview:        FlowStatus{State: s.preview.state, Err: s.preview.err},
		Current:        s.current,
		PreviewClip:    s.previewClip,
		History:        s.history.Items(),
	}
}
