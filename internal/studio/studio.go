// Package studio owns the state of a speech session: voice and style
// selection, favorites, custom styles, the two generation flows and the
// history of generated clips.
package studio

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"voxtone/internal/catalog"
	"voxtone/internal/speech"
	"voxtone/internal/store"
)

// Mode selects how the instruction prompt is built.
type Mode string

const (
	ModeNormal Mode = "normal"
	// ModeManual appends the manual instruction to the style prompt.
	ModeManual Mode = "manual"
)

// Validation errors, returned before any network call.
var (
	ErrEmptyText      = errors.New("text is empty")
	ErrBusy           = errors.New("generation already in progress")
	ErrBlankStyle     = errors.New("style name and prompt are required")
	ErrDuplicateStyle = errors.New("a style with this name already exists")
	ErrStyleNotFound  = errors.New("style not found")
	ErrNotCustomStyle = errors.New("preset styles cannot be changed")
	ErrUnknownVoice   = errors.New("unknown voice")
)

// Persister receives every mutation of the persisted slices. Save must not
// block for long and reports failures on its own.
type Persister interface {
	Save(key string, value any)
}

// Option configures a Studio.
type Option func(*Studio)

// WithClock replaces time.Now, for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Studio) { s.now = now }
}

// WithHistoryLimit changes how many generations are kept.
func WithHistoryLimit(n int) Option {
	return func(s *Studio) { s.history = NewHistory(n) }
}

// Studio is safe for concurrent use. The two generation flows release the lock
// for the duration of their network call.
type Studio struct {
	synth   speech.Synthesizer
	persist Persister
	log     *log.Logger
	now     func() time.Time

	mu sync.Mutex

	text   string
	manual string
	mode   Mode

	gender    catalog.Gender
	voice     catalog.VoiceName
	styleName string

	customs   []catalog.Style
	favVoices []string
	favStyles []string

	main    flow
	preview flow

	current     *Clip
	previewClip *Clip
	history     *History

	subMu  sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

// New builds a studio over the loaded persisted state.
func New(synth speech.Synthesizer, persist Persister, st store.State, logger *log.Logger, opts ...Option) *Studio {
	s := &Studio{
		synth:     synth,
		persist:   persist,
		log:       logger,
		now:       time.Now,
		mode:      ModeNormal,
		gender:    catalog.Female,
		voice:     catalog.DefaultVoice,
		styleName: catalog.DefaultStyle().Name,
		customs:   slices.Clone(st.CustomStyles),
		favVoices: slices.Clone(st.FavoriteVoices),
		favStyles: slices.Clone(st.FavoriteStyles),
		history:   NewHistory(HistoryLimit),
		subs:      map[int]func(Event){},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reload replaces the persisted slices with st, typically after another
// process changed the store. Nothing is written back.
func (s *Studio) Reload(st store.State) {
	s.mu.Lock()
	s.customs = slices.Clone(st.CustomStyles)
	s.favVoices = slices.Clone(st.FavoriteVoices)
	s.favStyles = slices.Clone(st.FavoriteStyles)
	if _, ok := catalog.FindStyle(s.styleName, s.customs); !ok {
		s.styleName = catalog.DefaultStyle().Name
	}
	s.mu.Unlock()
	s.notify(EventStyles, EventFavorites, EventSelection)
}

// SetText sets the text to read aloud.
func (s *Studio) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
	s.notify(EventForm)
}

// SetManualText sets the manual instruction used in manual mode.
func (s *Studio) SetManualText(text string) {
	s.mu.Lock()
	s.manual = text
	s.mu.Unlock()
	s.notify(EventForm)
}

// SetMode switches between normal and manual generation.
func (s *Studio) SetMode(m Mode) {
	if m != ModeManual {
		m = ModeNormal
	}
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	s.notify(EventForm)
}

// SetGender switches the active voice group. A selected voice outside the new
// group is replaced by the group's first voice.
func (s *Studio) SetGender(g catalog.Gender) {
	s.mu.Lock()
	if g == s.gender {
		s.mu.Unlock()
		return
	}
	s.gender = g
	s.voice = catalog.VoiceForGender(g, s.voice)
	s.mu.Unlock()
	s.notify(EventSelection)
}

// ActiveVoices returns the voices of the active gender.
func (s *Studio) ActiveVoices() []catalog.VoiceName {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Voices(s.gender)
}

// SelectVoice selects v, switching the gender to v's group when needed.
func (s *Studio) SelectVoice(v catalog.VoiceName) error {
	g, ok := catalog.GenderOf(v)
	if !ok {
		return ErrUnknownVoice
	}
	s.mu.Lock()
	s.gender = g
	s.voice = v
	s.mu.Unlock()
	s.notify(EventSelection)
	return nil
}

// SelectStyle selects a preset or custom style by exact name.
func (s *Studio) SelectStyle(name string) error {
	s.mu.Lock()
	if _, ok := catalog.FindStyle(name, s.customs); !ok {
		s.mu.Unlock()
		return ErrStyleNotFound
	}
	s.styleName = name
	s.mu.Unlock()
	s.notify(EventSelection)
	return nil
}

// ToggleFavoriteVoice adds v to the favorite voices or removes it, and reports
// whether it is a favorite afterwards.
func (s *Studio) ToggleFavoriteVoice(v catalog.VoiceName) bool {
	s.mu.Lock()
	var fav bool
	s.favVoices, fav = toggle(s.favVoices, string(v))
	saved := slices.Clone(s.favVoices)
	s.mu.Unlock()

	s.persist.Save(store.KeyFavoriteVoices, saved)
	s.notify(EventFavorites)
	return fav
}

// ToggleFavoriteStyle adds name to the favorite styles or removes it, and
// reports whether it is a favorite afterwards.
func (s *Studio) ToggleFavoriteStyle(name string) bool {
	s.mu.Lock()
	var fav bool
	s.favStyles, fav = toggle(s.favStyles, name)
	saved := slices.Clone(s.favStyles)
	s.mu.Unlock()

	s.persist.Save(store.KeyFavoriteStyles, saved)
	s.notify(EventFavorites)
	return fav
}

func toggle(list []string, item string) ([]string, bool) {
	if i := slices.Index(list, item); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1), false
	}
	return append(slices.Clone(list), item), true
}

// AllStyles returns presets followed by custom styles.
func (s *Studio) AllStyles() []catalog.Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Concat(catalog.Presets(), s.customs)
}

// CustomStyles returns the user's styles.
func (s *Studio) CustomStyles() []catalog.Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.customs)
}
