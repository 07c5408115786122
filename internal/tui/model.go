// Package tui is the interactive speech studio.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"voxtone/internal/catalog"
	"voxtone/internal/store"
	"voxtone/internal/studio"
)

var errNothingToSay = errors.New("type some text first")

// Player plays WAV clips.
type Player interface {
	Play(data []byte) error
	Stop()
}

// Watcher reports changes made to the store by other processes.
type Watcher interface {
	Next(ctx context.Context) (string, error)
}

// Options wires the studio UI to its collaborators. Any of them may be nil.
type Options struct {
	Config Config
	// NewPlayer opens the audio device on first playback.
	NewPlayer func() (Player, error)
	Load      func() store.State
	Watcher   Watcher
	Clipboard func(string) error
}

type pane int

const (
	paneText pane = iota
	paneManual
	paneVoices
	paneStyles
	paneHistory
)

func (p pane) String() string {
	return map[pane]string{
		paneText:    "Text",
		paneManual:  "Manual instruction",
		paneVoices:  "Voice",
		paneStyles:  "Style",
		paneHistory: "History",
	}[p]
}

type model struct {
	ctx    context.Context
	studio *studio.Studio
	opts   Options
	log    *log.Logger

	keys   keyMap
	help   help.Model
	spin   spinner.Model
	text   textarea.Model
	manual textarea.Model

	pane       pane
	historyIdx int
	editor     *styleEditor
	confirm    *catalog.Style

	snap studio.Snapshot

	// set from the key press until the flow's result arrives
	mainPending    bool
	previewPending bool

	player    Player
	playSeq   int
	playing   bool
	lastSaved string

	status    string
	statusErr bool
	statusSeq int

	width  int
	height int

	events      chan studio.Event
	unsubscribe func()
}

func newModel(ctx context.Context, s *studio.Studio, opts Options, logger *log.Logger) model {
	snap := s.Snapshot()

	text := textarea.New()
	text.Placeholder = "Text to read aloud…"
	text.ShowLineNumbers = false
	text.CharLimit = 10000
	text.SetHeight(5)
	text.SetValue(snap.Text)
	text.Focus()

	manual := textarea.New()
	manual.Placeholder = "Pronunciation fix, e.g. ударение на О"
	manual.ShowLineNumbers = false
	manual.CharLimit = 2000
	manual.SetHeight(2)
	manual.SetValue(snap.ManualText)

	events := make(chan studio.Event, 1)
	unsubscribe := s.Subscribe(func(e studio.Event) {
		select {
		case events <- e:
		default:
		}
	})

	m := model{
		ctx:         ctx,
		studio:      s,
		opts:        opts,
		log:         logger,
		keys:        newKeyMap(),
		help:        help.New(),
		spin:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		text:        text,
		manual:      manual,
		pane:        paneText,
		snap:        snap,
		events:      events,
		unsubscribe: unsubscribe,
	}
	m.resize(80, 24)
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, waitForEvent(m.events)}
	if m.opts.Watcher != nil {
		cmds = append(cmds, watchCmd(m.ctx, m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case studioEventMsg:
		m.refresh()
		return m, waitForEvent(m.events)

	case storeChangedMsg:
		m.log.Debug("Store changed on disk", "key", msg.key)
		if m.opts.Load != nil {
			m.studio.Reload(m.opts.Load())
		}
		m.refresh()
		if m.opts.Watcher == nil {
			return m, nil
		}
		return m, watchCmd(m.ctx, m.opts.Watcher)

	case watchStoppedMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.log.Warn("Stopped watching the store", "err", msg.err)
		}
		return m, nil

	case generatedMsg:
		m.mainPending = false
		m.refresh()
		if msg.err != nil {
			return m, m.setError(msg.err)
		}
		m.historyIdx = 0
		return m, tea.Batch(m.setStatus("Generated "+describeClip(msg.clip)), m.play(msg.clip))

	case previewedMsg:
		m.previewPending = false
		m.refresh()
		if msg.err != nil {
			return m, m.setError(msg.err)
		}
		return m, m.play(msg.clip)

	case playedMsg:
		if msg.seq == m.playSeq {
			m.playing = false
		}
		if msg.err != nil {
			return m, m.setError(msg.err)
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			return m, m.setError(fmt.Errorf("save clip: %w", msg.err))
		}
		m.lastSaved = msg.path
		return m, m.setStatus("Saved " + msg.path)

	case copiedMsg:
		if msg.err != nil {
			return m, m.setError(fmt.Errorf("copy to clipboard: %w", msg.err))
		}
		return m, m.setStatus("Copied " + msg.path)

	case statusTimeoutMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
		case tea.MouseButtonWheelDown:
			return m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	m.refresh()
	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	if m.editor != nil {
		return m.updateEditor(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NextPane):
		return m, m.focusPane(m.cyclePane(1))
	case key.Matches(msg, m.keys.PrevPane):
		return m, m.focusPane(m.cyclePane(-1))
	case key.Matches(msg, m.keys.Generate):
		return m, m.startGenerate()
	case key.Matches(msg, m.keys.Preview):
		return m, m.startPreview()
	case key.Matches(msg, m.keys.ToggleMode):
		return m, m.toggleMode()
	case key.Matches(msg, m.keys.Save):
		return m, m.saveSelected()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copySaved()
	case key.Matches(msg, m.keys.Replay):
		return m, m.play(m.snap.Current)
	case key.Matches(msg, m.keys.Stop):
		m.stopPlayback()
		return m, nil
	}

	switch m.pane {
	case paneVoices:
		return m.updateVoices(msg)
	case paneStyles:
		return m.updateStyles(msg)
	case paneHistory:
		return m.updateHistory(msg)
	}
	return m.updateInputs(msg)
}

// updateInputs forwards msg to the focused text area and mirrors edits into
// the studio.
func (m model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.pane {
	case paneText:
		before := m.text.Value()
		m.text, cmd = m.text.Update(msg)
		if v := m.text.Value(); v != before {
			m.studio.SetText(v)
		}
	case paneManual:
		before := m.manual.Value()
		m.manual, cmd = m.manual.Update(msg)
		if v := m.manual.Value(); v != before {
			m.studio.SetManualText(v)
		}
	case paneStyles:
		if m.editor != nil {
			cmd = m.editor.update(msg)
		}
	}
	return m, cmd
}

func (m model) updateVoices(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Up):
		m.stepVoice(-1)
	case key.Matches(msg, m.keys.Down):
		m.stepVoice(1)
	case key.Matches(msg, m.keys.Gender):
		next := catalog.Male
		if m.snap.Gender == catalog.Male {
			next = catalog.Female
		}
		m.studio.SetGender(next)
	case key.Matches(msg, m.keys.Favorite):
		if m.studio.ToggleFavoriteVoice(m.snap.Voice) {
			cmd = m.setStatus(string(m.snap.Voice) + " added to favorites")
		} else {
			cmd = m.setStatus(string(m.snap.Voice) + " removed from favorites")
		}
	case key.Matches(msg, m.keys.NextFav):
		if v, ok := nextFavorite(m.snap.FavoriteVoices, string(m.snap.Voice), nil); ok {
			_ = m.studio.SelectVoice(catalog.VoiceName(v))
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.refresh()
	return m, cmd
}

func (m *model) stepVoice(delta int) {
	voices := m.snap.ActiveVoices
	if len(voices) == 0 {
		return
	}
	i := slices.Index(voices, m.snap.Voice)
	i = (i + delta + len(voices)) % len(voices)
	_ = m.studio.SelectVoice(voices[i])
}

func (m model) updateStyles(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	current := m.snap.Style
	switch {
	case key.Matches(msg, m.keys.Up):
		m.stepStyle(-1)
	case key.Matches(msg, m.keys.Down):
		m.stepStyle(1)
	case key.Matches(msg, m.keys.Favorite):
		if m.studio.ToggleFavoriteStyle(current.Name) {
			cmd = m.setStatus(current.Name + " added to favorites")
		} else {
			cmd = m.setStatus(current.Name + " removed from favorites")
		}
	case key.Matches(msg, m.keys.NextFav):
		known := func(name string) bool {
			_, ok := catalog.FindStyle(name, m.snap.CustomStyles)
			return ok
		}
		if name, ok := nextFavorite(m.snap.FavoriteStyles, current.Name, known); ok {
			_ = m.studio.SelectStyle(name)
		}
	case key.Matches(msg, m.keys.NewStyle):
		m.editor = newStyleEditor(catalog.Style{}, m.width)
		return m, m.editor.focusField(false)
	case key.Matches(msg, m.keys.EditStyle):
		if catalog.IsPreset(current.Name) {
			return m, m.setError(studio.ErrNotCustomStyle)
		}
		m.editor = newStyleEditor(current, m.width)
		return m, m.editor.focusField(false)
	case key.Matches(msg, m.keys.DelStyle):
		if catalog.IsPreset(current.Name) {
			return m, m.setError(studio.ErrNotCustomStyle)
		}
		m.confirm = &current
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.refresh()
	return m, cmd
}

func (m *model) stepStyle(delta int) {
	styles := m.styleList()
	i := slices.IndexFunc(styles, func(s catalog.Style) bool { return s.Name == m.snap.Style.Name })
	i = (i + delta + len(styles)) % len(styles)
	_ = m.studio.SelectStyle(styles[i].Name)
}

func (m model) styleList() []catalog.Style {
	return slices.Concat(catalog.Presets(), m.snap.CustomStyles)
}

func (m model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.snap.History)
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.historyIdx > 0 {
			m.historyIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.historyIdx < n-1 {
			m.historyIdx++
		}
	case key.Matches(msg, m.keys.Play):
		if item, ok := m.selectedHistory(); ok {
			return m, m.play(item.Clip)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m model) selectedHistory() (studio.HistoryItem, bool) {
	if m.historyIdx < 0 || m.historyIdx >= len(m.snap.History) {
		return studio.HistoryItem{}, false
	}
	return m.snap.History[m.historyIdx], true
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := *m.confirm
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.confirm = nil
		deleted, err := m.studio.DeleteStyle(target.ID, func(catalog.Style) bool { return true })
		m.refresh()
		if err != nil {
			return m, m.setError(err)
		}
		if deleted {
			return m, m.setStatus("Deleted style " + target.Name)
		}
	case key.Matches(msg, m.keys.Cancel):
		m.confirm = nil
	}
	return m, nil
}

func (m model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.editor
	switch {
	case key.Matches(msg, m.keys.Stop):
		m.editor = nil
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		st, err := m.studio.SaveStyle(e.id, e.name.Value(), e.prompt.Value())
		if err != nil {
			e.err = err.Error()
			return m, nil
		}
		m.editor = nil
		m.refresh()
		return m, m.setStatus("Saved style " + st.Name)
	case key.Matches(msg, m.keys.NextPane), key.Matches(msg, m.keys.PrevPane):
		return m, e.focusField(!e.onPrompt)
	}
	return m, e.update(msg)
}

func (m *model) startGenerate() tea.Cmd {
	if m.mainPending {
		return nil
	}
	if !m.studio.CanGenerate() {
		if isBlank(m.text.Value()) {
			return m.setError(errNothingToSay)
		}
		return nil
	}
	m.mainPending = true
	m.snap.Main.State = studio.FlowPending
	return tea.Batch(generateCmd(m.ctx, m.studio), m.spin.Tick)
}

func (m *model) startPreview() tea.Cmd {
	if m.previewPending || !m.studio.CanPreview() {
		return nil
	}
	m.previewPending = true
	m.snap.Preview.State = studio.FlowPending
	return tea.Batch(previewCmd(m.ctx, m.studio), m.spin.Tick)
}

func (m *model) toggleMode() tea.Cmd {
	if m.snap.Mode == studio.ModeManual {
		m.studio.SetMode(studio.ModeNormal)
	} else {
		m.studio.SetMode(studio.ModeManual)
	}
	m.refresh()
	if m.snap.Mode == studio.ModeManual {
		return m.focusPane(paneManual)
	}
	if m.pane == paneManual {
		return m.focusPane(paneText)
	}
	return nil
}

// saveSelected writes the highlighted history clip when the history pane is
// focused, and the current clip otherwise.
func (m *model) saveSelected() tea.Cmd {
	clip := m.snap.Current
	if m.pane == paneHistory {
		if item, ok := m.selectedHistory(); ok {
			clip = item.Clip
		}
	}
	if clip == nil {
		return m.setError(errors.New("nothing to save yet"))
	}
	return saveCmd(clip, m.opts.Config.OutputDir)
}

func (m *model) copySaved() tea.Cmd {
	if m.lastSaved == "" || m.opts.Clipboard == nil {
		return nil
	}
	return copyCmd(m.opts.Clipboard, m.lastSaved)
}

func (m *model) play(clip *studio.Clip) tea.Cmd {
	if clip == nil || (m.player == nil && m.opts.NewPlayer == nil) {
		return nil
	}
	if m.player == nil {
		p, err := m.opts.NewPlayer()
		if err != nil {
			m.opts.NewPlayer = nil
			return m.setError(fmt.Errorf("audio disabled: %w", err))
		}
		m.player = p
	}
	m.player.Stop()
	m.playing = true
	m.playSeq++
	return playCmd(m.player, clip.WAV, m.playSeq)
}

func (m *model) stopPlayback() {
	if m.player != nil {
		m.player.Stop()
	}
	m.playing = false
}

func (m *model) focusPane(p pane) tea.Cmd {
	m.pane = p
	m.text.Blur()
	m.manual.Blur()
	switch p {
	case paneText:
		return m.text.Focus()
	case paneManual:
		return m.manual.Focus()
	}
	return nil
}

func (m model) panes() []pane {
	if m.snap.Mode == studio.ModeManual {
		return []pane{paneText, paneManual, paneVoices, paneStyles, paneHistory}
	}
	return []pane{paneText, paneVoices, paneStyles, paneHistory}
}

func (m model) cyclePane(delta int) pane {
	panes := m.panes()
	i := slices.Index(panes, m.pane)
	return panes[(i+delta+len(panes))%len(panes)]
}

// refresh re-reads the studio state.
func (m *model) refresh() {
	m.snap = m.studio.Snapshot()
	if m.mainPending {
		m.snap.Main.State = studio.FlowPending
	}
	if m.previewPending {
		m.snap.Preview.State = studio.FlowPending
	}
	if m.historyIdx >= len(m.snap.History) {
		m.historyIdx = max(len(m.snap.History)-1, 0)
	}
}

func (m model) busy() bool {
	return m.snap.Main.State == studio.FlowPending || m.snap.Preview.State == studio.FlowPending
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height
	w := max(width-6, 20)
	m.text.SetWidth(w)
	m.manual.SetWidth(w)
	m.help.Width = width
	if m.editor != nil {
		m.editor.setWidth(width)
	}
}

func (m *model) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusErr = false
	m.statusSeq++
	return statusTimeoutCmd(m.statusSeq)
}

func (m *model) setError(err error) tea.Cmd {
	m.status = err.Error()
	m.statusErr = true
	m.statusSeq++
	return statusTimeoutCmd(m.statusSeq)
}

// nextFavorite returns the favorite after current, wrapping around. Names
// rejected by valid are skipped.
func nextFavorite(favs []string, current string, valid func(string) bool) (string, bool) {
	var usable []string
	for _, f := range favs {
		if valid == nil || valid(f) {
			usable = append(usable, f)
		}
	}
	if len(usable) == 0 {
		return "", false
	}
	i := slices.Index(usable, current)
	return usable[(i+1)%len(usable)], true
}

func describeClip(c *studio.Clip) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%s · %s · %s", c.Voice, c.Duration().Round(100*time.Millisecond), humanize.Bytes(uint64(c.Size())))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
