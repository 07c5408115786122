package studio

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"voxtone/internal/catalog"
	"voxtone/internal/speech"
	"voxtone/internal/store"
	"voxtone/internal/wav"
)

type fakeSynth struct {
	mu    sync.Mutex
	reqs  []speech.Request
	pcm   []byte
	err   error
	gate  chan struct{}
	ready chan struct{}
}

func (f *fakeSynth) Synthesize(ctx context.Context, req speech.Request) ([]byte, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	gate, ready := f.gate, f.ready
	f.mu.Unlock()
	if ready != nil {
		ready <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.pcm, nil
}

func (f *fakeSynth) requests() []speech.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.reqs)
}

type memPersister struct {
	mu    sync.Mutex
	saves map[string]any
	count int
}

func (m *memPersister) Save(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saves == nil {
		m.saves = map[string]any{}
	}
	m.saves[key] = value
	m.count++
}

type tickClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestStudio(t *testing.T, synth speech.Synthesizer, p Persister, st store.State) *Studio {
	t.Helper()
	clock := &tickClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return New(synth, p, st, log.New(io.Discard), WithClock(clock.now))
}

func TestGenderSwitchKeepsVoiceInGroup(t *testing.T) {
	s := newTestStudio(t, &fakeSynth{}, &memPersister{}, store.State{})

	snap := s.Snapshot()
	if snap.Gender != catalog.Female || snap.Voice != "Kore" {
		t.Fatalf("unexpected defaults: %s %s", snap.Gender, snap.Voice)
	}

	s.SetGender(catalog.Male)
	snap = s.Snapshot()
	if snap.Voice != "Achird" {
		t.Fatalf("expected fallback to first male voice, got %s", snap.Voice)
	}
	if !slices.Contains(snap.ActiveVoices, snap.Voice) {
		t.Fatal("active voice outside active list")
	}

	if err := s.SelectVoice("Puck"); err != nil {
		t.Fatal(err)
	}
	s.SetGender(catalog.Male)
	if s.Snapshot().Voice != "Puck" {
		t.Fatal("switching to the same gender must not change the voice")
	}

	s.SetGender(catalog.Female)
	snap = s.Snapshot()
	if snap.Voice != "Achernar" || !slices.Contains(snap.ActiveVoices, snap.Voice) {
		t.Fatalf("expected Achernar after switching back, got %s", snap.Voice)
	}
}

func TestSelectFavoriteVoiceSwitchesGender(t *testing.T) {
	s := newTestStudio(t, &fakeSynth{}, &memPersister{}, store.State{})
	if err := s.SelectVoice("Charon"); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if snap.Gender != catalog.Male || snap.Voice != "Charon" {
		t.Fatalf("expected male/Charon, got %s/%s", snap.Gender, snap.Voice)
	}
	if err := s.SelectVoice("Nobody"); !errors.Is(err, ErrUnknownVoice) {
		t.Fatalf("expected ErrUnknownVoice, got %v", err)
	}
}

func TestToggleFavoritesTwiceRestoresOrder(t *testing.T) {
	p := &memPersister{}
	s := newTestStudio(t, &fakeSynth{}, p, store.State{
		FavoriteVoices: []string{"Puck", "Leda", "Orus"},
		FavoriteStyles: []string{"Злой"},
	})

	if !s.ToggleFavoriteVoice("Kore") {
		t.Fatal("Kore should become a favorite")
	}
	if s.ToggleFavoriteVoice("Kore") {
		t.Fatal("Kore should no longer be a favorite")
	}
	if diff := cmp.Diff([]string{"Puck", "Leda", "Orus"}, s.Snapshot().FavoriteVoices); diff != "" {
		t.Fatalf("favorites changed (-want +got):\n%s", diff)
	}

	if s.ToggleFavoriteVoice("Leda") {
		t.Fatal("Leda should be removed")
	}
	if diff := cmp.Diff([]string{"Puck", "Orus"}, p.saves[store.KeyFavoriteVoices]); diff != "" {
		t.Fatalf("persisted favorites mismatch (-want +got):\n%s", diff)
	}

	s.ToggleFavoriteStyle("Грустный")
	s.ToggleFavoriteStyle("Злой")
	if diff := cmp.Diff([]string{"Грустный"}, s.Snapshot().FavoriteStyles); diff != "" {
		t.Fatalf("style favorites mismatch (-want +got):\n%s", diff)
	}
}

func TestFavoritesPersistAndReload(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "data"), log.New(io.Discard))
	s := newTestStudio(t, &fakeSynth{}, st, st.Load())
	s.ToggleFavoriteVoice("Zephyr")
	s.ToggleFavoriteVoice("Fenrir")
	s.ToggleFavoriteStyle("Радостный")

	reloaded := newTestStudio(t, &fakeSynth{}, st, st.Load()).Snapshot()
	if diff := cmp.Diff([]string{"Zephyr", "Fenrir"}, reloaded.FavoriteVoices); diff != "" {
		t.Fatalf("voices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Радостный"}, reloaded.FavoriteStyles); diff != "" {
		t.Fatalf("styles mismatch (-want +got):\n%s", diff)
	}
}

func TestPromptBuilding(t *testing.T) {
	s := newTestStudio(t, &fakeSynth{}, &memPersister{}, store.State{})
	calm := catalog.DefaultStyle().Prompt

	main, preview := s.Prompts()
	if main != calm || preview != calm {
		t.Fatalf("normal mode prompts should equal the style prompt")
	}

	s.SetManualText("  ударение на О  ")
	main, _ = s.Prompts()
	if main != calm {
		t.Fatal("manual text must be ignored in normal mode")
	}

	s.SetMode(ModeManual)
	main, preview = s.Prompts()
	if main != calm+"\n\nударение на О" {
		t.Fatalf("unexpected manual prompt %q", main)
	}
	if preview != calm {
		t.Fatalf("preview prompt must not include the manual text: %q", preview)
	}

	s.SetManualText("   ")
	main, _ = s.Prompts()
	if main != calm {
		t.Fatal("blank manual text must leave the base prompt")
	}
}

func TestGenerateGuards(t *testing.T) {
	synth := &fakeSynth{pcm: []byte{0, 0}}
	s := newTestStudio(t, synth, &memPersister{}, store.State{})

	if s.CanGenerate() {
		t.Fatal("generation must be disabled for empty text")
	}
	s.SetText(" \n\t ")
	if _, err := s.Generate(context.Background()); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if len(synth.requests()) != 0 {
		t.Fatal("no call may be made for blank text")
	}
	if st := s.Snapshot().Main.State; st != FlowIdle {
		t.Fatalf("flow state changed to %s", st)
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	synth := &fakeSynth{pcm: pcm}
	s := newTestStudio(t, synth, &memPersister{}, store.State{})
	s.SetText("Привет")

	clip, err := s.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	reqs := synth.requests()
	want := []speech.Request{{Text: "Привет", Voice: "Kore", Prompt: catalog.DefaultStyle().Prompt}}
	if diff := cmp.Diff(want, reqs); diff != "" {
		t.Fatalf("requests mismatch (-want +got):\n%s", diff)
	}

	data, err := wav.PCM(clip.WAV)
	if err != nil {
		t.Fatalf("decode clip: %v", err)
	}
	if diff := cmp.Diff(pcm, data); diff != "" {
		t.Fatalf("pcm mismatch (-want +got):\n%s", diff)
	}
	h, _ := wav.DecodeHeader(clip.WAV)
	if h.SampleRate != wav.SampleRate || h.Channels != 1 || h.BitsPerSample != 16 {
		t.Fatalf("unexpected header %+v", h)
	}

	snap := s.Snapshot()
	if snap.Main.State != FlowSucceeded || snap.Current != clip {
		t.Fatalf("unexpected main flow %+v", snap.Main)
	}
	if len(snap.History) != 1 {
		t.Fatalf("expected one history item, got %d", len(snap.History))
	}
	item := snap.History[0]
	if item.Text != "Привет" || item.Voice != "Kore" || item.StyleName != "Спокойный" ||
		item.Mode != ModeNormal || item.PromptText != "" || item.Clip != clip {
		t.Fatalf("unexpected history item %+v", item)
	}
	if clip.Filename() != "speech-Kore-"+clip.ID+".wav" {
		t.Fatalf("unexpected filename %s", clip.Filename())
	}
}

func TestManualModeAndPreviewPrompts(t *testing.T) {
	synth := &fakeSynth{pcm: []byte{0, 0}}
	s := newTestStudio(t, synth, &memPersister{}, store.State{})
	s.SetText("Привет")
	s.SetMode(ModeManual)
	s.SetManualText("ударение на О")

	if _, err := s.Generate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Preview(context.Background()); err != nil {
		t.Fatal(err)
	}

	calm := catalog.DefaultStyle().Prompt
	want := []speech.Request{
		{Text: "Привет", Voice: "Kore", Prompt: calm + "\n\nударение на О"},
		{Text: catalog.PreviewText, Voice: "Kore", Prompt: calm},
	}
	if diff := cmp.Diff(want, synth.requests()); diff != "" {
		t.Fatalf("requests mismatch (-want +got):\n%s", diff)
	}

	snap := s.Snapshot()
	if snap.History[0].PromptText != "ударение на О" || snap.History[0].Mode != ModeManual {
		t.Fatalf("manual text not recorded: %+v", snap.History[0])
	}
	if len(snap.History) != 1 {
		t.Fatal("preview must not add history")
	}
	if snap.PreviewClip == nil || snap.Current == snap.PreviewClip {
		t.Fatal("preview clip must be stored separately")
	}
}

func TestHistoryCap(t *testing.T) {
	synth := &fakeSynth{pcm: []byte{0, 0}}
	s := newTestStudio(t, synth, &memPersister{}, store.State{})

	texts := []string{"one", "two", "three", "four", "five", "six"}
	for _, text := range texts {
		s.SetText(text)
		if _, err := s.Generate(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	hist := s.Snapshot().History
	var got []string
	for _, h := range hist {
		got = append(got, h.Text)
	}
	if diff := cmp.Diff([]string{"six", "five", "four", "three", "two"}, got); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestFailureKeepsPriorAudio(t *testing.T) {
	synth := &fakeSynth{pcm: []byte{1, 0}}
	s := newTestStudio(t, synth, &memPersister{}, store.State{})
	s.SetText("first")
	first, err := s.Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	synth.err = &speech.BlockedError{Reason: "SAFETY"}
	s.SetText("second")
	if _, err := s.Generate(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	snap := s.Snapshot()
	if snap.Main.State != FlowFailed || snap.Main.Err != "generation blocked by safety settings: SAFETY" {
		t.Fatalf("unexpected flow status %+v", snap.Main)
	}
	if snap.Current != first || len(snap.History) != 1 {
		t.Fatal("failed generation must leave prior audio untouched")
	}
	if snap.Preview.State != FlowIdle || snap.Preview.Err != "" {
		t.Fatal("main failure leaked into the preview flow")
	}

	synth.err = errors.New(" ")
	if _, err := s.Preview(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	snap = s.Snapshot()
	if snap.Preview.Err != fallbackPreviewError {
		t.Fatalf("expected fallback message, got %q", snap.Preview.Err)
	}
	if snap.Main.Err != "generation blocked by safety settings: SAFETY" {
		t.Fatal("preview failure changed the main flow")
	}
}

func TestFlowsOverlapButDoNotDoubleStart(t *testing.T) {
	synth := &fakeSynth{
		pcm:   []byte{0, 0},
		gate:  make(chan struct{}),
		ready: make(chan struct{}, 4),
	}
	s := newTestStudio(t, synth, &memPersister{}, store.State{})
	s.SetText("long text")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := s.Generate(context.Background()); err != nil {
			t.Errorf("generate: %v", err)
		}
	}()
	<-synth.ready

	if s.CanGenerate() {
		t.Fatal("main must be disabled while pending")
	}
	if _, err := s.Generate(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if !s.CanPreview() {
		t.Fatal("preview must stay available while main is pending")
	}

	go func() {
		defer wg.Done()
		if _, err := s.Preview(context.Background()); err != nil {
			t.Errorf("preview: %v", err)
		}
	}()
	<-synth.ready

	snap := s.Snapshot()
	if snap.Main.State != FlowPending || snap.Preview.State != FlowPending {
		t.Fatalf("expected both flows pending, got %s/%s", snap.Main.State, snap.Preview.State)
	}

	close(synth.gate)
	wg.Wait()

	snap = s.Snapshot()
	if snap.Main.State != FlowSucceeded || snap.Preview.State != FlowSucceeded {
		t.Fatalf("expected both flows succeeded, got %s/%s", snap.Main.State, snap.Preview.State)
	}
	if len(synth.requests()) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(synth.requests()))
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	s := newTestStudio(t, &fakeSynth{pcm: []byte{0, 0}}, &memPersister{}, store.State{})
	var got []EventKind
	unsubscribe := s.Subscribe(func(e Event) { got = append(got, e.Kind) })

	s.SetText("hi")
	if _, err := s.Generate(context.Background()); err != nil {
		t.Fatal(err)
	}
	unsubscribe()
	s.SetText("ignored")

	want := []EventKind{EventForm, EventFlow, EventFlow, EventHistory}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}
