package catalog

import (
	"slices"
	"testing"
)

func TestVoiceGroups(t *testing.T) {
	female := Voices(Female)
	male := Voices(Male)
	if len(female) != 14 {
		t.Fatalf("expected 14 female voices, got %d", len(female))
	}
	if len(male) != 16 {
		t.Fatalf("expected 16 male voices, got %d", len(male))
	}
	for _, v := range female {
		if slices.Contains(male, v) {
			t.Fatalf("voice %s is in both groups", v)
		}
	}
	if len(AllVoices()) != 30 {
		t.Fatalf("expected 30 voices, got %d", len(AllVoices()))
	}
}

func TestVoicesReturnsCopy(t *testing.T) {
	v := Voices(Female)
	v[0] = "Nobody"
	if Voices(Female)[0] != "Achernar" {
		t.Fatal("catalog was mutated through returned slice")
	}
}

func TestVoiceForGenderRoundTrip(t *testing.T) {
	for _, v := range Voices(Female) {
		toMale := VoiceForGender(Male, v)
		if g, _ := GenderOf(toMale); g != Male {
			t.Fatalf("switching %s to male selected %s (%s)", v, toMale, g)
		}
		back := VoiceForGender(Female, toMale)
		if !slices.Contains(Voices(Female), back) {
			t.Fatalf("switching back selected %s, not a female voice", back)
		}
	}

	if got := VoiceForGender(Male, "Kore"); got != "Achird" {
		t.Fatalf("expected fallback Achird, got %s", got)
	}
	if got := VoiceForGender(Female, "Kore"); got != "Kore" {
		t.Fatalf("expected Kore to be kept, got %s", got)
	}
}

func TestParseVoice(t *testing.T) {
	tests := []struct {
		in      string
		want    VoiceName
		wantErr bool
	}{
		{"Kore", "Kore", false},
		{"kore", "Kore", false},
		{"  ZUBENELGENUBI ", "Zubenelgenubi", false},
		{"alex", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseVoice(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseVoice(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseVoice(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseGender(t *testing.T) {
	for in, want := range map[string]Gender{"female": Female, "F": Female, "male": Male, " m ": Male} {
		got, err := ParseGender(in)
		if err != nil || got != want {
			t.Fatalf("ParseGender(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseGender("other"); err == nil {
		t.Fatal("expected error for unknown gender")
	}
}

func TestPresets(t *testing.T) {
	presets := Presets()
	if len(presets) != 11 {
		t.Fatalf("expected 11 presets, got %d", len(presets))
	}
	if DefaultStyle().Name != "Спокойный" {
		t.Fatalf("unexpected default style %q", DefaultStyle().Name)
	}
	seen := map[string]bool{}
	for _, s := range presets {
		if s.ID == "" || s.Name == "" || s.Prompt == "" {
			t.Fatalf("incomplete preset: %+v", s)
		}
		if seen[s.Name] {
			t.Fatalf("duplicate preset name %q", s.Name)
		}
		seen[s.Name] = true
	}
	angry, ok := FindStyle("Злой", nil)
	if !ok || angry.Prompt[:8] != " [angry]" {
		t.Fatalf("angry preset prompt not kept verbatim: %q", angry.Prompt)
	}
}

func TestFindStyleAndGroups(t *testing.T) {
	customs := []Style{{ID: "1", Name: "Шёпот", Prompt: "шепчи"}}
	if s, ok := FindStyle("Шёпот", customs); !ok || s.ID != "1" {
		t.Fatalf("custom style not found: %+v %v", s, ok)
	}
	if _, ok := FindStyle("шёпот", customs); ok {
		t.Fatal("lookup must be case-sensitive")
	}
	if !IsPreset("Грустный") || IsPreset("Шёпот") {
		t.Fatal("IsPreset mismatch")
	}

	if groups := StyleGroups(nil); len(groups) != 1 {
		t.Fatalf("expected only the preset group, got %d", len(groups))
	}
	groups := StyleGroups(customs)
	if len(groups) != 2 || groups[1].Styles[0].Name != "Шёпот" {
		t.Fatalf("unexpected groups: %+v", groups)
	}
}

func TestVoiceItems(t *testing.T) {
	if n := len(VoiceItems()); n != 30 {
		t.Fatalf("expected 30 items, got %d", n)
	}
	items := VoiceItems(Male)
	if len(items) != 16 || items[0].Gender != Male {
		t.Fatalf("unexpected male items: %+v", items[:1])
	}
}
