// Package catalog holds the static voice and style catalog of the Gemini
// speech models.
package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// VoiceName identifies a prebuilt voice accepted by the speech API.
type VoiceName string

// Gender partitions the voice catalog.
type Gender string

const (
	Female Gender = "female"
	Male   Gender = "male"
)

const DefaultVoice VoiceName = "Kore"

var femaleVoices = []VoiceName{
	"Achernar",
	"Aoede",
	"Autonoe",
	"Callirrhoe",
	"Despina",
	"Erinome",
	"Gacrux",
	"Kore",
	"Laomedeia",
	"Leda",
	"Pulcherrima",
	"Sulafat",
	"Vindemiatrix",
	"Zephyr",
}

var maleVoices = []VoiceName{
	"Achird",
	"Algenib",
	"Algieba",
	"Alnilam",
	"Charon",
	"Enceladus",
	"Fenrir",
	"Iapetus",
	"Orus",
	"Puck",
	"Rasalgethi",
	"Sadachbia",
	"Sadaltager",
	"Schedar",
	"Umbriel",
	"Zubenelgenubi",
}

// Genders lists the groups in display order.
func Genders() []Gender {
	return []Gender{Female, Male}
}

// ParseGender accepts "female"/"male" and the short forms "f"/"m".
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "female", "f":
		return Female, nil
	case "male", "m":
		return Male, nil
	default:
		return "", fmt.Errorf("invalid gender: %q (want female|male)", s)
	}
}

// Voices returns the voices of one gender in catalog order. The result is a
// copy and may be modified by the caller.
func Voices(g Gender) []VoiceName {
	switch g {
	case Male:
		return slices.Clone(maleVoices)
	default:
		return slices.Clone(femaleVoices)
	}
}

// AllVoices returns every voice, female group first.
func AllVoices() []VoiceName {
	return slices.Concat(femaleVoices, maleVoices)
}

// GenderOf reports which group v belongs to.
func GenderOf(v VoiceName) (Gender, bool) {
	if slices.Contains(femaleVoices, v) {
		return Female, true
	}
	if slices.Contains(maleVoices, v) {
		return Male, true
	}
	return "", false
}

// ParseVoice resolves a voice name case-insensitively.
func ParseVoice(s string) (VoiceName, error) {
	name := strings.TrimSpace(s)
	for _, v := range AllVoices() {
		if strings.EqualFold(string(v), name) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unsupported voice: %s", s)
}

// VoiceForGender keeps current when it belongs to g and otherwise falls back to
// the first voice of g.
func VoiceForGender(g Gender, current VoiceName) VoiceName {
	opts := Voices(g)
	if slices.Contains(opts, current) {
		return current
	}
	return opts[0]
}

// VoiceItem is the listing form of a voice.
type VoiceItem struct {
	Name   VoiceName `json:"name"`
	Gender Gender    `json:"gender"`
}

// VoiceItems lists the voices of the given genders, or all voices when none
// are given.
func VoiceItems(genders ...Gender) []VoiceItem {
	if len(genders) == 0 {
		genders = Genders()
	}
	var out []VoiceItem
	for _, g := range genders {
		for _, v := range Voices(g) {
			out = append(out, VoiceItem{Name: v, Gender: g})
		}
	}
	return out
}
