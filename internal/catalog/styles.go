package catalog

import "slices"

// Style is a named delivery instruction sent ahead of the text. Presets carry
// fixed ids; custom styles get a timestamp-derived id.
type Style struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// Prompts are kept verbatim, including the bracketed tone tags some of them
// carry.
var presetStyles = []Style{
	{
		ID:     "calm",
		Name:   "Спокойный",
		Prompt: "Говори медленным и спокойным тоном, как ведущий медитации. Делай мягкие паузы между фразами. Не добавляй ничего от себя.",
	},
	{
		ID:     "friendly",
		Name:   "Дружелюбный",
		Prompt: "Говори тёплым и дружелюбным голосом, как ведущий подкаста. Темп средний. Не добавляй ничего от себя.",
	},
	{
		ID:     "joyful",
		Name:   "Радостный",
		Prompt: "Говори радостным и энергичным голосом, как блогер, который делится хорошей новостью. Не добавляй ничего от себя.",
	},
	{
		ID:     "dramatic",
		Name:   "Драматичный",
		Prompt: "Говори драматичным, напряжённым голосом, как диктор трейлера к фильму. Делай паузы и наращивай напряжение.",
	},
	{
		ID:     "asmr",
		Name:   "Медленный ASMR",
		Prompt: "Говори очень медленно и мягко, почти шёпотом, как в ASMR. Делай длинные паузы между фразами. Не добавляй ничего от себя.",
	},
	{
		ID:     "angry",
		Name:   "Злой",
		Prompt: " [angry] Говори резким, раздражённым голосом, как будто тебе надоело повторять одно и то же. Не добавляй ничего от себя.",
	},
	{
		ID:     "sad",
		Name:   "Грустный",
		Prompt: " [sad] Говори тихим, немного грустным голосом, будто вспоминаешь что-то печальное. Не добавляй ничего от себя.",
	},
	{
		ID:     "tired",
		Name:   "Уставший",
		Prompt: " Говори усталым, немного безразличным голосом, почти монотонно. Не добавляй ничего от себя.",
	},
	{
		ID:     "sarcastic",
		Name:   "Саркастичный",
		Prompt: " [sarcastic] Говори с лёгкой насмешкой, саркастическим тоном, как будто шутишь, но с иронией. Не добавляй ничего от себя.",
	},
	{
		ID:     "news",
		Name:   "Деловой диктор новостей",
		Prompt: " Говори чётким, официальным голосом диктора новостей. Темп средний, произношение максимально разборчивое. Не добавляй ничего от себя.",
	},
	{
		ID:     "childish",
		Name:   "Детский / игривый",
		Prompt: " [excited] Говори радостным, игривым голосом, как ребёнок, который рассказывает что-то интересное. Не добавляй ничего от себя.",
	},
}

// PreviewText is the canned sentence used to audition a voice and style.
const PreviewText = "Это пример звучания выбранного голоса и стиля."

// Presets returns a copy of the built-in styles.
func Presets() []Style {
	return slices.Clone(presetStyles)
}

// DefaultStyle is the first preset, used whenever a selection is missing.
func DefaultStyle() Style {
	return presetStyles[0]
}

// IsPreset reports whether name belongs to a built-in style.
func IsPreset(name string) bool {
	return slices.ContainsFunc(presetStyles, func(s Style) bool { return s.Name == name })
}

// FindStyle looks a style up by exact name in presets first, then in customs.
func FindStyle(name string, customs []Style) (Style, bool) {
	for _, s := range presetStyles {
		if s.Name == name {
			return s, true
		}
	}
	for _, s := range customs {
		if s.Name == name {
			return s, true
		}
	}
	return Style{}, false
}

// StyleGroup is a labelled block of style names for display.
type StyleGroup struct {
	Label  string
	Styles []Style
}

// StyleGroups returns the presets group followed by the custom group, which is
// omitted when empty.
func StyleGroups(customs []Style) []StyleGroup {
	groups := []StyleGroup{{Label: "Preset styles", Styles: Presets()}}
	if len(customs) > 0 {
		groups = append(groups, StyleGroup{Label: "My styles", Styles: slices.Clone(customs)})
	}
	return groups
}
