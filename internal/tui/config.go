package tui

// Config contains TUI-specific configuration.
type Config struct {
	// Where saved clips are written.
	OutputDir string

	AltScreen   bool `env:"VOXTONE_ALT_SCREEN" envDefault:"true"`
	EnableMouse bool `env:"VOXTONE_MOUSE"`
}
