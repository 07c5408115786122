package voxtone

import (
	"github.com/charmbracelet/huh"
)

func runWithHelp(fields ...huh.Field) error {
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).Run()
}

// promptPassword asks for a secret without echoing it.
func promptPassword(title, description string) (string, error) {
	var value string
	inp := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value)
	if description != "" {
		inp = inp.Description(description)
	}
	if err := runWithHelp(inp); err != nil {
		return "", err
	}
	return value, nil
}

// promptStyle asks for a style name and prompt, prefilled with the given
// values. Both fields are required.
func promptStyle(title, name, prompt string) (string, string, error) {
	required := func(s string) error {
		if isBlank(s) {
			return errRequired
		}
		return nil
	}
	err := runWithHelp(
		huh.NewInput().
			Title(title).
			Description("Style name").
			Value(&name).
			Validate(required),
		huh.NewText().
			Title("Prompt").
			Description("How the voice should deliver the text").
			CharLimit(2000).
			Value(&prompt).
			Validate(required),
	)
	return name, prompt, err
}

// promptConfirm asks a yes/no question. Returns true for yes.
func promptConfirm(title string, defaultYes bool) (bool, error) {
	value := defaultYes
	c := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	if err := runWithHelp(c); err != nil {
		return false, err
	}
	return value, nil
}
