package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"voxtone/internal/catalog"
)

// styleEditor creates a custom style, or edits one when id is set.
type styleEditor struct {
	id       string
	name     textinput.Model
	prompt   textarea.Model
	onPrompt bool
	err      string
}

func newStyleEditor(st catalog.Style, width int) *styleEditor {
	name := textinput.New()
	name.Placeholder = "Style name"
	name.CharLimit = 64
	name.SetValue(st.Name)

	prompt := textarea.New()
	prompt.Placeholder = "Describe the delivery: tone, pace, pauses…"
	prompt.ShowLineNumbers = false
	prompt.CharLimit = 2000
	prompt.SetHeight(5)
	prompt.SetValue(st.Prompt)

	e := &styleEditor{id: st.ID, name: name, prompt: prompt}
	e.setWidth(width)
	return e
}

func (e *styleEditor) setWidth(width int) {
	w := max(width-8, 20)
	e.name.Width = w
	e.prompt.SetWidth(w)
}

func (e *styleEditor) focusField(prompt bool) tea.Cmd {
	e.onPrompt = prompt
	if prompt {
		e.name.Blur()
		return e.prompt.Focus()
	}
	e.prompt.Blur()
	return e.name.Focus()
}

func (e *styleEditor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if e.onPrompt {
		e.prompt, cmd = e.prompt.Update(msg)
	} else {
		e.name, cmd = e.name.Update(msg)
	}
	return cmd
}

func (e *styleEditor) view() string {
	title := "New style"
	if e.id != "" {
		title = "Edit style"
	}
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(title) + "\n\n")
	b.WriteString(faintStyle.Render("Name") + "\n")
	b.WriteString(e.name.View() + "\n\n")
	b.WriteString(faintStyle.Render("Prompt") + "\n")
	b.WriteString(e.prompt.View() + "\n")
	if e.err != "" {
		b.WriteString("\n" + errorStyle.Render(e.err) + "\n")
	}
	b.WriteString("\n" + faintStyle.Render("tab switch field • ctrl+s save • esc cancel"))
	return activePaneStyle.Render(b.String())
}
