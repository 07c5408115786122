package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"voxtone/internal/catalog"
	"voxtone/internal/studio"
)

const ellipsis = "…"

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView() + "\n")

	switch {
	case m.editor != nil:
		b.WriteString(m.editor.view() + "\n")
	case m.confirm != nil:
		b.WriteString(activePaneStyle.Render(fmt.Sprintf("Delete style %q? %s",
			m.confirm.Name, faintStyle.Render("(y/n)"))) + "\n")
	default:
		b.WriteString(m.paneView(paneText, m.text.View()) + "\n")
		if m.snap.Mode == studio.ModeManual {
			b.WriteString(m.paneView(paneManual, m.manual.View()) + "\n")
		}
		b.WriteString(m.paneView(paneVoices, m.voicesView()) + "\n")
		b.WriteString(m.paneView(paneStyles, m.stylesView()) + "\n")
		b.WriteString(m.flowsView() + "\n")
		b.WriteString(m.paneView(paneHistory, m.historyView()) + "\n")
	}

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status) + "\n")
		} else {
			b.WriteString(selectedStyle.Render(m.status) + "\n")
		}
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) headerView() string {
	mode := "normal"
	if m.snap.Mode == studio.ModeManual {
		mode = "manual"
	}
	info := fmt.Sprintf(" %s · %s · mode: %s", m.snap.Voice, m.snap.Style.Name, mode)
	if m.playing {
		info += " · ♪ playing"
	}
	return titleStyle.Render("voxtone") + faintStyle.Render(info)
}

func (m model) paneView(p pane, body string) string {
	style := paneStyle
	if m.pane == p && m.editor == nil && m.confirm == nil {
		style = activePaneStyle
	}
	return style.Width(max(m.width-2, 20)).Render(paneTitleStyle.Render(p.String()) + "\n" + body)
}

func (m model) voicesView() string {
	var genders []string
	for _, g := range catalog.Genders() {
		if g == m.snap.Gender {
			genders = append(genders, selectedStyle.Render(string(g)))
		} else {
			genders = append(genders, faintStyle.Render(string(g)))
		}
	}

	items := make([]string, 0, len(m.snap.ActiveVoices))
	for _, v := range m.snap.ActiveVoices {
		items = append(items, m.item(string(v), v == m.snap.Voice, slices.Contains(m.snap.FavoriteVoices, string(v))))
	}

	lines := []string{strings.Join(genders, " / "), m.wrap(items)}
	if chips := m.chips(m.snap.FavoriteVoices); chips != "" {
		lines = append(lines, chips)
	}
	return strings.Join(lines, "\n")
}

func (m model) stylesView() string {
	var lines []string
	for _, g := range catalog.StyleGroups(m.snap.CustomStyles) {
		items := make([]string, 0, len(g.Styles))
		for _, st := range g.Styles {
			items = append(items, m.item(st.Name, st.Name == m.snap.Style.Name, slices.Contains(m.snap.FavoriteStyles, st.Name)))
		}
		lines = append(lines, faintStyle.Render(g.Label), m.wrap(items))
	}
	if chips := m.chips(m.snap.FavoriteStyles); chips != "" {
		lines = append(lines, chips)
	}
	lines = append(lines, faintStyle.Render(truncate(flatten(m.snap.Style.Prompt), max(m.width-8, 20))))
	return strings.Join(lines, "\n")
}

func (m model) flowsView() string {
	return " " + m.flowView("Generate", m.snap.Main, m.snap.Current) +
		faintStyle.Render("   │   ") +
		m.flowView("Preview", m.snap.Preview, m.snap.PreviewClip)
}

func (m model) flowView(label string, f studio.FlowStatus, clip *studio.Clip) string {
	switch f.State {
	case studio.FlowPending:
		return m.spin.View() + " " + label + ellipsis
	case studio.FlowFailed:
		return errorStyle.Render("✗ " + label + ": " + truncate(f.Err, 60))
	case studio.FlowSucceeded:
		if clip != nil {
			return selectedStyle.Render("✓ "+label) + " " + faintStyle.Render(describeClip(clip))
		}
		return selectedStyle.Render("✓ " + label)
	default:
		if label == "Generate" && isBlank(m.text.Value()) {
			return faintStyle.Render(label)
		}
		return label
	}
}

func (m model) historyView() string {
	if len(m.snap.History) == 0 {
		return faintStyle.Render("No generations yet")
	}
	var lines []string
	for i, item := range m.snap.History {
		cursor := "  "
		if m.pane == paneHistory && i == m.historyIdx {
			cursor = selectedStyle.Render("› ")
		}
		meta := fmt.Sprintf("%s · %s · %s · %s", item.Voice, item.StyleName, item.Mode, humanize.Time(item.CreatedAt))
		text := truncate(flatten(item.Text), max(m.width-len(meta)-14, 10))
		lines = append(lines, cursor+faintStyle.Render(meta)+"  "+text)
	}
	return strings.Join(lines, "\n")
}

func (m model) item(name string, selected, fav bool) string {
	if fav {
		name = starStyle.Render("★") + name
	}
	if selected {
		return selectedStyle.Render("[" + name + "]")
	}
	return " " + name + " "
}

func (m model) chips(favs []string) string {
	if len(favs) == 0 {
		return ""
	}
	chips := make([]string, 0, len(favs))
	for _, f := range favs {
		chips = append(chips, chipStyle.Render("★ "+f))
	}
	return faintStyle.Render("favorites") + lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m model) wrap(items []string) string {
	return lipgloss.NewStyle().Width(max(m.width-6, 20)).Render(strings.Join(items, " "))
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:max(n-1, 0)]) + ellipsis
}
