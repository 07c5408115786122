package voxtone

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	keywordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}).
			Bold(true)
	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	starStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func keyword(s string) string {
	return keywordStyle.Render(s)
}

func faint(s string) string {
	return faintStyle.Render(s)
}

func header(s string) string {
	return headerStyle.Render(s)
}

func paragraph(s string) string {
	return lipgloss.NewStyle().Width(78).Padding(0, 0, 0, 2).Render(s)
}

// star marks favorites in listings.
func star(fav bool) string {
	if fav {
		return starStyle.Render("★")
	}
	return " "
}
