package layout

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ghfetch/ghfetch/pkg/colors"
)

// Styles colors the text written next to the art.
type Styles struct {
	Title    lipgloss.Style
	Text     lipgloss.Style
	Archived lipgloss.Style

	lg *lipgloss.Renderer
}

// NewStyles builds the palette on lg, or on the default renderer if lg is nil.
func NewStyles(lg *lipgloss.Renderer) Styles {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return Styles{
		Title:    lg.NewStyle().Foreground(lipgloss.Color(colors.Title)),
		Text:     lg.NewStyle().Foreground(lipgloss.Color(colors.Text)),
		Archived: lg.NewStyle().Foreground(lipgloss.Color(colors.Archived)),
		lg:       lg,
	}
}

// Language returns the bar style of a language.
func (s Styles) Language(name string) lipgloss.Style {
	lg := s.lg
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return lg.NewStyle().Foreground(lipgloss.Color(colors.Lookup(name)))
}
