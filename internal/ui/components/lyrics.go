package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/mediacore/api"
)

// LyricsPanel shows the previous, current and next lyric lines.
type LyricsPanel struct {
	Width        int
	Lines        api.LyricTriple
	DimStyle     lipgloss.Style
	CurrentStyle lipgloss.Style
}

// NewLyricsPanel creates a lyrics panel
func NewLyricsPanel(width int) LyricsPanel {
	return LyricsPanel{
		Width:        width,
		DimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		CurrentStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	}
}

// View renders three centred lines. Empty slots keep their row so the panel does not jump.
func (p LyricsPanel) View() string {
	center := lipgloss.NewStyle().Width(p.Width).Align(lipgloss.Center)
	rows := []string{
		center.Render(p.DimStyle.Render(Truncate(p.Lines.Previous, p.Width))),
		center.Render(p.CurrentStyle.Render(Truncate(p.Lines.Current, p.Width))),
		center.Render(p.DimStyle.Render(Truncate(p.Lines.Next, p.Width))),
	}
	return strings.Join(rows, "\n")
}
