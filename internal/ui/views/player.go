package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/mediacore/api"
	"github.com/jscyril/mediacore/internal/ui/components"
)

// PlayerView displays the performance session, the preview and karaoke lyrics.
type PlayerView struct {
	Width       int
	Height      int
	Session     api.PerformanceSession
	Preview     api.PreviewSession
	ProgressBar components.ProgressBar
	Lyrics      components.LyricsPanel

	// Styles
	TitleStyle    lipgloss.Style
	ArtistStyle   lipgloss.Style
	TagStyle      lipgloss.Style
	StatusStyle   lipgloss.Style
	PreviewStyle  lipgloss.Style
	ControlsStyle lipgloss.Style
	BorderStyle   lipgloss.Style
}

// NewPlayerView creates a new player view
func NewPlayerView(width, height int) PlayerView {
	return PlayerView{
		Width:       width,
		Height:      height,
		ProgressBar: components.NewProgressBar(width - 8),
		Lyrics:      components.NewLyricsPanel(width - 8),
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		ArtistStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")),
		TagStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true),
		StatusStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true),
		PreviewStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("109")),
		ControlsStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2),
	}
}

// SetWidth resizes the view and its parts
func (v *PlayerView) SetWidth(width int) {
	v.Width = width
	v.ProgressBar.Width = width - 8
	v.Lyrics.Width = width - 8
}

// SetSession replaces the performance snapshot
func (v *PlayerView) SetSession(s api.PerformanceSession) {
	v.Session = s
	v.ProgressBar.SetProgress(s.Channel.PositionPercent, s.Position)
	v.Lyrics.Lines = s.Lyrics
}

// SetProgress applies a ticker sample for the bound item
func (v *PlayerView) SetProgress(p api.Progress) {
	if v.Session.Item == nil || v.Session.Item.ID != p.ItemID {
		return
	}
	v.Session.Channel.PositionPercent = p.Percent
	v.Session.Position = p.Position
	v.ProgressBar.SetProgress(p.Percent, p.Position)
}

// SetLyrics applies a lyric window for the bound item
func (v *PlayerView) SetLyrics(u api.LyricUpdate) {
	if v.Session.Item == nil || v.Session.Item.ID != u.ItemID {
		return
	}
	v.Session.CurrentCueIndex = u.Index
	v.Session.Lyrics = u.Lines
	v.Lyrics.Lines = u.Lines
}

// SetPreview replaces the preview snapshot
func (v *PlayerView) SetPreview(p api.PreviewSession) {
	v.Preview = p
}

// View renders the player view
func (v PlayerView) View() string {
	var sb strings.Builder

	item := v.Session.Item
	if item == nil {
		sb.WriteString(v.TitleStyle.Render("♪ Nothing playing"))
		sb.WriteString("\n")
		sb.WriteString(v.ControlsStyle.Render("Press Enter on an item to play it"))
	} else {
		sb.WriteString(v.StatusStyle.Render(statusIcon(v.Session.State) + " "))
		sb.WriteString(v.TitleStyle.Render(item.Title))
		sb.WriteString("  ")
		sb.WriteString(v.ArtistStyle.Render(item.Artist))
		if tags := tags(*item); tags != "" {
			sb.WriteString("  ")
			sb.WriteString(v.TagStyle.Render(tags))
		}
		sb.WriteString("\n\n")

		sb.WriteString(v.ProgressBar.View())
		sb.WriteString("\n")

		if item.IsKaraoke() {
			sb.WriteString("\n")
			sb.WriteString(v.Lyrics.View())
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Volume: %s %d%%", renderVolumeBar(v.Session.Volume), int(v.Session.Volume)))

	if p := v.Preview.Item; p != nil {
		sb.WriteString("\n")
		sb.WriteString(v.PreviewStyle.Render(fmt.Sprintf("Previewing %s - %s at %d%%", p.Artist, p.Title, int(v.Preview.Channel.Volume))))
	}

	return v.BorderStyle.Width(v.Width - 4).Render(sb.String())
}

func statusIcon(s api.SessionState) string {
	switch s {
	case api.SessionPlaying:
		return "▶"
	case api.SessionPaused:
		return "⏸"
	case api.SessionLoading:
		return "…"
	default:
		return "⏹"
	}
}

func tags(item api.CatalogItem) string {
	var parts []string
	if item.Category != api.CategoryNone {
		parts = append(parts, string(item.Category))
	}
	if item.Mood != api.MoodNone {
		parts = append(parts, string(item.Mood))
	}
	if item.Duration != "" {
		parts = append(parts, item.Duration)
	}
	return strings.Join(parts, " · ")
}

// renderVolumeBar renders a 0-100 volume as ten dots
func renderVolumeBar(volume float64) string {
	filled := int(volume / 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	return filledStyle.Render(strings.Repeat("●", filled)) + emptyStyle.Render(strings.Repeat("○", 10-filled))
}
