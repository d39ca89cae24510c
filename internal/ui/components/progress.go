package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/mediacore/internal/audio"
)

// ProgressBar renders playback progress as a percent of the item's duration.
type ProgressBar struct {
	Width       int
	Percent     float64
	Position    time.Duration
	BarChar     string
	EmptyChar   string
	ShowTime    bool
	Style       lipgloss.Style
	FilledStyle lipgloss.Style
	EmptyStyle  lipgloss.Style
}

// NewProgressBar creates a new progress bar
func NewProgressBar(width int) ProgressBar {
	return ProgressBar{
		Width:       width,
		BarChar:     "█",
		EmptyChar:   "░",
		ShowTime:    true,
		Style:       lipgloss.NewStyle(),
		FilledStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		EmptyStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// SetProgress sets the sampled percent and position
func (p *ProgressBar) SetProgress(percent float64, position time.Duration) {
	p.Percent = audio.ClampPercent(percent)
	p.Position = position
}

// View renders the progress bar
func (p ProgressBar) View() string {
	var sb strings.Builder

	barWidth := p.Width - 16 // time and percent
	if barWidth < 10 {
		barWidth = 10
	}

	filled := int(float64(barWidth) * p.Percent / 100)
	if filled > barWidth {
		filled = barWidth
	}

	sb.WriteString(p.FilledStyle.Render(strings.Repeat(p.BarChar, filled)))
	sb.WriteString(p.EmptyStyle.Render(strings.Repeat(p.EmptyChar, barWidth-filled)))

	if p.ShowTime {
		sb.WriteString(fmt.Sprintf(" %s %3d%%", FormatDuration(p.Position), int(p.Percent)))
	}

	return p.Style.Render(sb.String())
}

// FormatDuration formats a duration as MM:SS
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d", m, s)
}
