package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/mediacore/api"
	"github.com/samber/lo"
)

// SearchInput edits a catalog query and shows the active tag filters.
type SearchInput struct {
	Value       []rune
	Placeholder string
	Focused     bool
	Width       int
	CursorPos   int
	Filters     api.Filters
	Style       lipgloss.Style
	FocusStyle  lipgloss.Style
	ChipStyle   lipgloss.Style
	Prompt      string
}

// NewSearchInput creates a new search input
func NewSearchInput(width int) SearchInput {
	return SearchInput{
		Placeholder: "Search title or artist...",
		Width:       width,
		Prompt:      "🔍 ",
		Style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		FocusStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(0, 1),
		ChipStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("61")).
			Padding(0, 1),
	}
}

// Query returns the current text
func (s SearchInput) Query() string {
	return string(s.Value)
}

// Focus sets focus on the input
func (s *SearchInput) Focus() {
	s.Focused = true
}

// Blur removes focus from the input
func (s *SearchInput) Blur() {
	s.Focused = false
}

// Clear clears the text
func (s *SearchInput) Clear() {
	s.Value = nil
	s.CursorPos = 0
}

// CycleCategory steps the category filter through every category and back to none.
func (s *SearchInput) CycleCategory() {
	s.Filters.Category = cycle(append([]api.Category{api.CategoryNone}, api.Categories()...), s.Filters.Category)
}

// CycleMood steps the mood filter through every mood and back to none.
func (s *SearchInput) CycleMood() {
	s.Filters.Mood = cycle(append([]api.Mood{api.MoodNone}, api.Moods()...), s.Filters.Mood)
}

func cycle[T comparable](order []T, current T) T {
	i := lo.IndexOf(order, current)
	if i < 0 {
		return order[0]
	}
	return order[(i+1)%len(order)]
}

// Update edits the text while focused. It reports whether the text changed.
func (s SearchInput) Update(msg tea.Msg) (SearchInput, bool) {
	if !s.Focused {
		return s, false
	}
	before := string(s.Value)

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyBackspace:
			if s.CursorPos > 0 {
				s.Value = append(s.Value[:s.CursorPos-1:s.CursorPos-1], s.Value[s.CursorPos:]...)
				s.CursorPos--
			}
		case tea.KeyDelete:
			if s.CursorPos < len(s.Value) {
				s.Value = append(s.Value[:s.CursorPos:s.CursorPos], s.Value[s.CursorPos+1:]...)
			}
		case tea.KeyLeft:
			if s.CursorPos > 0 {
				s.CursorPos--
			}
		case tea.KeyRight:
			if s.CursorPos < len(s.Value) {
				s.CursorPos++
			}
		case tea.KeyHome:
			s.CursorPos = 0
		case tea.KeyEnd:
			s.CursorPos = len(s.Value)
		case tea.KeySpace:
			s.insert([]rune{' '})
		case tea.KeyRunes:
			s.insert(msg.Runes)
		}
	}

	return s, string(s.Value) != before
}

func (s *SearchInput) insert(r []rune) {
	value := make([]rune, 0, len(s.Value)+len(r))
	value = append(value, s.Value[:s.CursorPos]...)
	value = append(value, r...)
	value = append(value, s.Value[s.CursorPos:]...)
	s.Value = value
	s.CursorPos += len(r)
}

// View renders the search input
func (s SearchInput) View() string {
	var content string

	switch {
	case len(s.Value) == 0 && !s.Focused:
		content = s.Prompt + lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(s.Placeholder)
	case s.Focused:
		cursor := lipgloss.NewStyle().Background(lipgloss.Color("212")).Render(" ")
		content = s.Prompt + string(s.Value[:s.CursorPos]) + cursor + string(s.Value[s.CursorPos:])
	default:
		content = s.Prompt + string(s.Value)
	}

	if s.Filters.Category != api.CategoryNone {
		content += " " + s.ChipStyle.Render(string(s.Filters.Category))
	}
	if s.Filters.Mood != api.MoodNone {
		content += " " + s.ChipStyle.Render(string(s.Filters.Mood))
	}

	if s.Focused {
		return s.FocusStyle.Width(s.Width).Render(content)
	}
	return s.Style.Width(s.Width).Render(content)
}
