package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/mediacore/api"
)

// ItemList is a scrollable list of catalog items. The cursor row is the
// hovered item.
type ItemList struct {
	Items     []api.CatalogItem
	Selected  int
	Height    int
	Width     int
	Offset    int
	Title     string
	PlayingID string
	PreviewID string

	SelectedStyle lipgloss.Style
	NormalStyle   lipgloss.Style
	TitleStyle    lipgloss.Style
	TagStyle      lipgloss.Style
}

// NewItemList creates a new item list
func NewItemList(height, width int) ItemList {
	return ItemList{
		Height: height,
		Width:  width,
		SelectedStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Bold(true).
			Padding(0, 1),
		NormalStyle: lipgloss.NewStyle().
			Padding(0, 1),
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1),
		TagStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
	}
}

// SetItems replaces the list, keeping the cursor on the same item when it is still present.
func (l *ItemList) SetItems(items []api.CatalogItem) {
	current := l.SelectedItem()
	l.Items = items
	l.Selected = 0
	l.Offset = 0
	if current == nil {
		return
	}
	for i, item := range items {
		if item.ID == current.ID {
			l.Selected = i
			l.ensureVisible()
			return
		}
	}
}

// Update handles navigation keys. It reports whether the cursor moved.
func (l ItemList) Update(msg tea.Msg) (ItemList, bool) {
	before := l.Selected
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home":
			l.Selected = 0
			l.Offset = 0
		case "end":
			if len(l.Items) > 0 {
				l.Selected = len(l.Items) - 1
				l.ensureVisible()
			}
		case "pgup":
			l.PageUp()
		case "pgdown":
			l.PageDown()
		}
	}
	return l, l.Selected != before
}

// MoveUp moves selection up
func (l *ItemList) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
		l.ensureVisible()
	}
}

// MoveDown moves selection down
func (l *ItemList) MoveDown() {
	if l.Selected < len(l.Items)-1 {
		l.Selected++
		l.ensureVisible()
	}
}

// PageUp moves selection up by a page
func (l *ItemList) PageUp() {
	l.Selected -= l.visibleRows()
	if l.Selected < 0 {
		l.Selected = 0
	}
	l.ensureVisible()
}

// PageDown moves selection down by a page
func (l *ItemList) PageDown() {
	l.Selected += l.visibleRows()
	if l.Selected >= len(l.Items) {
		l.Selected = len(l.Items) - 1
	}
	if l.Selected < 0 {
		l.Selected = 0
	}
	l.ensureVisible()
}

func (l *ItemList) visibleRows() int {
	rows := l.Height - 2 // title and counter
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (l *ItemList) ensureVisible() {
	rows := l.visibleRows()
	if l.Selected < l.Offset {
		l.Offset = l.Selected
	} else if l.Selected >= l.Offset+rows {
		l.Offset = l.Selected - rows + 1
	}
}

// SelectedItem returns the item under the cursor
func (l *ItemList) SelectedItem() *api.CatalogItem {
	if l.Selected >= 0 && l.Selected < len(l.Items) {
		return &l.Items[l.Selected]
	}
	return nil
}

// View renders the list
func (l ItemList) View() string {
	var sb strings.Builder

	if l.Title != "" {
		sb.WriteString(l.TitleStyle.Render(l.Title))
		sb.WriteString("\n")
	}

	if len(l.Items) == 0 {
		sb.WriteString(l.NormalStyle.Render("Nothing matches"))
		return sb.String()
	}

	end := l.Offset + l.visibleRows()
	if end > len(l.Items) {
		end = len(l.Items)
	}

	for i := l.Offset; i < end; i++ {
		item := l.Items[i]

		marker := " "
		switch item.ID {
		case l.PlayingID:
			marker = "♪"
		case l.PreviewID:
			marker = "~"
		}
		line := fmt.Sprintf("%s %3d. %s - %s", marker, i+1, Truncate(item.Artist, 20), Truncate(item.Title, 30))
		if item.IsKaraoke() {
			line += " 🎤"
		}
		line = Truncate(line, l.Width-2)

		if i == l.Selected {
			sb.WriteString(l.SelectedStyle.Render(line))
		} else {
			sb.WriteString(l.NormalStyle.Render(line))
		}
		if tags := tagLabel(item); tags != "" && i == l.Selected {
			sb.WriteString(l.TagStyle.Render(" " + tags))
		}

		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	if len(l.Items) > l.visibleRows() {
		sb.WriteString("\n")
		sb.WriteString(l.NormalStyle.Render(fmt.Sprintf("  [%d/%d]", l.Selected+1, len(l.Items))))
	}

	return sb.String()
}

func tagLabel(item api.CatalogItem) string {
	var parts []string
	if item.Category != api.CategoryNone {
		parts = append(parts, string(item.Category))
	}
	if item.Mood != api.MoodNone {
		parts = append(parts, string(item.Mood))
	}
	return strings.Join(parts, " · ")
}

// Truncate shortens s to maxLen runes, ending with "..." when cut.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
