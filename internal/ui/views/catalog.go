package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/mediacore/api"
	"github.com/jscyril/mediacore/internal/catalog"
	"github.com/jscyril/mediacore/internal/ui/components"
)

// CatalogView lists the catalog with a live search and tag filters.
type CatalogView struct {
	Width       int
	Height      int
	List        components.ItemList
	SearchBar   components.SearchInput
	Searching   bool
	All         []api.CatalogItem
	BorderStyle lipgloss.Style
	HelpStyle   lipgloss.Style
}

// NewCatalogView creates a new catalog view
func NewCatalogView(width, height int) CatalogView {
	list := components.NewItemList(height-8, width-6)
	list.Title = "🎵 Catalog"

	return CatalogView{
		Width:     width,
		Height:    height,
		List:      list,
		SearchBar: components.NewSearchInput(width - 6),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2),
		HelpStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// SetSize resizes the view
func (v *CatalogView) SetSize(width, height int) {
	v.Width = width
	v.Height = height
	v.List.Width = width - 6
	v.List.Height = height - 8
	v.SearchBar.Width = width - 6
}

// SetItems sets the full catalog and reapplies the current search
func (v *CatalogView) SetItems(items []api.CatalogItem) {
	v.All = items
	v.applyFilter()
}

// SetMarkers flags the performing and previewing items in the list
func (v *CatalogView) SetMarkers(playingID, previewID string) {
	v.List.PlayingID = playingID
	v.List.PreviewID = previewID
}

// Update handles keys. It reports whether the hovered item changed.
func (v CatalogView) Update(msg tea.Msg, keys KeyMap) (CatalogView, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, false
	}
	before := v.hoveredID()

	if v.Searching {
		switch key.String() {
		case "enter", "esc":
			v.Searching = false
			v.SearchBar.Blur()
		default:
			var changed bool
			v.SearchBar, changed = v.SearchBar.Update(msg)
			if changed {
				v.applyFilter()
			}
		}
		return v, v.hoveredID() != before
	}

	switch key.String() {
	case keys.Search:
		v.Searching = true
		v.SearchBar.Focus()
	case keys.Category:
		v.SearchBar.CycleCategory()
		v.applyFilter()
	case keys.Mood:
		v.SearchBar.CycleMood()
		v.applyFilter()
	default:
		v.List, _ = v.List.Update(msg)
	}
	return v, v.hoveredID() != before
}

// KeyMap holds the catalog view's bindings
type KeyMap struct {
	Search   string
	Category string
	Mood     string
}

func (v *CatalogView) applyFilter() {
	v.List.SetItems(catalog.Filter(v.All, v.SearchBar.Query(), v.SearchBar.Filters))
}

func (v CatalogView) hoveredID() string {
	if item := v.List.SelectedItem(); item != nil {
		return item.ID
	}
	return ""
}

// Hovered returns the item under the cursor
func (v *CatalogView) Hovered() *api.CatalogItem {
	return v.List.SelectedItem()
}

// View renders the catalog view
func (v CatalogView) View() string {
	var sb strings.Builder

	sb.WriteString(v.SearchBar.View())
	sb.WriteString("\n")
	sb.WriteString(v.List.View())
	sb.WriteString("\n\n")

	if v.Searching {
		sb.WriteString(v.HelpStyle.Render("[Enter] Confirm  [Esc] Done"))
	} else {
		sb.WriteString(v.HelpStyle.Render("[/] Search  [c] Category  [m] Mood  [Enter] Play  [↑↓] Browse"))
	}

	return v.BorderStyle.Width(v.Width - 4).Render(sb.String())
}
