package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/mediacore/api"
	"github.com/jscyril/mediacore/internal/config"
	"github.com/jscyril/mediacore/internal/playback"
	"github.com/jscyril/mediacore/internal/ui/views"
)

// Model is the main bubbletea model
type Model struct {
	// Dimensions
	width  int
	height int

	// Views
	playerView  views.PlayerView
	catalogView views.CatalogView

	controller *playback.Controller
	events     <-chan api.Event
	keys       config.KeyMap

	// hover drives the preview channel when set
	hover bool

	// State
	ctx    context.Context
	cancel context.CancelFunc
	notice *api.Notice
	err    error

	// Styles
	headerStyle lipgloss.Style
	hintStyle   lipgloss.Style
}

// EventMsg wraps a controller event
type EventMsg api.Event

// ErrMsg reports a failed controller call
type ErrMsg struct{ Err error }

// NewModel creates a new application model
func NewModel(ctl *playback.Controller, keys config.KeyMap) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		width:      80,
		height:     24,
		controller: ctl,
		events:     ctl.Bus().SubscribeAll(),
		keys:       keys,
		hover:      true,
		ctx:        ctx,
		cancel:     cancel,
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1),
		hintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1),
	}

	m.playerView = views.NewPlayerView(m.width, 10)
	m.catalogView = views.NewCatalogView(m.width, m.height-12)
	m.catalogView.SetItems(ctl.Catalog())
	m.playerView.SetSession(ctl.Performance())
	m.playerView.SetPreview(ctl.Preview())

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.listenForEvents()
}

// listenForEvents waits for the next controller event
func (m Model) listenForEvents() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		select {
		case e, ok := <-events:
			if !ok {
				return nil
			}
			return EventMsg(e)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// call runs a controller operation off the UI goroutine; media opens may block.
func (m Model) call(fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := fn(ctx); err != nil {
			return ErrMsg{Err: err}
		}
		return nil
	}
}

func (m Model) previewHovered() tea.Cmd {
	if !m.hover {
		return nil
	}
	item := m.catalogView.Hovered()
	if item == nil {
		return nil
	}
	id := item.ID
	return m.call(func(ctx context.Context) error {
		return m.controller.StartPreview(ctx, id)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewSizes()

	case EventMsg:
		m.applyEvent(api.Event(msg))
		cmds = append(cmds, m.listenForEvents())

	case ErrMsg:
		m.err = msg.Err

	case tea.KeyMsg:
		// While searching every key except ctrl+c edits the query
		if m.catalogView.Searching {
			if msg.String() == "ctrl+c" {
				return m.quit()
			}
			var moved bool
			m.catalogView, moved = m.catalogView.Update(msg, m.catalogKeys())
			if moved {
				cmds = append(cmds, m.previewHovered())
			}
			return m, tea.Batch(cmds...)
		}

		switch msg.String() {
		case m.keys.Quit, "ctrl+c":
			return m.quit()

		case m.keys.PlayPause:
			cmds = append(cmds, m.call(func(ctx context.Context) error {
				if m.controller.Performance().State == api.SessionIdle {
					return m.controller.Play(ctx)
				}
				return m.controller.TogglePause()
			}))

		case m.keys.Stop:
			m.controller.Stop()

		case m.keys.Next:
			cmds = append(cmds, m.call(m.controller.Next))

		case m.keys.Previous:
			cmds = append(cmds, m.call(m.controller.Previous))

		case m.keys.VolumeUp, "=":
			m.controller.SetVolume(m.controller.Volume() + 10)

		case m.keys.VolumeDown:
			m.controller.SetVolume(m.controller.Volume() - 10)

		case m.keys.SeekForward:
			m.controller.Seek(m.controller.Performance().Channel.PositionPercent + 5)

		case m.keys.SeekBack:
			m.controller.Seek(m.controller.Performance().Channel.PositionPercent - 5)

		case m.keys.Preview:
			m.hover = !m.hover
			if m.hover {
				cmds = append(cmds, m.previewHovered())
			} else {
				m.controller.StopPreview()
			}

		case "esc":
			m.controller.StopPreview()
			m.notice = nil
			m.err = nil

		case "enter":
			if item := m.catalogView.Hovered(); item != nil {
				id := item.ID
				cmds = append(cmds, m.call(func(ctx context.Context) error {
					return m.controller.Select(ctx, id)
				}))
			}

		default:
			var moved bool
			m.catalogView, moved = m.catalogView.Update(msg, m.catalogKeys())
			if moved {
				cmds = append(cmds, m.previewHovered())
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) catalogKeys() views.KeyMap {
	return views.KeyMap{Search: m.keys.Search, Category: m.keys.Category, Mood: m.keys.Mood}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

// applyEvent folds a controller event into the views
func (m *Model) applyEvent(e api.Event) {
	switch p := e.Payload.(type) {
	case api.PerformanceSession:
		m.playerView.SetSession(p)
		m.refreshMarkers()
	case api.PreviewSession:
		m.playerView.SetPreview(p)
		m.refreshMarkers()
	case api.Progress:
		m.playerView.SetProgress(p)
	case api.LyricUpdate:
		m.playerView.SetLyrics(p)
	case api.Notice:
		m.notice = &p
	}
}

func (m *Model) refreshMarkers() {
	var playing, preview string
	if item := m.playerView.Session.Item; item != nil {
		playing = item.ID
	}
	if item := m.playerView.Preview.Item; item != nil {
		preview = item.ID
	}
	m.catalogView.SetMarkers(playing, preview)
}

// updateViewSizes updates view dimensions
func (m *Model) updateViewSizes() {
	m.playerView.SetWidth(m.width)
	m.catalogView.SetSize(m.width, m.height-14)
}

// View renders the UI
func (m Model) View() string {
	var sb string

	sb += m.headerStyle.Render("mediacore")
	if m.hover {
		sb += m.hintStyle.Render("hover preview on [" + m.keys.Preview + "]")
	} else {
		sb += m.hintStyle.Render("hover preview off [" + m.keys.Preview + "]")
	}
	sb += "\n"

	sb += m.playerView.View()
	sb += "\n"
	sb += m.catalogView.View()
	sb += "\n"
	sb += m.hintStyle.Render(fmt.Sprintf(
		"[%s] Play/Pause  [%s] Stop  [%s/%s] Next/Prev  [%s/%s] Volume  [%s/%s] Seek  [%s] Quit",
		keyLabel(m.keys.PlayPause), m.keys.Stop, m.keys.Next, m.keys.Previous,
		m.keys.VolumeUp, m.keys.VolumeDown, m.keys.SeekBack, m.keys.SeekForward, m.keys.Quit,
	))

	if m.notice != nil {
		sb += "\n" + noticeStyle(m.notice.Level).Render(m.notice.Title+": "+m.notice.Message)
	}
	if m.err != nil {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
		sb += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return sb
}

func keyLabel(k string) string {
	if k == " " {
		return "Space"
	}
	return k
}

func noticeStyle(level api.NoticeLevel) lipgloss.Style {
	color := "86"
	switch level {
	case api.NoticeWarning:
		color = "214"
	case api.NoticeError:
		color = "196"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Run starts the bubbletea program
func Run(ctl *playback.Controller, keys config.KeyMap) error {
	model := NewModel(ctl, keys)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	model.cancel()
	return err
}
