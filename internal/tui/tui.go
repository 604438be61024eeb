// Package tui provides a Bubble Tea terminal picker for RoonPipe search.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bluemancz/roonpipe-launcher/internal/launcher"
	"github.com/bluemancz/roonpipe-launcher/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7B68EE")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	subtextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// maxVisibleResults bounds the rendered list; navigation scrolls within it.
const maxVisibleResults = 10

// Message types
type (
	// debounceMsg fires after the input has been idle long enough to search.
	debounceMsg struct {
		gen int
	}

	// resultsMsg delivers the items for a completed search.
	resultsMsg struct {
		gen   int
		items []model.Item
	}

	// playedMsg is sent after a play command was dispatched.
	playedMsg struct {
		title string
		err   error
	}
)

// Model is the Bubble Tea model for the picker.
type Model struct {
	adapter   *launcher.Adapter
	textInput textinput.Model
	spinner   spinner.Model

	items     []model.Item
	selected  int
	offset    int
	searching bool
	status    string

	// gen guards against stale debounce ticks and search replies: every
	// keystroke bumps it, and messages carrying an older value are dropped.
	gen int

	width  int
	height int
}

// NewModel creates a picker model around the adapter.
func NewModel(adapter *launcher.Adapter) Model {
	ti := textinput.New()
	ti.Placeholder = "Search for tracks..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B68EE"))

	return Model{
		adapter:   adapter,
		textInput: ti,
		spinner:   sp,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "up", "ctrl+p":
			m.moveSelection(-1)
			return m, nil

		case "down", "ctrl+n":
			m.moveSelection(1)
			return m, nil

		case "enter":
			return m, m.playSelected()
		}

		// Any other key edits the query
		var cmd tea.Cmd
		before := m.textInput.Value()
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)

		if m.textInput.Value() != before {
			m.gen++
			m.status = ""
			if strings.TrimSpace(m.textInput.Value()) == "" {
				m.items = nil
				m.selected = 0
				m.offset = 0
				m.searching = false
			} else {
				gen := m.gen
				cmds = append(cmds, tea.Tick(m.adapter.Settings().Debounce(), func(_ time.Time) tea.Msg {
					return debounceMsg{gen: gen}
				}))
			}
		}

		return m, tea.Batch(cmds...)

	case debounceMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		query := strings.TrimSpace(m.textInput.Value())
		if query == "" {
			return m, nil
		}
		m.searching = true
		return m, tea.Batch(m.search(msg.gen, query), m.spinner.Tick)

	case resultsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.searching = false
		m.items = msg.items
		m.selected = 0
		m.offset = 0
		return m, nil

	case playedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Play failed: %v", msg.err))
			return m, nil
		}
		m.status = infoStyle.Render(fmt.Sprintf("Playing %s", msg.title))
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// search returns a command running one adapter query off the update loop.
func (m *Model) search(gen int, query string) tea.Cmd {
	adapter := m.adapter
	return func() tea.Msg {
		return resultsMsg{gen: gen, items: adapter.Query(context.Background(), query)}
	}
}

// playSelected dispatches the default action of the selected item.
func (m *Model) playSelected() tea.Cmd {
	if m.selected >= len(m.items) {
		return nil
	}
	item := m.items[m.selected]
	if !item.Playable() {
		return nil
	}

	adapter := m.adapter
	action := defaultAction(item, adapter.Settings().DefaultAction)
	title := item.Text
	return func() tea.Msg {
		return playedMsg{title: title, err: adapter.Activate(context.Background(), action)}
	}
}

func (m *Model) moveSelection(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.items) {
		m.selected = len(m.items) - 1
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+maxVisibleResults {
		m.offset = m.selected - maxVisibleResults + 1
	}
}

// defaultAction picks the preferred action for an item, mirroring
// Track.DefaultAction for already-built items.
func defaultAction(item model.Item, preferred string) model.Action {
	for _, a := range item.Actions {
		if strings.EqualFold(a.Title, preferred) {
			return a
		}
	}
	return item.Actions[0]
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("RoonPipe"))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(dimStyle.Render("Searching..."))
		b.WriteString("\n")
	case len(m.items) > 0:
		b.WriteString(m.viewResults())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter: play • ↑/↓: select • esc: quit"))

	return b.String()
}

func (m Model) viewResults() string {
	var b strings.Builder

	end := m.offset + maxVisibleResults
	if end > len(m.items) {
		end = len(m.items)
	}

	for i := m.offset; i < end; i++ {
		item := m.items[i]
		line := fmt.Sprintf("%s  %s", item.Text, subtextStyle.Render(item.Subtext))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if end < len(m.items) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", len(m.items)-end)))
		b.WriteString("\n")
	}

	return b.String()
}

// Run starts the picker.
func Run(adapter *launcher.Adapter) error {
	p := tea.NewProgram(NewModel(adapter), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
