// Package sidebar renders the conversation list and turns key presses into list intents.
package sidebar

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item is one conversation as the sidebar shows it.
type Item struct {
	ID        string
	Title     string
	Count     int
	UpdatedAt time.Time
	Pending   bool
}

// SelectIntent asks the application to show a conversation.
type SelectIntent struct{ ID string }

// DeleteIntent asks the application to delete a conversation.
type DeleteIntent struct{ ID string }

// NewConversationIntent asks the application to start a conversation.
type NewConversationIntent struct{}

// KeyMap holds the sidebar key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Home   key.Binding
	End    key.Binding
	Select key.Binding
	Delete key.Binding
	New    key.Binding
}

// DefaultKeyMap returns the sidebar bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Home:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first")),
		End:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open chat")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete chat")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new chat")),
	}
}

// Model manages the sidebar list, cursor, and scroll position.
// The last row (index len(items)) is the "New Chat" entry.
type Model struct {
	items        []Item
	activeID     string
	cursor       int
	scrollOffset int
	width        int
	height       int
	focused      bool
	collapsed    bool
	keys         KeyMap
	now          func() time.Time

	style         lipgloss.Style
	headerStyle   lipgloss.Style
	itemStyle     lipgloss.Style
	activeStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	metaStyle     lipgloss.Style
}

// New creates an empty sidebar.
func New() *Model {
	return &Model{
		width:         24,
		height:        20,
		keys:          DefaultKeyMap(),
		now:           time.Now,
		style:         lipgloss.NewStyle().Padding(0, 1),
		headerStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		itemStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		activeStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		selectedStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")),
		metaStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// SetClock replaces the clock used for relative timestamps.
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
}

// KeyMap returns the sidebar bindings.
func (m *Model) KeyMap() KeyMap {
	return m.keys
}

// SetItems replaces the list. The cursor follows the active conversation when the
// list changes shape so a newly created chat is highlighted.
func (m *Model) SetItems(items []Item, activeID string) {
	prevLen := len(m.items)
	prevActive := m.activeID
	m.items = items
	m.activeID = activeID

	if len(items) != prevLen || activeID != prevActive {
		if idx := m.indexOf(activeID); idx >= 0 {
			m.cursor = idx
		}
	}
	if m.cursor > len(m.items) {
		m.cursor = len(m.items)
	}
	m.adjustScrollOffset()
}

// SetSize sets the pane size and whether the collapsed form is shown.
func (m *Model) SetSize(width, height int, collapsed bool) {
	m.width = width
	m.height = height
	m.collapsed = collapsed
	m.adjustScrollOffset()
}

func (m *Model) Focus()        { m.focused = true }
func (m *Model) Blur()         { m.focused = false }
func (m *Model) Focused() bool { return m.focused }

// Cursor returns the index of the highlighted row.
func (m *Model) Cursor() int {
	return m.cursor
}

// Selected returns the highlighted conversation. It reports false on the "New Chat" row.
func (m *Model) Selected() (Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return Item{}, false
	}
	return m.items[m.cursor], true
}

// Update handles navigation keys and returns a command carrying any intent.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return nil
	}

	rows := len(m.items) + 1
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor = (m.cursor - 1 + rows) % rows
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor = (m.cursor + 1) % rows
	case key.Matches(keyMsg, m.keys.Home):
		m.cursor = 0
	case key.Matches(keyMsg, m.keys.End):
		m.cursor = rows - 1
	case key.Matches(keyMsg, m.keys.New):
		return emit(NewConversationIntent{})
	case key.Matches(keyMsg, m.keys.Select):
		if item, ok := m.Selected(); ok {
			return emit(SelectIntent{ID: item.ID})
		}
		return emit(NewConversationIntent{})
	case key.Matches(keyMsg, m.keys.Delete):
		if item, ok := m.Selected(); ok {
			return emit(DeleteIntent{ID: item.ID})
		}
	}
	m.adjustScrollOffset()
	return nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m *Model) indexOf(id string) int {
	for i, item := range m.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// visibleRows is the number of list rows that fit under the header.
// Each conversation takes two lines (title, meta).
func (m *Model) visibleRows() int {
	rows := (m.height - 2) / 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

// adjustScrollOffset keeps the cursor inside the visible window.
func (m *Model) adjustScrollOffset() {
	rows := m.visibleRows()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+rows {
		m.scrollOffset = m.cursor - rows + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}
