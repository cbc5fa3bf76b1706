// Package input is the message composer below the chat window.
package input

import (
	"chatsim/src/utils"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	Placeholder = "Type your message..."
	sendLabel   = "Send"
	sendingText = "Sending..."
	charLimit   = 4000
)

// SubmitIntent carries text the user asked to send.
type SubmitIntent struct{ Text string }

// Model wraps a text input with a send button.
type Model struct {
	textInput textinput.Model
	submit    key.Binding
	disabled  bool
	width     int

	boxStyle      lipgloss.Style
	focusBoxStyle lipgloss.Style
	buttonStyle   lipgloss.Style
	idleStyle     lipgloss.Style
}

// New creates a composer.
func New() *Model {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "› "
	ti.CharLimit = charLimit

	return &Model{
		textInput: ti,
		submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		width:     60,
		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		focusBoxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1),
		buttonStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		idleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Padding(0, 1),
	}
}

// Height is the number of rows the composer occupies.
func (m *Model) Height() int {
	return 3
}

// SetWidth sets the outer width including border and button.
func (m *Model) SetWidth(width int) {
	m.width = width
	// Border, padding, prompt, and the button take the rest.
	m.textInput.Width = max(width-4-lipgloss.Width(m.textInput.Prompt)-lipgloss.Width(m.renderButton())-2, 1)
}

// Focus gives the composer keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.textInput.Focus()
}

func (m *Model) Blur()         { m.textInput.Blur() }
func (m *Model) Focused() bool { return m.textInput.Focused() }

// SetDisabled toggles the sending state. Keystrokes are ignored while disabled.
func (m *Model) SetDisabled(disabled bool) {
	m.disabled = disabled
}

// Disabled reports whether the composer is in the sending state.
func (m *Model) Disabled() bool {
	return m.disabled
}

// Value returns the current buffer.
func (m *Model) Value() string {
	return m.textInput.Value()
}

// SetValue replaces the buffer.
func (m *Model) SetValue(s string) {
	m.textInput.SetValue(s)
}

// Update edits the buffer. Enter with non-blank text clears the buffer and emits a SubmitIntent.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.disabled || !m.textInput.Focused() {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.submit) {
		text := m.textInput.Value()
		if utils.IsBlank(text) {
			return nil
		}
		m.textInput.Reset()
		return func() tea.Msg { return SubmitIntent{Text: text} }
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return cmd
}

// View renders the composer.
func (m *Model) View() string {
	box := m.boxStyle
	if m.textInput.Focused() {
		box = m.focusBoxStyle
	}

	field := m.textInput.View()
	if m.disabled {
		field = m.idleStyle.Render(sendingText)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.NewStyle().Width(max(m.width-4-lipgloss.Width(m.renderButton()), 1)).Render(field),
		m.renderButton(),
	)
	return box.Width(max(m.width-2, 1)).Render(row)
}

func (m *Model) renderButton() string {
	if m.disabled {
		return m.idleStyle.Render(sendLabel)
	}
	return m.buttonStyle.Render(sendLabel)
}
