// Package chatwindow renders the active conversation: header, message list, and typing indicator.
package chatwindow

import (
	"fmt"
	"strings"

	"chatsim/src/models"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const headerHeight = 2

// KeyMap holds the scrolling bindings. They work whatever pane has focus.
type KeyMap struct {
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the chat window bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	}
}

// View shows one conversation inside a scrollable viewport.
type View struct {
	viewport viewport.Model
	keys     KeyMap

	conv     models.Conversation
	hasConv  bool
	pending  bool
	frame    string
	width    int
	height   int
	rendered int

	headerStyle lipgloss.Style
	countStyle  lipgloss.Style
}

// New creates an empty chat window.
func New() *View {
	return &View{
		viewport:    viewport.New(60, 20),
		keys:        DefaultKeyMap(),
		frame:       "…",
		width:       60,
		height:      22,
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Padding(0, 1),
		countStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// KeyMap returns the scrolling bindings.
func (v *View) KeyMap() KeyMap {
	return v.keys
}

// SetSize resizes the window. Height includes the header.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-headerHeight, 1)
	v.refresh(true)
}

// SetConversation replaces what is shown. The view follows the bottom when the
// conversation changes or grows.
func (v *View) SetConversation(conv models.Conversation, ok, pending bool) {
	switched := !ok || !v.hasConv || conv.ID != v.conv.ID
	grew := conv.MessageCount() != v.rendered || pending != v.pending
	v.conv = conv
	v.hasConv = ok
	v.pending = ok && pending
	v.refresh(switched || grew)
}

// SetSpinner sets the frame drawn in the typing indicator.
func (v *View) SetSpinner(frame string) {
	v.frame = frame
	if v.pending {
		v.refresh(false)
	}
}

// Pending reports whether the typing indicator is shown.
func (v *View) Pending() bool {
	return v.pending
}

// Update scrolls the message list.
func (v *View) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.PageUp):
			v.viewport.ViewUp()
		case key.Matches(msg, v.keys.PageDown):
			v.viewport.ViewDown()
		}
		return nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return cmd
	}
	return nil
}

// AtBottom reports whether the newest message is visible.
func (v *View) AtBottom() bool {
	return v.viewport.AtBottom()
}

func (v *View) refresh(gotoBottom bool) {
	v.rendered = v.conv.MessageCount()
	if !v.hasConv {
		v.viewport.SetContent("")
		return
	}

	var b strings.Builder
	for i, msg := range v.conv.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(RenderBubble(msg, v.viewport.Width))
		b.WriteString("\n")
	}
	if v.pending {
		b.WriteString("\n")
		b.WriteString(renderTyping(v.frame, v.viewport.Width))
	}
	v.viewport.SetContent(b.String())
	if gotoBottom {
		v.viewport.GotoBottom()
	}
}

// Render draws the window at its current size.
func (v *View) Render() string {
	if !v.hasConv {
		return renderWelcome(v.width, v.height)
	}
	return lipgloss.JoinVertical(lipgloss.Left, v.renderHeader(), v.viewport.View())
}

func (v *View) renderHeader() string {
	count := fmt.Sprintf("%d messages", v.conv.MessageCount())
	if v.conv.MessageCount() == 1 {
		count = "1 message"
	}
	title := v.headerStyle.Render(v.conv.Title)
	line := lipgloss.JoinHorizontal(lipgloss.Top, title, v.countStyle.Render(count))
	rule := v.countStyle.Render(strings.Repeat("─", max(v.width, 1)))
	return lipgloss.JoinVertical(lipgloss.Left, lipgloss.NewStyle().MaxWidth(v.width).Render(line), rule)
}
