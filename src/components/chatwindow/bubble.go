package chatwindow

import (
	"strings"

	"chatsim/src/models"

	"github.com/charmbracelet/lipgloss"
)

const timeLayout = "15:04"

var (
	userBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)
	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	typingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true).Padding(0, 1)
)

// bubbleWidth is the widest a message body may grow inside a pane of the given width.
func bubbleWidth(width int) int {
	w := width * 3 / 4
	if w < 10 {
		w = 10
	}
	return w
}

// RenderBubble renders one message for a pane of the given width. User messages sit
// on the right inside a box; assistant messages sit on the left as plain text.
func RenderBubble(msg models.Message, width int) string {
	maxWidth := bubbleWidth(width)
	text := strings.TrimRight(msg.Text, "\n")
	stamp := timestampStyle.Render(msg.Timestamp.Format(timeLayout))

	if msg.IsUser() {
		// Border and padding take four columns.
		textWidth := lipgloss.Width(text)
		if textWidth > maxWidth-4 {
			textWidth = maxWidth - 4
		}
		body := userBubbleStyle.Width(textWidth + 2).Render(text)
		block := lipgloss.JoinVertical(lipgloss.Right, body, stamp)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}

	textWidth := lipgloss.Width(text)
	if textWidth > maxWidth-2 {
		textWidth = maxWidth - 2
	}
	body := assistantStyle.Width(textWidth + 2).Render(text)
	block := lipgloss.JoinVertical(lipgloss.Left, body, " "+stamp)
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, block)
}

// renderTyping renders the indicator shown while a reply is in flight.
func renderTyping(frame string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, typingStyle.Render(frame+" Assistant is typing..."))
}
