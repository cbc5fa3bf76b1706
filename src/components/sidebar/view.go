package sidebar

import (
	"fmt"
	"strings"

	"chatsim/src/utils"

	"github.com/charmbracelet/lipgloss"
)

const newChatLabel = "[+] New Chat"

// View renders the sidebar at its current size.
func (m *Model) View() string {
	if m.collapsed {
		return m.renderCollapsedView()
	}

	inner := m.width - 2
	if inner < 4 {
		inner = 4
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(inner))
	b.WriteString("\n\n")

	rows := m.visibleRows()
	end := m.scrollOffset + rows
	if end > len(m.items)+1 {
		end = len(m.items) + 1
	}
	for i := m.scrollOffset; i < end; i++ {
		if i == len(m.items) {
			b.WriteString(m.renderNewChat(inner))
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.renderItem(m.items[i], i, inner))
		b.WriteString("\n")
	}

	return m.style.Width(m.width).Height(m.height).Render(strings.TrimRight(b.String(), "\n"))
}

// renderCollapsedView renders the narrow sidebar used on small terminals.
func (m *Model) renderCollapsedView() string {
	content := "💬"
	if len(m.items) > 0 {
		content = fmt.Sprintf("💬%d", len(m.items))
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Top).
		Render(content)
}

func (m *Model) renderHeader(width int) string {
	title := "Chats"
	if len(m.items) > 0 {
		title = fmt.Sprintf("Chats (%d)", len(m.items))
	}
	if m.focused {
		title = "▸ " + title
	}
	return m.headerStyle.Render(truncate(title, width))
}

func (m *Model) renderItem(item Item, idx, width int) string {
	marker := "  "
	style := m.itemStyle
	if item.ID == m.activeID {
		marker = "● "
		style = m.activeStyle
	}
	if m.focused && idx == m.cursor {
		style = m.selectedStyle
	}

	title := style.Render(truncate(marker+item.Title, width))

	meta := fmt.Sprintf("  %d msgs · %s", item.Count, utils.FormatRelative(item.UpdatedAt, m.now()))
	if item.Pending {
		meta += " · …"
	}
	return title + "\n" + m.metaStyle.Render(truncate(meta, width))
}

func (m *Model) renderNewChat(width int) string {
	style := m.metaStyle
	if m.focused && m.cursor == len(m.items) {
		style = m.selectedStyle
	}
	return style.Render(truncate("  "+newChatLabel, width))
}

// truncate shortens s to at most width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
