package app

import (
	"fmt"
	"strings"

	"chatsim/src/utils"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Padding(0, 1)
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// View renders the application.
func (a *App) View() string {
	if a.layout.IsTooSmall() {
		return a.renderMinimalView()
	}
	if a.modal != nil {
		return a.modal.ViewRegion(a.width, a.height)
	}

	headerWidth, _ := a.layout.GetHeaderDimensions()
	_, bodyHeight := a.layout.GetSidebarDimensions()
	footerWidth, _ := a.layout.GetFooterDimensions()

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(headerWidth),
		a.renderMainContent(bodyHeight),
		a.renderFooter(footerWidth),
	)
}

// renderMinimalView renders a minimal view for very small terminals
func (a *App) renderMinimalView() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Align(lipgloss.Center, lipgloss.Center).
		Width(a.width).
		Height(a.height).
		Render("Terminal too small")
}

func (a *App) renderHeader(width int) string {
	n := len(a.session.Conversations())
	title := fmt.Sprintf("Chat · %d %s", n, utils.Plural(n, "conversation", "conversations"))
	return headerStyle.Width(width).MaxHeight(1).Render(title)
}

func (a *App) renderMainContent(height int) string {
	separator := separatorStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", max(height, 1)), "\n"))
	chatColumn := lipgloss.JoinVertical(lipgloss.Left, a.chatView.Render(), a.input.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, a.sidebar.View(), separator, chatColumn)
}

func (a *App) renderFooter(width int) string {
	if a.status != "" && a.statusIsError {
		return errorStyle.Width(width).MaxHeight(1).Render(a.status)
	}

	var hints []string
	for _, b := range a.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	text := strings.Join(hints, " | ")
	if status := a.statusText(); status != "" {
		text = status + "  ·  " + text
	}
	return footerStyle.Width(width).MaxHeight(1).Render(text)
}
