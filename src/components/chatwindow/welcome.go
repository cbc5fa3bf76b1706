package chatwindow

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
)

var (
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	welcomeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	newChatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
)

// banner returns the ASCII art title, or nothing when it does not fit.
func banner(width int) string {
	art := strings.Trim(figure.NewFigure("CHAT", "", true).String(), "\n")
	if lipgloss.Width(art) > width {
		return ""
	}
	return bannerStyle.Render(art)
}

// renderWelcome renders the screen shown when no conversation is active.
func renderWelcome(width, height int) string {
	parts := []string{}
	if art := banner(width); art != "" && height >= 14 {
		parts = append(parts, art, "")
	}
	parts = append(parts,
		welcomeStyle.Render("Welcome to Chat"),
		hintStyle.Render("Start a new conversation to begin chatting"),
		"",
		newChatStyle.Render("+ New Chat")+hintStyle.Render("  ctrl+n"),
	)

	block := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
