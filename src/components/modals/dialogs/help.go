// help.go - HelpModal lists key bindings in a modal dialog.

package dialogs

import (
	"fmt"
	"strings"

	"chatsim/src/components/modals"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpSection is a titled group of bindings.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpModal displays key bindings until any of esc, enter, q, or ? is pressed.
type HelpModal struct {
	Title    string
	Sections []HelpSection
}

// NewHelpModal creates a HelpModal.
func NewHelpModal(title string, sections ...HelpSection) *HelpModal {
	return &HelpModal{Title: title, Sections: sections}
}

// Update closes the modal on a dismiss key.
func (m *HelpModal) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "enter", "q", "?", "f1":
			return modals.Close(nil)
		}
	}
	return nil
}

// Content renders the bindings as aligned text.
func (m *HelpModal) Content() string {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true)

	width := 0
	for _, s := range m.Sections {
		for _, b := range s.Bindings {
			width = max(width, lipgloss.Width(b.Help().Key))
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.Title))
	for _, s := range m.Sections {
		b.WriteString("\n\n")
		b.WriteString(sectionStyle.Render(s.Title))
		for _, binding := range s.Bindings {
			if !binding.Enabled() {
				continue
			}
			h := binding.Help()
			b.WriteString("\n")
			b.WriteString(keyStyle.Render(fmt.Sprintf("%-*s", width, h.Key)))
			b.WriteString("  ")
			b.WriteString(h.Desc)
		}
	}
	return b.String()
}

// ViewRegion renders the help modal centered in the given region.
func (m *HelpModal) ViewRegion(regionWidth, regionHeight int) string {
	content := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("245")).
		Padding(1, 2).
		Render(m.Content())
	return lipgloss.Place(regionWidth, regionHeight, lipgloss.Center, lipgloss.Center, content)
}
