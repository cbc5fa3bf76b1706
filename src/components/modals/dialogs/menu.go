// menu.go - MenuModal shows a vertical list of options in a modal dialog.

package dialogs

import (
	"strings"

	"chatsim/src/components/modals"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuModal is a reusable modal for picking one entry from a list.
type MenuModal struct {
	Title    string
	Options  []modals.ModalOption
	Selected int
}

// NewMenuModal creates a MenuModal.
func NewMenuModal(title string, options []modals.ModalOption) *MenuModal {
	return &MenuModal{Title: title, Options: options}
}

// Update handles up/down to navigate, enter to select, esc to close.
func (m *MenuModal) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if len(m.Options) > 0 {
			m.Selected = (m.Selected + len(m.Options) - 1) % len(m.Options)
		}
	case "down", "j":
		if len(m.Options) > 0 {
			m.Selected = (m.Selected + 1) % len(m.Options)
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Options) {
			return modals.Close(m.Options[m.Selected].Msg)
		}
		return modals.Close(nil)
	case "esc":
		return modals.Close(nil)
	}
	return nil
}

// ViewRegion renders the menu centered in the given region. The title sits above the
// options and the selected option is highlighted.
func (m *MenuModal) ViewRegion(regionWidth, regionHeight int) string {
	title := lipgloss.NewStyle().Bold(true).Render(m.Title)
	var opts strings.Builder
	if len(m.Options) == 0 {
		opts.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("Nothing here yet"))
	}
	// Only the rows that fit are drawn, keeping the selection in view.
	rows := max(regionHeight-8, 1)
	start := 0
	if m.Selected >= rows {
		start = m.Selected - rows + 1
	}
	for i := start; i < len(m.Options) && i < start+rows; i++ {
		style := lipgloss.NewStyle().Padding(0, 2)
		if i == m.Selected {
			style = style.Bold(true).Foreground(lipgloss.Color("33")).Background(lipgloss.Color("236"))
		}
		opts.WriteString(style.Render(m.Options[i].Label) + "\n")
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("245")).
		Padding(1, 2).
		Render(title + "\n\n" + strings.TrimRight(opts.String(), "\n"))
	return lipgloss.Place(regionWidth, regionHeight, lipgloss.Center, lipgloss.Center, box)
}
