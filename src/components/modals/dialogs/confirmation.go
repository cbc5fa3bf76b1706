// confirmation.go - ConfirmationModal asks the user to pick one of 1-3 options.
// Left/right (or tab) move the selection, enter chooses, esc cancels.

package dialogs

import (
	"strings"

	"chatsim/src/components/modals"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationModal is a reusable modal for confirmation dialogs (1-3 options).
type ConfirmationModal struct {
	Message  string
	Options  []modals.ModalOption
	Selected int
}

// NewConfirmationModal creates a ConfirmationModal. It panics unless there are 1-3 options.
func NewConfirmationModal(message string, options ...modals.ModalOption) *ConfirmationModal {
	if len(options) < 1 || len(options) > 3 {
		panic("ConfirmationModal must have 1-3 options")
	}
	return &ConfirmationModal{Message: message, Options: options}
}

// Update moves the selection or closes the modal.
func (m *ConfirmationModal) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "left", "shift+tab", "h":
		m.Selected = (m.Selected + len(m.Options) - 1) % len(m.Options)
	case "right", "tab", "l":
		m.Selected = (m.Selected + 1) % len(m.Options)
	case "enter":
		return modals.Close(m.Options[m.Selected].Msg)
	case "esc":
		return modals.Close(nil)
	}
	return nil
}

// ViewRegion renders the modal centered in the given region.
func (m *ConfirmationModal) ViewRegion(regionWidth, regionHeight int) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("245")).
		Padding(1, 4).
		Align(lipgloss.Center)

	msg := lipgloss.NewStyle().Bold(true).Render(m.Message)
	var opts strings.Builder
	for i, opt := range m.Options {
		style := lipgloss.NewStyle().Padding(0, 2)
		if i == m.Selected {
			style = style.Bold(true).Foreground(lipgloss.Color("33")).Background(lipgloss.Color("236"))
		}
		opts.WriteString(style.Render(opt.Label))
	}
	box := boxStyle.Render(msg + "\n\n" + opts.String())
	return lipgloss.Place(regionWidth, regionHeight, lipgloss.Center, lipgloss.Center, box)
}
