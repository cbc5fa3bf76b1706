// Package modals defines the overlay contract shared by the dialogs package.
package modals

import tea "github.com/charmbracelet/bubbletea"

// ModalOption is one choice in a dialog. Msg is delivered to the application when the
// option is chosen.
type ModalOption struct {
	Label string
	Msg   tea.Msg
}

// ClosedMsg reports that the open modal finished. Result is nil when it was dismissed.
type ClosedMsg struct {
	Result tea.Msg
}

// Modal is an overlay that takes all keyboard input while open.
type Modal interface {
	Update(msg tea.Msg) tea.Cmd
	ViewRegion(regionWidth, regionHeight int) string
}

// Close returns a command that closes the open modal with the given result.
func Close(result tea.Msg) tea.Cmd {
	return func() tea.Msg { return ClosedMsg{Result: result} }
}
