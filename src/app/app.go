// Package app is the Bubble Tea model that ties the chat session to the terminal panes.
package app

import (
	"fmt"
	"log/slog"

	"chatsim/src/components/chatwindow"
	"chatsim/src/components/common"
	"chatsim/src/components/input"
	"chatsim/src/components/modals"
	"chatsim/src/components/modals/dialogs"
	"chatsim/src/components/sidebar"
	"chatsim/src/services/chat"
	"chatsim/src/utils"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Focus identifies the pane receiving keystrokes.
type Focus int

const (
	FocusInput Focus = iota
	FocusSidebar
)

func (f Focus) String() string {
	if f == FocusSidebar {
		return "sidebar"
	}
	return "input"
}

type deleteConfirmedMsg struct{ ID string }

type quitConfirmedMsg struct{}

// App implements tea.Model.
type App struct {
	session  *chat.Session
	layout   *common.ResponsiveLayout
	sidebar  *sidebar.Model
	chatView *chatwindow.View
	input    *input.Model
	spinner  spinner.Model
	keys     KeyMap
	logger   *slog.Logger
	copyText func(string) error

	modal          modals.Modal
	confirmingQuit bool
	focus          Focus
	ticking        bool
	status         string
	statusIsError  bool
	width          int
	height         int
}

var _ tea.Model = (*App)(nil)

// Option customizes an App.
type Option func(*App)

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(a *App) { a.copyText = write }
}

// WithLayout replaces the default pane layout.
func WithLayout(cfg common.LayoutConfig) Option {
	return func(a *App) { a.layout = common.NewResponsiveLayout(cfg) }
}

// New creates the application around a session.
func New(session *chat.Session, opts ...Option) *App {
	a := &App{
		session:  session,
		layout:   common.NewResponsiveLayout(common.DefaultLayoutConfig()),
		sidebar:  sidebar.New(),
		chatView: chatwindow.New(),
		input:    input.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		keys:     DefaultKeyMap(),
		logger:   slog.Default(),
		copyText: clipboard.WriteAll,
		width:    80,
		height:   24,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.setFocus(FocusInput)
	a.resize(a.width, a.height)
	a.refresh()
	return a
}

// Init starts the cursor blinking in the composer.
func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("Chat"), textinput.Blink)
}

// Update routes messages to the session and the panes.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		a.logger.Debug("Window resized", "width", msg.Width, "height", msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.MouseMsg:
		return a, a.chatView.Update(msg)

	case spinner.TickMsg:
		if !a.session.Loading() {
			a.ticking = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.chatView.SetSpinner(a.spinner.View())
		return a, cmd

	case chat.ReplyMsg:
		if err := a.session.HandleReply(msg); err != nil {
			a.setStatus(err.Error(), true)
		}
		a.refresh()
		return a, nil

	case input.SubmitIntent:
		a.clearStatus()
		cmd := a.session.SendMessage(msg.Text)
		a.refresh()
		return a, tea.Batch(cmd, a.startSpinner())

	case sidebar.SelectIntent:
		a.clearStatus()
		a.session.SelectConversation(msg.ID)
		a.refresh()
		return a, a.setFocus(FocusInput)

	case sidebar.NewConversationIntent:
		a.clearStatus()
		a.session.CreateConversation()
		a.refresh()
		return a, a.setFocus(FocusInput)

	case sidebar.DeleteIntent:
		a.openDeleteConfirmation(msg.ID)
		return a, nil

	case deleteConfirmedMsg:
		a.session.DeleteConversation(msg.ID)
		a.setStatus("Chat deleted", false)
		a.refresh()
		return a, nil

	case quitConfirmedMsg:
		a.logger.Info("Quit confirmed")
		return a, tea.Quit

	case modals.ClosedMsg:
		a.modal = nil
		a.confirmingQuit = false
		if msg.Result != nil {
			return a.Update(msg.Result)
		}
		return a, nil
	}

	if a.focus == FocusInput {
		return a, a.input.Update(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.modal != nil {
		if a.confirmingQuit && key.Matches(msg, a.keys.Quit) {
			return tea.Quit
		}
		return a.modal.Update(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.openQuitConfirmation()
		return nil
	case key.Matches(msg, a.keys.Help), a.focus == FocusSidebar && msg.String() == "?":
		a.openHelp()
		return nil
	case key.Matches(msg, a.keys.SwitchFocus):
		if a.focus == FocusInput {
			return a.setFocus(FocusSidebar)
		}
		return a.setFocus(FocusInput)
	case key.Matches(msg, a.keys.New):
		return func() tea.Msg { return sidebar.NewConversationIntent{} }
	case key.Matches(msg, a.keys.Delete):
		if id := a.session.ActiveID(); id != "" {
			a.openDeleteConfirmation(id)
		}
		return nil
	case key.Matches(msg, a.keys.Jump):
		a.openJumpMenu()
		return nil
	case key.Matches(msg, a.keys.Copy):
		a.copyLastReply()
		return nil
	case key.Matches(msg, a.chatView.KeyMap().PageUp, a.chatView.KeyMap().PageDown):
		return a.chatView.Update(msg)
	}

	if a.focus == FocusSidebar {
		return a.sidebar.Update(msg)
	}
	return a.input.Update(msg)
}

func (a *App) setFocus(f Focus) tea.Cmd {
	a.focus = f
	if f == FocusSidebar {
		a.input.Blur()
		a.sidebar.Focus()
		return nil
	}
	a.sidebar.Blur()
	return a.input.Focus()
}

// Focus returns the pane receiving keystrokes.
func (a *App) Focus() Focus {
	return a.focus
}

// Status returns the status line and whether it reports an error.
func (a *App) Status() (string, bool) {
	return a.status, a.statusIsError
}

// Modal returns the open modal, if any.
func (a *App) Modal() modals.Modal {
	return a.modal
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusIsError = isError
}

func (a *App) clearStatus() {
	a.setStatus("", false)
}

func (a *App) startSpinner() tea.Cmd {
	if a.ticking || !a.session.Loading() {
		return nil
	}
	a.ticking = true
	return a.spinner.Tick
}

func (a *App) openDeleteConfirmation(id string) {
	title := id
	for _, conv := range a.session.Conversations() {
		if conv.ID == id {
			title = conv.Title
			break
		}
	}
	a.modal = dialogs.NewConfirmationModal(
		fmt.Sprintf("Delete %q?", title),
		modals.ModalOption{Label: "Delete", Msg: deleteConfirmedMsg{ID: id}},
		modals.ModalOption{Label: "Cancel"},
	)
}

func (a *App) openQuitConfirmation() {
	a.confirmingQuit = true
	a.modal = dialogs.NewConfirmationModal(
		"Quit chat?",
		modals.ModalOption{Label: "Quit", Msg: quitConfirmedMsg{}},
		modals.ModalOption{Label: "Cancel"},
	)
}

func (a *App) openHelp() {
	sb := a.sidebar.KeyMap()
	cw := a.chatView.KeyMap()
	a.modal = dialogs.NewHelpModal("Keyboard shortcuts",
		dialogs.HelpSection{Title: "General", Bindings: []key.Binding{
			a.keys.SwitchFocus, a.keys.New, a.keys.Delete, a.keys.Jump, a.keys.Copy, a.keys.Help, a.keys.Quit,
		}},
		dialogs.HelpSection{Title: "Conversations", Bindings: []key.Binding{
			sb.Up, sb.Down, sb.Select, sb.New, sb.Delete,
		}},
		dialogs.HelpSection{Title: "Messages", Bindings: []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send message")),
			cw.PageUp, cw.PageDown,
		}},
	)
}

func (a *App) openJumpMenu() {
	convs := a.session.Conversations()
	options := make([]modals.ModalOption, 0, len(convs))
	selected := 0
	for i, conv := range convs {
		if conv.ID == a.session.ActiveID() {
			selected = i
		}
		options = append(options, modals.ModalOption{
			Label: fmt.Sprintf("%s (%d)", conv.Title, conv.MessageCount()),
			Msg:   sidebar.SelectIntent{ID: conv.ID},
		})
	}
	menu := dialogs.NewMenuModal("Jump to chat", options)
	menu.Selected = selected
	a.modal = menu
}

func (a *App) copyLastReply() {
	conv, ok := a.session.ActiveConversation()
	if !ok {
		a.setStatus("No conversation selected", false)
		return
	}
	reply, ok := conv.LastReply()
	if !ok {
		a.setStatus("No reply to copy yet", false)
		return
	}
	if err := a.copyText(reply.Text); err != nil {
		a.logger.Warn("Clipboard write failed", "error", err)
		a.setStatus("Clipboard unavailable: "+err.Error(), true)
		return
	}
	a.setStatus("Copied last reply", false)
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.layout.UpdateSize(width, height)

	sbW, bodyH := a.layout.GetSidebarDimensions()
	cW, _ := a.layout.GetContentDimensions()
	a.sidebar.SetSize(sbW, bodyH, a.layout.IsSidebarCollapsed())
	a.chatView.SetSize(cW, max(bodyH-a.input.Height(), 1))
	a.input.SetWidth(cW)
}

// refresh pushes the session state into the panes.
func (a *App) refresh() {
	convs := a.session.Conversations()
	items := make([]sidebar.Item, 0, len(convs))
	for _, conv := range convs {
		items = append(items, sidebar.Item{
			ID:        conv.ID,
			Title:     conv.Title,
			Count:     conv.MessageCount(),
			UpdatedAt: conv.UpdatedAt,
			Pending:   a.session.IsPending(conv.ID),
		})
	}
	a.sidebar.SetItems(items, a.session.ActiveID())

	conv, ok := a.session.ActiveConversation()
	pending := ok && a.session.IsPending(conv.ID)
	a.chatView.SetConversation(conv, ok, pending)
	a.input.SetDisabled(pending)
}

// pendingCount is the number of conversations waiting for a reply.
func (a *App) pendingCount() int {
	n := 0
	for _, conv := range a.session.Conversations() {
		if a.session.IsPending(conv.ID) {
			n++
		}
	}
	return n
}

// statusText is the footer message, falling back to key hints.
func (a *App) statusText() string {
	if a.status != "" {
		return a.status
	}
	if n := a.pendingCount(); n > 0 {
		return fmt.Sprintf("%s waiting for %d %s", a.spinner.View(), n, utils.Plural(n, "reply", "replies"))
	}
	return ""
}
