package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"chatsim/src/components/input"
	"chatsim/src/components/modals/dialogs"
	"chatsim/src/components/sidebar"
	"chatsim/src/models"
	"chatsim/src/services/chat"
	"chatsim/src/services/responder"
	"chatsim/src/services/storage/repositories"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errResponder struct{}

func (errResponder) Respond(context.Context, responder.Request) (responder.Reply, error) {
	return responder.Reply{}, errors.New("backend down")
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) write(s string) error {
	if f.err != nil {
		return f.err
	}
	f.text = s
	return nil
}

func newTestApp(t *testing.T, resp responder.Responder) (*App, *fakeClipboard) {
	t.Helper()
	if resp == nil {
		resp = responder.NewCanned(responder.CannedConfig{
			Responses: []string{"canned reply"},
			Sleep:     responder.NoSleep,
		})
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	ids := 0
	session := chat.NewSession(repositories.NewMemoryConversationRepository(), resp,
		chat.WithLogger(logger),
		chat.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
		chat.WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		}),
	)
	cb := &fakeClipboard{}
	a := New(session, WithLogger(logger), WithClipboard(cb.write))
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return a, cb
}

// collect runs cmd and any batched commands, returning the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func replies(msgs []tea.Msg) []chat.ReplyMsg {
	var out []chat.ReplyMsg
	for _, m := range msgs {
		if r, ok := m.(chat.ReplyMsg); ok {
			out = append(out, r)
		}
	}
	return out
}

func send(t *testing.T, a *App, text string) chat.ReplyMsg {
	t.Helper()
	_, cmd := a.Update(input.SubmitIntent{Text: text})
	rs := replies(collect(cmd))
	require.Len(t, rs, 1)
	return rs[0]
}

// closeModal presses a key on the open modal and feeds the resulting ClosedMsg back.
func closeModal(t *testing.T, a *App, k tea.KeyMsg) tea.Cmd {
	t.Helper()
	require.NotNil(t, a.Modal())
	_, cmd := a.Update(k)
	require.NotNil(t, cmd)
	_, next := a.Update(cmd())
	return next
}

func TestTypingAndEnterSubmits(t *testing.T) {
	a, _ := newTestApp(t, nil)
	for _, r := range "hi" {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, input.SubmitIntent{Text: "hi"}, cmd())
}

func TestSendMessageRoundTrip(t *testing.T) {
	a, _ := newTestApp(t, nil)

	reply := send(t, a, "Hello world")
	conv, ok := a.session.ActiveConversation()
	require.True(t, ok)
	assert.Equal(t, "Hello world", conv.Title)
	assert.True(t, a.chatView.Pending())
	assert.True(t, a.input.Disabled())
	assert.Contains(t, a.View(), "Sending...")

	a.Update(reply)
	conv, _ = a.session.ActiveConversation()
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "canned reply", conv.Messages[1].Text)
	assert.False(t, a.chatView.Pending())
	assert.False(t, a.input.Disabled())
	assert.Contains(t, a.View(), "canned reply")
}

func TestRepliesAcrossConversationsAreKept(t *testing.T) {
	a, _ := newTestApp(t, nil)

	first := send(t, a, "first chat")
	firstID := a.session.ActiveID()

	a.Update(sidebar.NewConversationIntent{})
	assert.False(t, a.input.Disabled(), "only the displayed conversation blocks input")

	second := send(t, a, "second chat")
	secondID := a.session.ActiveID()
	require.NotEqual(t, firstID, secondID)

	a.Update(sidebar.SelectIntent{ID: firstID})
	assert.True(t, a.input.Disabled())

	a.Update(second)
	a.Update(first)

	for _, conv := range a.session.Conversations() {
		assert.Len(t, conv.Messages, 2, conv.ID)
	}
	assert.False(t, a.session.Loading())
}

func TestDeleteAskConfirmation(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.Update(send(t, a, "doomed"))
	id := a.session.ActiveID()

	a.Update(sidebar.DeleteIntent{ID: id})
	_, isConfirm := a.Modal().(*dialogs.ConfirmationModal)
	require.True(t, isConfirm)
	assert.Contains(t, a.View(), `Delete "doomed"?`)

	closeModal(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, a.Modal())
	assert.Empty(t, a.session.Conversations())
	assert.Empty(t, a.session.ActiveID())
	assert.Contains(t, a.View(), "Welcome to Chat")
}

func TestDeleteCancelled(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.Update(send(t, a, "keep me"))

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.NotNil(t, a.Modal())
	closeModal(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, a.session.Conversations(), 1)
}

func TestQuitConfirmation(t *testing.T) {
	a, _ := newTestApp(t, nil)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	require.NotNil(t, a.Modal())

	next := closeModal(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, next)
	assert.Equal(t, tea.QuitMsg{}, next())
}

func TestSecondCtrlCQuitsImmediately(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestTabSwitchesFocus(t *testing.T) {
	a, _ := newTestApp(t, nil)
	assert.Equal(t, FocusInput, a.Focus())

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusSidebar, a.Focus())
	assert.True(t, a.sidebar.Focused())
	assert.False(t, a.input.Focused())

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusInput, a.Focus())
}

func TestSidebarKeysEmitIntents(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, sidebar.NewConversationIntent{}, cmd())

	a.Update(sidebar.NewConversationIntent{})
	assert.Len(t, a.session.Conversations(), 1)
	assert.Equal(t, FocusInput, a.Focus())
	assert.Contains(t, a.View(), models.DefaultTitle)
}

func TestCtrlNCreatesConversation(t *testing.T) {
	a, _ := newTestApp(t, nil)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	require.NotNil(t, cmd)
	a.Update(cmd())
	assert.Len(t, a.session.Conversations(), 1)
}

func TestCopyLastReply(t *testing.T) {
	a, cb := newTestApp(t, nil)

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	status, _ := a.Status()
	assert.Equal(t, "No conversation selected", status)

	reply := send(t, a, "question")
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	status, _ = a.Status()
	assert.Equal(t, "No reply to copy yet", status)

	a.Update(reply)
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "canned reply", cb.text)
	status, isErr := a.Status()
	assert.Equal(t, "Copied last reply", status)
	assert.False(t, isErr)

	cb.err = errors.New("no display")
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	status, isErr = a.Status()
	assert.Contains(t, status, "no display")
	assert.True(t, isErr)
}

func TestResponderErrorShownInStatus(t *testing.T) {
	a, _ := newTestApp(t, errResponder{})

	reply := send(t, a, "hello")
	require.Error(t, reply.Err)
	a.Update(reply)

	status, isErr := a.Status()
	assert.True(t, isErr)
	assert.Contains(t, status, "backend down")
	assert.False(t, a.input.Disabled())
	assert.Contains(t, a.View(), "backend down")
}

func TestHelpModal(t *testing.T) {
	a, _ := newTestApp(t, nil)

	a.Update(tea.KeyMsg{Type: tea.KeyF1})
	require.NotNil(t, a.Modal())
	assert.Contains(t, a.View(), "Keyboard shortcuts")
	closeModal(t, a, tea.KeyMsg{Type: tea.KeyEsc})

	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Nil(t, a.Modal(), "? types into the composer")
	assert.Equal(t, "?", a.input.Value())

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.NotNil(t, a.Modal())
}

func TestJumpMenuSelectsConversation(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.Update(send(t, a, "older"))
	olderID := a.session.ActiveID()
	a.Update(sidebar.NewConversationIntent{})

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	require.NotNil(t, a.Modal())
	assert.Contains(t, a.View(), "Jump to chat")

	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	closeModal(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, olderID, a.session.ActiveID())
}

func TestSmallTerminal(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.Update(tea.WindowSizeMsg{Width: 30, Height: 8})
	assert.Contains(t, a.View(), "Terminal too small")
}

func TestViewLayout(t *testing.T) {
	a, _ := newTestApp(t, nil)
	out := a.View()
	assert.Contains(t, out, "Chat · 0 conversations")
	assert.Contains(t, out, "Chats")
	assert.Contains(t, out, "tab: switch pane")
	assert.Contains(t, out, "Welcome to Chat")
}
