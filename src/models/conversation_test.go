package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversationDefaults(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	conv := NewConversation("abc", "", at)

	assert.Equal(t, "abc", conv.ID)
	assert.Equal(t, DefaultTitle, conv.Title)
	assert.Empty(t, conv.Messages)
	assert.NotNil(t, conv.Messages)
	assert.Equal(t, at, conv.CreatedAt)
	assert.Equal(t, at, conv.UpdatedAt)
}

func TestConversationCloneIsIndependent(t *testing.T) {
	conv := NewConversation("abc", "Hello", time.Now())
	conv.Messages = append(conv.Messages, Message{ID: "m1", Text: "hi", Sender: SenderUser})

	clone := conv.Clone()
	clone.Messages[0].Text = "changed"
	clone.Messages = append(clone.Messages, Message{ID: "m2"})

	assert.Equal(t, "hi", conv.Messages[0].Text)
	assert.Len(t, conv.Messages, 1)
	assert.Len(t, clone.Messages, 2)
}

func TestConversationLastMessageAndReply(t *testing.T) {
	conv := NewConversation("abc", "", time.Now())

	_, ok := conv.LastMessage()
	assert.False(t, ok)
	_, ok = conv.LastReply()
	assert.False(t, ok)

	conv.Messages = []Message{
		{ID: "1", Text: "q", Sender: SenderUser},
		{ID: "2", Text: "a", Sender: SenderAssistant},
		{ID: "3", Text: "q2", Sender: SenderUser},
	}

	last, ok := conv.LastMessage()
	require.True(t, ok)
	assert.Equal(t, "3", last.ID)

	reply, ok := conv.LastReply()
	require.True(t, ok)
	assert.Equal(t, "2", reply.ID)
	assert.Equal(t, 3, conv.MessageCount())
}

func TestMessageIsUser(t *testing.T) {
	assert.True(t, Message{Sender: SenderUser}.IsUser())
	assert.False(t, Message{Sender: SenderAssistant}.IsUser())
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("boom")

	storageErr := error(&StorageError{Message: "failed to read responses file", Err: cause})
	assert.ErrorIs(t, storageErr, cause)
	assert.Equal(t, "failed to read responses file: boom", storageErr.Error())
	assert.Equal(t, "no cause", (&StorageError{Message: "no cause"}).Error())

	wrapped := fmt.Errorf("handle reply: %w", &ResponderError{ConversationID: "c1", Err: cause})
	var respErr *ResponderError
	require.ErrorAs(t, wrapped, &respErr)
	assert.Equal(t, "c1", respErr.ConversationID)
	assert.ErrorIs(t, wrapped, cause)
}
