package models

import "time"

// DefaultTitle is shown until a conversation receives its first message.
const DefaultTitle = "New Conversation"

// Conversation is an ordered thread of messages with its own identity.
// Messages are kept in insertion order, which is also chronological order.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewConversation returns an empty conversation stamped with the given time.
func NewConversation(id, title string, at time.Time) Conversation {
	if title == "" {
		title = DefaultTitle
	}
	return Conversation{
		ID:        id,
		Title:     title,
		Messages:  []Message{},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// Clone returns a copy that shares no message storage with c.
func (c Conversation) Clone() Conversation {
	out := c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}

// MessageCount returns the number of messages in the conversation.
func (c Conversation) MessageCount() int {
	return len(c.Messages)
}

// LastMessage returns the most recent message, if any.
func (c Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// LastReply returns the most recent assistant message, if any.
func (c Conversation) LastReply() (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Sender == SenderAssistant {
			return c.Messages[i], true
		}
	}
	return Message{}, false
}
