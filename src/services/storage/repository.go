// Package storage provides repository interfaces for conversation state.
package storage

import (
	"time"

	"chatsim/src/models"
)

// ConversationRepository defines the operations the chat session performs on conversations.
// Implementations hand out copies; callers never hold references into repository state.
type ConversationRepository interface {
	// List returns all conversations in display order.
	List() []models.Conversation
	// Get returns the conversation with the given id or a *models.NotFoundError.
	Get(id string) (models.Conversation, error)
	// Prepend inserts a new conversation at the front of the list.
	Prepend(conv models.Conversation) error
	// AppendMessage appends msg to the live message list and refreshes UpdatedAt.
	AppendMessage(id string, msg models.Message, at time.Time) error
	// SetTitle replaces the title of the conversation.
	SetTitle(id, title string) error
	// Delete removes the conversation and reports whether it existed.
	Delete(id string) bool
	// Len returns the number of conversations.
	Len() int
}
