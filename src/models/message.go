// message.go - Defines the Message struct for representing chat messages across the application.
// Messages are created once by the chat session and never edited afterwards.

package models

import "time"

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message represents a chat message.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// IsUser reports whether the message was typed by the user.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}
