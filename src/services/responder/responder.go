// Package responder produces assistant replies for the chat session.
// The session only depends on the Responder interface, so a real backend can replace
// the canned implementation without touching the session or the views.
package responder

import (
	"context"
	"time"

	"chatsim/src/models"
)

// Request describes one reply to produce.
type Request struct {
	ConversationID string
	// NewMessages are the user messages that triggered this reply.
	NewMessages []models.Message
	// History is the conversation as it stood when the reply was requested.
	History []models.Message
}

// Reply is the text a responder produced and how long it took.
type Reply struct {
	Text    string
	Latency time.Duration
}

// Responder produces a reply for a request. Implementations are called off the UI loop
// and must be safe for concurrent use.
type Responder interface {
	Respond(ctx context.Context, req Request) (Reply, error)
}
