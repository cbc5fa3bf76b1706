// Package chat wires user intents to conversation state and schedules simulated replies.
//
// A Session is owned by the Bubble Tea update loop: every method must be called from
// that loop. Replies are produced by tea.Cmds running on runtime goroutines and come
// back as ReplyMsg values, which the loop hands to HandleReply.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"chatsim/src/models"
	"chatsim/src/services/metrics"
	"chatsim/src/services/responder"
	"chatsim/src/services/storage"
	"chatsim/src/utils"

	tea "github.com/charmbracelet/bubbletea"
)

// ReplyMsg carries a finished (or failed) reply back to the update loop.
type ReplyMsg struct {
	ConversationID string
	Text           string
	Latency        time.Duration
	Err            error
}

// Session holds the conversation store, the active selection, and the replies in flight.
type Session struct {
	repo      storage.ConversationRepository
	responder responder.Responder
	metrics   *metrics.Recorder
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	ctx       context.Context

	activeID string
	pending  map[string]int
}

// Option customizes a Session.
type Option func(*Session)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Session) { s.metrics = rec }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// WithContext sets the context passed to the responder. Cancelling it aborts replies in flight.
func WithContext(ctx context.Context) Option {
	return func(s *Session) { s.ctx = ctx }
}

// NewSession creates a session with no conversations and nothing selected.
func NewSession(repo storage.ConversationRepository, resp responder.Responder, opts ...Option) *Session {
	s := &Session{
		repo:      repo,
		responder: resp,
		logger:    slog.Default(),
		now:       time.Now,
		newID:     utils.GenerateID,
		ctx:       context.Background(),
		pending:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateConversation adds an empty conversation at the top of the list and selects it.
func (s *Session) CreateConversation() models.Conversation {
	conv := models.NewConversation(s.newID(), models.DefaultTitle, s.now())
	if err := s.repo.Prepend(conv); err != nil {
		s.logger.Error("Failed to create conversation", "id", conv.ID, "error", err)
		return models.Conversation{}
	}
	s.metrics.ConversationCreated()
	s.activeID = conv.ID
	s.logger.Info("Conversation created", "id", conv.ID)
	return conv
}

// SendMessage appends a user message to the active conversation, creating one if nothing
// is selected, and returns the command that produces the assistant reply.
// Blank text is ignored and yields a nil command.
func (s *Session) SendMessage(text string) tea.Cmd {
	if utils.IsBlank(text) {
		s.logger.Debug("Ignoring blank message")
		return nil
	}

	at := s.now()
	userMsg := models.Message{
		ID:        s.newID(),
		Text:      text,
		Sender:    models.SenderUser,
		Timestamp: at,
	}

	conv, ok := s.ActiveConversation()
	if !ok {
		conv = models.NewConversation(s.newID(), utils.GenerateTitle(text), at)
		if err := s.repo.Prepend(conv); err != nil {
			s.logger.Error("Failed to create conversation", "id", conv.ID, "error", err)
			return nil
		}
		s.metrics.ConversationCreated()
		s.activeID = conv.ID
		s.logger.Info("Conversation created from first message", "id", conv.ID)
	} else if conv.MessageCount() == 0 {
		if err := s.repo.SetTitle(conv.ID, utils.GenerateTitle(text)); err != nil {
			s.logger.Error("Failed to set title", "id", conv.ID, "error", err)
		}
	}

	if err := s.repo.AppendMessage(conv.ID, userMsg, at); err != nil {
		s.logger.Error("Failed to append user message", "id", conv.ID, "error", err)
		return nil
	}
	s.metrics.MessageAppended(models.SenderUser)

	updated, err := s.repo.Get(conv.ID)
	if err != nil {
		s.logger.Error("Conversation vanished after append", "id", conv.ID, "error", err)
		return nil
	}
	return s.requestReply(conv.ID, []models.Message{userMsg}, updated.Messages)
}

func (s *Session) requestReply(conversationID string, newMessages, history []models.Message) tea.Cmd {
	s.pending[conversationID]++
	s.metrics.ReplyStarted()
	s.logger.Debug("Reply requested", "id", conversationID, "history", len(history))

	req := responder.Request{
		ConversationID: conversationID,
		NewMessages:    newMessages,
		History:        history,
	}
	ctx, resp := s.ctx, s.responder
	return func() tea.Msg {
		reply, err := resp.Respond(ctx, req)
		return ReplyMsg{
			ConversationID: conversationID,
			Text:           reply.Text,
			Latency:        reply.Latency,
			Err:            err,
		}
	}
}

// HandleReply appends a finished reply to the live conversation. Replies for conversations
// that were deleted while the reply was in flight are dropped silently.
func (s *Session) HandleReply(msg ReplyMsg) error {
	s.finishPending(msg.ConversationID)
	s.metrics.ReplyFinished(msg.Latency, msg.Err)

	if msg.Err != nil {
		s.logger.Warn("Reply failed", "id", msg.ConversationID, "error", msg.Err)
		return &models.ResponderError{ConversationID: msg.ConversationID, Err: msg.Err}
	}

	at := s.now()
	reply := models.Message{
		ID:        s.newID(),
		Text:      msg.Text,
		Sender:    models.SenderAssistant,
		Timestamp: at,
	}
	if err := s.repo.AppendMessage(msg.ConversationID, reply, at); err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			s.logger.Debug("Dropping reply for deleted conversation", "id", msg.ConversationID)
			return nil
		}
		return err
	}
	s.metrics.MessageAppended(models.SenderAssistant)
	s.logger.Debug("Reply appended", "id", msg.ConversationID, "latency", msg.Latency)
	return nil
}

func (s *Session) finishPending(conversationID string) {
	n := s.pending[conversationID]
	if n <= 1 {
		delete(s.pending, conversationID)
		return
	}
	s.pending[conversationID] = n - 1
}

// SelectConversation marks id as active without checking that it exists.
// An unknown id leaves the session with nothing to display.
func (s *Session) SelectConversation(id string) {
	s.activeID = id
}

// DeleteConversation removes the conversation and clears the selection if it was active.
func (s *Session) DeleteConversation(id string) {
	if !s.repo.Delete(id) {
		s.logger.Debug("Delete of unknown conversation ignored", "id", id)
		return
	}
	s.metrics.ConversationDeleted()
	if s.activeID == id {
		s.activeID = ""
	}
	s.logger.Info("Conversation deleted", "id", id)
}

// Conversations returns all conversations in display order.
func (s *Session) Conversations() []models.Conversation {
	return s.repo.List()
}

// ActiveID returns the selected id, which may not resolve to a conversation.
func (s *Session) ActiveID() string {
	return s.activeID
}

// ActiveConversation returns the selected conversation if it exists.
func (s *Session) ActiveConversation() (models.Conversation, bool) {
	if s.activeID == "" {
		return models.Conversation{}, false
	}
	conv, err := s.repo.Get(s.activeID)
	if err != nil {
		return models.Conversation{}, false
	}
	return conv, true
}

// IsPending reports whether the conversation is waiting for a reply.
func (s *Session) IsPending(id string) bool {
	return s.pending[id] > 0
}

// Loading reports whether any reply is in flight.
func (s *Session) Loading() bool {
	return len(s.pending) > 0
}
