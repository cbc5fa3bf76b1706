package repositories

import (
	"fmt"
	"time"

	"chatsim/src/models"
	"chatsim/src/services/storage"
)

var _ storage.ConversationRepository = (*MemoryConversationRepository)(nil)

// MemoryConversationRepository keeps conversations in memory for the lifetime of the program.
// It has a single writer (the Bubble Tea update loop) and is not safe for concurrent use.
type MemoryConversationRepository struct {
	order []string
	byID  map[string]*models.Conversation
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{byID: make(map[string]*models.Conversation)}
}

func (r *MemoryConversationRepository) List() []models.Conversation {
	out := make([]models.Conversation, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out
}

func (r *MemoryConversationRepository) Get(id string) (models.Conversation, error) {
	conv, ok := r.byID[id]
	if !ok {
		return models.Conversation{}, notFound(id)
	}
	return conv.Clone(), nil
}

func (r *MemoryConversationRepository) Prepend(conv models.Conversation) error {
	if conv.ID == "" {
		return &models.ValidationError{Message: "conversation id is empty"}
	}
	if _, exists := r.byID[conv.ID]; exists {
		return &models.ValidationError{Message: fmt.Sprintf("conversation %s already exists", conv.ID)}
	}
	stored := conv.Clone()
	r.byID[conv.ID] = &stored
	r.order = append([]string{conv.ID}, r.order...)
	return nil
}

func (r *MemoryConversationRepository) AppendMessage(id string, msg models.Message, at time.Time) error {
	conv, ok := r.byID[id]
	if !ok {
		return notFound(id)
	}
	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = at
	return nil
}

func (r *MemoryConversationRepository) SetTitle(id, title string) error {
	conv, ok := r.byID[id]
	if !ok {
		return notFound(id)
	}
	conv.Title = title
	return nil
}

func (r *MemoryConversationRepository) Delete(id string) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	newOrder := make([]string, 0, len(r.order))
	for _, existing := range r.order {
		if existing != id {
			newOrder = append(newOrder, existing)
		}
	}
	r.order = newOrder
	return true
}

func (r *MemoryConversationRepository) Len() int {
	return len(r.order)
}

func notFound(id string) error {
	return &models.NotFoundError{Message: fmt.Sprintf("conversation %s not found", id)}
}
