package repositories

import (
	"testing"
	"time"

	"chatsim/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func TestPrependOrdersNewestFirst(t *testing.T) {
	repo := NewMemoryConversationRepository()

	require.NoError(t, repo.Prepend(models.NewConversation("a", "", t0)))
	require.NoError(t, repo.Prepend(models.NewConversation("b", "", t0)))
	require.NoError(t, repo.Prepend(models.NewConversation("c", "", t0)))

	ids := make([]string, 0, 3)
	for _, conv := range repo.List() {
		ids = append(ids, conv.ID)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
	assert.Equal(t, 3, repo.Len())
}

func TestPrependRejectsInvalidIDs(t *testing.T) {
	repo := NewMemoryConversationRepository()
	require.NoError(t, repo.Prepend(models.NewConversation("a", "", t0)))

	var validationErr *models.ValidationError
	assert.ErrorAs(t, repo.Prepend(models.NewConversation("", "", t0)), &validationErr)
	assert.ErrorAs(t, repo.Prepend(models.NewConversation("a", "", t0)), &validationErr)
	assert.Equal(t, 1, repo.Len())
}

func TestAppendMessageKeepsPosition(t *testing.T) {
	repo := NewMemoryConversationRepository()
	require.NoError(t, repo.Prepend(models.NewConversation("old", "", t0)))
	require.NoError(t, repo.Prepend(models.NewConversation("new", "", t0)))

	later := t0.Add(time.Minute)
	require.NoError(t, repo.AppendMessage("old", models.Message{ID: "m1", Text: "hi", Sender: models.SenderUser}, later))

	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
	assert.Len(t, list[1].Messages, 1)
	assert.Equal(t, later, list[1].UpdatedAt)
	assert.Equal(t, t0, list[1].CreatedAt)
}

func TestAppendMessageIsFunctionalAgainstLiveState(t *testing.T) {
	repo := NewMemoryConversationRepository()
	require.NoError(t, repo.Prepend(models.NewConversation("c", "", t0)))

	snapshot, err := repo.Get("c")
	require.NoError(t, err)

	require.NoError(t, repo.AppendMessage("c", models.Message{ID: "1", Sender: models.SenderUser}, t0))
	require.NoError(t, repo.AppendMessage("c", models.Message{ID: "2", Sender: models.SenderUser}, t0))
	require.NoError(t, repo.AppendMessage("c", models.Message{ID: "3", Sender: models.SenderAssistant}, t0))

	live, err := repo.Get("c")
	require.NoError(t, err)
	assert.Len(t, live.Messages, 3)
	assert.Empty(t, snapshot.Messages, "earlier copies are not affected")
}

func TestReturnedCopiesCannotMutateStore(t *testing.T) {
	repo := NewMemoryConversationRepository()
	require.NoError(t, repo.Prepend(models.NewConversation("c", "", t0)))
	require.NoError(t, repo.AppendMessage("c", models.Message{ID: "1", Text: "orig"}, t0))

	conv, err := repo.Get("c")
	require.NoError(t, err)
	conv.Messages[0].Text = "mutated"
	conv.Title = "mutated"

	again, err := repo.Get("c")
	require.NoError(t, err)
	assert.Equal(t, "orig", again.Messages[0].Text)
	assert.Equal(t, models.DefaultTitle, again.Title)
}

func TestMissingConversation(t *testing.T) {
	repo := NewMemoryConversationRepository()

	var notFoundErr *models.NotFoundError
	_, err := repo.Get("nope")
	assert.ErrorAs(t, err, &notFoundErr)
	assert.ErrorAs(t, repo.AppendMessage("nope", models.Message{}, t0), &notFoundErr)
	assert.ErrorAs(t, repo.SetTitle("nope", "x"), &notFoundErr)
	assert.False(t, repo.Delete("nope"))
}

func TestSetTitleAndDelete(t *testing.T) {
	repo := NewMemoryConversationRepository()
	require.NoError(t, repo.Prepend(models.NewConversation("a", "", t0)))
	require.NoError(t, repo.Prepend(models.NewConversation("b", "", t0)))

	require.NoError(t, repo.SetTitle("a", "Renamed"))
	conv, err := repo.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", conv.Title)

	assert.True(t, repo.Delete("a"))
	assert.Equal(t, 1, repo.Len())
	assert.Equal(t, "b", repo.List()[0].ID)
}
