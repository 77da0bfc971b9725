package repository

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"supplygenie/backend/chat/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatIDShapeAndUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewChatID()
		assert.Regexp(t, `^chat_[0-9a-f-]{36}$`, id)
		assert.False(t, seen[id], "duplicate chat id %s", id)
		seen[id] = true
	}
}

func TestProviderErrorPropagates(t *testing.T) {
	provider := func(context.Context) (*mongo.Collection, error) {
		return nil, errors.New("uri not set")
	}
	repo := NewMongoChatRepository(provider)
	ctx := context.Background()

	_, err := repo.List(ctx, "u1")
	require.EqualError(t, err, "uri not set")

	_, err = repo.CreateChat(ctx, "u1", "Test")
	require.EqualError(t, err, "uri not set")

	_, err = repo.AppendMessage(ctx, "u1", "chat_x", models.Message{Order: 1, Sender: "user", Message: "hi"})
	require.EqualError(t, err, "uri not set")

	_, err = repo.RenameChat(ctx, "u1", "chat_x", "New")
	require.EqualError(t, err, "uri not set")
}
