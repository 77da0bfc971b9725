package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"supplygenie/backend/chat/models"
	"supplygenie/backend/chat/repository"
	"supplygenie/backend/pkg/cache"
	apperrors "supplygenie/backend/pkg/errors"
	"supplygenie/backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory ChatRepository that records calls
type fakeRepo struct {
	docs  map[string][]models.ChatSession
	calls int
	fail  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: map[string][]models.ChatSession{}}
}

func (f *fakeRepo) List(_ context.Context, userID string) ([]models.ChatSession, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	sessions, ok := f.docs[userID]
	if !ok {
		return []models.ChatSession{}, nil
	}
	return sessions, nil
}

func (f *fakeRepo) CreateChat(_ context.Context, userID, chatName string) (*models.ChatSession, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	session := models.ChatSession{
		ChatID:   repository.NewChatID(),
		ChatName: chatName,
		Messages: []models.Message{},
	}
	f.docs[userID] = append(f.docs[userID], session)
	return &session, nil
}

func (f *fakeRepo) AppendMessage(_ context.Context, userID, chatID string, msg models.Message) (*models.ChatSession, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	sessions := f.docs[userID]
	for i := range sessions {
		if sessions[i].ChatID == chatID {
			sessions[i].Messages = append(sessions[i].Messages, msg)
			return &sessions[i], nil
		}
	}
	return nil, repository.ErrChatNotFound
}

func (f *fakeRepo) RenameChat(_ context.Context, userID, chatID, newName string) (*models.ChatSession, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	sessions := f.docs[userID]
	for i := range sessions {
		if sessions[i].ChatID == chatID {
			sessions[i].ChatName = newName
			return &sessions[i], nil
		}
	}
	return nil, repository.ErrChatNotFound
}

// fakeCache is an in-memory ListCache that records sets and invalidations
type fakeCache struct {
	entries     map[string]string
	sets        int
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	val, ok := f.entries[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return val, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string) {
	f.sets++
	f.entries[key] = value
}

func (f *fakeCache) Invalidate(_ context.Context, key string) {
	f.invalidated = append(f.invalidated, key)
	delete(f.entries, key)
}

func newTestService(repo repository.ChatRepository) *ChatService {
	return NewChatService(repo, nil, logger.New(logger.DefaultConfig()))
}

func TestCreateChatThenListIncludesSession(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.CreateChat(ctx, "u1", "Test")
	require.NoError(t, err)
	assert.Equal(t, "Test", created.ChatName)
	assert.Empty(t, created.Messages)
	assert.Regexp(t, `^chat_`, created.ChatID)

	sessions, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, created.ChatID, sessions[0].ChatID)
	assert.Equal(t, "Test", sessions[0].ChatName)
	assert.Empty(t, sessions[0].Messages)
}

func TestListUnknownUserReturnsEmpty(t *testing.T) {
	svc := newTestService(newFakeRepo())

	sessions, err := svc.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestAppendMessageGrowsSessionByOne(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.CreateChat(ctx, "u1", "Test")
	require.NoError(t, err)

	msg := models.Message{Order: 1, Sender: models.SenderUser, Message: "hello"}
	updated, err := svc.AppendMessage(ctx, "u1", created.ChatID, msg)
	require.NoError(t, err)
	require.Len(t, updated.Messages, 1)
	assert.Equal(t, msg, updated.Messages[0])

	sessions, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions[0].Messages, 1)
	assert.Equal(t, msg, sessions[0].Messages[len(sessions[0].Messages)-1])
}

func TestAppendMessageUnknownChatReturnsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateChat(ctx, "u1", "Test")
	require.NoError(t, err)

	msg := models.Message{Order: 1, Sender: models.SenderUser, Message: "hello"}
	_, err = svc.AppendMessage(ctx, "u1", "chat_missing", msg)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NewChatNotFoundError()))

	// No existing session was altered
	sessions, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, sessions[0].Messages)
}

func TestRenameChat(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.CreateChat(ctx, "u1", "Old")
	require.NoError(t, err)
	_, err = svc.AppendMessage(ctx, "u1", created.ChatID,
		models.Message{Order: 1, Sender: models.SenderUser, Message: "hi"})
	require.NoError(t, err)

	updated, err := svc.RenameChat(ctx, "u1", created.ChatID, "New")
	require.NoError(t, err)
	assert.Equal(t, "New", updated.ChatName)

	sessions, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "New", sessions[0].ChatName)
	assert.Len(t, sessions[0].Messages, 1)
}

func TestRenameChatUnknownChatReturnsNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.RenameChat(context.Background(), "u1", "chat_missing", "New")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NewChatNotFoundError()))
}

func TestValidationFailuresPerformNoStoreWrite(t *testing.T) {
	cases := []struct {
		name string
		call func(svc *ChatService) error
	}{
		{"list missing user", func(svc *ChatService) error {
			_, err := svc.List(context.Background(), "")
			return err
		}},
		{"create missing name", func(svc *ChatService) error {
			_, err := svc.CreateChat(context.Background(), "u1", "")
			return err
		}},
		{"append missing chat id", func(svc *ChatService) error {
			_, err := svc.AppendMessage(context.Background(), "u1", "",
				models.Message{Order: 1, Sender: "user", Message: "hi"})
			return err
		}},
		{"append missing message body", func(svc *ChatService) error {
			_, err := svc.AppendMessage(context.Background(), "u1", "chat_x",
				models.Message{Order: 1, Sender: "user"})
			return err
		}},
		{"append missing order", func(svc *ChatService) error {
			_, err := svc.AppendMessage(context.Background(), "u1", "chat_x",
				models.Message{Sender: "user", Message: "hi"})
			return err
		}},
		{"rename missing name", func(svc *ChatService) error {
			_, err := svc.RenameChat(context.Background(), "u1", "chat_x", "")
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := newTestService(repo)

			err := tc.call(svc)
			require.Error(t, err)
			appErr := apperrors.FromError(err)
			assert.Equal(t, 400, appErr.StatusCode)
			assert.Zero(t, repo.calls)
		})
	}
}

func TestListCacheHitSkipsStore(t *testing.T) {
	repo := newFakeRepo()
	c := newFakeCache()
	svc := NewChatService(repo, c, logger.New(logger.DefaultConfig()))
	ctx := context.Background()

	cached := []models.ChatSession{{ChatID: "chat_a", ChatName: "Cached"}}
	encoded, err := json.Marshal(cached)
	require.NoError(t, err)
	c.entries[cache.ChatListKey("u1")] = string(encoded)

	sessions, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Cached", sessions[0].ChatName)
	assert.Zero(t, repo.calls)
}

func TestListMissPopulatesCache(t *testing.T) {
	repo := newFakeRepo()
	c := newFakeCache()
	svc := NewChatService(repo, c, logger.New(logger.DefaultConfig()))
	ctx := context.Background()

	_, err := svc.CreateChat(ctx, "u1", "Test")
	require.NoError(t, err)

	_, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets)
	assert.Contains(t, c.entries, cache.ChatListKey("u1"))

	// The second list is served from the cache
	calls := repo.calls
	_, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, calls, repo.calls)
}

func TestListCorruptCacheEntryFallsThroughToStore(t *testing.T) {
	repo := newFakeRepo()
	c := newFakeCache()
	svc := NewChatService(repo, c, logger.New(logger.DefaultConfig()))
	ctx := context.Background()

	_, err := svc.CreateChat(ctx, "u1", "Test")
	require.NoError(t, err)
	c.entries[cache.ChatListKey("u1")] = "{not json"

	sessions, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Test", sessions[0].ChatName)

	// The corrupt entry was dropped and rewritten with store data
	assert.Contains(t, c.invalidated, cache.ChatListKey("u1"))
	var rewritten []models.ChatSession
	require.NoError(t, json.Unmarshal([]byte(c.entries[cache.ChatListKey("u1")]), &rewritten))
	require.Len(t, rewritten, 1)
	assert.Equal(t, "Test", rewritten[0].ChatName)
}

func TestMutationsInvalidateChatListCache(t *testing.T) {
	repo := newFakeRepo()
	c := newFakeCache()
	svc := NewChatService(repo, c, logger.New(logger.DefaultConfig()))
	ctx := context.Background()

	created, err := svc.CreateChat(ctx, "u1", "Test")
	require.NoError(t, err)

	key := cache.ChatListKey("u1")
	assert.Equal(t, []string{key}, c.invalidated)

	_, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Contains(t, c.entries, key)

	_, err = svc.AppendMessage(ctx, "u1", created.ChatID,
		models.Message{Order: 1, Sender: models.SenderUser, Message: "hi"})
	require.NoError(t, err)
	assert.NotContains(t, c.entries, key)

	_, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Contains(t, c.entries, key)

	_, err = svc.RenameChat(ctx, "u1", created.ChatID, "New")
	require.NoError(t, err)
	assert.NotContains(t, c.entries, key)
	assert.Equal(t, []string{key, key, key}, c.invalidated)
}

func TestStorageFailureMapsToStorageError(t *testing.T) {
	repo := newFakeRepo()
	repo.fail = errors.New("connection reset")
	svc := newTestService(repo)

	_, err := svc.List(context.Background(), "u1")
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, 500, appErr.StatusCode)
	assert.Equal(t, "STORAGE_ERROR", appErr.Code)
	// The client-facing message stays generic
	assert.NotContains(t, appErr.Message, "connection reset")
}
