package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"supplygenie/backend/chat/models"
	"supplygenie/backend/chat/repository"
	"supplygenie/backend/pkg/cache"
	apperrors "supplygenie/backend/pkg/errors"
	"supplygenie/backend/pkg/logger"
	"supplygenie/backend/pkg/observability"
)

// ListCache is the chat-list cache as the service sees it. *cache.Cache
// satisfies it; a nil *cache.Cache behaves as a permanent miss.
type ListCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string)
	Invalidate(ctx context.Context, key string)
}

// ChatService validates chat operations and maps repository failures onto
// the API error taxonomy. Validation happens before any store write.
type ChatService struct {
	repo  repository.ChatRepository
	cache ListCache
	log   *logger.Logger
}

// NewChatService creates a chat service
func NewChatService(repo repository.ChatRepository, c ListCache, log *logger.Logger) *ChatService {
	if c == nil {
		c = (*cache.Cache)(nil)
	}
	return &ChatService{repo: repo, cache: c, log: log}
}

// List returns the user's chat sessions, empty if the user has none
func (s *ChatService) List(ctx context.Context, userID string) ([]models.ChatSession, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("Missing required fields")
	}

	key := cache.ChatListKey(userID)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var sessions []models.ChatSession
		if err := json.Unmarshal([]byte(cached), &sessions); err == nil {
			observability.ChatOps.WithLabelValues("list", "cache_hit").Inc()
			return sessions, nil
		}
		// A corrupt entry falls through to the store and gets rewritten
		s.cache.Invalidate(ctx, key)
	}

	sessions, err := s.repo.List(ctx, userID)
	if err != nil {
		observability.ChatOps.WithLabelValues("list", "error").Inc()
		return nil, apperrors.NewStorageError(err)
	}
	observability.ChatOps.WithLabelValues("list", "ok").Inc()

	if encoded, err := json.Marshal(sessions); err == nil {
		s.cache.Set(ctx, key, string(encoded))
	}
	return sessions, nil
}

// CreateChat adds a new empty session with the given name, creating the
// user's document on first use
func (s *ChatService) CreateChat(ctx context.Context, userID, chatName string) (*models.ChatSession, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(chatName) == "" {
		return nil, apperrors.NewValidationError("Missing required fields")
	}

	session, err := s.repo.CreateChat(ctx, userID, chatName)
	if err != nil {
		observability.ChatOps.WithLabelValues("create_chat", "error").Inc()
		return nil, apperrors.NewStorageError(err)
	}
	observability.ChatOps.WithLabelValues("create_chat", "ok").Inc()

	s.cache.Invalidate(ctx, cache.ChatListKey(userID))
	return session, nil
}

// AppendMessage appends a message to the matching session
func (s *ChatService) AppendMessage(ctx context.Context, userID, chatID string, msg models.Message) (*models.ChatSession, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(chatID) == "" ||
		strings.TrimSpace(msg.Sender) == "" || msg.Message == "" || msg.Order < 1 {
		return nil, apperrors.NewValidationError("Missing required fields")
	}

	session, err := s.repo.AppendMessage(ctx, userID, chatID, msg)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			observability.ChatOps.WithLabelValues("append_message", "not_found").Inc()
			return nil, apperrors.NewChatNotFoundError()
		}
		observability.ChatOps.WithLabelValues("append_message", "error").Inc()
		return nil, apperrors.NewStorageError(err)
	}
	observability.ChatOps.WithLabelValues("append_message", "ok").Inc()

	s.cache.Invalidate(ctx, cache.ChatListKey(userID))
	return session, nil
}

// RenameChat overwrites the matching session's title
func (s *ChatService) RenameChat(ctx context.Context, userID, chatID, newName string) (*models.ChatSession, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(chatID) == "" || strings.TrimSpace(newName) == "" {
		return nil, apperrors.NewValidationError("Missing required fields")
	}

	session, err := s.repo.RenameChat(ctx, userID, chatID, newName)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			observability.ChatOps.WithLabelValues("rename_chat", "not_found").Inc()
			return nil, apperrors.NewChatNotFoundError()
		}
		observability.ChatOps.WithLabelValues("rename_chat", "error").Inc()
		return nil, apperrors.NewStorageError(err)
	}
	observability.ChatOps.WithLabelValues("rename_chat", "ok").Inc()

	s.cache.Invalidate(ctx, cache.ChatListKey(userID))
	return session, nil
}
