package chat

import (
	"supplygenie/backend/chat/api"
	"supplygenie/backend/chat/repository"
	"supplygenie/backend/chat/service"
	"supplygenie/backend/pkg/cache"
	"supplygenie/backend/pkg/logger"
	"supplygenie/backend/pkg/mongox"
)

// NewChatHandlerWithDI wires the chat module against the shared Mongo client
func NewChatHandlerWithDI(c *cache.Cache, log *logger.Logger) *api.ChatHandler {
	repo := repository.NewMongoChatRepository(mongox.Collection)
	svc := service.NewChatService(repo, c, log)
	return api.NewChatHandler(svc)
}
