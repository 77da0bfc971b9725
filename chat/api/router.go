package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterChatRoutes wires the chat endpoints onto the engine. The extra
// middleware (auth, when enabled) applies only to the /chats group.
func RegisterChatRoutes(r *gin.Engine, handler *ChatHandler, middleware ...gin.HandlerFunc) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	chats := r.Group("/chats")
	chats.Use(middleware...)
	{
		chats.GET("", handler.ListChats)
		chats.POST("", handler.CreateChat)
		chats.PATCH("", handler.AppendMessage)
		chats.PUT("", handler.RenameChat)
	}
}
