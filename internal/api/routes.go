package api

import (
	"net/http"
	"time"

	"arab_ai_go_backend/internal/models"
	"arab_ai_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// declaredProviders are the providers the API exposes chat endpoints for.
// Backends without a registered client answer 501.
var declaredProviders = []models.Provider{
	models.ProviderGemini,
	models.ProviderGPT,
	models.ProviderClaude,
}

// SetupRoutes mounts the /api/chat group plus the health and root endpoints.
func SetupRoutes(r *gin.Engine, chatService *services.ChatService, authenticate gin.HandlerFunc) {
	r.GET("/health", healthHandler)
	r.GET("/api", rootHandler)
	r.NoRoute(notFoundHandler)

	chat := r.Group("/api/chat")
	chat.Use(authenticate)
	{
		for _, provider := range declaredProviders {
			chat.POST("/"+string(provider)+"/chat", chatHandler(chatService, provider))
		}

		chat.GET("/conversations", listConversationsHandler(chatService))
		chat.POST("/conversations", createConversationHandler(chatService))
		chat.GET("/conversations/:conversationId/messages", conversationMessagesHandler(chatService))
		chat.DELETE("/conversations/:conversationId", deleteConversationHandler(chatService))
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Arab AI API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"auth":   "/api/auth",
			"chat":   "/api/chat",
			"health": "/health",
		},
	})
}

func notFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": "Route not found",
	})
}
