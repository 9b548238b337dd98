package api

import (
	"net/http"
	"strconv"

	"arab_ai_go_backend/internal/auth"
	apperrors "arab_ai_go_backend/internal/errors"
	"arab_ai_go_backend/internal/models"
	"arab_ai_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message        string               `json:"message" binding:"required"`
	ConversationID *uint                `json:"conversation_id"`
	Options        services.ChatOptions `json:"options"`
}

type createConversationRequest struct {
	Title    string          `json:"title"`
	Provider models.Provider `json:"provider"`
}

func chatHandler(chatService *services.ChatService, provider models.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.New401Error("Access token is required"))
			return
		}

		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Validation failed"))
			return
		}

		turn, err := chatService.Chat(c.Request.Context(), user.ID, provider, services.ChatRequest{
			Message:        req.Message,
			ConversationID: req.ConversationID,
			Options:        req.Options,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"provider":        turn.Provider,
			"response":        turn.Response,
			"usage":           turn.Usage,
			"conversation_id": turn.ConversationID,
		})
	}
}

func listConversationsHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.New401Error("Access token is required"))
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		conversations, err := chatService.ListConversations(user.ID, page, limit)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"conversations": conversations,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
			},
		})
	}
}

func createConversationHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.New401Error("Access token is required"))
			return
		}

		var req createConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Validation failed"))
			return
		}

		conversation, err := chatService.CreateConversation(user.ID, req.Title, req.Provider)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"conversation": conversation,
		})
	}
}

func conversationMessagesHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.New401Error("Access token is required"))
			return
		}

		conversationID, ok := conversationIDParam(c)
		if !ok {
			return
		}

		conversation, messages, err := chatService.ConversationMessages(user.ID, conversationID)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"conversation": conversation,
			"messages":     messages,
		})
	}
}

func deleteConversationHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.New401Error("Access token is required"))
			return
		}

		conversationID, ok := conversationIDParam(c)
		if !ok {
			return
		}

		if err := chatService.DeleteConversation(user.ID, conversationID); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Conversation deleted",
		})
	}
}

func conversationIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("conversationId"), 10, 32)
	if err != nil {
		apperrors.HandleError(c, apperrors.New400Error("Invalid conversation id"))
		return 0, false
	}
	return uint(id), true
}
