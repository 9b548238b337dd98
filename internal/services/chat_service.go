package services

import (
	"context"
	"strings"

	apperrors "arab_ai_go_backend/internal/errors"
	"arab_ai_go_backend/internal/models"
	"arab_ai_go_backend/internal/store"

	"github.com/rs/zerolog/log"
)

const defaultConversationTitle = "New Conversation"

// titleMaxLen is the rune cutoff before the derived title gets an ellipsis.
const titleMaxLen = 50

// ChatRequest is one inbound chat turn.
type ChatRequest struct {
	Message        string
	ConversationID *uint
	Options        ChatOptions
}

// ChatTurn is the outcome of one completed turn.
type ChatTurn struct {
	Provider       models.Provider
	Response       string
	Usage          *Usage
	ConversationID uint
}

// ChatService orchestrates single chat turns against registered provider
// backends and persists conversation history.
type ChatService struct {
	conversations store.ConversationStore
	clients       map[models.Provider]AIClient
}

// NewChatService creates a new ChatService
func NewChatService(conversations store.ConversationStore, clients map[models.Provider]AIClient) *ChatService {
	return &ChatService{conversations: conversations, clients: clients}
}

// Chat runs one turn as explicitly ordered steps: load-or-create the
// conversation, persist the inbound message, call the provider, persist the
// reply, bump the conversation timestamp. If the provider call fails the
// already persisted user message stays; no rollback, no retry.
func (s *ChatService) Chat(ctx context.Context, userID uint, provider models.Provider, req ChatRequest) (*ChatTurn, error) {
	client, ok := s.clients[provider]
	if !ok {
		return nil, apperrors.New501Error(string(provider) + " endpoint not implemented yet")
	}

	conversation, err := s.loadOrCreateConversation(userID, provider, req)
	if err != nil {
		return nil, err
	}

	userMessage := &models.Message{
		ConversationID: conversation.ID,
		Role:           models.MessageRoleUser,
		Content:        req.Message,
	}
	if err := s.conversations.CreateMessage(userMessage); err != nil {
		return nil, apperrors.New500Error(err)
	}

	result, err := client.Chat(ctx, req.Message, req.Options)
	if err != nil {
		return nil, apperrors.NewUpstreamError(err)
	}

	assistantMessage := &models.Message{
		ConversationID: conversation.ID,
		Role:           models.MessageRoleAssistant,
		Content:        result.Text,
		Provider:       &provider,
	}
	if result.Usage != nil {
		tokens := int(result.Usage.TotalTokens)
		assistantMessage.TokensUsed = &tokens
	}
	if err := s.conversations.CreateMessage(assistantMessage); err != nil {
		return nil, apperrors.New500Error(err)
	}

	if err := s.conversations.TouchConversation(conversation.ID); err != nil {
		// The turn itself succeeded; a stale timestamp is not worth failing it.
		log.Warn().Err(err).Uint("conversation_id", conversation.ID).Msg("Failed to bump conversation timestamp")
	}

	return &ChatTurn{
		Provider:       provider,
		Response:       result.Text,
		Usage:          result.Usage,
		ConversationID: conversation.ID,
	}, nil
}

func (s *ChatService) loadOrCreateConversation(userID uint, provider models.Provider, req ChatRequest) (*models.Conversation, error) {
	if req.ConversationID != nil {
		conversation, err := s.conversations.FindConversationForUser(*req.ConversationID, userID)
		if err != nil {
			if err == store.ErrNotFound {
				return nil, apperrors.New404Error("Conversation not found or access denied")
			}
			return nil, apperrors.New500Error(err)
		}
		return conversation, nil
	}

	conversation := &models.Conversation{
		UserID:   userID,
		Title:    deriveTitle(req.Message),
		Provider: provider,
	}
	if err := s.conversations.CreateConversation(conversation); err != nil {
		return nil, apperrors.New500Error(err)
	}
	return conversation, nil
}

// CreateConversation creates an empty conversation, defaulting title and
// provider when not supplied.
func (s *ChatService) CreateConversation(userID uint, title string, provider models.Provider) (*models.Conversation, error) {
	if title == "" {
		title = defaultConversationTitle
	}
	if provider == "" {
		provider = models.ProviderGemini
	}
	if !provider.Valid() {
		return nil, apperrors.New400Error("Invalid provider")
	}

	conversation := &models.Conversation{
		UserID:   userID,
		Title:    title,
		Provider: provider,
	}
	if err := s.conversations.CreateConversation(conversation); err != nil {
		return nil, apperrors.New500Error(err)
	}
	return conversation, nil
}

// ListConversations returns one page of the user's conversations, most
// recently updated first.
func (s *ChatService) ListConversations(userID uint, page, limit int) ([]models.Conversation, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	conversations, err := s.conversations.FindConversationsByUser(userID, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.New500Error(err)
	}
	return conversations, nil
}

// ConversationMessages returns a conversation the user owns along with its
// messages in creation order.
func (s *ChatService) ConversationMessages(userID, conversationID uint) (*models.Conversation, []models.Message, error) {
	conversation, err := s.conversations.FindConversationForUser(conversationID, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil, apperrors.New404Error("Conversation not found")
		}
		return nil, nil, apperrors.New500Error(err)
	}

	messages, err := s.conversations.FindMessagesByConversation(conversationID)
	if err != nil {
		return nil, nil, apperrors.New500Error(err)
	}
	return conversation, messages, nil
}

// DeleteConversation removes a conversation the user owns together with its
// messages.
func (s *ChatService) DeleteConversation(userID, conversationID uint) error {
	if err := s.conversations.DeleteConversationForUser(conversationID, userID); err != nil {
		if err == store.ErrNotFound {
			return apperrors.New404Error("Conversation not found")
		}
		return apperrors.New500Error(err)
	}
	return nil
}

// deriveTitle builds a conversation title from the first message: the text up
// to the first sentence terminator, cut at titleMaxLen runes with an ellipsis.
func deriveTitle(message string) string {
	clean := strings.TrimSpace(message)

	first := clean
	if idx := strings.IndexAny(clean, ".!?"); idx >= 0 {
		first = clean[:idx]
	}

	title := first
	if runes := []rune(first); len(runes) > titleMaxLen {
		title = string(runes[:titleMaxLen]) + "..."
	}

	if title == "" {
		return defaultConversationTitle
	}
	return title
}
