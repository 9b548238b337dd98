package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"arab_ai_go_backend/internal/auth"
	"arab_ai_go_backend/internal/database"
	"arab_ai_go_backend/internal/models"
	"arab_ai_go_backend/internal/services"
	"arab_ai_go_backend/internal/store"
	"arab_ai_go_backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubAIClient answers every turn with a fixed response or error.
type stubAIClient struct {
	response *services.AIResponse
	err      error
	calls    int
}

func (s *stubAIClient) Chat(ctx context.Context, message string, options services.ChatOptions) (*services.AIResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

type chatTestEnv struct {
	router *gin.Engine
	db     *gorm.DB
	ai     *stubAIClient
	tokens *token.Manager
}

func newChatTestEnv(t *testing.T) *chatTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	ai := &stubAIClient{
		response: &services.AIResponse{
			Text:  "stub reply",
			Usage: &services.Usage{PromptTokens: 3, CompletionTokens: 4, TotalTokens: 7},
		},
	}

	userStore := store.NewUserStore(db)
	conversationStore := store.NewConversationStore(db)
	tokens := token.NewManager("test-access-secret", "test-refresh-secret")
	chatService := services.NewChatService(conversationStore, map[models.Provider]services.AIClient{
		models.ProviderGemini: ai,
	})

	r := gin.New()
	SetupRoutes(r, chatService, auth.AuthMiddleware(tokens, userStore))

	return &chatTestEnv{router: r, db: db, ai: ai, tokens: tokens}
}

func (e *chatTestEnv) createUser(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	user := &models.User{Name: "Chat User", Email: email, Password: "hash", Role: models.RoleUser}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	access, err := e.tokens.IssueAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return user, access
}

func (e *chatTestEnv) do(method, path, accessToken string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestChatTurnCreatesConversationAndMessages(t *testing.T) {
	env := newChatTestEnv(t)
	user, access := env.createUser(t, "turn@example.com")

	w := env.do("POST", "/api/chat/gemini/chat", access, gin.H{
		"message": "Hello world. How are you?",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success        bool            `json:"success"`
		Provider       string          `json:"provider"`
		Response       string          `json:"response"`
		ConversationID uint            `json:"conversation_id"`
		Usage          *services.Usage `json:"usage"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "gemini", body.Provider)
	assert.Equal(t, "stub reply", body.Response)
	assert.Equal(t, int32(7), body.Usage.TotalTokens)
	assert.NotZero(t, body.ConversationID)

	// Exactly one conversation with the derived title.
	var conversation models.Conversation
	assert.NoError(t, env.db.Where("user_id = ?", user.ID).First(&conversation).Error)
	assert.Equal(t, "Hello world", conversation.Title)
	assert.Equal(t, models.ProviderGemini, conversation.Provider)

	// Exactly two messages, user first.
	var messages []models.Message
	assert.NoError(t, env.db.Where("conversation_id = ?", conversation.ID).
		Order("created_at asc, id asc").Find(&messages).Error)
	assert.Len(t, messages, 2)
	assert.Equal(t, models.MessageRoleUser, messages[0].Role)
	assert.Nil(t, messages[0].Provider)
	assert.Equal(t, models.MessageRoleAssistant, messages[1].Role)
	assert.Equal(t, 7, *messages[1].TokensUsed)
}

func TestChatTurnOnForeignConversationWritesNothing(t *testing.T) {
	env := newChatTestEnv(t)
	owner, ownerAccess := env.createUser(t, "owner@example.com")
	_, intruderAccess := env.createUser(t, "intruder@example.com")

	first := env.do("POST", "/api/chat/gemini/chat", ownerAccess, gin.H{"message": "mine"})
	assert.Equal(t, http.StatusOK, first.Code)

	var conversation models.Conversation
	assert.NoError(t, env.db.Where("user_id = ?", owner.ID).First(&conversation).Error)

	var before int64
	env.db.Model(&models.Message{}).Count(&before)

	w := env.do("POST", "/api/chat/gemini/chat", intruderAccess, gin.H{
		"message":         "let me in",
		"conversation_id": conversation.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var after int64
	env.db.Model(&models.Message{}).Count(&after)
	assert.Equal(t, before, after)
}

func TestChatTurnUpstreamFailureLeavesUserMessage(t *testing.T) {
	env := newChatTestEnv(t)
	user, access := env.createUser(t, "fail@example.com")
	env.ai.err = fmt.Errorf("provider exploded")

	w := env.do("POST", "/api/chat/gemini/chat", access, gin.H{"message": "doomed turn"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// The upstream detail is not echoed to the client.
	assert.NotContains(t, w.Body.String(), "provider exploded")

	var conversation models.Conversation
	assert.NoError(t, env.db.Where("user_id = ?", user.ID).First(&conversation).Error)

	var messages []models.Message
	assert.NoError(t, env.db.Where("conversation_id = ?", conversation.ID).Find(&messages).Error)
	assert.Len(t, messages, 1)
	assert.Equal(t, models.MessageRoleUser, messages[0].Role)
}

func TestChatUnimplementedProviderIs501(t *testing.T) {
	env := newChatTestEnv(t)
	_, access := env.createUser(t, "gpt@example.com")

	for _, provider := range []string{"gpt", "claude"} {
		w := env.do("POST", "/api/chat/"+provider+"/chat", access, gin.H{"message": "hi"})
		assert.Equal(t, http.StatusNotImplemented, w.Code)
	}
	assert.Zero(t, env.ai.calls)
}

func TestChatRequiresAuth(t *testing.T) {
	env := newChatTestEnv(t)

	w := env.do("POST", "/api/chat/gemini/chat", "", gin.H{"message": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do("GET", "/api/chat/conversations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConversationLifecycle(t *testing.T) {
	env := newChatTestEnv(t)
	_, access := env.createUser(t, "crud@example.com")

	created := env.do("POST", "/api/chat/conversations", access, gin.H{})
	assert.Equal(t, http.StatusOK, created.Code)
	assert.Contains(t, created.Body.String(), "New Conversation")
	assert.Contains(t, created.Body.String(), "gemini")

	var body struct {
		Conversation models.Conversation `json:"conversation"`
	}
	assert.NoError(t, json.Unmarshal(created.Body.Bytes(), &body))
	conversationID := body.Conversation.ID

	turn := env.do("POST", "/api/chat/gemini/chat", access, gin.H{
		"message":         "adding history",
		"conversation_id": conversationID,
	})
	assert.Equal(t, http.StatusOK, turn.Code)

	list := env.do("GET", "/api/chat/conversations?page=1&limit=10", access, nil)
	assert.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "pagination")

	messages := env.do("GET", fmt.Sprintf("/api/chat/conversations/%d/messages", conversationID), access, nil)
	assert.Equal(t, http.StatusOK, messages.Code)
	assert.Contains(t, messages.Body.String(), "adding history")
	assert.Contains(t, messages.Body.String(), "stub reply")

	deleted := env.do("DELETE", fmt.Sprintf("/api/chat/conversations/%d", conversationID), access, nil)
	assert.Equal(t, http.StatusOK, deleted.Code)

	// Messages are gone with the conversation; a re-delete is NotFound.
	var msgCount int64
	env.db.Model(&models.Message{}).Where("conversation_id = ?", conversationID).Count(&msgCount)
	assert.Equal(t, int64(0), msgCount)

	again := env.do("DELETE", fmt.Sprintf("/api/chat/conversations/%d", conversationID), access, nil)
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestHealthAndRootEndpoints(t *testing.T) {
	env := newChatTestEnv(t)

	health := env.do("GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, health.Body.String(), "Server is running")

	root := env.do("GET", "/api", "", nil)
	assert.Equal(t, http.StatusOK, root.Code)

	missing := env.do("GET", "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Contains(t, missing.Body.String(), "Route not found")
}
