package services

import (
	"context"

	"arab_ai_go_backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserStore) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateByID(id uint, updates map[string]interface{}) (*models.User, error) {
	args := m.Called(id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindByResetToken(resetToken string) (*models.User, error) {
	args := m.Called(resetToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) DeleteByID(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserStore) FindAll(limit, offset int) ([]models.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type MockConversationStore struct {
	mock.Mock
}

func (m *MockConversationStore) CreateConversation(conversation *models.Conversation) error {
	args := m.Called(conversation)
	return args.Error(0)
}

func (m *MockConversationStore) FindConversationForUser(id, userID uint) (*models.Conversation, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockConversationStore) FindConversationsByUser(userID uint, limit, offset int) ([]models.Conversation, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Conversation), args.Error(1)
}

func (m *MockConversationStore) DeleteConversationForUser(id, userID uint) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

func (m *MockConversationStore) TouchConversation(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockConversationStore) CreateMessage(message *models.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockConversationStore) FindMessagesByConversation(conversationID uint) ([]models.Message, error) {
	args := m.Called(conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) Chat(ctx context.Context, message string, options ChatOptions) (*AIResponse, error) {
	args := m.Called(ctx, message, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AIResponse), args.Error(1)
}
