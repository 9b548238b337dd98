package store

import (
	"errors"
	"time"

	"arab_ai_go_backend/internal/models"

	"gorm.io/gorm"
)

// ConversationStore defines the interface for conversation and message
// persistence. Every read and mutation is scoped by the owning user so a
// conversation id alone never grants access.
type ConversationStore interface {
	CreateConversation(conversation *models.Conversation) error
	FindConversationForUser(id, userID uint) (*models.Conversation, error)
	FindConversationsByUser(userID uint, limit, offset int) ([]models.Conversation, error)
	DeleteConversationForUser(id, userID uint) error
	TouchConversation(id uint) error
	CreateMessage(message *models.Message) error
	FindMessagesByConversation(conversationID uint) ([]models.Message, error)
}

// DefaultConversationStore implements ConversationStore over gorm
type DefaultConversationStore struct {
	db *gorm.DB
}

// NewConversationStore creates a new DefaultConversationStore
func NewConversationStore(db *gorm.DB) ConversationStore {
	return &DefaultConversationStore{db: db}
}

func (s *DefaultConversationStore) CreateConversation(conversation *models.Conversation) error {
	return s.db.Create(conversation).Error
}

// FindConversationForUser retrieves a conversation only if userID owns it.
func (s *DefaultConversationStore) FindConversationForUser(id, userID uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// FindConversationsByUser returns a user's conversations, most recently
// updated first.
func (s *DefaultConversationStore) FindConversationsByUser(userID uint, limit, offset int) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := s.db.Where("user_id = ?", userID).
		Order("updated_at desc").
		Limit(limit).
		Offset(offset).
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// DeleteConversationForUser deletes a conversation and its messages in one
// transaction. Ownership is checked inside the transaction; a second delete of
// the same id reports ErrNotFound.
func (s *DefaultConversationStore) DeleteConversationForUser(id, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var conversation models.Conversation
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&conversation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("conversation_id = ?", conversation.ID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&conversation).Error
	})
}

// TouchConversation bumps the conversation's updated_at timestamp.
func (s *DefaultConversationStore) TouchConversation(id uint) error {
	result := s.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DefaultConversationStore) CreateMessage(message *models.Message) error {
	return s.db.Create(message).Error
}

// FindMessagesByConversation returns messages in creation order.
func (s *DefaultConversationStore) FindMessagesByConversation(conversationID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Where("conversation_id = ?", conversationID).
		Order("created_at asc, id asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
