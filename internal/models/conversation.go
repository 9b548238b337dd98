package models

import (
	"time"
)

// Provider tags a conversation with the AI backend it talks to.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderGPT    Provider = "gpt"
	ProviderClaude Provider = "claude"
)

// Valid reports whether p is one of the declared providers.
func (p Provider) Valid() bool {
	return p == ProviderGemini || p == ProviderGPT || p == ProviderClaude
}

// MessageRole distinguishes who authored a message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Provider  Provider  `gorm:"type:varchar(50);not null" json:"provider"`
	Messages  []Message `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is immutable once created: there is no update path anywhere.
// Provider and TokensUsed stay null for user-authored messages.
type Message struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	ConversationID uint        `gorm:"index:idx_messages_conv_created;not null" json:"conversation_id"`
	Role           MessageRole `gorm:"type:varchar(20);not null" json:"role"`
	Content        string      `gorm:"type:text;not null" json:"content"`
	Provider       *Provider   `gorm:"type:varchar(50)" json:"provider"`
	TokensUsed     *int        `json:"tokens_used"`
	CreatedAt      time.Time   `gorm:"index:idx_messages_conv_created" json:"created_at"`
}
