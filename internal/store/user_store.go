package store

import (
	"errors"
	"time"

	"arab_ai_go_backend/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// UserStore defines the interface for user persistence
type UserStore interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	UpdateByID(id uint, updates map[string]interface{}) (*models.User, error)
	FindByResetToken(resetToken string) (*models.User, error)
	DeleteByID(id uint) error
	FindAll(limit, offset int) ([]models.User, error)
}

// DefaultUserStore implements UserStore over gorm
type DefaultUserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new DefaultUserStore
func NewUserStore(db *gorm.DB) UserStore {
	return &DefaultUserStore{db: db}
}

// Create persists a new user. Email uniqueness is enforced by the unique index.
func (s *DefaultUserStore) Create(user *models.User) error {
	return s.db.Create(user).Error
}

// FindByEmail looks a user up by exact email match. Callers normalize case first.
func (s *DefaultUserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *DefaultUserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateByID applies a partial update and returns the refreshed record.
func (s *DefaultUserStore) UpdateByID(id uint, updates map[string]interface{}) (*models.User, error) {
	result := s.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(id)
}

// FindByResetToken matches a reset token whose expiry is still in the future.
func (s *DefaultUserStore) FindByResetToken(resetToken string) (*models.User, error) {
	var user models.User
	err := s.db.Where("reset_password_token = ? AND reset_password_expire > ?", resetToken, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *DefaultUserStore) DeleteByID(id uint) error {
	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAll returns users ordered newest first.
func (s *DefaultUserStore) FindAll(limit, offset int) ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at desc").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
