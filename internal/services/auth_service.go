package services

import (
	"strings"

	apperrors "arab_ai_go_backend/internal/errors"
	"arab_ai_go_backend/internal/models"
	"arab_ai_go_backend/internal/password"
	"arab_ai_go_backend/internal/store"
	"arab_ai_go_backend/internal/token"
)

// TokenPair holds a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService orchestrates the session lifecycle: signup, login, profile
// management, password change and access-token refresh.
type AuthService struct {
	users  store.UserStore
	tokens *token.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(users store.UserStore, tokens *token.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// NormalizeEmail lowercases and trims an email before any lookup or insert.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a user with the default role and returns it with a token pair.
// A normalized-email collision yields a conflict error and no second row.
func (s *AuthService) Signup(name, email, plaintext string) (*models.User, *TokenPair, error) {
	email = NormalizeEmail(email)

	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, nil, apperrors.New409Error("User with this email already exists")
	} else if err != store.ErrNotFound {
		return nil, nil, apperrors.New500Error(err)
	}

	hashed, err := password.Hash(plaintext)
	if err != nil {
		return nil, nil, apperrors.New500Error(err)
	}

	user := &models.User{
		Name:            strings.TrimSpace(name),
		Email:           email,
		Password:        hashed,
		Role:            models.RoleUser,
		IsEmailVerified: false,
	}
	if err := s.users.Create(user); err != nil {
		return nil, nil, apperrors.New500Error(err)
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login verifies credentials and returns the user with a token pair. Unknown
// email and wrong password produce the same error.
func (s *AuthService) Login(email, plaintext string) (*models.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(NormalizeEmail(email))
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil, apperrors.New401Error("Invalid email or password")
		}
		return nil, nil, apperrors.New500Error(err)
	}

	if !password.Verify(plaintext, user.Password) {
		return nil, nil, apperrors.New401Error("Invalid email or password")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Profile returns the user backing an authenticated session.
func (s *AuthService) Profile(userID uint) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, apperrors.New404Error("User not found")
		}
		return nil, apperrors.New500Error(err)
	}
	return user, nil
}

// UpdateProfile persists a trimmed display name.
func (s *AuthService) UpdateProfile(userID uint, name string) (*models.User, error) {
	user, err := s.users.UpdateByID(userID, map[string]interface{}{
		"name": strings.TrimSpace(name),
	})
	if err != nil {
		if err == store.ErrNotFound {
			return nil, apperrors.New404Error("User not found")
		}
		return nil, apperrors.New500Error(err)
	}
	return user, nil
}

// ChangePassword re-hashes and stores a new password after verifying the
// current one.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if err == store.ErrNotFound {
			return apperrors.New404Error("User not found")
		}
		return apperrors.New500Error(err)
	}

	if !password.Verify(currentPassword, user.Password) {
		return apperrors.New401Error("Current password is incorrect")
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return apperrors.New500Error(err)
	}

	if _, err := s.users.UpdateByID(userID, map[string]interface{}{"password": hashed}); err != nil {
		return apperrors.New500Error(err)
	}
	return nil
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token itself is not rotated; its validity window is untouched.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", apperrors.New401Error("Invalid or expired refresh token")
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		if err == store.ErrNotFound {
			return "", apperrors.New401Error("Invalid or expired refresh token")
		}
		return "", apperrors.New500Error(err)
	}

	access, err := s.tokens.IssueAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", apperrors.New500Error(err)
	}
	return access, nil
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.New500Error(err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.New500Error(err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
