package auth

import (
	"net/http"
	"strings"

	"arab_ai_go_backend/internal/models"
	"arab_ai_go_backend/internal/store"
	"arab_ai_go_backend/internal/token"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// CurrentUser returns the authenticated user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// AuthMiddleware extracts a bearer access token from the Authorization header,
// verifies it, loads the referenced user and attaches it to the request
// context. Tokens are issued as cookies but verified from the header; the
// refresh endpoint is the only cookie reader.
func AuthMiddleware(tokens *token.Manager, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "Access token is required")
			return
		}

		claims, err := tokens.VerifyAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid bearer token is
// present and proceeds anonymously otherwise.
func OptionalAuthMiddleware(tokens *token.Manager, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := tokens.VerifyAccessToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		if user, err := users.FindByID(claims.UserID); err == nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// RequireRoles gates a route to an allow-listed set of roles. It must run
// after AuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortUnauthorized(c, "Access token is required")
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Access forbidden",
		})
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
