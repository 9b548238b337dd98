package auth

import (
	"net/http"

	apperrors "arab_ai_go_backend/internal/errors"
	"arab_ai_go_backend/internal/services"
	"arab_ai_go_backend/internal/store"
	"arab_ai_go_backend/internal/token"

	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// SetupRoutes mounts the /api/auth group. The limiter, when non-nil, shields
// the credential-accepting endpoints.
func SetupRoutes(r *gin.Engine, authService *services.AuthService, tokens *token.Manager, users store.UserStore, secureCookies bool, limiter gin.HandlerFunc) {
	group := r.Group("/api/auth")

	public := group.Group("")
	if limiter != nil {
		public.Use(limiter)
	}
	public.POST("/signup", signupHandler(authService, secureCookies))
	public.POST("/login", loginHandler(authService, secureCookies))

	group.POST("/logout", logoutHandler())
	group.POST("/refresh-token", refreshHandler(authService, secureCookies))

	protected := group.Group("")
	protected.Use(AuthMiddleware(tokens, users))
	protected.GET("/profile", getProfileHandler(authService))
	protected.PUT("/profile", updateProfileHandler(authService))
	protected.PUT("/change-password", changePasswordHandler(authService))
}

func signupHandler(authService *services.AuthService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Validation failed"))
			return
		}

		user, pair, err := authService.Signup(req.Name, req.Email, req.Password)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		setSessionCookies(c, pair, secureCookies)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User created successfully",
			"data":    gin.H{"user": user.Public()},
		})
	}
}

func loginHandler(authService *services.AuthService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Validation failed"))
			return
		}

		user, pair, err := authService.Login(req.Email, req.Password)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		setSessionCookies(c, pair, secureCookies)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"data":    gin.H{"user": user.Public()},
		})
	}
}

// logoutHandler clears both cookies unconditionally; it succeeds with or
// without a session.
func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clearSessionCookies(c)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Logout successful",
		})
	}
}

func refreshHandler(authService *services.AuthService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie(refreshCookieName)
		if err != nil || refreshToken == "" {
			apperrors.HandleError(c, apperrors.New401Error("Refresh token is required"))
			return
		}

		access, err := authService.Refresh(refreshToken)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		setAccessCookie(c, access, secureCookies)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Token refreshed successfully",
		})
	}
}

func getProfileHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.New401Error("Access token is required"))
			return
		}

		profile, err := authService.Profile(user.ID)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Profile retrieved successfully",
			"data":    gin.H{"user": profile.Public()},
		})
	}
}

func updateProfileHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.New401Error("Access token is required"))
			return
		}

		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Validation failed"))
			return
		}

		updated, err := authService.UpdateProfile(user.ID, req.Name)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Profile updated successfully",
			"data":    gin.H{"user": updated.Public()},
		})
	}
}

func changePasswordHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.New401Error("Access token is required"))
			return
		}

		var req changePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Validation failed"))
			return
		}

		if err := authService.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Password changed successfully",
		})
	}
}
