package auth

import (
	"net/http"

	"arab_ai_go_backend/internal/services"
	"arab_ai_go_backend/internal/token"

	"github.com/gin-gonic/gin"
)

const (
	accessCookieName  = "token"
	refreshCookieName = "refreshToken"
)

func setSessionCookies(c *gin.Context, pair *services.TokenPair, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookieName, pair.AccessToken, int(token.AccessTokenTTL.Seconds()), "/", "", secure, true)
	c.SetCookie(refreshCookieName, pair.RefreshToken, int(token.RefreshTokenTTL.Seconds()), "/", "", secure, true)
}

func setAccessCookie(c *gin.Context, accessToken string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookieName, accessToken, int(token.AccessTokenTTL.Seconds()), "/", "", secure, true)
}

func clearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookieName, "", -1, "/", "", false, true)
	c.SetCookie(refreshCookieName, "", -1, "/", "", false, true)
}
