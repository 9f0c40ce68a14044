package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aurora/web/internal/config"
	"aurora/web/internal/security"
	"aurora/web/internal/service"
)

const (
	ContextUser       = "current_user"
	ContextUserClaims = "user_claims"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// Auth requires a valid user token and loads the profile behind it.
func Auth(cfg *config.AppConfig, users *service.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		claims, err := security.ParseUserToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_not_found"})
			return
		}

		c.Set(ContextUserClaims, *claims)
		c.Set(ContextUser, user)

		c.Next()
	}
}

// OptionalAuth loads the user when a valid token is present and lets
// the request through either way. Used by the ban appeal form, which
// banned players reach without an account session.
func OptionalAuth(cfg *config.AppConfig, users *service.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := security.ParseUserToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.Next()
			return
		}

		if user, err := users.GetByID(c.Request.Context(), claims.UserID); err == nil {
			c.Set(ContextUserClaims, *claims)
			c.Set(ContextUser, user)
		}

		c.Next()
	}
}
