package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora/web/internal/service"
)

const ContextAdmin = "admin_claims"

// AdminAuth gates the admin console routes. Any parse or validity
// failure reads as unauthenticated, which sends the console back to
// its login form.
func AdminAuth(admin *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		claims, err := admin.CheckToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextAdmin, *claims)
		c.Next()
	}
}
