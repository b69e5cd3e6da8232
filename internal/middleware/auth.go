package middleware

import (
	"net/http"

	"event-registration-backend/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName is the cookie carrying the admin session token
	SessionCookieName = "session"

	// ContextAdminID is the key for the admin id in gin context
	ContextAdminID = "admin_id"
	// ContextAdminEmail is the key for the admin email in gin context
	ContextAdminEmail = "admin_email"
)

// RequireAuth returns a middleware that validates the session cookie and sets
// the admin identity in context. Requests without a valid session get 401.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := authService.ValidateSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextAdminEmail, claims.Email)
		c.Next()
	}
}
