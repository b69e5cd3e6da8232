package handlers

import (
	"errors"
	"net/http"

	"event-registration-backend/internal/middleware"
	"event-registration-backend/internal/models"
	"event-registration-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles admin session endpoints
type AuthHandler struct {
	authService   *services.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new auth handler. secureCookies must be true in
// production so the session cookie is only sent over HTTPS.
func NewAuthHandler(authService *services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login. On success it sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	admin, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	token, err := h.authService.IssueSession(admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	// HttpOnly + SameSite=Lax is the contract the scanning frontend relies
	// on when the API sits behind a reverse proxy.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookieName,
		token,
		int(h.authService.SessionTTL().Seconds()),
		"/",
		"",
		h.secureCookies,
		true,
	)

	c.JSON(http.StatusOK, gin.H{"admin": gin.H{"id": admin.ID, "email": admin.Email}})
}

// Logout handles POST /api/auth/logout by expiring the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me handles GET /api/auth/me for an authenticated admin
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":    c.GetInt64(middleware.ContextAdminID),
		"email": c.GetString(middleware.ContextAdminEmail),
	})
}
