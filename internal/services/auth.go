package services

import (
	"errors"
	"fmt"
	"time"

	"event-registration-backend/internal/models"
	"event-registration-backend/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession is returned for any unusable session token
var ErrInvalidSession = errors.New("invalid session")

// AdminStore interface for admin account lookups
type AdminStore interface {
	GetByEmail(email string) (*models.Admin, error)
}

// SessionClaims holds the JWT claims of an admin session
type SessionClaims struct {
	AdminID int64  `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService handles admin login and session tokens
type AuthService struct {
	admins     AdminStore
	secret     []byte
	sessionTTL time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(admins AdminStore, sessionSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		admins:     admins,
		secret:     []byte(sessionSecret),
		sessionTTL: sessionTTL,
	}
}

// Login verifies admin credentials. Unknown email and wrong password produce
// the same error so responses do not leak which admins exist.
func (s *AuthService) Login(email, password string) (*models.Admin, error) {
	admin, err := s.admins.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if admin == nil {
		return nil, models.ErrInvalidCredentials
	}

	ok, err := utils.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, models.ErrInvalidCredentials
	}

	return admin, nil
}

// IssueSession creates a signed session token for an admin
func (s *AuthService) IssueSession(admin *models.Admin) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateSession parses and validates a session token
func (s *AuthService) ValidateSession(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

// SessionTTL returns the configured session lifetime
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}
