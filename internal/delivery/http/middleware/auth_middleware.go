package middleware

import (
	"errors"
	"strings"

	"lawjobs/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware rejects requests without a valid access token.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return Unauthorized("Unauthorized", nil)
		}

		claims, err := m.accessClaims(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return Unauthorized("Token expired", err)
			}
			return Unauthorized("Invalid token", err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		return c.Next()
	}
}

// Optional sets the user when a valid access token is present and lets
// anonymous requests through. A present but invalid token is still rejected.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return c.Next()
		}

		claims, err := m.accessClaims(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return Unauthorized("Token expired", err)
			}
			return Unauthorized("Invalid token", err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		return c.Next()
	}
}

// ResolveUser maps an access token to a user id for the websocket stream.
func (m *AuthMiddleware) ResolveUser(token string) (string, bool) {
	claims, err := m.accessClaims(token)
	if err != nil {
		return "", false
	}
	return claims.UserID.String(), true
}

func (m *AuthMiddleware) accessClaims(token string) (jwt.Claims, error) {
	return m.jwt.Validate(token, jwt.KindAccess)
}

// UserID returns the authenticated user, or nil for anonymous requests.
func UserID(c fiber.Ctx) *uuid.UUID {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return nil
	}
	return &id
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
