// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// OwnerIDKey is the context key for the authenticated owner's identifier.
	OwnerIDKey ContextKey = "owner_id"
	// OwnerEmailKey is the context key for the authenticated owner's email.
	OwnerEmailKey ContextKey = "owner_email"

	// OwnerIDHeader carries the owner identifier when header trust is enabled.
	OwnerIDHeader = "X-User-Id"
)

// IdentityMiddleware resolves the owner identity of a request.
type IdentityMiddleware struct {
	verifier    adapter.TokenVerifier
	trustHeader bool
}

// NewIdentityMiddleware creates a new identity middleware instance. When
// trustHeader is set, the X-User-Id header is accepted in place of a token.
func NewIdentityMiddleware(verifier adapter.TokenVerifier, trustHeader bool) *IdentityMiddleware {
	return &IdentityMiddleware{
		verifier:    verifier,
		trustHeader: trustHeader,
	}
}

// Authenticate returns a Gin middleware handler that requires an owner identity.
func (m *IdentityMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			if m.trustHeader {
				if ownerID := strings.TrimSpace(c.GetHeader(OwnerIDHeader)); ownerID != "" {
					c.Set(string(OwnerIDKey), ownerID)
					c.Next()
					return
				}
			}
			unauthorized(c, "Authentication required", domainerror.ErrCodeMissingToken)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, "Invalid authorization header format", domainerror.ErrCodeInvalidToken)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			unauthorized(c, "Token is required", domainerror.ErrCodeMissingToken)
			return
		}

		if m.verifier == nil {
			unauthorized(c, "Invalid or expired token", domainerror.ErrCodeInvalidToken)
			return
		}

		claims, err := m.verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainerror.ErrExpiredToken) {
				unauthorized(c, "Token has expired", domainerror.ErrCodeExpiredToken)
				return
			}
			unauthorized(c, "Invalid or expired token", domainerror.ErrCodeInvalidToken)
			return
		}

		c.Set(string(OwnerIDKey), claims.OwnerID)
		c.Set(string(OwnerEmailKey), claims.Email)

		c.Next()
	}
}

func unauthorized(c *gin.Context, message string, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure(message, string(code)))
}

// GetOwnerIDFromContext extracts the owner identifier from the Gin context.
func GetOwnerIDFromContext(c *gin.Context) (string, bool) {
	ownerID, exists := c.Get(string(OwnerIDKey))
	if !exists {
		return "", false
	}
	id, ok := ownerID.(string)
	return id, ok && id != ""
}

// GetOwnerEmailFromContext extracts the owner email from the Gin context.
func GetOwnerEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(OwnerEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}
