package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"odialipi-backend/internal/shared/auth"
	"odialipi-backend/internal/shared/server/respond"
)

const userIDKey = "userId"

// Auth validates the bearer token and stores the caller identity in context.
// Missing, expired, and malformed tokens are rejected with distinct codes so
// the client can decide when to force a re-login.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			respond.Error(c, http.StatusUnauthorized, "missing_token", "access denied, no token provided", nil)
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "invalid_token", "invalid or malformed token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "missing_token", "access denied, no token provided", nil)
			return
		}

		claims, err := auth.Verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				respond.Error(c, http.StatusUnauthorized, "token_expired", "token has expired", nil)
				return
			}
			respond.Error(c, http.StatusUnauthorized, "invalid_token", "invalid or malformed token", nil)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
