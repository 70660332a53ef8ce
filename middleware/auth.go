package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anashalam/music-app-backend/auth"
	"github.com/anashalam/music-app-backend/domain"
	"github.com/anashalam/music-app-backend/logger"
)

const (
	// ContextUserID and friends are the keys the auth middleware sets on the
	// request context. Handlers read identity through these only.
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextUserRole = "user_role"
)

// RequireAuth verifies the bearer token and loads the caller's identity into
// the request context. Requests without a valid token never reach handlers.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.Security(logger.EventInvalidToken, "token rejected",
				logger.Fields("path", c.Request.URL.Path, "ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth loads the caller's identity when a valid token is present but
// never rejects the request. Public endpoints that personalize on identity
// (play tracking) use this.
func OptionalAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer ")); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUsername, claims.Username)
				c.Set(ContextUserRole, claims.Role)
			}
		}
		c.Next()
	}
}

// AdminOnly allows only callers whose role is admin. It runs after
// RequireAuth and reports the observed role so rejected requests are
// diagnosable.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextUserRole)
		received := "None"
		if exists {
			if s, ok := role.(string); ok && s != "" {
				received = s
			}
		}
		if !domain.IsAdmin(received) {
			logger.Security(logger.EventAccessDenied, "admin route denied",
				logger.Fields("path", c.Request.URL.Path, "received_role", received))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":         "access denied: admins only",
				"received_role": received,
			})
			return
		}
		c.Next()
	}
}
