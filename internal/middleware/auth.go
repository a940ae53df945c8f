package middleware

import (
	"net/http"
	"strings"

	"launchboard_backend/internal/auth"
	"launchboard_backend/internal/config"
	"launchboard_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// sessionToken pulls the token from the session cookie, falling back to a
// Bearer header for API clients.
func sessionToken(c *gin.Context) string {
	cfg := config.GetConfig()
	if cookie, err := c.Cookie(cfg.Session.CookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// AuthMiddleware gates routes behind a valid session.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := sessionToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := auth.ParseSessionToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("isAdmin", claims.IsAdmin)
		c.Set("subscriptionStatus", string(claims.SubscriptionStatus))

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the session when present but lets guests
// through; handlers check for userID themselves.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := sessionToken(c); tokenStr != "" {
			if claims, err := auth.ParseSessionToken(tokenStr); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("role", claims.Role)
				c.Set("isAdmin", claims.IsAdmin)
			}
		}
		c.Next()
	}
}

// AdminMiddleware requires an authenticated admin session.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("isAdmin")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no session"})
			return
		}
		if admin, ok := isAdmin.(bool); !ok || !admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: admin only"})
			return
		}
		c.Next()
	}
}

// GetUserID returns the session user id or "".
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}
