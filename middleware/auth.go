package middleware

import (
	"net/http"
	"strings"

	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

// CallerIDKey is the gin context key carrying the authenticated caller's ID.
const CallerIDKey = "callerID"

// JWTAuthMiddleware validates the bearer token and stores the caller's ID in
// the request context. Identity is issued externally; the token's subject is
// either a provider ID or a booker ID, and each operation enforces which of
// the two it accepts.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		callerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || callerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(CallerIDKey, callerID)
		c.Next()
	}
}

// CallerID returns the authenticated caller's ID from the gin context.
func CallerID(c *gin.Context) string {
	id, _ := c.Get(CallerIDKey)
	s, _ := id.(string)
	return s
}
