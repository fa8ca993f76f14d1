package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key under which the authenticated user id is
// stored by AuthMiddleware.
const userIDKey = "user_id"

// AccessTokenParser validates an access token and returns the user id it was
// issued for.
type AccessTokenParser interface {
	ParseAccessToken(tokenString string) (string, error)
}

// AuthMiddleware guards a route group with Bearer access-token authentication.
// On success the user id is stored in the request context; any failure aborts
// the request with 401.
func AuthMiddleware(parser AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := parser.ParseAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// currentUserID returns the user id stored by AuthMiddleware.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
