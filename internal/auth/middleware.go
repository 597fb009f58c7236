package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/applytrack/applytrack/internal/models"
)

const userContextKey = "currentUser"

// RequireToken rejects any request that does not carry a valid
// "Authorization: Token <key>" header and stores the resolved user on the
// gin context for the handlers.
func (s *Service) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		key, ok := strings.CutPrefix(header, "Token ")
		if !ok || key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			return
		}

		user, err := s.UserForToken(strings.TrimSpace(key))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by RequireToken.
func CurrentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet(userContextKey).(*models.User)
	return user
}
