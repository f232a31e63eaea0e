package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"farmhub/internal/models"
)

const userKey = "currentUser"

// Middleware resolves the bearer token and stores the user in the gin
// context. When required is false an anonymous request passes through
// without a user.
func Middleware(service *Service, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
				return
			}
			c.Next()
			return
		}

		user, err := service.Resolve(c.Request.Context(), token)
		if err != nil {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
				return
			}
			c.Next()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Middleware, or
// nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimPrefix(header, prefix)
	}
	return ""
}
