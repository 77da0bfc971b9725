package auth

import (
	"strings"

	"supplygenie/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Middleware returns a Gin middleware that validates the Authorization
// bearer token and stores the provider uid under "userId" in the context.
func Middleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Error(errors.NewUnauthorizedError("AUTH_REQUIRED", "Authorization header required"))
			c.Abort()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.Error(errors.NewUnauthorizedError("AUTH_INVALID", "Authorization header must be a bearer token"))
			c.Abort()
			return
		}

		claims, err := service.ValidateToken(tokenString)
		if err != nil {
			c.Error(errors.NewUnauthorizedError("AUTH_INVALID", "Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set("userId", claims.Subject)
		c.Set("claims", claims)
		c.Next()
	}
}
