package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nexjob/nexjob-api/internal/models"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
	"github.com/nexjob/nexjob-api/pkg/response"
)

// RequireRoles allows the request through only when the authenticated admin
// holds one of the given roles. Must run after JWTAuth.
func RequireRoles(roles ...models.AdminRole) gin.HandlerFunc {
	allowed := make(map[models.AdminRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
