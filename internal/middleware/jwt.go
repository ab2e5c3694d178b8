package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexjob/nexjob-api/internal/models"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
	"github.com/nexjob/nexjob-api/pkg/response"
)

// ContextClaimsKey is where authenticated claims live on the gin context.
const ContextClaimsKey = "auth.claims"

// TokenValidator verifies an access token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// JWTAuth enforces a valid bearer token and stores the claims on the context.
func JWTAuth(auth TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token"))
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the authenticated claims, nil when absent.
func ClaimsFromContext(c *gin.Context) *models.JWTClaims {
	value, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
