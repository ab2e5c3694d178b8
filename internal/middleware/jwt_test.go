package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nexjob/nexjob-api/internal/models"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
	err    error
}

func (s *stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func newAuthedRouter(validator TokenValidator, roles ...models.AdminRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := []gin.HandlerFunc{JWTAuth(validator)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	router := newAuthedRouter(&stubValidator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsInvalidToken(t *testing.T) {
	router := newAuthedRouter(&stubValidator{err: appErrors.ErrUnauthorized})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthStoresClaims(t *testing.T) {
	validator := &stubValidator{claims: &models.JWTClaims{UserID: "admin-1", Role: models.RoleSuperAdmin}}
	router := newAuthedRouter(validator)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin-1")
}

func TestRequireRolesEnforcesRole(t *testing.T) {
	editor := &stubValidator{claims: &models.JWTClaims{UserID: "editor-1", Role: models.RoleEditor}}
	router := newAuthedRouter(editor, models.RoleSuperAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	super := &stubValidator{claims: &models.JWTClaims{UserID: "admin-1", Role: models.RoleSuperAdmin}}
	router := newAuthedRouter(super, models.RoleSuperAdmin, models.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
