package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nexjob/nexjob-api/internal/dto"
	"github.com/nexjob/nexjob-api/internal/middleware"
	"github.com/nexjob/nexjob-api/internal/models"
)

type stubSettingsResolver struct {
	settings     *models.SiteSettings
	result       dto.SaveSettingsResult
	forceRefresh bool
	savedBy      *models.JWTClaims
	savedReq     *dto.UpdateSettingsRequest
}

func (s *stubSettingsResolver) GetSettings(ctx context.Context, forceRefresh bool) *models.SiteSettings {
	s.forceRefresh = forceRefresh
	return s.settings
}

func (s *stubSettingsResolver) Save(ctx context.Context, req *dto.UpdateSettingsRequest, actor *models.JWTClaims, ip, userAgent string) dto.SaveSettingsResult {
	s.savedReq = req
	s.savedBy = actor
	return s.result
}

func settingsFixture() *models.SiteSettings {
	return &models.SiteSettings{
		ID:          "settings-1",
		SiteTitle:   "Nexjob",
		WPAuthToken: "super-secret",
		RobotsTxt:   "User-agent: *\nAllow: /",
	}
}

func newSettingsRouter(resolver SettingsResolver, claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSettingsHandler(resolver, nil)

	router := gin.New()
	router.GET("/settings", h.Public)

	admin := router.Group("/admin")
	if claims != nil {
		admin.Use(func(c *gin.Context) { c.Set(middleware.ContextClaimsKey, claims) })
	}
	admin.GET("/settings", h.Get)
	admin.PUT("/settings", h.Update)
	return router
}

func TestAdminGetBypassesSnapshotCache(t *testing.T) {
	resolver := &stubSettingsResolver{settings: settingsFixture()}
	router := newSettingsRouter(resolver, &models.JWTClaims{UserID: "admin-1"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resolver.forceRefresh)
}

func TestPublicSettingsHideCredentials(t *testing.T) {
	resolver := &stubSettingsResolver{settings: settingsFixture()}
	router := newSettingsRouter(resolver, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resolver.forceRefresh)
	assert.NotContains(t, w.Body.String(), "super-secret")
	assert.Contains(t, w.Body.String(), "Nexjob")
}

func TestUpdateSettingsPassesClaims(t *testing.T) {
	resolver := &stubSettingsResolver{settings: settingsFixture(), result: dto.SaveSettingsResult{Success: true}}
	claims := &models.JWTClaims{UserID: "admin-1", Role: models.RoleSuperAdmin}
	router := newSettingsRouter(resolver, claims)

	body := strings.NewReader(`{"site_title":"New Title"}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/settings", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, claims, resolver.savedBy)
	assert.NotNil(t, resolver.savedReq.SiteTitle)
	assert.Equal(t, "New Title", *resolver.savedReq.SiteTitle)
}

func TestUpdateSettingsFailureReturns400(t *testing.T) {
	resolver := &stubSettingsResolver{
		settings: settingsFixture(),
		result:   dto.SaveSettingsResult{Error: "unauthorized: super admin access required"},
	}
	router := newSettingsRouter(resolver, &models.JWTClaims{UserID: "editor-1", Role: models.RoleEditor})

	req := httptest.NewRequest(http.MethodPut, "/admin/settings", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "super admin")
}

func TestUpdateSettingsRejectsMalformedJSON(t *testing.T) {
	resolver := &stubSettingsResolver{settings: settingsFixture()}
	router := newSettingsRouter(resolver, &models.JWTClaims{UserID: "admin-1"})

	req := httptest.NewRequest(http.MethodPut, "/admin/settings", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, resolver.savedReq)
}
