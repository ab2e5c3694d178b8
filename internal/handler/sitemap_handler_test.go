package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nexjob/nexjob-api/internal/models"
)

type stubSitemapRenderer struct {
	index []byte
	doc   []byte
	err   error
	name  string
}

func (s *stubSitemapRenderer) Index(ctx context.Context) ([]byte, error) {
	return s.index, s.err
}

func (s *stubSitemapRenderer) Sitemap(ctx context.Context, name string) ([]byte, error) {
	s.name = name
	return s.doc, s.err
}

type stubSettingsGetter struct {
	settings *models.SiteSettings
}

func (s *stubSettingsGetter) GetSettings(ctx context.Context, forceRefresh bool) *models.SiteSettings {
	return s.settings
}

func newSitemapRouter(renderer SitemapRenderer, settings SettingsGetter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSitemapHandler(renderer, settings, nil)
	router := gin.New()
	router.GET("/robots.txt", h.Robots)
	router.GET("/sitemap.xml", h.Index)
	router.GET("/sitemap-jobs.xml", h.Sitemap("jobs"))
	return router
}

func TestSitemapIndexServedAsXML(t *testing.T) {
	renderer := &stubSitemapRenderer{index: []byte(`<?xml version="1.0"?><sitemapindex/>`)}
	router := newSitemapRouter(renderer, &stubSettingsGetter{settings: settingsFixture()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, w.Body.String(), "sitemapindex")
}

func TestNamedSitemapRoute(t *testing.T) {
	renderer := &stubSitemapRenderer{doc: []byte(`<urlset/>`)}
	router := newSitemapRouter(renderer, &stubSettingsGetter{settings: settingsFixture()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap-jobs.xml", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jobs", renderer.name)
}

func TestSitemapGenerationFailure(t *testing.T) {
	renderer := &stubSitemapRenderer{err: errors.New("upstream down")}
	router := newSitemapRouter(renderer, &stubSettingsGetter{settings: settingsFixture()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap-jobs.xml", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRobotsTxtFromSettings(t *testing.T) {
	router := newSitemapRouter(&stubSitemapRenderer{}, &stubSettingsGetter{settings: settingsFixture()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "User-agent: *")
}
