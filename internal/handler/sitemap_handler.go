package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexjob/nexjob-api/internal/models"
	"github.com/nexjob/nexjob-api/pkg/response"
)

const xmlContentType = "application/xml; charset=utf-8"

// SitemapRenderer produces sitemap documents.
type SitemapRenderer interface {
	Index(ctx context.Context) ([]byte, error)
	Sitemap(ctx context.Context, name string) ([]byte, error)
}

// SettingsGetter resolves the active settings for text documents like
// robots.txt.
type SettingsGetter interface {
	GetSettings(ctx context.Context, forceRefresh bool) *models.SiteSettings
}

// SitemapHandler serves the sitemap documents and robots.txt.
type SitemapHandler struct {
	sitemaps SitemapRenderer
	settings SettingsGetter
	logger   *zap.Logger
}

// NewSitemapHandler constructs the handler.
func NewSitemapHandler(sitemaps SitemapRenderer, settings SettingsGetter, logger *zap.Logger) *SitemapHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SitemapHandler{sitemaps: sitemaps, settings: settings, logger: logger}
}

// Index serves /sitemap.xml.
func (h *SitemapHandler) Index(c *gin.Context) {
	doc, err := h.sitemaps.Index(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, xmlContentType, doc)
}

// Sitemap returns a gin handler serving one named sub-sitemap. Sub-sitemaps
// are registered as fixed routes because their names are known up front.
func (h *SitemapHandler) Sitemap(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := h.sitemaps.Sitemap(c.Request.Context(), name)
		if err != nil {
			h.logger.Warn("sitemap generation failed", zap.String("sitemap", name), zap.Error(err))
			response.Error(c, err)
			return
		}
		c.Data(http.StatusOK, xmlContentType, doc)
	}
}

// Robots serves /robots.txt from the settings row.
func (h *SitemapHandler) Robots(c *gin.Context) {
	settings := h.settings.GetSettings(c.Request.Context(), false)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(settings.RobotsTxt))
}
