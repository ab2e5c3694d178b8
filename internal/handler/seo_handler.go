package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexjob/nexjob-api/internal/dto"
	"github.com/nexjob/nexjob-api/pkg/response"
)

// PageMetaService renders SEO metadata for site pages.
type PageMetaService interface {
	CategoryPageMeta(ctx context.Context, slug string) (*dto.PageMeta, error)
	LocationPageMeta(ctx context.Context, slug string) (*dto.PageMeta, error)
	StaticPageMeta(ctx context.Context, page string) (*dto.PageMeta, error)
}

// SEOHandler exposes the page metadata endpoints consumed by the frontend.
type SEOHandler struct {
	seo    PageMetaService
	logger *zap.Logger
}

// NewSEOHandler constructs the handler.
func NewSEOHandler(seo PageMetaService, logger *zap.Logger) *SEOHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SEOHandler{seo: seo, logger: logger}
}

// CategoryMeta godoc
// @Summary Category archive metadata
// @Tags seo
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} response.Envelope{data=dto.PageMeta}
// @Failure 404 {object} response.Envelope
// @Router /seo/category/{slug} [get]
func (h *SEOHandler) CategoryMeta(c *gin.Context) {
	meta, err := h.seo.CategoryPageMeta(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meta)
}

// LocationMeta godoc
// @Summary Location archive metadata
// @Tags seo
// @Produce json
// @Param slug path string true "Location slug"
// @Success 200 {object} response.Envelope{data=dto.PageMeta}
// @Failure 404 {object} response.Envelope
// @Router /seo/location/{slug} [get]
func (h *SEOHandler) LocationMeta(c *gin.Context) {
	meta, err := h.seo.LocationPageMeta(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meta)
}

// PageMeta godoc
// @Summary Static page metadata
// @Tags seo
// @Produce json
// @Param page path string true "Page name" Enums(home, jobs, articles, login, signup, profile)
// @Success 200 {object} response.Envelope{data=dto.PageMeta}
// @Failure 404 {object} response.Envelope
// @Router /seo/page/{page} [get]
func (h *SEOHandler) PageMeta(c *gin.Context) {
	meta, err := h.seo.StaticPageMeta(c.Request.Context(), c.Param("page"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meta)
}
