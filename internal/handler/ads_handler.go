package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexjob/nexjob-api/internal/dto"
	"github.com/nexjob/nexjob-api/internal/models"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
	"github.com/nexjob/nexjob-api/pkg/response"
)

// AdService serves ad snippets and in-content injection.
type AdService interface {
	AdCode(ctx context.Context, position models.AdPosition) (*dto.AdCodeResponse, error)
	AllAdCodes(ctx context.Context) []dto.AdCodeResponse
	InjectMiddleAd(ctx context.Context, html string) string
}

// AdsHandler exposes the advertisement endpoints.
type AdsHandler struct {
	ads    AdService
	logger *zap.Logger
}

// NewAdsHandler constructs the handler.
func NewAdsHandler(ads AdService, logger *zap.Logger) *AdsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdsHandler{ads: ads, logger: logger}
}

// List godoc
// @Summary All ad placements
// @Tags ads
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.AdCodeResponse}
// @Router /ads [get]
func (h *AdsHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.ads.AllAdCodes(c.Request.Context()))
}

// ByPosition godoc
// @Summary Ad snippet for one placement
// @Tags ads
// @Produce json
// @Param position path string true "Placement name"
// @Success 200 {object} response.Envelope{data=dto.AdCodeResponse}
// @Failure 404 {object} response.Envelope
// @Router /ads/{position} [get]
func (h *AdsHandler) ByPosition(c *gin.Context) {
	code, err := h.ads.AdCode(c.Request.Context(), models.AdPosition(c.Param("position")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, code)
}

type injectAdRequest struct {
	Content string `json:"content" binding:"required"`
}

type injectAdResponse struct {
	Content string `json:"content"`
}

// Inject godoc
// @Summary Inject the in-content ad into article HTML
// @Tags ads
// @Accept json
// @Produce json
// @Param request body injectAdRequest true "Article HTML"
// @Success 200 {object} response.Envelope{data=injectAdResponse}
// @Router /ads/inject [post]
func (h *AdsHandler) Inject(c *gin.Context) {
	var req injectAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "content is required"))
		return
	}

	out := h.ads.InjectMiddleAd(c.Request.Context(), req.Content)
	response.JSON(c, http.StatusOK, injectAdResponse{Content: out})
}
