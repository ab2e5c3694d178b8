package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexjob/nexjob-api/internal/dto"
	"github.com/nexjob/nexjob-api/internal/middleware"
	"github.com/nexjob/nexjob-api/internal/models"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
	"github.com/nexjob/nexjob-api/pkg/response"
)

// SettingsResolver is the settings surface the handler consumes.
type SettingsResolver interface {
	GetSettings(ctx context.Context, forceRefresh bool) *models.SiteSettings
	Save(ctx context.Context, req *dto.UpdateSettingsRequest, actor *models.JWTClaims, ip, userAgent string) dto.SaveSettingsResult
}

// SettingsHandler exposes the admin settings endpoints plus the public
// projection used by the site frontend.
type SettingsHandler struct {
	settings SettingsResolver
	logger   *zap.Logger
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(settings SettingsResolver, logger *zap.Logger) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{settings: settings, logger: logger}
}

// Get godoc
// @Summary Current site settings
// @Description Returns the persisted settings, bypassing the snapshot cache
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.SiteSettings}
// @Router /admin/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	// Admins must see exactly what is persisted, never a cached snapshot.
	settings := h.settings.GetSettings(c.Request.Context(), true)
	response.JSON(c, http.StatusOK, settings)
}

// Update godoc
// @Summary Update site settings
// @Description Applies a partial settings update; super admin only
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSettingsRequest true "Partial update"
// @Success 200 {object} response.Envelope{data=dto.SaveSettingsResult}
// @Failure 400 {object} response.Envelope{data=dto.SaveSettingsResult}
// @Router /admin/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid settings payload"))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	result := h.settings.Save(c.Request.Context(), &req, claims, c.ClientIP(), c.Request.UserAgent())

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	response.JSON(c, status, result)
}

// Public godoc
// @Summary Public site settings
// @Description Returns the settings fields safe for the frontend
// @Tags settings
// @Produce json
// @Success 200 {object} response.Envelope{data=models.SiteSettings}
// @Router /settings [get]
func (h *SettingsHandler) Public(c *gin.Context) {
	settings := h.settings.GetSettings(c.Request.Context(), false)

	// Strip upstream credentials from the public projection.
	public := *settings
	public.WPAuthToken = ""

	response.JSON(c, http.StatusOK, &public)
}
