package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nexjob/nexjob-api/internal/models"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
	"github.com/nexjob/nexjob-api/pkg/response"
)

// LoginService authenticates admins and issues tokens.
type LoginService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler exposes the admin authentication endpoints.
type AuthHandler struct {
	auth     LoginService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(auth LoginService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, validate: validator.New(), logger: logger}
}

// Login godoc
// @Summary Admin login
// @Description Verifies credentials and issues an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope{data=models.LoginResponse}
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid login payload"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	req.IP = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}
