package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VibeFlow-2025/eduvibe-service/internal/services"
	"github.com/VibeFlow-2025/eduvibe-service/internal/utils"
)

type ProfileHandler struct {
	BaseHandler
	service services.ProfileService
}

func NewProfileHandler(service services.ProfileService, logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetMe returns the caller's registration
// @Summary Current user profile
// @Tags profile
// @Produce json
// @Success 200 {object} models.ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Not registered"
// @Router /me [get]
func (h *ProfileHandler) GetMe(c *gin.Context) {
	identity, err := GetIdentityFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), identity.UID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
