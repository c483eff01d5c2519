package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VibeFlow-2025/eduvibe-service/internal/services"
	"github.com/VibeFlow-2025/eduvibe-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== DASHBOARD ENDPOINTS =====

// GetMentorStats returns the caller's mentoring statistics
// @Summary Get mentor dashboard statistics
// @Description Session counts, earnings from completed sessions and completion rate
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.MentorStats
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Not a mentor"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /mentors/me/stats [get]
func (h *DashboardHandler) GetMentorStats(c *gin.Context) {
	user, err := GetUserFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	h.LogRequest(c, "Getting mentor stats", "user_id", user.ID)

	stats, err := h.service.MentorStats(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetStudentStats returns the caller's learning statistics
// @Summary Get student dashboard statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.StudentStats
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Not a student"
// @Router /students/me/stats [get]
func (h *DashboardHandler) GetStudentStats(c *gin.Context) {
	user, err := GetUserFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	stats, err := h.service.StudentStats(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
