package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VibeFlow-2025/eduvibe-service/internal/services"
	"github.com/VibeFlow-2025/eduvibe-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type MentorHandler struct {
	BaseHandler
	service services.MentorService
}

func NewMentorHandler(service services.MentorService, logger utils.Logger) *MentorHandler {
	return &MentorHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SearchMentors lists mentors matching a free-text query and subject
// @Summary Search mentors
// @Tags mentors
// @Produce json
// @Param query query string false "Name, role or subject substring"
// @Param subject query string false "Exact subject name"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} models.MentorListResponse
// @Failure 400 {object} ErrorResponse
// @Router /mentors [get]
func (h *MentorHandler) SearchMentors(c *gin.Context) {
	var req services.MentorSearchRequest
	if !h.bindQuery(c, &req) {
		return
	}

	result, err := h.service.Search(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMentor returns one mentor card
// @Summary Get mentor
// @Tags mentors
// @Produce json
// @Param id path string true "Mentor ID"
// @Success 200 {object} models.MentorCard
// @Failure 404 {object} ErrorResponse
// @Router /mentors/{id} [get]
func (h *MentorHandler) GetMentor(c *gin.Context) {
	id, ok := h.pathID(c, "id", services.ErrMentorNotFound)
	if !ok {
		return
	}

	card, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

// ExportMentors downloads the search result as an xlsx workbook
// @Summary Export mentors
// @Tags mentors
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param query query string false "Name, role or subject substring"
// @Param subject query string false "Exact subject name"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /mentors/export [get]
func (h *MentorHandler) ExportMentors(c *gin.Context) {
	var req services.MentorSearchRequest
	if !h.bindQuery(c, &req) {
		return
	}

	h.LogRequest(c, "Exporting mentors", "query", req.Query, "subject", req.Subject)

	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), &req, &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("mentors-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
