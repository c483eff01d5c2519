package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/services"
	"github.com/VibeFlow-2025/eduvibe-service/internal/utils"
)

type SessionHandler struct {
	BaseHandler
	service services.SessionService
}

func NewSessionHandler(service services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// BookSession books a pending session with a mentor
// @Summary Book session
// @Tags sessions
// @Accept json
// @Produce json
// @Param body body services.BookSessionRequest true "Booking"
// @Success 201 {object} models.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Mentor not found"
// @Failure 409 {object} ErrorResponse "Slot unavailable"
// @Router /sessions [post]
func (h *SessionHandler) BookSession(c *gin.Context) {
	student, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req services.BookSessionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Booking session", "student_id", student.ID, "mentor_id", req.MentorID)

	session, err := h.service.Book(c.Request.Context(), student, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ListStudentSessions returns the caller's booked sessions
// @Tags sessions
// @Param status query string false "Filter by status"
// @Success 200 {object} models.SessionListResponse
// @Router /students/me/sessions [get]
func (h *SessionHandler) ListStudentSessions(c *gin.Context) {
	student, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req services.SessionListRequest
	if !h.bindQuery(c, &req) {
		return
	}

	result, err := h.service.ListForStudent(c.Request.Context(), student, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListMentorRequests returns the caller's incoming sessions, pending by
// default
// @Tags sessions
// @Param status query string false "Filter by status (default: pending)"
// @Success 200 {object} models.SessionListResponse
// @Router /mentors/me/requests [get]
func (h *SessionHandler) ListMentorRequests(c *gin.Context) {
	mentor, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req services.SessionListRequest
	if !h.bindQuery(c, &req) {
		return
	}

	result, err := h.service.ListForMentor(c.Request.Context(), mentor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Transition returns a handler moving the session in the path to status.
// The optional JSON body carries notes and a meeting link.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body services.SessionActionRequest false "Notes and meeting link"
// @Success 200 {object} models.SessionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invalid transition"
// @Router /sessions/{id}/approve [post]
// @Router /sessions/{id}/reject [post]
// @Router /sessions/{id}/cancel [post]
// @Router /sessions/{id}/complete [post]
func (h *SessionHandler) Transition(status models.SessionStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := h.currentUser(c)
		if !ok {
			return
		}

		id, ok := h.pathID(c, "id", services.ErrSessionNotFound)
		if !ok {
			return
		}

		var req services.SessionActionRequest
		if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
			return
		}

		h.LogRequest(c, "Changing session status", "session_id", id, "status", status, "actor_id", actor.ID)

		session, err := h.service.Transition(c.Request.Context(), actor, id, status, &req)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

func (h *SessionHandler) currentUser(c *gin.Context) (*models.User, bool) {
	user, err := GetUserFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return nil, false
	}
	return user, true
}
