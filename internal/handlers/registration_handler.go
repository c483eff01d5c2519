package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/services"
	"github.com/VibeFlow-2025/eduvibe-service/internal/utils"
)

type RegistrationHandler struct {
	BaseHandler
	service services.RegistrationService
	// requireIDToken makes the body's firebaseUid match the verified token.
	requireIDToken bool
}

func NewRegistrationHandler(service services.RegistrationService, logger utils.Logger, requireIDToken bool) *RegistrationHandler {
	return &RegistrationHandler{
		BaseHandler:    NewBaseHandler(logger),
		service:        service,
		requireIDToken: requireIDToken,
	}
}

// RegisterStudent registers a student with details and subjects
// @Summary Register student
// @Tags registration
// @Accept json
// @Produce json
// @Param body body services.StudentRegistrationRequest true "Student registration"
// @Success 201 {object} models.RegistrationResponse{data=models.StudentRegistration}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /student/register [post]
func (h *RegistrationHandler) RegisterStudent(c *gin.Context) {
	var req services.StudentRegistrationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !h.ownsIdentity(c, req.FirebaseUID) {
		return
	}

	h.LogRequest(c, "Registering student", "firebase_uid", req.FirebaseUID)

	result, err := h.service.RegisterStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.RegistrationResponse{
		Success: true,
		Message: "Student registered successfully",
		Data:    result,
	})
}

// RegisterMentor registers a mentor with details, subjects and social links
// @Summary Register mentor
// @Tags registration
// @Accept json
// @Produce json
// @Param body body services.MentorRegistrationRequest true "Mentor registration"
// @Success 201 {object} models.RegistrationResponse{data=models.MentorRegistration}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /mentor/register [post]
func (h *RegistrationHandler) RegisterMentor(c *gin.Context) {
	var req services.MentorRegistrationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !h.ownsIdentity(c, req.FirebaseUID) {
		return
	}

	h.LogRequest(c, "Registering mentor", "firebase_uid", req.FirebaseUID)

	result, err := h.service.RegisterMentor(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.RegistrationResponse{
		Success: true,
		Message: "Mentor registered successfully",
		Data:    result,
	})
}

func (h *RegistrationHandler) ownsIdentity(c *gin.Context, firebaseUID string) bool {
	if !h.requireIDToken {
		return true
	}

	identity, err := GetIdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return false
	}
	if identity.UID != firebaseUID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "firebaseUid does not match the authenticated user"})
		return false
	}
	return true
}
