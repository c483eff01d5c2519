package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/services"
	"github.com/VibeFlow-2025/eduvibe-service/internal/utils"
	"github.com/VibeFlow-2025/eduvibe-service/internal/validator"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Error(msg, append(args, "error", err)...)
}

// bindJSON decodes the body into dst. It writes the 400 response and
// returns false when the body is not usable.
func (h *BaseHandler) bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindBodyWith(dst, binding.JSON)
	if err == nil {
		return true
	}

	if details, ok := validator.FromDecodeError(err, rawBody(c)); ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: details})
		return false
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return false
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
	return false
}

func rawBody(c *gin.Context) []byte {
	if v, ok := c.Get(gin.BodyBytesKey); ok {
		if body, ok := v.([]byte); ok {
			return body
		}
	}
	return nil
}

// bindQuery decodes query parameters into dst with the same error shape as
// bindJSON.
func (h *BaseHandler) bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters", Details: err.Error()})
		return false
	}
	return true
}

// pathID parses a numeric path parameter. Ids that cannot exist are
// reported as notFound.
func (h *BaseHandler) pathID(c *gin.Context, name string, notFound error) (uint, bool) {
	id := models.ParseID(c.Param(name))
	if id == 0 {
		h.handleServiceError(c, notFound)
		return 0, false
	}
	return id, true
}

func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
		})
		return
	}

	var transitionError *services.TransitionError
	if errors.As(err, &transitionError) {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: transitionError.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: services.ErrUserAlreadyExists.Error(),
		})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "A user with this information already exists",
		})
	case errors.Is(err, services.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid reference data provided",
		})
	case errors.Is(err, services.ErrValueTooLong):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "A value exceeds the allowed length",
		})
	case errors.Is(err, services.ErrMentorNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Mentor not found",
		})
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Session not found",
		})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "User not found",
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Resource not found",
		})
	case errors.Is(err, services.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: services.ErrSlotUnavailable.Error(),
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "Invalid session status transition",
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "Resource was modified concurrently",
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Unauthorized",
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "Forbidden",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
		})
	}
}
