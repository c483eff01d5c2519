package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VibeFlow-2025/eduvibe-service/internal/auth"
	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
	"github.com/VibeFlow-2025/eduvibe-service/internal/utils"
)

const (
	contextIdentity = "identity"
	contextUser     = "user"
	contextUserID   = "user_id"
	contextUserRole = "user_role"
)

// AuthMiddleware verifies bearer ID tokens and resolves the local user
// behind them.
type AuthMiddleware struct {
	verifier auth.TokenVerifier
	users    repositories.UserRepository
	logger   utils.Logger
}

func NewAuthMiddleware(verifier auth.TokenVerifier, users repositories.UserRepository, logger utils.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

// RequireIdentity rejects requests without a valid bearer token and stores
// the verified identity in the context.
func (m *AuthMiddleware) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Authorization header missing or malformed",
			})
			return
		}

		identity, err := m.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			log := utils.GetLogger(c, m.logger)
			if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrUnknownKey) || errors.Is(err, auth.ErrMissingToken) {
				log.Debug("Rejected ID token", "error", err)
			} else {
				log.Error("Token verification failed", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Invalid or expired token",
			})
			return
		}

		c.Set(contextIdentity, identity)
		c.Next()
	}
}

// RequireRole loads the registered user for the verified identity and
// checks its role. With no roles any registered user passes. It must run
// after RequireIdentity.
func (m *AuthMiddleware) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := GetIdentityFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		user, err := m.users.GetByFirebaseUID(c.Request.Context(), identity.UID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
					Error: "User is not registered",
				})
				return
			}
			utils.GetLogger(c, m.logger).Error("Failed to resolve user", "firebase_uid", identity.UID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		if len(roles) > 0 && !hasRole(user.Role, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error: fmt.Sprintf("insufficient permissions, required role: %v", roles),
			})
			return
		}

		c.Set(contextUser, user)
		c.Set(contextUserID, user.ID)
		c.Set(contextUserRole, user.Role)
		c.Next()
	}
}

func hasRole(role models.UserRole, allowed []models.UserRole) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// GetIdentityFromContext returns the identity set by RequireIdentity.
func GetIdentityFromContext(c *gin.Context) (*auth.Identity, error) {
	v, exists := c.Get(contextIdentity)
	if !exists {
		return nil, fmt.Errorf("identity not found in context")
	}
	identity, ok := v.(*auth.Identity)
	if !ok {
		return nil, fmt.Errorf("invalid identity type in context")
	}
	return identity, nil
}

// GetUserFromContext returns the user set by RequireRole.
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	v, exists := c.Get(contextUser)
	if !exists {
		return nil, fmt.Errorf("user not found in context")
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil, fmt.Errorf("invalid user type in context")
	}
	return user, nil
}
