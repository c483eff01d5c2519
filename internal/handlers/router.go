package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/VibeFlow-2025/eduvibe-service/internal/auth"
	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
	"github.com/VibeFlow-2025/eduvibe-service/internal/services"
	"github.com/VibeFlow-2025/eduvibe-service/internal/utils"
)

type HandlerConfig struct {
	// RequireIDToken puts the registration routes behind token verification.
	RequireIDToken bool
}

type HandlerManager struct {
	registrationHandler *RegistrationHandler
	profileHandler      *ProfileHandler
	mentorHandler       *MentorHandler
	sessionHandler      *SessionHandler
	dashboardHandler    *DashboardHandler
	healthHandler       *HealthHandler
	authMiddleware      *AuthMiddleware
	config              HandlerConfig
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	verifier auth.TokenVerifier,
	userRepo repositories.UserRepository,
	logger utils.Logger,
	config HandlerConfig,
) *HandlerManager {
	return &HandlerManager{
		registrationHandler: NewRegistrationHandler(serviceManager.Registration(), logger, config.RequireIDToken),
		profileHandler:      NewProfileHandler(serviceManager.Profile(), logger),
		mentorHandler:       NewMentorHandler(serviceManager.Mentor(), logger),
		sessionHandler:      NewSessionHandler(serviceManager.Session(), logger),
		dashboardHandler:    NewDashboardHandler(serviceManager.Dashboard(), logger),
		healthHandler:       NewHealthHandler(serviceManager, logger),
		authMiddleware:      NewAuthMiddleware(verifier, userRepo, logger),
		config:              config,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthHandler.Health)
	router.GET("/health/ready", hm.healthHandler.Ready)

	identity := hm.authMiddleware.RequireIdentity()
	mentorOnly := hm.authMiddleware.RequireRole(models.RoleMentor)
	studentOnly := hm.authMiddleware.RequireRole(models.RoleStudent)
	registered := hm.authMiddleware.RequireRole()

	api := router.Group("/api")
	{
		// Registration
		register := api.Group("")
		if hm.config.RequireIDToken {
			register.Use(identity)
		}
		register.POST("/student/register", hm.registrationHandler.RegisterStudent)
		register.POST("/mentor/register", hm.registrationHandler.RegisterMentor)

		api.GET("/me", identity, hm.profileHandler.GetMe)

		// Mentor discovery is public; the caller's own views need the mentor role
		mentors := api.Group("/mentors")
		{
			mentors.GET("", hm.mentorHandler.SearchMentors)
			mentors.GET("/export", identity, hm.mentorHandler.ExportMentors)
			mentors.GET("/me/requests", identity, mentorOnly, hm.sessionHandler.ListMentorRequests)
			mentors.GET("/me/stats", identity, mentorOnly, hm.dashboardHandler.GetMentorStats)
			mentors.GET("/:id", hm.mentorHandler.GetMentor)
		}

		students := api.Group("/students/me")
		students.Use(identity, studentOnly)
		{
			students.GET("/sessions", hm.sessionHandler.ListStudentSessions)
			students.GET("/stats", hm.dashboardHandler.GetStudentStats)
		}

		sessions := api.Group("/sessions")
		sessions.Use(identity)
		{
			sessions.POST("", studentOnly, hm.sessionHandler.BookSession)
			sessions.POST("/:id/approve", registered, hm.sessionHandler.Transition(models.SessionApproved))
			sessions.POST("/:id/reject", registered, hm.sessionHandler.Transition(models.SessionRejected))
			sessions.POST("/:id/cancel", registered, hm.sessionHandler.Transition(models.SessionCancelled))
			sessions.POST("/:id/complete", registered, hm.sessionHandler.Transition(models.SessionCompleted))
		}
	}
}
