package services

import (
	"context"
	"io"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use business validator types
type StudentRegistrationRequest = validator.StudentRegistrationRequest
type StudentSubjectRequest = validator.StudentSubjectRequest
type MentorRegistrationRequest = validator.MentorRegistrationRequest
type MentorSubjectRequest = validator.MentorSubjectRequest
type BookSessionRequest = validator.BookSessionRequest
type SessionActionRequest = validator.SessionActionRequest
type MentorSearchRequest = validator.MentorSearchRequest
type SessionListRequest = validator.SessionListRequest

// ===== SERVICE INTERFACES =====

type RegistrationService interface {
	RegisterStudent(ctx context.Context, req *StudentRegistrationRequest) (*models.StudentRegistration, error)
	RegisterMentor(ctx context.Context, req *MentorRegistrationRequest) (*models.MentorRegistration, error)
}

type ProfileService interface {
	// GetProfile returns ErrUserNotFound when the identity never registered.
	GetProfile(ctx context.Context, firebaseUID string) (*models.ProfileResponse, error)
}

type MentorService interface {
	Search(ctx context.Context, req *MentorSearchRequest) (*models.MentorListResponse, error)
	GetByID(ctx context.Context, id uint) (*models.MentorCard, error)

	// Export writes the search result, without pagination limits, as an
	// xlsx workbook.
	Export(ctx context.Context, req *MentorSearchRequest, w io.Writer) error
}

type SessionService interface {
	Book(ctx context.Context, student *models.User, req *BookSessionRequest) (*models.SessionResponse, error)

	// Transition moves a session to status on behalf of actor.
	Transition(ctx context.Context, actor *models.User, sessionID uint, status models.SessionStatus, req *SessionActionRequest) (*models.SessionResponse, error)

	ListForStudent(ctx context.Context, student *models.User, req *SessionListRequest) (*models.SessionListResponse, error)
	// ListForMentor defaults to pending requests when no status is given.
	ListForMentor(ctx context.Context, mentor *models.User, req *SessionListRequest) (*models.SessionListResponse, error)
}

type DashboardService interface {
	MentorStats(ctx context.Context, mentor *models.User) (*models.MentorStats, error)
	StudentStats(ctx context.Context, student *models.User) (*models.StudentStats, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Registration() RegistrationService
	Profile() ProfileService
	Mentor() MentorService
	Session() SessionService
	Dashboard() DashboardService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
