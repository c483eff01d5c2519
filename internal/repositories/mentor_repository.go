package repositories

import (
	"context"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
)

// MentorFilters drives mentor search. Query matches full name, professional
// role or any subject name; Subject matches a subject name exactly. Both are
// case-insensitive.
type MentorFilters struct {
	Query   string
	Subject string
	Limit   int
	Offset  int
}

type MentorRepository interface {
	CreateDetails(ctx context.Context, details *models.MentorDetails) error
	CreateSubjects(ctx context.Context, subjects []models.MentorSubject) error
	CreateSocialLink(ctx context.Context, link *models.SocialLink) error

	// GetByID returns a mentor user with details, subjects and social link
	// preloaded, or ErrNotFound when id is not a mentor.
	GetByID(ctx context.Context, id uint) (*models.User, error)

	// LockForBooking row-locks the mentor until the surrounding transaction
	// ends, serialising bookings for that mentor. ErrNotFound when id is not
	// a mentor.
	LockForBooking(ctx context.Context, id uint) error
	Search(ctx context.Context, filters MentorFilters) ([]*models.User, int64, error)
}
