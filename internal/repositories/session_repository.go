package repositories

import (
	"context"
	"time"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
)

type SessionFilters struct {
	Statuses []models.SessionStatus
	From     *time.Time
	Limit    int
	Offset   int
}

// SessionStatusCount is one row of a per-status aggregate.
type SessionStatusCount struct {
	Status     models.SessionStatus
	Count      int64
	PriceCents int64
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id uint) (*models.Session, error)

	// UpdateStatus moves a session from one status to another. It returns
	// ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uint, from, to models.SessionStatus, notes, meetingLink *string) error

	ListByStudent(ctx context.Context, studentID uint, filters SessionFilters) ([]*models.Session, error)
	ListByMentor(ctx context.Context, mentorID uint, filters SessionFilters) ([]*models.Session, error)

	// FindOverlapping returns the mentor's slot-holding sessions that
	// intersect [start, end).
	FindOverlapping(ctx context.Context, mentorID uint, start, end time.Time) ([]*models.Session, error)

	CountByStatusForMentor(ctx context.Context, mentorID uint) ([]SessionStatusCount, error)
	CountByStatusForStudent(ctx context.Context, studentID uint) ([]SessionStatusCount, error)
	CountUpcomingForMentor(ctx context.Context, mentorID uint, now time.Time) (int64, error)
	CountUpcomingForStudent(ctx context.Context, studentID uint, now time.Time) (int64, error)
}
