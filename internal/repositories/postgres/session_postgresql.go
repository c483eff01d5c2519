package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
)

type SessionPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewSessionPostgreSQL(db *gorm.DB) repositories.SessionRepository {
	return &SessionPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (s *SessionPostgreSQL) Create(ctx context.Context, session *models.Session) error {
	session.ScheduledAt = session.ScheduledAt.UTC()
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", repositories.Classify(err))
	}
	return nil
}

func (s *SessionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	err := s.helpers.PreloadParticipants(s.db.WithContext(ctx)).First(&session, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get session %d: %w", id, repositories.Classify(err))
	}
	return &session, nil
}

func (s *SessionPostgreSQL) UpdateStatus(ctx context.Context, id uint, from, to models.SessionStatus, notes, meetingLink *string) error {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if meetingLink != nil {
		updates["meeting_link"] = *meetingLink
	}

	result := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update session status: %w", repositories.Classify(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session %d is no longer %s: %w", id, from, repositories.ErrConflict)
	}
	return nil
}

// ===== LISTS =====

func (s *SessionPostgreSQL) ListByStudent(ctx context.Context, studentID uint, filters repositories.SessionFilters) ([]*models.Session, error) {
	return s.list(ctx, "student_id", studentID, filters)
}

func (s *SessionPostgreSQL) ListByMentor(ctx context.Context, mentorID uint, filters repositories.SessionFilters) ([]*models.Session, error) {
	return s.list(ctx, "mentor_id", mentorID, filters)
}

func (s *SessionPostgreSQL) list(ctx context.Context, column string, userID uint, filters repositories.SessionFilters) ([]*models.Session, error) {
	query := s.db.WithContext(ctx).Where(column+" = ?", userID)
	query = s.helpers.ApplySessionFilters(query, filters)
	query = s.helpers.Paginate(query, filters.Limit, filters.Offset)

	var sessions []*models.Session
	if err := s.helpers.PreloadParticipants(query).Order("scheduled_at ASC, id ASC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", repositories.Classify(err))
	}
	return sessions, nil
}

// FindOverlapping narrows candidates in SQL by the longest bookable duration;
// exact intersection is checked in Go.
func (s *SessionPostgreSQL) FindOverlapping(ctx context.Context, mentorID uint, start, end time.Time) ([]*models.Session, error) {
	var candidates []*models.Session
	err := s.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Where("status IN ?", []models.SessionStatus{models.SessionPending, models.SessionApproved}).
		Where("scheduled_at < ? AND scheduled_at > ?", end.UTC(), start.UTC().Add(-models.MaxSessionDuration)).
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping sessions: %w", repositories.Classify(err))
	}

	overlapping := make([]*models.Session, 0, len(candidates))
	for _, c := range candidates {
		if c.Overlaps(start, end) {
			overlapping = append(overlapping, c)
		}
	}
	return overlapping, nil
}

// ===== AGGREGATES =====

func (s *SessionPostgreSQL) CountByStatusForMentor(ctx context.Context, mentorID uint) ([]repositories.SessionStatusCount, error) {
	return s.countByStatus(ctx, "mentor_id", mentorID)
}

func (s *SessionPostgreSQL) CountByStatusForStudent(ctx context.Context, studentID uint) ([]repositories.SessionStatusCount, error) {
	return s.countByStatus(ctx, "student_id", studentID)
}

func (s *SessionPostgreSQL) countByStatus(ctx context.Context, column string, userID uint) ([]repositories.SessionStatusCount, error) {
	var rows []repositories.SessionStatusCount
	err := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(price_cents), 0) AS price_cents").
		Where(column+" = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sessions: %w", repositories.Classify(err))
	}
	return rows, nil
}

func (s *SessionPostgreSQL) CountUpcomingForMentor(ctx context.Context, mentorID uint, now time.Time) (int64, error) {
	return s.countUpcoming(ctx, "mentor_id", mentorID, now)
}

func (s *SessionPostgreSQL) CountUpcomingForStudent(ctx context.Context, studentID uint, now time.Time) (int64, error) {
	return s.countUpcoming(ctx, "student_id", studentID, now)
}

func (s *SessionPostgreSQL) countUpcoming(ctx context.Context, column string, userID uint, now time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where(column+" = ?", userID).
		Where("status = ? AND scheduled_at > ?", models.SessionApproved, now.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count upcoming sessions: %w", repositories.Classify(err))
	}
	return count, nil
}
