package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
)

type MentorPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewMentorPostgreSQL(db *gorm.DB) repositories.MentorRepository {
	return &MentorPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// ===== REGISTRATION WRITES =====

func (m *MentorPostgreSQL) CreateDetails(ctx context.Context, details *models.MentorDetails) error {
	if err := m.db.WithContext(ctx).Create(details).Error; err != nil {
		return fmt.Errorf("failed to create mentor details: %w", repositories.Classify(err))
	}
	return nil
}

func (m *MentorPostgreSQL) CreateSubjects(ctx context.Context, subjects []models.MentorSubject) error {
	if len(subjects) == 0 {
		return nil
	}
	if err := m.db.WithContext(ctx).Create(&subjects).Error; err != nil {
		return fmt.Errorf("failed to create mentor subjects: %w", repositories.Classify(err))
	}
	return nil
}

func (m *MentorPostgreSQL) CreateSocialLink(ctx context.Context, link *models.SocialLink) error {
	if err := m.db.WithContext(ctx).Create(link).Error; err != nil {
		return fmt.Errorf("failed to create social link: %w", repositories.Classify(err))
	}
	return nil
}

// ===== READS =====

// LockForBooking issues SELECT ... FOR UPDATE on the mentor's user row. The
// SQLite dialect drops the locking clause; SQLite serialises writers anyway.
func (m *MentorPostgreSQL) LockForBooking(ctx context.Context, id uint) error {
	var user models.User
	if err := lockMentorRow(m.db.WithContext(ctx), id).Take(&user).Error; err != nil {
		return fmt.Errorf("failed to lock mentor %d: %w", id, repositories.Classify(err))
	}
	return nil
}

func lockMentorRow(db *gorm.DB, id uint) *gorm.DB {
	return db.Model(&models.User{}).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Select("id").
		Where("id = ? AND role = ?", id, models.RoleMentor)
}

func (m *MentorPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := m.preloadProfile(m.db.WithContext(ctx)).
		Where("users.role = ?", models.RoleMentor).
		First(&user, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor %d: %w", id, repositories.Classify(err))
	}
	return &user, nil
}

func (m *MentorPostgreSQL) Search(ctx context.Context, filters repositories.MentorFilters) ([]*models.User, int64, error) {
	base := func() *gorm.DB {
		return m.applyMentorFilters(m.db.WithContext(ctx).Model(&models.User{}), filters)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count mentors: %w", repositories.Classify(err))
	}
	if total == 0 {
		return []*models.User{}, 0, nil
	}

	var mentors []*models.User
	query := m.preloadProfile(base()).Select("users.*").Order("users.id ASC")
	query = m.helpers.Paginate(query, filters.Limit, filters.Offset)
	if err := query.Find(&mentors).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search mentors: %w", repositories.Classify(err))
	}

	return mentors, total, nil
}

// ===== HELPERS =====

func (m *MentorPostgreSQL) preloadProfile(db *gorm.DB) *gorm.DB {
	return db.
		Preload("MentorDetails").
		Preload("MentorSubjects", orderByID).
		Preload("SocialLink")
}

func (m *MentorPostgreSQL) applyMentorFilters(query *gorm.DB, filters repositories.MentorFilters) *gorm.DB {
	query = query.
		Joins("JOIN mentor_details ON mentor_details.user_id = users.id").
		Where("users.role = ?", models.RoleMentor)

	if q := strings.TrimSpace(filters.Query); q != "" {
		like := "%" + escapeLike(strings.ToLower(q)) + "%"
		query = query.Where(
			"LOWER(mentor_details.full_name) LIKE ? ESCAPE '\\' OR LOWER(mentor_details.professional_role) LIKE ? ESCAPE '\\' OR EXISTS ("+
				"SELECT 1 FROM mentor_subjects ms WHERE ms.user_id = users.id AND LOWER(ms.subject_name) LIKE ? ESCAPE '\\')",
			like, like, like,
		)
	}

	if subject := strings.TrimSpace(filters.Subject); subject != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM mentor_subjects ms WHERE ms.user_id = users.id AND LOWER(ms.subject_name) = ?)",
			strings.ToLower(subject),
		)
	}

	return query
}
