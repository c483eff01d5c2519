package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s *StudentPostgreSQL) CreateDetails(ctx context.Context, details *models.StudentDetails) error {
	if err := s.db.WithContext(ctx).Create(details).Error; err != nil {
		return fmt.Errorf("failed to create student details: %w", repositories.Classify(err))
	}
	return nil
}

// CreateSubjects batch-inserts subjects and fills in their ids.
func (s *StudentPostgreSQL) CreateSubjects(ctx context.Context, subjects []models.StudentSubject) error {
	if len(subjects) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&subjects).Error; err != nil {
		return fmt.Errorf("failed to create student subjects: %w", repositories.Classify(err))
	}
	return nil
}

func (s *StudentPostgreSQL) GetDetails(ctx context.Context, userID uint) (*models.StudentDetails, error) {
	var details models.StudentDetails
	if err := s.db.WithContext(ctx).First(&details, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get student details: %w", repositories.Classify(err))
	}
	return &details, nil
}

func (s *StudentPostgreSQL) ListSubjects(ctx context.Context, userID uint) ([]models.StudentSubject, error) {
	var subjects []models.StudentSubject
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("failed to list student subjects: %w", repositories.Classify(err))
	}
	return subjects, nil
}
