package repositories

import (
	"context"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
)

type StudentRepository interface {
	CreateDetails(ctx context.Context, details *models.StudentDetails) error
	CreateSubjects(ctx context.Context, subjects []models.StudentSubject) error

	GetDetails(ctx context.Context, userID uint) (*models.StudentDetails, error)
	ListSubjects(ctx context.Context, userID uint) ([]models.StudentSubject, error)
}
