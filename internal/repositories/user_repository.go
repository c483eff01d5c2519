package repositories

import (
	"context"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
)

// UserRepository owns the identity rows.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	// GetProfile loads the user together with the details, subjects and
	// links of its role.
	GetProfile(ctx context.Context, firebaseUID string) (*models.User, error)

	// FindByFirebaseUIDOrEmail returns the first user matching either value.
	FindByFirebaseUIDOrEmail(ctx context.Context, firebaseUID, email string) (*models.User, error)
	ExistsByFirebaseUIDOrEmail(ctx context.Context, firebaseUID, email string) (bool, error)
}
