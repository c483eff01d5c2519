package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

// Create inserts the user row only; role rows are created by their own
// repositories.
func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", repositories.Classify(err))
	}
	return nil
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, repositories.Classify(err))
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by firebase uid: %w", repositories.Classify(err))
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetProfile(ctx context.Context, firebaseUID string) (*models.User, error) {
	user, err := u.GetByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	query := u.db.WithContext(ctx)
	switch user.Role {
	case models.RoleStudent:
		query = query.Preload("StudentDetails").Preload("StudentSubjects", orderByID)
	case models.RoleMentor:
		query = query.Preload("MentorDetails").Preload("MentorSubjects", orderByID).Preload("SocialLink")
	}

	var profile models.User
	if err := query.First(&profile, user.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", repositories.Classify(err))
	}
	return &profile, nil
}

func (u *UserPostgreSQL) FindByFirebaseUIDOrEmail(ctx context.Context, firebaseUID, email string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).
		Where("firebase_uid = ? OR email = ?", firebaseUID, email).
		Order("id ASC").
		First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", repositories.Classify(err))
	}
	return &user, nil
}

func (u *UserPostgreSQL) ExistsByFirebaseUIDOrEmail(ctx context.Context, firebaseUID, email string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("firebase_uid = ? OR email = ?", firebaseUID, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", repositories.Classify(err))
	}
	return count > 0, nil
}
