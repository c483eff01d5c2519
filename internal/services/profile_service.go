package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
)

type profileService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewProfileService(repo repositories.Repository, logger *slog.Logger) ProfileService {
	return &profileService{
		repo:   repo,
		logger: logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, firebaseUID string) (*models.ProfileResponse, error) {
	user, err := s.repo.User().GetProfile(ctx, firebaseUID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Debug("Profile requested for unregistered identity", "firebase_uid", firebaseUID)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	resp := models.NewProfileResponse(user)
	return &resp, nil
}
