package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/VibeFlow-2025/eduvibe-service/internal/cache"
	"github.com/VibeFlow-2025/eduvibe-service/internal/events"
	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
	"github.com/VibeFlow-2025/eduvibe-service/internal/validator"
)

type registrationService struct {
	repo              repositories.Repository
	cacheManager      *cache.CacheManager
	eventPublisher    events.EventPublisher
	logger            *slog.Logger
	validator         *validator.Validator
	defaultHourlyRate float64
}

func NewRegistrationService(repo repositories.Repository, cacheManager *cache.CacheManager, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, defaultHourlyRate float64) RegistrationService {
	return &registrationService{
		repo:              repo,
		cacheManager:      cacheManager,
		eventPublisher:    eventPublisher,
		logger:            logger,
		validator:         validator,
		defaultHourlyRate: defaultHourlyRate,
	}
}

func (s *registrationService) RegisterStudent(ctx context.Context, req *StudentRegistrationRequest) (*models.StudentRegistration, error) {
	req.DisabilityDetails = emptyToNil(req.DisabilityDetails)

	if errs := s.validator.GetBusinessValidator().ValidateStudentRegistration(req); len(errs) > 0 {
		return nil, errs
	}

	s.logger.Info("Registering student", "firebase_uid", req.FirebaseUID)

	if err := s.ensureNotRegistered(ctx, req.FirebaseUID, req.Email); err != nil {
		return nil, err
	}

	user := &models.User{
		FirebaseUID: req.FirebaseUID,
		Email:       req.Email,
		Role:        models.RoleStudent,
	}
	details := &models.StudentDetails{
		FullName:               req.FullName,
		Age:                    req.Age,
		ContactNumber:          req.ContactNumber,
		EducationLevel:         req.EducationLevel,
		School:                 req.School,
		PreferredLearningStyle: req.PreferredLearningStyle,
		LearningDisabilities:   *req.LearningDisabilities,
	}
	if details.LearningDisabilities {
		details.DisabilityDetails = req.DisabilityDetails
	}

	var subjects []models.StudentSubject
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, user); err != nil {
			return err
		}

		details.UserID = user.ID
		if err := tx.Student().CreateDetails(ctx, details); err != nil {
			return err
		}

		subjects = make([]models.StudentSubject, len(req.Subjects))
		for i, sub := range req.Subjects {
			subjects[i] = models.StudentSubject{
				UserID:      user.ID,
				SubjectName: sub.SubjectName,
				CurrentYear: sub.CurrentYear,
				SkillLevel:  sub.SkillLevel,
			}
		}
		return tx.Student().CreateSubjects(ctx, subjects)
	})
	if err != nil {
		return nil, s.registrationError(err, "student", req.FirebaseUID)
	}

	s.logger.Info("Student registered successfully", "user_id", user.ID)
	s.publishRegistered(ctx, user)

	return &models.StudentRegistration{
		User:           models.NewUserResponse(user),
		StudentDetails: models.NewStudentDetailsResponse(details),
		Subjects:       models.NewStudentSubjectResponses(subjects),
	}, nil
}

func (s *registrationService) RegisterMentor(ctx context.Context, req *MentorRegistrationRequest) (*models.MentorRegistration, error) {
	req.GithubOrPortfolioURL = blankToNil(req.GithubOrPortfolioURL)
	req.ProfilePictureURL = blankToNil(req.ProfilePictureURL)

	if errs := s.validator.GetBusinessValidator().ValidateMentorRegistration(req); len(errs) > 0 {
		return nil, errs
	}

	s.logger.Info("Registering mentor", "firebase_uid", req.FirebaseUID)

	if err := s.ensureNotRegistered(ctx, req.FirebaseUID, req.Email); err != nil {
		return nil, err
	}

	rate := s.defaultHourlyRate
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}

	user := &models.User{
		FirebaseUID: req.FirebaseUID,
		Email:       req.Email,
		Role:        models.RoleMentor,
	}
	details := &models.MentorDetails{
		FullName:          req.FullName,
		Age:               req.Age,
		ContactNumber:     req.ContactNumber,
		PreferredLanguage: req.PreferredLanguage,
		CurrentLocation:   req.CurrentLocation,
		Bio:               *req.Bio,
		ProfessionalRole:  req.ProfessionalRole,
		HourlyRate:        rate,
	}
	link := &models.SocialLink{
		LinkedinURL:          req.LinkedinURL,
		GithubOrPortfolioURL: req.GithubOrPortfolioURL,
		ProfilePictureURL:    req.ProfilePictureURL,
	}

	var subjects []models.MentorSubject
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, user); err != nil {
			return err
		}

		details.UserID = user.ID
		if err := tx.Mentor().CreateDetails(ctx, details); err != nil {
			return err
		}

		subjects = make([]models.MentorSubject, len(req.Subjects))
		for i, sub := range req.Subjects {
			subjects[i] = models.MentorSubject{
				UserID:             user.ID,
				SubjectName:        sub.SubjectName,
				TeachingExperience: sub.TeachingExperience,
				PreferredLevels:    sub.PreferredLevels,
			}
		}
		if err := tx.Mentor().CreateSubjects(ctx, subjects); err != nil {
			return err
		}

		link.UserID = user.ID
		return tx.Mentor().CreateSocialLink(ctx, link)
	})
	if err != nil {
		return nil, s.registrationError(err, "mentor", req.FirebaseUID)
	}

	s.logger.Info("Mentor registered successfully", "user_id", user.ID)
	cache.InvalidateMentorCache(ctx, s.cacheManager, user.ID)
	s.publishRegistered(ctx, user)

	return &models.MentorRegistration{
		User:          models.NewUserResponse(user),
		MentorDetails: models.NewMentorDetailsResponse(details),
		Subjects:      models.NewMentorSubjectResponses(subjects),
		SocialLinks:   models.NewSocialLinkResponse(link),
	}, nil
}

// ===== HELPERS =====

func (s *registrationService) ensureNotRegistered(ctx context.Context, firebaseUID, email string) error {
	exists, err := s.repo.User().ExistsByFirebaseUIDOrEmail(ctx, firebaseUID, email)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return ErrUserAlreadyExists
	}
	return nil
}

// registrationError keeps constraint sentinels visible to the handler and
// wraps everything else.
func (s *registrationService) registrationError(err error, role, firebaseUID string) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		s.logger.Warn("Registration lost a uniqueness race", "role", role, "firebase_uid", firebaseUID)
		return fmt.Errorf("%s registration: %w", role, ErrDuplicate)
	case errors.Is(err, repositories.ErrInvalidReference):
		return fmt.Errorf("%s registration: %w", role, ErrInvalidReference)
	case errors.Is(err, repositories.ErrValueTooLong):
		s.logger.Warn("Registration value exceeds column size", "role", role, "firebase_uid", firebaseUID, "error", err)
		return fmt.Errorf("%s registration: %w", role, ErrValueTooLong)
	default:
		s.logger.Error("Registration transaction failed", "role", role, "firebase_uid", firebaseUID, "error", err)
		return fmt.Errorf("%s registration failed: %w", role, err)
	}
}

func (s *registrationService) publishRegistered(ctx context.Context, user *models.User) {
	event := events.NewEvent(events.UserRegistered, events.UserRegisteredData{
		UserID:      models.FormatID(user.ID),
		FirebaseUID: user.FirebaseUID,
		Email:       user.Email,
		Role:        string(user.Role),
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish registration event", "user_id", user.ID, "error", err)
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
