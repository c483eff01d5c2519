package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/VibeFlow-2025/eduvibe-service/internal/cache"
	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
	"github.com/VibeFlow-2025/eduvibe-service/internal/validator"
)

const (
	exportSheet     = "Mentors"
	exportBatchSize = 500
)

var exportHeader = []interface{}{
	"ID", "Full Name", "Professional Role", "Preferred Language", "Location",
	"Hourly Rate", "Subjects", "LinkedIn", "GitHub / Portfolio", "Bio",
}

type mentorService struct {
	repo         repositories.Repository
	cacheManager *cache.CacheManager
	cacheTTL     time.Duration
	logger       *slog.Logger
	validator    *validator.Validator
}

func NewMentorService(repo repositories.Repository, cacheManager *cache.CacheManager, cacheTTL time.Duration, logger *slog.Logger, validator *validator.Validator) MentorService {
	return &mentorService{
		repo:         repo,
		cacheManager: cacheManager,
		cacheTTL:     cacheTTL,
		logger:       logger,
		validator:    validator,
	}
}

func (s *mentorService) Search(ctx context.Context, req *MentorSearchRequest) (*models.MentorListResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	page, limit, offset := repositories.PageToOffset(req.Page, req.Limit)
	key := cache.MentorSearchKey(req.Query, req.Subject, page, limit)

	var resp models.MentorListResponse
	hit, err := s.cacheManager.Mentor.CacheOrExecute(ctx, key, &resp, s.cacheTTL, func() (interface{}, error) {
		mentors, total, err := s.repo.Mentor().Search(ctx, repositories.MentorFilters{
			Query:   req.Query,
			Subject: req.Subject,
			Limit:   limit,
			Offset:  offset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search mentors: %w", err)
		}
		return &models.MentorListResponse{
			Data:       toMentorCards(mentors),
			Pagination: models.NewPagination(page, limit, total),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Mentor search", "query", req.Query, "subject", req.Subject, "page", page, "cache_hit", hit)
	return &resp, nil
}

func (s *mentorService) GetByID(ctx context.Context, id uint) (*models.MentorCard, error) {
	if id == 0 {
		return nil, ErrMentorNotFound
	}

	var card models.MentorCard
	hit, err := s.cacheManager.Mentor.CacheOrExecute(ctx, cache.MentorCardKey(id), &card, s.cacheTTL, func() (interface{}, error) {
		mentor, err := s.repo.Mentor().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrMentorNotFound
			}
			return nil, fmt.Errorf("failed to get mentor: %w", err)
		}
		return models.NewMentorCard(mentor), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Mentor fetched", "mentor_id", id, "cache_hit", hit)
	return &card, nil
}

func (s *mentorService) Export(ctx context.Context, req *MentorSearchRequest, w io.Writer) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(exportSheet, 1, 1, style)
	}

	row := 2
	for offset := 0; ; offset += exportBatchSize {
		mentors, total, err := s.repo.Mentor().Search(ctx, repositories.MentorFilters{
			Query:   req.Query,
			Subject: req.Subject,
			Limit:   exportBatchSize,
			Offset:  offset,
		})
		if err != nil {
			return fmt.Errorf("failed to load mentors for export: %w", err)
		}

		for _, m := range mentors {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := exportRow(models.NewMentorCard(m))
			if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
			row++
		}

		if len(mentors) < exportBatchSize || int64(offset+len(mentors)) >= total {
			break
		}
	}

	s.logger.Info("Mentors exported", "rows", row-2, "query", req.Query, "subject", req.Subject)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func toMentorCards(mentors []*models.User) []models.MentorCard {
	cards := make([]models.MentorCard, 0, len(mentors))
	for _, m := range mentors {
		cards = append(cards, models.NewMentorCard(m))
	}
	return cards
}

func exportRow(card models.MentorCard) []interface{} {
	var linkedin, portfolio string
	if card.SocialLinks != nil {
		linkedin = card.SocialLinks.LinkedinURL
		if card.SocialLinks.GithubOrPortfolioURL != nil {
			portfolio = *card.SocialLinks.GithubOrPortfolioURL
		}
	}
	return []interface{}{
		card.ID,
		card.FullName,
		card.ProfessionalRole,
		string(card.PreferredLanguage),
		card.CurrentLocation,
		card.HourlyRate,
		strings.Join(card.Expertise, ", "),
		linkedin,
		portfolio,
		card.Bio,
	}
}
