package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *dashboardService) MentorStats(ctx context.Context, mentor *models.User) (*models.MentorStats, error) {
	counts, err := s.repo.Session().CountByStatusForMentor(ctx, mentor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate mentor sessions: %w", err)
	}

	upcoming, err := s.repo.Session().CountUpcomingForMentor(ctx, mentor.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming sessions: %w", err)
	}

	totals := summarize(counts)
	stats := &models.MentorStats{
		TotalSessions:     totals.all,
		UpcomingSessions:  upcoming,
		PendingRequests:   totals.count[models.SessionPending],
		CompletedSessions: totals.count[models.SessionCompleted],
		TotalEarnings:     centsToAmount(totals.cents[models.SessionCompleted]),
		CompletionRate:    completionRate(totals.count[models.SessionCompleted], totals.count[models.SessionCancelled]),
	}

	s.logger.Debug("Mentor stats computed", "user_id", mentor.ID, "total_sessions", stats.TotalSessions)
	return stats, nil
}

func (s *dashboardService) StudentStats(ctx context.Context, student *models.User) (*models.StudentStats, error) {
	counts, err := s.repo.Session().CountByStatusForStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate student sessions: %w", err)
	}

	upcoming, err := s.repo.Session().CountUpcomingForStudent(ctx, student.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming sessions: %w", err)
	}

	totals := summarize(counts)
	return &models.StudentStats{
		TotalSessions:     totals.all,
		UpcomingSessions:  upcoming,
		CompletedSessions: totals.count[models.SessionCompleted],
		TotalSpent:        centsToAmount(totals.cents[models.SessionCompleted]),
	}, nil
}

type statusTotals struct {
	all   int64
	count map[models.SessionStatus]int64
	cents map[models.SessionStatus]int64
}

func summarize(rows []repositories.SessionStatusCount) statusTotals {
	t := statusTotals{
		count: make(map[models.SessionStatus]int64, len(rows)),
		cents: make(map[models.SessionStatus]int64, len(rows)),
	}
	for _, r := range rows {
		t.all += r.Count
		t.count[r.Status] += r.Count
		t.cents[r.Status] += r.PriceCents
	}
	return t
}

// completionRate is completed / (completed + cancelled) as a percentage
// rounded to one decimal.
func completionRate(completed, cancelled int64) float64 {
	if completed+cancelled == 0 {
		return 0
	}
	rate := float64(completed) / float64(completed+cancelled) * 100
	return math.Round(rate*10) / 10
}

func centsToAmount(cents int64) float64 {
	return float64(cents) / 100
}
